package bot

import (
	"context"
	"errors"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/bradykim7/commando/pkg/commando"
)

// originalResponse identifies the first response to an interaction.
const originalResponse = "@original"

// interactionEvent travels in commando.Origin.Data for interactions and
// remembers whether the interaction has been answered.
type interactionEvent struct {
	*discordgo.InteractionCreate

	mu        sync.Mutex
	responded bool
}

// claim reports whether the caller gets to send the initial response.
func (e *interactionEvent) claim() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.responded {
		return false
	}
	e.responded = true
	return true
}

// Transport delivers engine output through a Discord session.
type Transport struct {
	session *discordgo.Session
}

// NewTransport returns a Transport over session.
func NewTransport(session *discordgo.Session) *Transport {
	return &Transport{session: session}
}

var errUnknownEvent = errors.New("invocation does not carry a discord event")

func (t *Transport) Send(ctx context.Context, inv *commando.Invocation, text string) (commando.Delivery, error) {
	msg, err := t.session.ChannelMessageSend(inv.ChannelID(), text, discordgo.WithContext(ctx))
	if err != nil {
		return commando.Delivery{}, err
	}
	return commando.Delivery{ID: msg.ID, ChannelID: msg.ChannelID}, nil
}

func (t *Transport) Reply(ctx context.Context, inv *commando.Invocation, text string, ephemeral bool) (commando.Delivery, error) {
	switch ev := inv.Origin().Data.(type) {
	case *discordgo.MessageCreate:
		msg, err := t.session.ChannelMessageSendReply(ev.ChannelID, text, ev.Reference(), discordgo.WithContext(ctx))
		if err != nil {
			return commando.Delivery{}, err
		}
		return commando.Delivery{ID: msg.ID, ChannelID: msg.ChannelID}, nil

	case *interactionEvent:
		var flags discordgo.MessageFlags
		if ephemeral {
			flags = discordgo.MessageFlagsEphemeral
		}
		if ev.claim() {
			err := t.session.InteractionRespond(ev.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: text,
					Flags:   flags,
				},
			}, discordgo.WithContext(ctx))
			if err != nil {
				return commando.Delivery{}, err
			}
			return commando.Delivery{ID: originalResponse, ChannelID: ev.ChannelID}, nil
		}
		msg, err := t.session.FollowupMessageCreate(ev.Interaction, true, &discordgo.WebhookParams{
			Content: text,
			Flags:   flags,
		}, discordgo.WithContext(ctx))
		if err != nil {
			return commando.Delivery{}, err
		}
		return commando.Delivery{ID: msg.ID, ChannelID: msg.ChannelID}, nil
	}
	return commando.Delivery{}, errUnknownEvent
}

func (t *Transport) Edit(ctx context.Context, inv *commando.Invocation, d commando.Delivery, text string) error {
	if ev, ok := inv.Origin().Data.(*interactionEvent); ok {
		var err error
		if d.ID == originalResponse {
			_, err = t.session.InteractionResponseEdit(ev.Interaction, &discordgo.WebhookEdit{Content: &text}, discordgo.WithContext(ctx))
		} else {
			_, err = t.session.FollowupMessageEdit(ev.Interaction, d.ID, &discordgo.WebhookEdit{Content: &text}, discordgo.WithContext(ctx))
		}
		return err
	}
	_, err := t.session.ChannelMessageEdit(d.ChannelID, d.ID, text, discordgo.WithContext(ctx))
	return err
}
