// Package commandotest provides in-memory collaborators for exercising a
// commando.Engine without a chat platform.
package commandotest

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/bradykim7/commando/pkg/commando"
)

// Message is one text the Transport delivered.
type Message struct {
	Delivery  commando.Delivery
	Text      string
	Reply     bool
	Ephemeral bool
	Edited    bool
}

// Transport records every delivery. Sent receives a copy of each message so
// tests can wait for prompts.
type Transport struct {
	Sent chan Message

	mu       sync.Mutex
	messages []Message
	next     int
	// Err, when set, is returned by every call.
	Err error
}

// NewTransport returns a Transport whose Sent channel buffers size messages.
func NewTransport(size int) *Transport {
	return &Transport{Sent: make(chan Message, size)}
}

func (t *Transport) record(inv *commando.Invocation, text string, reply, ephemeral bool) (commando.Delivery, error) {
	t.mu.Lock()
	if t.Err != nil {
		t.mu.Unlock()
		return commando.Delivery{}, t.Err
	}
	t.next++
	msg := Message{
		Delivery:  commando.Delivery{ID: strconv.Itoa(t.next), ChannelID: inv.ChannelID()},
		Text:      text,
		Reply:     reply,
		Ephemeral: ephemeral,
	}
	t.messages = append(t.messages, msg)
	t.mu.Unlock()

	select {
	case t.Sent <- msg:
	default:
	}
	return msg.Delivery, nil
}

func (t *Transport) Send(_ context.Context, inv *commando.Invocation, text string) (commando.Delivery, error) {
	return t.record(inv, text, false, false)
}

func (t *Transport) Reply(_ context.Context, inv *commando.Invocation, text string, ephemeral bool) (commando.Delivery, error) {
	return t.record(inv, text, true, ephemeral)
}

func (t *Transport) Edit(_ context.Context, _ *commando.Invocation, d commando.Delivery, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	for i := range t.messages {
		if t.messages[i].Delivery == d {
			t.messages[i].Text = text
			t.messages[i].Edited = true
		}
	}
	return nil
}

// Messages returns everything delivered so far.
func (t *Transport) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Message(nil), t.messages...)
}

// Texts returns the text of everything delivered so far.
func (t *Transport) Texts() []string {
	msgs := t.Messages()
	texts := make([]string, len(msgs))
	for i, m := range msgs {
		texts[i] = m.Text
	}
	return texts
}

// Await waits for the next delivery. ok is false on timeout.
func (t *Transport) Await(timeout time.Duration) (Message, bool) {
	select {
	case m := <-t.Sent:
		return m, true
	case <-time.After(timeout):
		return Message{}, false
	}
}

// Directory is a fixed set of guild entities and user permissions.
type Directory struct {
	Items map[commando.EntityKind][]commando.Entity
	Perms map[string]commando.Permission
	Err   error
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{
		Items: make(map[commando.EntityKind][]commando.Entity),
		Perms: make(map[string]commando.Permission),
	}
}

// Add registers entities named names, numbering their IDs from 100.
func (d *Directory) Add(kind commando.EntityKind, names ...string) *Directory {
	for _, name := range names {
		id := strconv.Itoa(100 + len(d.Items[kind]))
		d.Items[kind] = append(d.Items[kind], commando.Entity{ID: id, Name: name, Kind: kind})
	}
	return d
}

// Grant gives userID the permission bits p.
func (d *Directory) Grant(userID string, p commando.Permission) *Directory {
	d.Perms[userID] |= p
	return d
}

func (d *Directory) Entities(_ context.Context, _ string, kind commando.EntityKind) ([]commando.Entity, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Items[kind], nil
}

func (d *Directory) Permissions(_ context.Context, _, _, userID string) (commando.Permission, error) {
	if d.Err != nil {
		return 0, d.Err
	}
	return d.Perms[userID], nil
}

// Test identities.
const (
	GuildID   = "1000"
	GuildName = "Test Guild"
	ChannelID = "2000"
	UserID    = "3000"
)

// GuildMessage returns a guild text message from the test user.
func GuildMessage(content string) *commando.MessageSource {
	return &commando.MessageSource{
		Origin: commando.Origin{
			Caller:    commando.User{ID: UserID, Name: "tester"},
			GuildID:   GuildID,
			GuildName: GuildName,
			ChannelID: ChannelID,
		},
		MessageID: "m-" + content,
		Content:   content,
	}
}

// DirectMessage returns a private message from the test user.
func DirectMessage(content string) *commando.MessageSource {
	return &commando.MessageSource{
		Origin: commando.Origin{
			Caller:    commando.User{ID: UserID, Name: "tester"},
			ChannelID: "dm-" + UserID,
		},
		MessageID: "m-" + content,
		Content:   content,
	}
}

// GuildInteraction returns a guild interaction from the test user.
func GuildInteraction(command string, options map[string]string) *commando.InteractionSource {
	return &commando.InteractionSource{
		Origin: commando.Origin{
			Caller:    commando.User{ID: UserID, Name: "tester"},
			GuildID:   GuildID,
			GuildName: GuildName,
			ChannelID: ChannelID,
		},
		CommandName: command,
		Options:     options,
	}
}
