package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/bradykim7/commando/pkg/commando"
)

// onReady는 봇이 준비되었을 때의 이벤트 핸들러입니다
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("봇 로그인 완료",
		zap.String("username", r.User.Username),
		zap.String("user_id", r.User.ID))

	b.engine.SetSelf(commando.User{ID: r.User.ID, Name: r.User.Username, Bot: true})

	if err := b.syncCommands(s, r.User.ID); err != nil {
		b.log.Error("슬래시 명령어 동기화 오류", zap.Error(err))
	}

	if err := s.UpdateGameStatus(0, b.config.CommandPrefix+"help"); err != nil {
		b.log.Error("상태 설정 오류", zap.Error(err))
	}
}

// onMessageCreate는 메시지가 생성되었을 때의 이벤트 핸들러입니다
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	b.log.Debug("메시지 수신됨",
		zap.String("guild_id", m.GuildID),
		zap.String("channel_id", m.ChannelID),
		zap.String("user_id", m.Author.ID))

	src := &commando.MessageSource{
		Origin:    b.origin(s, m.GuildID, m.ChannelID, userOf(m.Author), m),
		MessageID: m.ID,
		Content:   m.Content,
	}
	// The outcome has been logged and reported by the engine.
	_ = b.engine.HandleMessage(b.ctx, src)
}

// onInteractionCreate는 슬래시 명령어 이벤트 핸들러입니다
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()

	var caller *discordgo.User
	switch {
	case i.Member != nil && i.Member.User != nil:
		caller = i.Member.User
	case i.User != nil:
		caller = i.User
	default:
		return
	}

	src := &commando.InteractionSource{
		Origin:      b.origin(s, i.GuildID, i.ChannelID, userOf(caller), &interactionEvent{InteractionCreate: i}),
		CommandName: data.Name,
		Options:     optionValues(data.Options),
	}
	src.Locale = string(i.Locale)
	_ = b.engine.HandleInteraction(b.ctx, src)
}

// origin gathers what the session state knows about where an event happened.
func (b *Bot) origin(s *discordgo.Session, guildID, channelID string, caller commando.User, data any) commando.Origin {
	o := commando.Origin{
		Caller:    caller,
		GuildID:   guildID,
		ChannelID: channelID,
		Data:      data,
	}
	if guildID != "" {
		if g, err := s.State.Guild(guildID); err == nil {
			o.GuildName = g.Name
			o.Locale = string(g.PreferredLocale)
		}
	}
	if ch, err := s.State.Channel(channelID); err == nil {
		o.InThread = ch.IsThread()
		o.NSFWChannel = ch.NSFW
		if o.InThread && !ch.NSFW {
			if parent, err := s.State.Channel(ch.ParentID); err == nil {
				o.NSFWChannel = parent.NSFW
			}
		}
	}
	return o
}

func userOf(u *discordgo.User) commando.User {
	return commando.User{ID: u.ID, Name: u.Username, Bot: u.Bot}
}

// optionValues flattens interaction options into raw strings.
func optionValues(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	values := make(map[string]string, len(opts))
	for _, o := range opts {
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			continue
		}
		values[o.Name] = fmt.Sprint(o.Value)
	}
	return values
}
