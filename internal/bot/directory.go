package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/bradykim7/commando/pkg/commando"
)

// memberPageSize is the most members one GuildMembers call returns.
const memberPageSize = 1000

// Directory answers entity and permission lookups from the session state,
// falling back to the REST API when the state has nothing cached.
type Directory struct {
	session *discordgo.Session
}

// NewDirectory returns a Directory over session.
func NewDirectory(session *discordgo.Session) *Directory {
	return &Directory{session: session}
}

func (d *Directory) Entities(ctx context.Context, guildID string, kind commando.EntityKind) ([]commando.Entity, error) {
	switch kind {
	case commando.KindRole:
		roles, err := d.roles(ctx, guildID)
		if err != nil {
			return nil, err
		}
		entities := make([]commando.Entity, 0, len(roles))
		for _, r := range roles {
			entities = append(entities, commando.Entity{ID: r.ID, Name: r.Name, Kind: kind})
		}
		return entities, nil

	case commando.KindMember:
		members, err := d.members(ctx, guildID)
		if err != nil {
			return nil, err
		}
		entities := make([]commando.Entity, 0, len(members))
		for _, m := range members {
			if m.User == nil {
				continue
			}
			entities = append(entities, commando.Entity{ID: m.User.ID, Name: memberName(m), Kind: kind})
		}
		return entities, nil

	default:
		channels, err := d.channels(ctx, guildID)
		if err != nil {
			return nil, err
		}
		var entities []commando.Entity
		for _, c := range channels {
			if k, ok := channelKind(c.Type); ok && k == kind {
				entities = append(entities, commando.Entity{ID: c.ID, Name: c.Name, Kind: kind})
			}
		}
		return entities, nil
	}
}

func (d *Directory) Permissions(ctx context.Context, _, channelID, userID string) (commando.Permission, error) {
	perms, err := d.session.UserChannelPermissions(userID, channelID, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("permissions of user %s in channel %s: %w", userID, channelID, err)
	}
	return commando.Permission(perms), nil
}

func (d *Directory) channels(ctx context.Context, guildID string) ([]*discordgo.Channel, error) {
	if g, err := d.session.State.Guild(guildID); err == nil && len(g.Channels) > 0 {
		return g.Channels, nil
	}
	channels, err := d.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("channels of guild %s: %w", guildID, err)
	}
	return channels, nil
}

func (d *Directory) roles(ctx context.Context, guildID string) ([]*discordgo.Role, error) {
	if g, err := d.session.State.Guild(guildID); err == nil && len(g.Roles) > 0 {
		return g.Roles, nil
	}
	roles, err := d.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("roles of guild %s: %w", guildID, err)
	}
	return roles, nil
}

func (d *Directory) members(ctx context.Context, guildID string) ([]*discordgo.Member, error) {
	if g, err := d.session.State.Guild(guildID); err == nil && len(g.Members) > 0 {
		return g.Members, nil
	}
	members, err := d.session.GuildMembers(guildID, "", memberPageSize, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("members of guild %s: %w", guildID, err)
	}
	return members, nil
}

// channelKind maps a Discord channel type onto an entity kind.
func channelKind(t discordgo.ChannelType) (commando.EntityKind, bool) {
	switch t {
	case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews:
		return commando.KindTextChannel, true
	case discordgo.ChannelTypeGuildVoice:
		return commando.KindVoiceChannel, true
	case discordgo.ChannelTypeGuildStageVoice:
		return commando.KindStageChannel, true
	case discordgo.ChannelTypeGuildCategory:
		return commando.KindCategory, true
	}
	return 0, false
}

// memberName is the name a member is shown with in the guild.
func memberName(m *discordgo.Member) string {
	switch {
	case m.Nick != "":
		return m.Nick
	case m.User.GlobalName != "":
		return m.User.GlobalName
	default:
		return m.User.Username
	}
}
