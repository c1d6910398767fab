package bot

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/bradykim7/commando/pkg/commando"
)

// Discord limits for application command definitions.
const (
	maxDescription = 100
	maxOptions     = 25
)

var commandNamePattern = regexp.MustCompile(`^[-_\p{L}\p{N}]{1,32}$`)

// syncCommands overwrites the application commands with the engine's
// registry, in the configured guild or globally.
func (b *Bot) syncCommands(s *discordgo.Session, appID string) error {
	defs := commandDefinitions(b.engine)
	created, err := s.ApplicationCommandBulkOverwrite(appID, b.config.DiscordGuild, defs)
	if err != nil {
		return fmt.Errorf("overwrite application commands: %w", err)
	}
	b.log.Info("슬래시 명령어 동기화 완료",
		zap.String("guild_id", b.config.DiscordGuild),
		zap.Int("count", len(created)))
	return nil
}

// commandDefinitions turns every visible command into a chat input command
// whose string options mirror its arguments.
func commandDefinitions(e *commando.Engine) []*discordgo.ApplicationCommand {
	loc := e.Localizer()
	var defs []*discordgo.ApplicationCommand
	for _, c := range e.Commands() {
		name := strings.ToLower(c.Name())
		if c.IsHidden() || !commandNamePattern.MatchString(name) {
			continue
		}

		def := &discordgo.ApplicationCommand{
			Type:        discordgo.ChatApplicationCommand,
			Name:        name,
			Description: truncate(loc.Format(c.DescriptionKey(), nil), maxDescription),
		}
		if c.IsGuildOnly() || c.IsThreadOnly() {
			dm := false
			def.DMPermission = &dm
		}
		if c.IsNSFW() {
			nsfw := true
			def.NSFW = &nsfw
		}
		if perms := int64(c.UserPermissions()); perms != 0 {
			def.DefaultMemberPermissions = &perms
		}

		for _, a := range c.Arguments() {
			if len(def.Options) == maxOptions {
				break
			}
			_, optional := a.Default()
			def.Options = append(def.Options, &discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        strings.ToLower(a.Name()),
				Description: truncate(loc.Format(a.PromptRaw(), nil), maxDescription),
				Required:    !optional,
			})
		}
		// Required options must come first.
		sort.SliceStable(def.Options, func(i, j int) bool {
			return def.Options[i].Required && !def.Options[j].Required
		})
		defs = append(defs, def)
	}
	return defs
}

// truncate shortens s to at most n runes, never returning an empty string.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
