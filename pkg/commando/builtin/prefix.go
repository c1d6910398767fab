package builtin

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bradykim7/commando/pkg/commando"
)

// MaxPrefixLength bounds a guild prefix in runes.
const MaxPrefixLength = 15

// NewPrefix builds the prefix command. Without an argument it shows the
// prefix in effect. Guild administrators and owners may set a new one,
// "default" resets it and "none" leaves only mentions.
func NewPrefix() (*commando.Command, error) {
	arg := commando.NewArgument("prefix", "Command_Prefix_Argument_Prompt", commando.String(),
		commando.WithDefault(""),
		commando.WithValidator(validatePrefix))

	return commando.NewCommand("prefix", "util", "Command_Prefix_Description", runPrefix,
		commando.WithArguments(arg),
		commando.WithDetails("Command_Prefix_Details"),
		commando.WithExamples("prefix", "prefix -", "prefix omg!", "prefix default", "prefix none"))
}

func validatePrefix(inv *commando.Invocation, raw string) error {
	if utf8.RuneCountInString(raw) > MaxPrefixLength || strings.IndexFunc(raw, unicode.IsSpace) >= 0 {
		return commando.NewUserError(commando.ErrValidationFailed, inv.Format("Prefix_Invalid", MaxPrefixLength))
	}
	return nil
}

func runPrefix(ctx context.Context, inv *commando.Invocation, args commando.Args) error {
	e := inv.Engine()
	requested := args.String("prefix")

	if requested == "" {
		current := e.GuildPrefix(ctx, inv.GuildID())
		usage := e.Usage(inv, e.SampleCommand().DisplayName(inv), "")
		if current == "" {
			_, err := inv.Reply(ctx, inv.Format("Prefix_None", usage))
			return err
		}
		_, err := inv.Reply(ctx, inv.Format("Prefix_Current", current, usage))
		return err
	}

	if !inv.FromGuild() {
		return commando.NewUserError(commando.ErrRestrictionViolated, inv.Format("Prefix_GuildOnly"))
	}
	if !canManage(inv) {
		return commando.NewUserError(commando.ErrPermissionDenied, inv.Format("Prefix_AdminOnly"))
	}

	store := e.Prefixes()
	guildID := inv.GuildID()
	var (
		err error
		key string
		arg []any
	)
	switch strings.ToLower(requested) {
	case "default":
		err = store.ResetPrefix(ctx, guildID)
		key, arg = "Prefix_Reset", []any{e.DefaultPrefix()}
	case "none":
		err = store.SetPrefix(ctx, guildID, "")
		key = "Prefix_Removed"
	default:
		err = store.SetPrefix(ctx, guildID, requested)
		key, arg = "Prefix_Set", []any{requested}
	}
	if err != nil {
		return fmt.Errorf("update prefix of guild %s: %w", guildID, err)
	}

	usage := e.Usage(inv, e.SampleCommand().DisplayName(inv), "")
	_, err = inv.ReplyPublic(ctx, inv.Format(key, append(arg, usage)...))
	return err
}

func canManage(inv *commando.Invocation) bool {
	e := inv.Engine()
	if e.IsOwner(inv.Caller().ID) {
		return true
	}
	perms, err := e.CallerPermissions(inv)
	if err != nil {
		return false
	}
	return perms.Has(commando.PermissionAdministrator) || perms.Has(commando.PermissionManageGuild)
}
