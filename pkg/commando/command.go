package commando

import (
	"context"
	"fmt"
	"strings"
)

// RunFunc is a command's action. It runs only after every argument resolved
// and all checks passed.
type RunFunc func(ctx context.Context, inv *Invocation, args Args) error

// PermissionFunc returns "" when the caller may run the command, otherwise the
// reason shown to them.
type PermissionFunc func(inv *Invocation) string

// Command is a registered action with its signature and restrictions.
type Command struct {
	name        string
	nameKey     string
	group       string
	description string
	details     string
	aliases     []string
	args        []*Argument
	examples    []string

	guildOnly   bool
	threadOnly  bool
	privateOnly bool
	nsfw        bool
	ownerOnly   bool
	hidden      bool

	userPermissions       Permission
	permission            PermissionFunc
	messagePermission     PermissionFunc
	interactionPermission PermissionFunc

	run RunFunc
}

// CommandOption configures a Command.
type CommandOption func(*Command)

// WithArguments sets the command's ordered arguments.
func WithArguments(args ...*Argument) CommandOption {
	return func(c *Command) { c.args = append(c.args, args...) }
}

// WithAliases adds alternative names.
func WithAliases(aliases ...string) CommandOption {
	return func(c *Command) { c.aliases = append(c.aliases, aliases...) }
}

// WithExamples adds usage examples shown by help.
func WithExamples(examples ...string) CommandOption {
	return func(c *Command) { c.examples = append(c.examples, examples...) }
}

// WithNameKey sets a localization key for the name shown in help text.
func WithNameKey(key string) CommandOption {
	return func(c *Command) { c.nameKey = key }
}

// WithDetails sets the long description (a localization key or plain text).
func WithDetails(details string) CommandOption {
	return func(c *Command) { c.details = details }
}

// GuildOnly restricts the command to guild channels.
func GuildOnly() CommandOption { return func(c *Command) { c.guildOnly = true } }

// ThreadOnly restricts the command to threads.
func ThreadOnly() CommandOption { return func(c *Command) { c.threadOnly = true } }

// PrivateOnly restricts the command to direct messages.
func PrivateOnly() CommandOption { return func(c *Command) { c.privateOnly = true } }

// NSFW restricts the command to NSFW channels when used in a guild.
func NSFW() CommandOption { return func(c *Command) { c.nsfw = true } }

// OwnerOnly restricts the command to the engine's owners.
func OwnerOnly() CommandOption { return func(c *Command) { c.ownerOnly = true } }

// Hidden keeps the command out of help listings.
func Hidden() CommandOption { return func(c *Command) { c.hidden = true } }

// WithUserPermissions requires the caller to hold perms in guild channels.
func WithUserPermissions(perms Permission) CommandOption {
	return func(c *Command) { c.userPermissions |= perms }
}

// WithPermission sets a custom permission predicate used on every surface.
func WithPermission(fn PermissionFunc) CommandOption {
	return func(c *Command) { c.permission = fn }
}

// WithMessagePermission sets a predicate used instead of WithPermission for
// text message invocations.
func WithMessagePermission(fn PermissionFunc) CommandOption {
	return func(c *Command) { c.messagePermission = fn }
}

// WithInteractionPermission sets a predicate used instead of WithPermission
// for interaction invocations.
func WithInteractionPermission(fn PermissionFunc) CommandOption {
	return func(c *Command) { c.interactionPermission = fn }
}

// NewCommand builds a command. Argument names must be unique, and only the
// last argument may be repeatable.
func NewCommand(name, group, description string, run RunFunc, opts ...CommandOption) (*Command, error) {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t\n") {
		return nil, fmt.Errorf("invalid command name %q", name)
	}
	c := &Command{
		name:        name,
		group:       group,
		description: description,
		run:         run,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.run == nil {
		return nil, fmt.Errorf("command %q: no run action", name)
	}

	seen := make(map[string]bool, len(c.args))
	for i, arg := range c.args {
		if seen[arg.name] {
			return nil, fmt.Errorf("command %q: %w: %q", name, ErrDuplicateArgumentName, arg.name)
		}
		seen[arg.name] = true
		if arg.repeatable && i != len(c.args)-1 {
			return nil, fmt.Errorf("command %q: repeatable argument %q must be last", name, arg.name)
		}
	}
	return c, nil
}

func (c *Command) Name() string           { return c.name }
func (c *Command) Group() string          { return c.group }
func (c *Command) DescriptionKey() string { return c.description }
func (c *Command) DetailsKey() string     { return c.details }
func (c *Command) Aliases() []string      { return c.aliases }
func (c *Command) Arguments() []*Argument { return c.args }
func (c *Command) Examples() []string     { return c.examples }
func (c *Command) IsGuildOnly() bool      { return c.guildOnly }
func (c *Command) IsThreadOnly() bool     { return c.threadOnly }
func (c *Command) IsPrivateOnly() bool    { return c.privateOnly }
func (c *Command) IsNSFW() bool           { return c.nsfw }
func (c *Command) IsOwnerOnly() bool      { return c.ownerOnly }
func (c *Command) IsHidden() bool         { return c.hidden }

// UserPermissions returns the permission bits the caller must hold.
func (c *Command) UserPermissions() Permission { return c.userPermissions }

// DisplayName returns the localized name, or Name when no name key is set.
func (c *Command) DisplayName(inv *Invocation) string {
	if c.nameKey == "" {
		return c.name
	}
	return inv.Format(c.nameKey)
}

// Description returns the localized description.
func (c *Command) Description(inv *Invocation) string {
	return inv.Format(c.description)
}

// Details returns the localized details, or "" when none are set.
func (c *Command) Details(inv *Invocation) string {
	if c.details == "" {
		return ""
	}
	return inv.Format(c.details)
}

// ArgumentUsage renders the argument list, e.g. "<channel> [reason]".
func (c *Command) ArgumentUsage() string {
	parts := make([]string, 0, len(c.args))
	for _, a := range c.args {
		parts = append(parts, a.Usage())
	}
	return strings.Join(parts, " ")
}

// Restriction checks where the command may be used. It runs before the
// permission check.
func (c *Command) Restriction(inv *Invocation) error {
	o := inv.Origin()
	switch {
	case c.threadOnly && !o.InThread:
		return &UserError{Kind: ErrRestrictionViolated, Message: inv.Format("Restriction_ThreadOnly", c.name)}
	case c.guildOnly && o.GuildID == "":
		return &UserError{Kind: ErrRestrictionViolated, Message: inv.Format("Restriction_GuildOnly", c.name)}
	case c.privateOnly && o.GuildID != "":
		return &UserError{Kind: ErrRestrictionViolated, Message: inv.Format("Restriction_PrivateOnly", c.name)}
	case c.nsfw && o.GuildID != "" && !o.NSFWChannel:
		return &UserError{Kind: ErrRestrictionViolated, Message: inv.Format("Restriction_NSFW", c.name)}
	}
	return nil
}

// CheckPermissions returns "" when the caller may run the command, otherwise
// the denial reason. A denial is an expected outcome, not an error.
func (c *Command) CheckPermissions(inv *Invocation) string {
	caller := inv.Caller()
	e := inv.Engine()
	owner := e != nil && e.IsOwner(caller.ID)

	if c.ownerOnly && !owner {
		return inv.Format("Permission_OwnerOnly", c.name)
	}

	if c.userPermissions != 0 && inv.FromGuild() && !owner {
		perms, err := e.CallerPermissions(inv)
		if err != nil {
			return inv.Format("Permission_Unknown", c.name)
		}
		if !perms.Has(PermissionAdministrator) && !perms.Has(c.userPermissions) {
			return inv.Format("Permission_Missing", c.name, perms.Missing(c.userPermissions).String())
		}
	}

	switch inv.Source.(type) {
	case *MessageSource:
		if c.messagePermission != nil {
			return c.messagePermission(inv)
		}
	case *InteractionSource:
		if c.interactionPermission != nil {
			return c.interactionPermission(inv)
		}
	}
	if c.permission != nil {
		return c.permission(inv)
	}
	return ""
}

// Run invokes the command's action.
func (c *Command) Run(ctx context.Context, inv *Invocation, args Args) error {
	return c.run(ctx, inv, args)
}
