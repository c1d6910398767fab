package commando

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Defaults applied by NewEngine.
const (
	DefaultPrefix            = "!"
	DefaultPromptTimeout     = 30 * time.Second
	DefaultMaxPromptAttempts = 3
)

// Options configures an Engine.
type Options struct {
	// Prefix is used in guilds without a stored prefix and in private.
	Prefix string
	// Owners are user IDs that pass owner-only and permission checks.
	Owners []string
	// PromptTimeout bounds the wait for each prompt reply.
	PromptTimeout time.Duration
	// MaxPromptAttempts is how many invalid replies abandon an invocation.
	MaxPromptAttempts int
	// SilentUnknown suppresses the reply to unknown commands.
	SilentUnknown bool

	Transport Transport
	Directory Directory
	Localizer Localizer
	Prefixes  PrefixStore
	Metrics   *Metrics
	Logger    *zap.Logger
}

// Engine owns the command registry and drives invocations through lookup,
// restriction and permission checks, argument resolution and dispatch.
//
// Commands are registered during setup. The registry freezes on the first
// invocation, after which it is only read and needs no locking.
type Engine struct {
	opts      Options
	log       *zap.Logger
	transport Transport
	directory Directory
	localizer Localizer
	prefixes  PrefixStore
	metrics   *Metrics

	commands []*Command
	index    map[string]*Command
	frozen   atomic.Bool
	sample   *Command
	owners   map[string]bool
	self     atomic.Pointer[User]
	prompts  *promptRouter
}

// NewEngine builds an engine. A Transport is required.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Transport == nil {
		return nil, errors.New("commando: engine needs a transport")
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.PromptTimeout <= 0 {
		opts.PromptTimeout = DefaultPromptTimeout
	}
	if opts.MaxPromptAttempts <= 0 {
		opts.MaxPromptAttempts = DefaultMaxPromptAttempts
	}
	if opts.Localizer == nil {
		opts.Localizer = DefaultLocalizer{}
	}
	if opts.Prefixes == nil {
		opts.Prefixes = NewMemoryPrefixStore()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	sample, err := NewCommand("command", "util", "", func(context.Context, *Invocation, Args) error { return nil },
		WithNameKey("NormalText_Command"))
	if err != nil {
		return nil, fmt.Errorf("build sample command: %w", err)
	}

	e := &Engine{
		opts:      opts,
		log:       opts.Logger.Named("commando"),
		transport: opts.Transport,
		directory: opts.Directory,
		localizer: opts.Localizer,
		prefixes:  opts.Prefixes,
		metrics:   opts.Metrics,
		index:     make(map[string]*Command),
		sample:    sample,
		owners:    make(map[string]bool, len(opts.Owners)),
		prompts:   newPromptRouter(),
	}
	for _, id := range opts.Owners {
		e.owners[id] = true
	}
	return e, nil
}

// Register adds commands to the registry. Names and aliases are matched
// case-insensitively and must be unique.
func (e *Engine) Register(cmds ...*Command) error {
	if e.frozen.Load() {
		return ErrRegistryFrozen
	}
	for _, cmd := range cmds {
		if cmd == nil {
			return errors.New("commando: nil command")
		}
		keys := append([]string{cmd.name}, cmd.aliases...)
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			k = strings.ToLower(k)
			if _, taken := e.index[k]; taken || seen[k] {
				return fmt.Errorf("register %q: %w: %q", cmd.name, ErrDuplicateCommand, k)
			}
			seen[k] = true
		}
		for k := range seen {
			e.index[k] = cmd
		}
		e.commands = append(e.commands, cmd)
		e.log.Debug("Registered command", zap.String("command", cmd.name), zap.Strings("aliases", cmd.aliases))
	}
	return nil
}

// Freeze ends the setup phase. Later Register calls fail.
func (e *Engine) Freeze() {
	e.frozen.Store(true)
}

// Command looks up a command by name or alias.
func (e *Engine) Command(name string) *Command {
	return e.index[strings.ToLower(strings.TrimSpace(name))]
}

// Commands returns the registered commands in registration order.
func (e *Engine) Commands() []*Command {
	return append([]*Command(nil), e.commands...)
}

// SampleCommand is the placeholder command that help and prefix show in
// usage examples.
func (e *Engine) SampleCommand() *Command { return e.sample }

func (e *Engine) Transport() Transport  { return e.transport }
func (e *Engine) Directory() Directory  { return e.directory }
func (e *Engine) Localizer() Localizer  { return e.localizer }
func (e *Engine) Prefixes() PrefixStore { return e.prefixes }
func (e *Engine) Logger() *zap.Logger   { return e.log }
func (e *Engine) DefaultPrefix() string { return e.opts.Prefix }

// PromptTimeout is the wait bound for each prompt reply.
func (e *Engine) PromptTimeout() time.Duration { return e.opts.PromptTimeout }

// IsOwner reports whether userID is one of the configured owners.
func (e *Engine) IsOwner(userID string) bool {
	return e.owners[userID]
}

// SetSelf records the bot's own user, enabling mention prefixes.
func (e *Engine) SetSelf(u User) {
	e.self.Store(&u)
}

// Self returns the bot's own user, if known.
func (e *Engine) Self() (User, bool) {
	u := e.self.Load()
	if u == nil {
		return User{}, false
	}
	return *u, true
}

// GuildPrefix returns the prefix in effect for a guild.
func (e *Engine) GuildPrefix(ctx context.Context, guildID string) string {
	if guildID == "" {
		return e.opts.Prefix
	}
	p, ok, err := e.prefixes.Prefix(ctx, guildID)
	if err != nil {
		e.log.Warn("Prefix lookup failed, using default", zap.String("guild_id", guildID), zap.Error(err))
		return e.opts.Prefix
	}
	if !ok {
		return e.opts.Prefix
	}
	return p
}

func (e *Engine) entities(inv *Invocation, kind EntityKind) ([]Entity, error) {
	if e == nil || e.directory == nil || !inv.FromGuild() {
		return nil, nil
	}
	return e.directory.Entities(inv.Context(), inv.GuildID(), kind)
}

// CallerPermissions returns the caller's permission bits in the invocation's
// channel, as reported by the Directory.
func (e *Engine) CallerPermissions(inv *Invocation) (Permission, error) {
	if e == nil || e.directory == nil {
		return 0, errors.New("commando: no directory")
	}
	perms, err := e.directory.Permissions(inv.Context(), inv.GuildID(), inv.ChannelID(), inv.Caller().ID)
	if err != nil {
		e.log.Warn("Permission lookup failed",
			zap.String("invocation_id", inv.ID),
			zap.String("user_id", inv.Caller().ID),
			zap.Error(err))
		return 0, err
	}
	return perms, nil
}
