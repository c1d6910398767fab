package commando

import (
	"context"
	"time"
)

// Surface is the kind of event that started an invocation.
type Surface int

const (
	// SurfaceMessage is a plain text message carrying a prefixed command.
	SurfaceMessage Surface = iota
	// SurfaceInteraction is a structured command with named options.
	SurfaceInteraction
)

func (s Surface) String() string {
	if s == SurfaceInteraction {
		return "interaction"
	}
	return "message"
}

// User identifies the caller of an invocation.
type User struct {
	ID   string
	Name string
	Bot  bool
}

// Origin is what both surfaces know about where an event came from.
type Origin struct {
	Caller      User
	GuildID     string
	GuildName   string
	ChannelID   string
	InThread    bool
	NSFWChannel bool
	Locale      string

	// Data carries the adapter's own event so its Transport can answer it.
	Data any
}

// Source is an already-deserialized inbound event. It is either a
// *MessageSource or an *InteractionSource.
type Source interface {
	Surface() Surface
	origin() *Origin
}

// MessageSource is a text message that may contain a command.
type MessageSource struct {
	Origin
	MessageID string
	Content   string
}

func (m *MessageSource) Surface() Surface { return SurfaceMessage }
func (m *MessageSource) origin() *Origin  { return &m.Origin }

// InteractionSource is a structured command invocation. Options maps option
// names to their raw values.
type InteractionSource struct {
	Origin
	CommandName string
	Options     map[string]string
}

func (i *InteractionSource) Surface() Surface { return SurfaceInteraction }
func (i *InteractionSource) origin() *Origin  { return &i.Origin }

// Invocation is the transient state of one command execution.
type Invocation struct {
	ID      string
	Source  Source
	Command *Command
	Args    Args
	// Prefix is the prefix the caller used, if any.
	Prefix string

	ctx     context.Context
	engine  *Engine
	cursor  int
	started time.Time
}

// Context returns the invocation's context. It is done when the invocation
// is abandoned or the engine shuts down.
func (inv *Invocation) Context() context.Context {
	if inv.ctx == nil {
		return context.Background()
	}
	return inv.ctx
}

// Engine returns the engine processing the invocation.
func (inv *Invocation) Engine() *Engine {
	if inv == nil {
		return nil
	}
	return inv.engine
}

// Origin returns the shared event fields.
func (inv *Invocation) Origin() *Origin { return inv.Source.origin() }

// Caller returns the user who started the invocation.
func (inv *Invocation) Caller() User { return inv.Origin().Caller }

// GuildID returns the guild the invocation came from, or "" in private.
func (inv *Invocation) GuildID() string { return inv.Origin().GuildID }

// ChannelID returns the channel the invocation came from.
func (inv *Invocation) ChannelID() string { return inv.Origin().ChannelID }

// FromGuild reports whether the invocation came from a guild channel.
func (inv *Invocation) FromGuild() bool { return inv.Origin().GuildID != "" }

// Surface returns the surface of the originating event.
func (inv *Invocation) Surface() Surface { return inv.Source.Surface() }

// Cursor returns the index of the argument currently being resolved.
func (inv *Invocation) Cursor() int { return inv.cursor }

// Format localizes key for this invocation.
func (inv *Invocation) Format(key string, args ...any) string {
	if inv == nil || inv.engine == nil {
		return DefaultLocalizer{}.Format(key, inv, args...)
	}
	return inv.engine.localizer.Format(key, inv, args...)
}

// Reply answers the invocation. Interaction replies are ephemeral.
func (inv *Invocation) Reply(ctx context.Context, text string) (Delivery, error) {
	return inv.engine.transport.Reply(ctx, inv, text, inv.Surface() == SurfaceInteraction)
}

// ReplyPublic answers the invocation visibly to everyone.
func (inv *Invocation) ReplyPublic(ctx context.Context, text string) (Delivery, error) {
	return inv.engine.transport.Reply(ctx, inv, text, false)
}

// Send posts text to the invocation's channel without replying.
func (inv *Invocation) Send(ctx context.Context, text string) (Delivery, error) {
	return inv.engine.transport.Send(ctx, inv, text)
}

// Edit replaces the content of an earlier delivery.
func (inv *Invocation) Edit(ctx context.Context, d Delivery, text string) error {
	return inv.engine.transport.Edit(ctx, inv, d, text)
}

// Args maps argument names to resolved values.
type Args map[string]any

// String returns the named value as a string.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns the named value as an int64.
func (a Args) Int(name string) int64 {
	n, _ := a[name].(int64)
	return n
}

// Float returns the named value as a float64.
func (a Args) Float(name string) float64 {
	f, _ := a[name].(float64)
	return f
}

// Bool returns the named value as a bool.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Duration returns the named value as a time.Duration.
func (a Args) Duration(name string) time.Duration {
	d, _ := a[name].(time.Duration)
	return d
}

// Entity returns the named value as an Entity.
func (a Args) Entity(name string) (Entity, bool) {
	e, ok := a[name].(Entity)
	return e, ok
}

// Choice returns the named value of a union argument.
func (a Args) Choice(name string) (Choice, bool) {
	c, ok := a[name].(Choice)
	return c, ok
}

// Values returns every value of a repeatable argument.
func (a Args) Values(name string) []any {
	v, _ := a[name].([]any)
	return v
}
