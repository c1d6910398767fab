package commando

import (
	"strings"
)

// Replies with a special meaning while the engine is prompting.
const (
	CancelSentinel = "cancel"
	FinishSentinel = "finish"
)

// PromptParser renders the prompt of an argument for an invocation.
type PromptParser func(arg *Argument, inv *Invocation) string

// Argument is a named slot in a command's signature.
type Argument struct {
	name         string
	prompt       string
	typ          *ArgumentType
	def          any
	hasDefault   bool
	repeatable   bool
	validator    ValidateFunc
	parser       ParseFunc
	promptParser PromptParser
}

// ArgumentOption configures an Argument.
type ArgumentOption func(*Argument)

// WithDefault makes the argument optional, resolving to v when absent.
func WithDefault(v any) ArgumentOption {
	return func(a *Argument) {
		a.def = v
		a.hasDefault = true
	}
}

// Repeatable lets the argument collect several values. It must be the last
// argument of its command.
func Repeatable() ArgumentOption {
	return func(a *Argument) { a.repeatable = true }
}

// WithValidator replaces the type's validation.
func WithValidator(fn ValidateFunc) ArgumentOption {
	return func(a *Argument) { a.validator = fn }
}

// WithParser replaces the type's parsing.
func WithParser(fn ParseFunc) ArgumentOption {
	return func(a *Argument) { a.parser = fn }
}

// WithPromptParser replaces the default prompt rendering.
func WithPromptParser(fn PromptParser) ArgumentOption {
	return func(a *Argument) { a.promptParser = fn }
}

// NewArgument returns an argument bound to typ. prompt is a localization key
// or plain text.
func NewArgument(name, prompt string, typ *ArgumentType, opts ...ArgumentOption) *Argument {
	if typ == nil {
		typ = String()
	}
	a := &Argument{name: name, prompt: prompt, typ: typ}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Argument) Name() string         { return a.name }
func (a *Argument) PromptRaw() string    { return a.prompt }
func (a *Argument) Type() *ArgumentType  { return a.typ }
func (a *Argument) IsRepeatable() bool   { return a.repeatable }
func (a *Argument) Default() (any, bool) { return a.def, a.hasDefault }

// SetPromptParser replaces the prompt rendering after construction.
func (a *Argument) SetPromptParser(fn PromptParser) {
	a.promptParser = fn
}

// Prompt renders the question asked when the argument is missing or invalid.
func (a *Argument) Prompt(inv *Invocation) string {
	if a.promptParser != nil {
		return a.promptParser(a, inv)
	}
	return inv.Format(a.prompt)
}

// Validate checks raw with the custom validator or the argument's type. Any
// error from a custom validator is a rejection shown to the caller.
func (a *Argument) Validate(inv *Invocation, raw string) error {
	if a.validator == nil {
		return a.typ.Validate(inv, raw)
	}
	if err := a.validator(inv, raw); err != nil {
		return asUserError(err)
	}
	return nil
}

// Parse converts raw with the custom parser or the argument's type.
func (a *Argument) Parse(inv *Invocation, raw string) (any, error) {
	if a.parser != nil {
		return a.parser(inv, raw)
	}
	return a.typ.Parse(inv, raw)
}

// Resolve turns a single raw input into the argument's value. Without input
// it yields the default, or ErrArgumentMissing when there is none.
func (a *Argument) Resolve(inv *Invocation, raw string, present bool) (any, error) {
	raw = strings.TrimSpace(raw)
	if !present || raw == "" {
		if a.hasDefault {
			return a.def, nil
		}
		return nil, ErrArgumentMissing
	}
	if err := a.Validate(inv, raw); err != nil {
		return nil, err
	}
	return a.Parse(inv, raw)
}

// Usage renders the argument for a usage line: <name> when required,
// [name] when optional.
func (a *Argument) Usage() string {
	name := a.name
	if a.repeatable {
		name += "..."
	}
	if a.hasDefault {
		return "[" + name + "]"
	}
	return "<" + name + ">"
}
