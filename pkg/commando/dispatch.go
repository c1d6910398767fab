package commando

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// input is the raw text supplied for one argument before any prompting.
type input struct {
	raw     string
	present bool
	// values holds the separate inputs of a repeatable argument.
	values []string
}

// HandleMessage processes a text message. Messages that carry no command are
// ignored, and replies to an open prompt are routed to the waiting
// invocation. The returned error is the invocation's outcome; it has already
// been reported to the caller.
func (e *Engine) HandleMessage(ctx context.Context, m *MessageSource) error {
	e.Freeze()
	if m.Caller.Bot {
		return nil
	}
	if e.prompts.deliver(promptKey{channelID: m.ChannelID, userID: m.Caller.ID}, m.Content) {
		return nil
	}

	name, line, prefix, ok := e.parseCommand(ctx, m)
	if !ok {
		return nil
	}
	inv := e.newInvocation(ctx, m, prefix)

	cmd := e.Command(name)
	if cmd == nil {
		err := &UserError{Kind: ErrNotFound, Message: inv.Format("Engine_UnknownCommand", name, e.AnyUsage(inv, "help", ""))}
		if e.opts.SilentUnknown {
			e.observe(inv, err)
			return err
		}
		return e.finish(inv, err)
	}
	inv.Command = cmd
	return e.execute(inv, messageInputs(cmd, line))
}

// HandleInteraction processes a structured command invocation.
func (e *Engine) HandleInteraction(ctx context.Context, i *InteractionSource) error {
	e.Freeze()
	inv := e.newInvocation(ctx, i, "/")

	cmd := e.Command(i.CommandName)
	if cmd == nil {
		return e.finish(inv, &UserError{Kind: ErrNotFound, Message: inv.Format("Engine_UnknownCommand", i.CommandName, e.AnyUsage(inv, "help", ""))})
	}
	inv.Command = cmd
	return e.execute(inv, interactionInputs(cmd, i.Options))
}

// NewInvocation returns an invocation of src that is not dispatched. It lets
// callers validate arguments or render text the way a command would see it.
func (e *Engine) NewInvocation(ctx context.Context, src Source) *Invocation {
	return e.newInvocation(ctx, src, "")
}

func (e *Engine) newInvocation(ctx context.Context, src Source, prefix string) *Invocation {
	return &Invocation{
		ID:      uuid.NewString(),
		Source:  src,
		Args:    make(Args),
		Prefix:  prefix,
		ctx:     ctx,
		engine:  e,
		started: time.Now(),
	}
}

// parseCommand finds the command name in a message. A mention of the bot
// always works as a prefix. In guilds the guild prefix is required, in
// private it is optional.
func (e *Engine) parseCommand(ctx context.Context, m *MessageSource) (name, line, prefix string, ok bool) {
	content := strings.TrimSpace(m.Content)
	if content == "" {
		return "", "", "", false
	}

	if self, known := e.Self(); known {
		for _, mention := range []string{"<@" + self.ID + ">", "<@!" + self.ID + ">"} {
			if strings.HasPrefix(content, mention) {
				name, line = splitFirst(content[len(mention):])
				return name, line, mention, name != ""
			}
		}
	}

	p := e.GuildPrefix(ctx, m.GuildID)
	if p != "" && hasPrefixFold(content, p) {
		body := strings.TrimLeftFunc(content[len(p):], unicode.IsSpace)
		name, line = splitFirst(body)
		return name, line, p, name != ""
	}
	if m.GuildID != "" {
		return "", "", "", false
	}
	name, line = splitFirst(content)
	return name, line, "", name != ""
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// messageInputs distributes the words of a command line over the command's
// arguments. The last argument takes the rest of the line, or every
// remaining word when it is repeatable.
func messageInputs(cmd *Command, line string) []input {
	tokens := tokenize(line)
	inputs := make([]input, len(cmd.args))
	for i, arg := range cmd.args {
		if i >= len(tokens) {
			break
		}
		last := i == len(cmd.args)-1
		switch {
		case arg.repeatable:
			for _, t := range tokens[i:] {
				inputs[i].values = append(inputs[i].values, t.text)
			}
			inputs[i].present = true
		case last:
			inputs[i] = input{raw: rest(line, tokens, i), present: true}
		default:
			inputs[i] = input{raw: tokens[i].text, present: true}
		}
	}
	return inputs
}

// interactionInputs looks up each argument among the interaction options,
// by exact name first and then case-insensitively.
func interactionInputs(cmd *Command, options map[string]string) []input {
	inputs := make([]input, len(cmd.args))
	for i, arg := range cmd.args {
		raw, ok := options[arg.name]
		if !ok {
			for k, v := range options {
				if strings.EqualFold(k, arg.name) {
					raw, ok = v, true
					break
				}
			}
		}
		if !ok {
			continue
		}
		inputs[i] = input{raw: raw, present: true}
		if arg.repeatable {
			for _, t := range tokenize(raw) {
				inputs[i].values = append(inputs[i].values, t.text)
			}
		}
	}
	return inputs
}

// execute runs the checks, resolves the arguments and dispatches.
func (e *Engine) execute(inv *Invocation, inputs []input) error {
	cmd := inv.Command
	if err := cmd.Restriction(inv); err != nil {
		return e.finish(inv, err)
	}
	if reason := cmd.CheckPermissions(inv); reason != "" {
		return e.finish(inv, &UserError{Kind: ErrPermissionDenied, Message: reason})
	}
	if err := e.resolveArgs(inv, inputs); err != nil {
		return e.finish(inv, err)
	}
	return e.finish(inv, e.dispatch(inv))
}

func (e *Engine) resolveArgs(inv *Invocation, inputs []input) error {
	for i, arg := range inv.Command.args {
		inv.cursor = i
		var (
			v   any
			err error
		)
		if arg.repeatable {
			v, err = e.resolveRepeatable(inv, arg, inputs[i].values)
		} else {
			v, err = e.resolveOne(inv, arg, inputs[i].raw, inputs[i].present)
		}
		if err != nil {
			return err
		}
		inv.Args[arg.name] = v
	}
	inv.cursor = len(inv.Command.args)
	return nil
}

func (e *Engine) resolveOne(inv *Invocation, arg *Argument, raw string, present bool) (any, error) {
	v, err := arg.Resolve(inv, raw, present)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, ErrArgumentMissing) {
		return e.promptValue(inv, arg, "")
	}
	var uerr *UserError
	if errors.As(err, &uerr) {
		return e.promptValue(inv, arg, uerr.Message)
	}
	return nil, err
}

func (e *Engine) resolveRepeatable(inv *Invocation, arg *Argument, raws []string) (any, error) {
	if len(raws) == 0 {
		if def, ok := arg.Default(); ok {
			return def, nil
		}
		return e.promptValues(inv, arg, nil, "")
	}
	values := make([]any, 0, len(raws))
	for _, raw := range raws {
		v, err := e.resolveOne(inv, arg, raw, true)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// dispatch invokes the run action, turning failures and panics into a
// generic failure for the caller.
func (e *Engine) dispatch(inv *Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("Command panicked",
				zap.String("invocation_id", inv.ID),
				zap.String("command", inv.Command.name),
				zap.Any("panic", r),
				zap.Stack("stack"))
			err = &UserError{Kind: ErrRunFailed, Message: inv.Format("Engine_RunFailed"), Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	err = inv.Command.Run(inv.Context(), inv, inv.Args)
	if err == nil {
		return nil
	}
	var uerr *UserError
	if errors.As(err, &uerr) {
		return err
	}
	return &UserError{Kind: ErrRunFailed, Message: inv.Format("Engine_RunFailed"), Cause: err}
}

// finish records the outcome and reports any failure to the caller.
func (e *Engine) finish(inv *Invocation, err error) error {
	e.observe(inv, err)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	msg := inv.Format("Engine_RunFailed")
	var uerr *UserError
	if errors.As(err, &uerr) {
		msg = uerr.Message
	}
	if _, rerr := inv.Reply(context.WithoutCancel(inv.Context()), msg); rerr != nil {
		e.log.Warn("Failed to report invocation outcome",
			zap.String("invocation_id", inv.ID),
			zap.Error(rerr))
	}
	return err
}

func (e *Engine) observe(inv *Invocation, err error) {
	name := ""
	if inv.Command != nil {
		name = inv.Command.name
	}
	label := outcome(err)
	elapsed := time.Since(inv.started)
	e.metrics.observe(name, label, elapsed)

	fields := []zap.Field{
		zap.String("invocation_id", inv.ID),
		zap.String("command", name),
		zap.Stringer("surface", inv.Surface()),
		zap.String("guild_id", inv.GuildID()),
		zap.String("channel_id", inv.ChannelID()),
		zap.String("user_id", inv.Caller().ID),
		zap.String("outcome", label),
		zap.Duration("duration", elapsed),
	}
	var uerr *UserError
	switch {
	case err == nil:
		e.log.Info("Command handled", fields...)
	case errors.As(err, &uerr) && uerr.Cause == nil:
		e.log.Info("Command handled", fields...)
	default:
		e.log.Error("Command failed", append(fields, zap.Error(err))...)
	}
}
