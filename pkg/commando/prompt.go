package commando

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type promptKey struct {
	channelID string
	userID    string
}

type waiter struct {
	replies    chan string
	superseded chan struct{}
}

// promptRouter hands messages to invocations waiting for a reply from the
// same user in the same channel. A user has at most one open prompt per
// channel; a newer prompt cancels the older one.
type promptRouter struct {
	mu      sync.Mutex
	waiting map[promptKey]*waiter
}

func newPromptRouter() *promptRouter {
	return &promptRouter{waiting: make(map[promptKey]*waiter)}
}

func (r *promptRouter) register(key promptKey) *waiter {
	w := &waiter{
		replies:    make(chan string, 1),
		superseded: make(chan struct{}),
	}
	r.mu.Lock()
	if old, ok := r.waiting[key]; ok {
		close(old.superseded)
	}
	r.waiting[key] = w
	r.mu.Unlock()
	return w
}

func (r *promptRouter) release(key promptKey, w *waiter) {
	r.mu.Lock()
	if r.waiting[key] == w {
		delete(r.waiting, key)
	}
	r.mu.Unlock()
}

// deliver reports whether text was taken as a prompt reply.
func (r *promptRouter) deliver(key promptKey, text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.waiting[key]
	if !ok {
		return false
	}
	select {
	case w.replies <- text:
		return true
	default:
		return false
	}
}

func (inv *Invocation) promptKey() promptKey {
	return promptKey{channelID: inv.ChannelID(), userID: inv.Caller().ID}
}

// ask sends the argument's prompt and waits for the caller's next message.
// problem, when set, explains why the previous input was rejected.
func (e *Engine) ask(inv *Invocation, arg *Argument, problem string) (string, error) {
	ctx := inv.Context()
	key := inv.promptKey()
	w := e.prompts.register(key)
	defer e.prompts.release(key, w)

	seconds := int(e.opts.PromptTimeout / time.Second)
	hint := inv.Format("Prompt_CancelHint", seconds)
	if arg.repeatable {
		hint = inv.Format("Prompt_FinishHint", seconds)
	}
	var b strings.Builder
	if problem != "" {
		b.WriteString(problem)
		b.WriteString("\n")
	}
	b.WriteString(arg.Prompt(inv))
	b.WriteString("\n")
	b.WriteString(hint)

	if _, err := inv.Reply(ctx, b.String()); err != nil {
		return "", err
	}
	e.metrics.prompted(inv.Command.name)
	e.log.Debug("Prompting for argument",
		zap.String("invocation_id", inv.ID),
		zap.String("command", inv.Command.name),
		zap.String("argument", arg.name))

	timer := time.NewTimer(e.opts.PromptTimeout)
	defer timer.Stop()

	select {
	case text := <-w.replies:
		text = strings.TrimSpace(text)
		if strings.EqualFold(text, CancelSentinel) {
			return "", &UserError{Kind: ErrCancelled, Message: inv.Format("Prompt_Cancelled")}
		}
		return text, nil
	case <-w.superseded:
		return "", &UserError{Kind: ErrCancelled, Message: inv.Format("Prompt_Cancelled")}
	case <-timer.C:
		return "", &UserError{Kind: ErrTimeout, Message: inv.Format("Prompt_Timeout")}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// promptValue asks for a single value until a valid one arrives or the
// attempt budget runs out.
func (e *Engine) promptValue(inv *Invocation, arg *Argument, problem string) (any, error) {
	attempts := 0
	for {
		raw, err := e.ask(inv, arg, problem)
		if err != nil {
			return nil, err
		}
		v, err := arg.Resolve(inv, raw, true)
		if err == nil {
			return v, nil
		}
		if problem, err = e.retry(inv, arg, err, &attempts); err != nil {
			return nil, err
		}
	}
}

// promptValues collects values for a repeatable argument until the caller
// answers with the finish sentinel.
func (e *Engine) promptValues(inv *Invocation, arg *Argument, collected []any, problem string) ([]any, error) {
	attempts := 0
	for {
		raw, err := e.ask(inv, arg, problem)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(raw, FinishSentinel) {
			if len(collected) > 0 {
				return collected, nil
			}
			err = invalid(inv, "Argument_Repeatable_Empty", arg.name)
		} else {
			var v any
			if v, err = arg.Resolve(inv, raw, true); err == nil {
				collected = append(collected, v)
				problem = ""
				continue
			}
		}
		if problem, err = e.retry(inv, arg, err, &attempts); err != nil {
			return nil, err
		}
	}
}

// retry counts a rejected reply. It returns the message to show with the
// next prompt, or the error that ends the invocation.
func (e *Engine) retry(inv *Invocation, arg *Argument, err error, attempts *int) (string, error) {
	if errors.Is(err, ErrArgumentMissing) {
		err = invalid(inv, "Argument_Missing", arg.name)
	}
	var uerr *UserError
	if !errors.As(err, &uerr) {
		return "", err
	}
	*attempts++
	if *attempts >= e.opts.MaxPromptAttempts {
		return "", &UserError{Kind: ErrValidationFailed, Message: inv.Format("Prompt_TooManyAttempts", *attempts)}
	}
	return uerr.Message, nil
}
