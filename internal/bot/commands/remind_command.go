package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bradykim7/commando/pkg/commando"
)

// Bounds of a reminder delay.
const (
	MinReminder = 5 * time.Second
	MaxReminder = 24 * time.Hour
)

// NewRemindCommand는 일정 시간 후 알림을 보내는 명령어를 생성합니다
func NewRemindCommand() (*commando.Command, error) {
	return commando.NewCommand("remind", "util", "Reminds you of something after a while.", runRemind,
		commando.WithArguments(
			commando.NewArgument("after", "In how long should I remind you?", commando.DurationBetween(MinReminder, MaxReminder)),
			commando.NewArgument("message", "What should I remind you of?", commando.String()),
		),
		commando.WithExamples("remind 10m take the pizza out", "remind 1h30m stand up"))
}

func runRemind(ctx context.Context, inv *commando.Invocation, args commando.Args) error {
	after := args.Duration("after")
	message := args.String("message")

	if _, err := inv.Reply(ctx, fmt.Sprintf("I'll remind you in %s.", after)); err != nil {
		return err
	}

	caller := inv.Caller()
	go func() {
		timer := time.NewTimer(after)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return
		}
		if _, err := inv.Send(ctx, fmt.Sprintf("<@%s> reminder: %s", caller.ID, message)); err != nil {
			inv.Engine().Logger().Warn("Failed to deliver reminder",
				zap.String("invocation_id", inv.ID),
				zap.String("user_id", caller.ID),
				zap.Error(err))
		}
	}()
	return nil
}
