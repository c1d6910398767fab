package commands

import (
	"context"
	"time"

	"github.com/bradykim7/commando/pkg/commando"
)

// NewPingCommand는 왕복 지연 시간으로 응답하는 명령어를 생성합니다
func NewPingCommand() (*commando.Command, error) {
	return commando.NewCommand("ping", "util", "Checks the bot's response time.", runPing,
		commando.WithExamples("ping"))
}

func runPing(ctx context.Context, inv *commando.Invocation, _ commando.Args) error {
	// 응답 시간 계산
	start := time.Now()
	d, err := inv.ReplyPublic(ctx, "Pinging...")
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// 지연 시간 정보로 메시지 수정
	text := "Pong! Latency: " + elapsed.Round(time.Millisecond).String()
	if err := inv.Edit(ctx, d, text); err != nil {
		_, err = inv.Send(ctx, text)
		return err
	}
	return nil
}
