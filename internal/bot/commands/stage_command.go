package commands

import (
	"context"
	"fmt"

	"github.com/bradykim7/commando/pkg/commando"
)

// NewStageCommand는 스테이지 채널 인자를 해석하는 예제 명령어를 생성합니다
func NewStageCommand() (*commando.Command, error) {
	return commando.NewCommand("stage", "examples", "Shows the stage channel you name.", runStage,
		commando.GuildOnly(),
		commando.WithArguments(
			commando.NewArgument("channel", "Which stage channel?", commando.StageChannel()),
		),
		commando.WithExamples("stage town-hall", "stage <#123456789012345678>"))
}

func runStage(ctx context.Context, inv *commando.Invocation, args commando.Args) error {
	ch, ok := args.Entity("channel")
	if !ok {
		return fmt.Errorf("channel argument has type %T", args["channel"])
	}
	_, err := inv.Reply(ctx, fmt.Sprintf("Stage channel **%s** (<#%s>)", ch.Name, ch.ID))
	return err
}
