package commands

import (
	"context"
	"strings"

	"github.com/bradykim7/commando/pkg/commando"
)

const permTestDenied = `You cannot execute this command, only users whose name contains an "R" may execute it`

// NewPermTestCommand는 사용자 정의 권한 검사를 보여주는 예제 명령어를 생성합니다
func NewPermTestCommand() (*commando.Command, error) {
	return commando.NewCommand("permtest", "examples", `This command only works if the user's name contains an "R"`, runPermTest,
		commando.WithMessagePermission(nameContainsR),
		commando.WithInteractionPermission(nameContainsR))
}

func nameContainsR(inv *commando.Invocation) string {
	if strings.Contains(inv.Caller().Name, "R") {
		return ""
	}
	return permTestDenied
}

func runPermTest(ctx context.Context, inv *commando.Invocation, _ commando.Args) error {
	_, err := inv.Reply(ctx, `Hey!, your name contains an "R", so you're cool 😎`)
	return err
}
