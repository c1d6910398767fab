package commands

import (
	"context"
	"fmt"
	"math"

	"github.com/bradykim7/commando/pkg/commando"
)

// NewSumCommand는 반복 인자를 보여주는 예제 명령어를 생성합니다
func NewSumCommand() (*commando.Command, error) {
	return commando.NewCommand("sum", "examples", "Adds up whole numbers.", runSum,
		commando.WithAliases("add"),
		commando.WithArguments(
			commando.NewArgument("numbers", "Which number should be added?", commando.Integer(), commando.Repeatable()),
		),
		commando.WithExamples("sum 1 2 3"))
}

func runSum(ctx context.Context, inv *commando.Invocation, args commando.Args) error {
	var total int64
	for _, v := range args.Values("numbers") {
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("number has type %T", v)
		}
		if (n > 0 && total > math.MaxInt64-n) || (n < 0 && total < math.MinInt64-n) {
			return commando.NewUserError(commando.ErrValidationFailed, "That sum is too large for me to count.")
		}
		total += n
	}
	_, err := inv.Reply(ctx, fmt.Sprintf("The sum is **%d**.", total))
	return err
}
