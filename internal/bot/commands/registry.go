package commands

import (
	"github.com/bradykim7/commando/pkg/commando"
)

// constructors lists every application command in registration order
var constructors = []func() (*commando.Command, error){
	NewPingCommand,
	NewPermTestCommand,
	NewStageCommand,
	NewSumCommand,
	NewRemindCommand,
}

// All builds the application commands
func All() ([]*commando.Command, error) {
	cmds := make([]*commando.Command, 0, len(constructors))
	for _, build := range constructors {
		cmd, err := build()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
