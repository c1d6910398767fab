package commando

import (
	"strings"
)

// Usage renders how to run command from where inv came from: with the
// guild's prefix or a bot mention in a guild, bare in private.
func (e *Engine) Usage(inv *Invocation, command, argString string) string {
	if inv == nil || !inv.FromGuild() {
		return "`" + join(command, argString) + "`"
	}
	return e.prefixedUsage(inv, e.GuildPrefix(inv.Context(), inv.GuildID()), command, argString)
}

// AnyUsage renders how to run command from anywhere: with the default prefix
// or a bot mention.
func (e *Engine) AnyUsage(inv *Invocation, command, argString string) string {
	return e.prefixedUsage(inv, e.opts.Prefix, command, argString)
}

func (e *Engine) prefixedUsage(inv *Invocation, prefix, command, argString string) string {
	cmd := join(command, argString)
	var forms []string
	if prefix != "" {
		forms = append(forms, "`"+prefix+cmd+"`")
	}
	if self, ok := e.Self(); ok {
		forms = append(forms, "`@"+self.Name+" "+cmd+"`")
	}
	if len(forms) == 0 {
		return "`" + cmd + "`"
	}
	return strings.Join(forms, " "+inv.Format("Usage_Or")+" ")
}

func join(command, argString string) string {
	if argString == "" {
		return command
	}
	return command + " " + argString
}
