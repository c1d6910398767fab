// Package builtin provides the help and prefix commands every engine ships
// with.
package builtin

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bradykim7/commando/pkg/commando"
)

// Register adds the built-in commands to e. simpleList selects the compact
// help listing.
func Register(e *commando.Engine, simpleList bool) error {
	help, err := NewHelp(simpleList)
	if err != nil {
		return fmt.Errorf("build help command: %w", err)
	}
	prefix, err := NewPrefix()
	if err != nil {
		return fmt.Errorf("build prefix command: %w", err)
	}
	return e.Register(help, prefix)
}

// NewHelp builds the help command. Given a command name it shows that
// command in detail, given "all" it lists every command, and otherwise it
// lists the commands the caller may run.
func NewHelp(simpleList bool) (*commando.Command, error) {
	arg := commando.NewArgument("commandName", "Command_Help_Argument_CommandNamePrompt",
		commando.Union(commando.String("all"), commando.CommandRef()),
		commando.WithDefault(nil))
	arg.SetPromptParser(func(a *commando.Argument, inv *commando.Invocation) string {
		return inv.Format(a.PromptRaw())
	})

	h := &help{simpleList: simpleList}
	return commando.NewCommand("help", "util", "Command_Help_Description", h.run,
		commando.WithArguments(arg),
		commando.WithAliases("commands"),
		commando.WithExamples("help", "help all", "help prefix"))
}

type help struct {
	simpleList bool
}

func (h *help) run(ctx context.Context, inv *commando.Invocation, args commando.Args) error {
	var (
		text    string
		showAll bool
	)
	choice, _ := args.Choice("commandName")
	switch v := choice.Value.(type) {
	case *commando.Command:
		text = h.single(inv, v)
	case string:
		showAll = true
	}
	if text == "" {
		text = h.list(inv, showAll)
	}

	for _, chunk := range commando.Chunk(text, commando.MessageLimit) {
		if _, err := inv.Reply(ctx, chunk); err != nil {
			return fmt.Errorf("send help: %w", err)
		}
	}
	return nil
}

func (h *help) single(inv *commando.Invocation, c *commando.Command) string {
	e := inv.Engine()
	nsfw := ""
	if c.IsNSFW() {
		nsfw = inv.Format("Help_NSFW")
	}

	var b strings.Builder
	b.WriteString(inv.Format("Help_CommandSingle",
		c.Name(),
		c.Description(inv),
		locationLimit(inv, c),
		nsfw,
		e.AnyUsage(inv, c.Name(), c.ArgumentUsage())))
	if len(c.Aliases()) > 0 {
		b.WriteString("\n" + inv.Format("Help_Aliases", strings.Join(c.Aliases(), ", ")))
	}
	b.WriteString("\n" + inv.Format("Help_Group", c.Group()))
	if details := c.Details(inv); details != "" {
		b.WriteString("\n" + inv.Format("Help_Details", details))
	}
	if len(c.Examples()) > 0 {
		b.WriteString("\n" + inv.Format("Help_Examples", strings.Join(c.Examples(), "\n")))
	}
	return b.String()
}

func (h *help) list(inv *commando.Invocation, showAll bool) string {
	e := inv.Engine()
	sample := e.SampleCommand().DisplayName(inv)

	var commands []*commando.Command
	for _, c := range e.Commands() {
		if c.IsHidden() {
			continue
		}
		if !showAll && c.CheckPermissions(inv) != "" {
			continue
		}
		commands = append(commands, c)
	}

	location := inv.Format("Help_AnyServer")
	if inv.FromGuild() && inv.Origin().GuildName != "" {
		location = inv.Origin().GuildName
	}

	var b strings.Builder
	if e.Command("prefix") != nil {
		b.WriteString(inv.Format("Help_CommandList", location, e.AnyUsage(inv, sample, ""), e.Usage(inv, "prefix", "~")))
	} else {
		b.WriteString(inv.Format("Help_CommandListNoExample", location, e.AnyUsage(inv, sample, "")))
	}
	if !inv.FromGuild() {
		b.WriteString("\n" + inv.Format("Help_DirectMessage", sample))
	}
	b.WriteString("\n\n" + inv.Format("Help_DetailedExample", e.Usage(inv, "help", "<"+sample+">")))
	if !showAll {
		b.WriteString("\n" + inv.Format("Help_UseAll", e.Usage(inv, "help", "all")))
	}

	b.WriteString("\n\n__**")
	switch {
	case showAll:
		b.WriteString(inv.Format("Help_AllCommands"))
	case inv.FromGuild():
		b.WriteString(inv.Format("Help_Available", location))
	default:
		b.WriteString(inv.Format("Help_Available", inv.Format("Help_ThisDm")))
	}
	b.WriteString("**__\n")

	for _, group := range groups(commands) {
		fmt.Fprintf(&b, "\n`%s`:\n", group)
		var lines []string
		for _, c := range commands {
			if c.Group() != group {
				continue
			}
			if h.simpleList {
				lines = append(lines, "`"+c.Name()+"`")
				continue
			}
			line := fmt.Sprintf("**%s**: %s", c.Name(), c.Description(inv))
			if c.IsNSFW() {
				line += " *" + inv.Format("Help_NSFW") + "*"
			}
			lines = append(lines, strings.ReplaceAll(strings.TrimSpace(line), "\n", "\n\t"))
		}
		if h.simpleList {
			b.WriteString(strings.Join(lines, ", ") + "\n")
		} else {
			b.WriteString(strings.Join(lines, "\n") + "\n")
		}
	}
	return b.String()
}

// groups returns the distinct group names of commands, sorted.
func groups(commands []*commando.Command) []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range commands {
		if !seen[c.Group()] {
			seen[c.Group()] = true
			names = append(names, c.Group())
		}
	}
	sort.Strings(names)
	return names
}

func locationLimit(inv *commando.Invocation, c *commando.Command) string {
	switch {
	case c.IsThreadOnly():
		return "(" + inv.Format("Help_ThreadOnly") + ")"
	case c.IsGuildOnly():
		return "(" + inv.Format("Help_GuildOnly") + ")"
	case c.IsPrivateOnly():
		return "(" + inv.Format("Help_UserOnly") + ")"
	}
	return ""
}
