package commando

import (
	"fmt"
)

// DefaultMessages are the English texts of every key the engine and the
// built-in commands format.
var DefaultMessages = map[string]string{
	"Engine_UnknownCommand": "Unknown command `%s`. Use %s to view the command list.",
	"Engine_RunFailed":      "An error occurred while running the command.",
	"Usage_Or":              "or",

	"Restriction_ThreadOnly":  "The `%s` command can only be used in threads.",
	"Restriction_GuildOnly":   "The `%s` command must be used in a server channel.",
	"Restriction_PrivateOnly": "The `%s` command can only be used in direct messages.",
	"Restriction_NSFW":        "The `%s` command can only be used in NSFW channels.",

	"Permission_OwnerOnly": "The `%s` command can only be used by the bot owner.",
	"Permission_Missing":   "The `%s` command requires you to have the following permissions: %s",
	"Permission_Unknown":   "Your permissions for the `%s` command could not be checked.",
	"Permission_Denied":    "You do not have permission to use the `%s` command.",

	"Prompt_CancelHint":      "Respond with `cancel` to cancel the command. The command will automatically be cancelled in %d seconds.",
	"Prompt_FinishHint":      "Respond with `cancel` to cancel the command, or `finish` to finish entry up to this point. The command will automatically be cancelled in %d seconds.",
	"Prompt_Timeout":         "Cancelled command: no reply in time.",
	"Prompt_Cancelled":       "Cancelled command.",
	"Prompt_TooManyAttempts": "Cancelled command after %d invalid replies.",

	"Argument_Missing":          "A value for `%s` is required.",
	"Argument_String_OneOf":     "Please enter one of the following options: %s",
	"Argument_Integer_Invalid":  "Please enter a whole number.",
	"Argument_Float_Invalid":    "Please enter a number.",
	"Argument_Number_Min":       "Please enter a number above or exactly %v.",
	"Argument_Number_Max":       "Please enter a number below or exactly %v.",
	"Argument_Duration_Invalid": "Please enter a duration such as `90`, `90s` or `1h30m`.",
	"Argument_Duration_Min":     "Please enter a duration of at least %v.",
	"Argument_Duration_Max":     "Please enter a duration of at most %v.",
	"Argument_Boolean_Invalid":  "Please answer yes or no.",
	"Argument_Union_Invalid":    "Couldn't understand that:\n%s",
	"Argument_Command_NotFound": "No command named `%s` exists.",
	"Argument_Entity_NotFound":  "No %s matches `%s`.",
	"Argument_Entity_TooMany":   "Multiple %ss match `%s`. Please be more specific.",
	"Argument_Entity_OneOf":     "Please pick a %s among: %s",
	"Argument_Repeatable_Empty": "At least one value for `%s` is required.",

	"NormalText_Command":                      "command",
	"Command_Help_Description":                "Displays a list of available commands, or detailed information for a specific command.",
	"Command_Help_Argument_CommandNamePrompt": "Which command would you like to view the help for?",
	"Help_CommandSingle":                      "__Command **%s**:__ %s %s %s\n\n**Format:** %s",
	"Help_Aliases":                            "**Aliases:** %s",
	"Help_Group":                              "**Group:** %s",
	"Help_Details":                            "**Details:** %s",
	"Help_Examples":                           "**Examples:**\n%s",
	"Help_NSFW":                               "(NSFW)",
	"Help_CommandList":                        "To run a command in %s, use %s. For example, %s.",
	"Help_CommandListNoExample":               "To run a command in %s, use %s.",
	"Help_AnyServer":                          "any server",
	"Help_DirectMessage":                      "To run a command in this DM, simply use `%s` with no prefix.",
	"Help_DetailedExample":                    "Use %s to view detailed information about a specific command.",
	"Help_UseAll":                             "Use %s to view a list of *all* commands, not just available ones.",
	"Help_AllCommands":                        "All commands",
	"Help_Available":                          "Available commands in %s",
	"Help_ThisDm":                             "this DM",
	"Help_ThreadOnly":                         "Usable only in threads",
	"Help_GuildOnly":                          "Usable only in servers",
	"Help_UserOnly":                           "Usable only in direct messages",

	"Command_Prefix_Description":     "Shows or sets the command prefix.",
	"Command_Prefix_Details":         "If no prefix is provided, the current prefix will be shown. If the prefix is \"default\", the prefix will be reset to the bot's default prefix. If the prefix is \"none\", the prefix will be removed entirely, only allowing mentions to run commands. Only administrators may change the prefix.",
	"Command_Prefix_Argument_Prompt": "What would you like to set the bot's prefix to?",
	"Prefix_Current":                 "The command prefix is `%s`. To run commands, use %s.",
	"Prefix_None":                    "There is no command prefix. To run commands, use %s.",
	"Prefix_Set":                     "Set the command prefix to `%s`. To run commands, use %s.",
	"Prefix_Removed":                 "Removed the command prefix. To run commands, use %s.",
	"Prefix_Reset":                   "Reset the command prefix to the default (`%s`). To run commands, use %s.",
	"Prefix_AdminOnly":               "Only administrators may change the command prefix.",
	"Prefix_GuildOnly":               "The prefix can only be changed in a server.",
	"Prefix_Invalid":                 "A prefix must be at most %d characters long and contain no spaces.",
}

// DefaultLocalizer formats keys from a message table, DefaultMessages when
// Messages is nil. Unknown keys are used as the template itself.
type DefaultLocalizer struct {
	Messages map[string]string
}

func (l DefaultLocalizer) Format(key string, _ *Invocation, args ...any) string {
	messages := l.Messages
	if messages == nil {
		messages = DefaultMessages
	}
	tmpl, ok := messages[key]
	if !ok {
		tmpl = key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
