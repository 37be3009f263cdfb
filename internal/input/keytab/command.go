package keytab

import "strings"

// Command is a terminal action bound to a key instead of output text.
type Command int

// Commands.
const (
	NoCommand Command = iota
	EraseCommand
	ScrollPageUpCommand
	ScrollPageDownCommand
	ScrollLineUpCommand
	ScrollLineDownCommand
	ScrollUpToTopCommand
	ScrollDownToBottomCommand
	ScrollPromptUpCommand
	ScrollPromptDownCommand
)

var commandNames = map[Command]string{
	EraseCommand:              "erase",
	ScrollPageUpCommand:       "scrollPageUp",
	ScrollPageDownCommand:     "scrollPageDown",
	ScrollLineUpCommand:       "scrollLineUp",
	ScrollLineDownCommand:     "scrollLineDown",
	ScrollUpToTopCommand:      "scrollUpToTop",
	ScrollDownToBottomCommand: "scrollDownToBottom",
	ScrollPromptUpCommand:     "scrollPromptUp",
	ScrollPromptDownCommand:   "scrollPromptDown",
}

var commandByName = func() map[string]Command {
	m := make(map[string]Command, len(commandNames))
	for cmd, name := range commandNames {
		m[strings.ToLower(name)] = cmd
	}
	return m
}()

// String returns the written command name, or "" for NoCommand.
func (c Command) String() string {
	return commandNames[c]
}

// ParseCommand looks up a command name case-insensitively.
func ParseCommand(name string) (Command, bool) {
	cmd, ok := commandByName[strings.ToLower(name)]
	return cmd, ok
}
