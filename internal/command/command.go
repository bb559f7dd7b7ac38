package command

import "strings"

// Command is the closed set of commands the bot understands.
type Command int

const (
	CommandUnknown Command = iota
	CommandStatus
	CommandPing
	CommandHelp
)

func (c Command) String() string {
	switch c {
	case CommandStatus:
		return "status"
	case CommandPing:
		return "ping"
	case CommandHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Parse maps inbound text to a Command. Only the first word counts; a leading
// slash and a "@botname" suffix are optional and matching ignores case.
func Parse(text string) Command {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return CommandUnknown
	}
	word := strings.TrimPrefix(fields[0], "/")
	if i := strings.IndexByte(word, '@'); i >= 0 {
		word = word[:i]
	}
	switch strings.ToLower(word) {
	case "status":
		return CommandStatus
	case "ping":
		return CommandPing
	case "help", "start":
		return CommandHelp
	default:
		return CommandUnknown
	}
}
