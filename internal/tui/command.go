package tui

import "strings"

// Command represents a parsed command.
type Command struct {
	Name string
	Args string
}

// Palette commands, typed after ':'.
const (
	CmdQuit         = "quit"
	CmdHelp         = "help"
	CmdHistory      = "history"
	CmdClearHistory = "clear-history"
	CmdReload       = "reload"
)

var commandAliases = map[string]string{
	"q":             CmdQuit,
	"quit":          CmdQuit,
	"h":             CmdHelp,
	"help":          CmdHelp,
	"history":       CmdHistory,
	"hist":          CmdHistory,
	"clear-history": CmdClearHistory,
	"reload":        CmdReload,
	"r":             CmdReload,
}

// ParseCommand parses a command string (without the leading ':').
func ParseCommand(input string) Command {
	input = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), ":"))
	parts := strings.SplitN(input, " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

// Canonical resolves aliases. Returns false for unknown commands.
func (c Command) Canonical() (string, bool) {
	name, ok := commandAliases[c.Name]
	return name, ok
}
