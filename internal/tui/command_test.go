package tui

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"quit", Command{Name: "quit"}},
		{"  Reload  ", Command{Name: "reload"}},
		{":history", Command{Name: "history"}},
		{"help  keys  ", Command{Name: "help", Args: "keys"}},
		{"", Command{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseCommand(tt.input); got != tt.want {
				t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCommandCanonical(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"q", CmdQuit, true},
		{"h", CmdHelp, true},
		{"hist", CmdHistory, true},
		{"clear-history", CmdClearHistory, true},
		{"r", CmdReload, true},
		{"deploy", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Command{Name: tt.name}.Canonical()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Canonical(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}
