package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matheus3301/cmdc/internal/config"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "main", false},
		{"valid with numbers", "work123", false},
		{"valid with hyphen", "my-profile", false},
		{"valid with underscore", "my_profile", false},
		{"empty", "", true},
		{"uppercase", "Main", true},
		{"space", "my profile", true},
		{"dot", "my.profile", true},
		{"slash", "../etc", true},
		{"too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	cfg := &config.Config{DefaultProfile: "ops"}

	if got := Resolve("dev", cfg); got != "dev" {
		t.Errorf("flag precedence: got %q", got)
	}
	if got := Resolve("", cfg); got != "ops" {
		t.Errorf("config precedence: got %q", got)
	}
	if got := Resolve("", &config.Config{}); got != DefaultName {
		t.Errorf("default: got %q", got)
	}
	if got := Resolve("", nil); got != DefaultName {
		t.Errorf("nil config: got %q", got)
	}
}

func TestPathsUnderBaseDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("CMDC_HOME", base)

	if got := DBPath("main"); got != filepath.Join(base, "profiles", "main", "cmdc.db") {
		t.Errorf("DBPath() = %q", got)
	}
	if got := ConfigPath(); got != filepath.Join(base, "config.toml") {
		t.Errorf("ConfigPath() = %q", got)
	}

	if err := EnsureDir("main"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(LogDir("main"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0700 {
		t.Errorf("log dir permission = %o, want 0700", perm)
	}
}
