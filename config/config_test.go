package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.sr.ht/~avern/wpcraft/constants"
	"git.sr.ht/~avern/wpcraft/filter"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Scope != constants.DefaultScope {
		t.Errorf("Scope = %s, want %s", cfg.Scope, constants.DefaultScope)
	}
	if cfg.Resolution != constants.DefaultResolution {
		t.Errorf("Resolution = %s, want %s", cfg.Resolution, constants.DefaultResolution)
	}
	if cfg.MinScore != 0 {
		t.Errorf("MinScore = %g, want 0", cfg.MinScore)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := New()
	cfg.Scope = "tag/river"
	cfg.MinScore = 7.5
	cfg.Resolution = "2560x1440"
	cfg.ScriptPath = "/usr/local/bin/set-wallpaper"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Scope != "tag/river" {
		t.Errorf("Scope = %s, want tag/river", loaded.Scope)
	}
	if loaded.MinScore != 7.5 {
		t.Errorf("MinScore = %g, want 7.5", loaded.MinScore)
	}
	if loaded.Resolution != "2560x1440" {
		t.Errorf("Resolution = %s, want 2560x1440", loaded.Resolution)
	}
	if loaded.ScriptPath != "/usr/local/bin/set-wallpaper" {
		t.Errorf("ScriptPath = %s", loaded.ScriptPath)
	}
}

func TestSaveWritesReadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	if err := New().Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if got := info.Mode().Perm(); got != constants.FilePermissions {
		t.Errorf("config file mode = %o, want %o", got, constants.FilePermissions)
	}
}

func TestLoadUnparseableFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("scope: [broken"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("Load() error = nil, want error for unparseable config")
	}
}

func TestLoadRejectsInvalidScope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("scope: bogus/thing\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("Load() error = nil, want error for invalid scope")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "negative min score", mutate: func(c *Config) { c.MinScore = -1 }, wantErr: true},
		{name: "bad resolution", mutate: func(c *Config) { c.Resolution = "wide" }, wantErr: true},
		{name: "explicit resolution", mutate: func(c *Config) { c.Resolution = "1920x1080" }},
		{name: "empty state path", mutate: func(c *Config) { c.StatePath = "" }, wantErr: true},
		{name: "empty cache dir", mutate: func(c *Config) { c.CacheDir = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilterCarriesMinScore(t *testing.T) {
	cfg := New()
	cfg.Scope = "tag/river"
	cfg.MinScore = 6.5

	f, err := cfg.Filter()
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if f.Mode != filter.ByTag || f.Value != "river" {
		t.Errorf("Filter() = %+v", f)
	}
	if f.MinScore != 6.5 {
		t.Errorf("Filter().MinScore = %g, want 6.5", f.MinScore)
	}
}

func TestSetFilter(t *testing.T) {
	cfg := New()

	f, err := filter.Parse("search/night sky")
	if err != nil {
		t.Fatalf("filter.Parse() error = %v", err)
	}
	cfg.SetFilter(f)

	if cfg.Scope != "search/night sky" {
		t.Errorf("Scope = %s, want search/night sky", cfg.Scope)
	}
}

func TestDefaultPathHonorsEnvOverride(t *testing.T) {
	t.Setenv(constants.ConfigEnvVar, "/tmp/custom.yml")
	if got := DefaultPath(); got != "/tmp/custom.yml" {
		t.Errorf("DefaultPath() = %s, want /tmp/custom.yml", got)
	}

	t.Setenv(constants.ConfigEnvVar, "")
	if got := DefaultPath(); !strings.HasSuffix(got, "config.yml") {
		t.Errorf("DefaultPath() = %s, want default location", got)
	}
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if got := Expand("~/x/y"); got != filepath.Join(home, "x", "y") {
		t.Errorf("Expand(~/x/y) = %s", got)
	}
	if got := Expand("~"); got != home {
		t.Errorf("Expand(~) = %s, want %s", got, home)
	}
	if got := Expand("/abs/path"); got != "/abs/path" {
		t.Errorf("Expand(/abs/path) = %s", got)
	}
}

func TestExpandEmptyStaysEmpty(t *testing.T) {
	// An unset script-path must stay empty so the setter falls back to
	// gsettings instead of trying to execute a directory.
	if got := Expand(""); got != "" {
		t.Errorf("Expand(\"\") = %q, want empty string", got)
	}
}
