package config

import (
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Folder != "" {
		t.Fatalf("expected empty folder default, got %q", cfg.App.Folder)
	}
	if cfg.App.Limit != 0 {
		t.Fatalf("expected limit 0 default, got %d", cfg.App.Limit)
	}
	if cfg.App.ShowAll || cfg.App.ShowFooter || cfg.Logging.Trace {
		t.Fatalf("expected boolean flags off by default")
	}
}

func TestLoadArgsParsesFlags(t *testing.T) {
	cfg, err := LoadArgs([]string{
		"--folder", "/tmp/work",
		"--limit", "40",
		"--show-all",
		"--poll-interval", "5s",
		"--debounce", "300ms",
		"--footer",
		"--trace",
		"--log-file", "/tmp/cc.log",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Folder != "/tmp/work" || cfg.App.Limit != 40 || !cfg.App.ShowAll {
		t.Fatalf("unexpected app config %+v", cfg.App)
	}
	if cfg.App.PollInterval != 5*time.Second {
		t.Fatalf("expected 5s poll interval, got %s", cfg.App.PollInterval)
	}
	if cfg.App.Debounce != 300*time.Millisecond {
		t.Fatalf("expected 300ms debounce, got %s", cfg.App.Debounce)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/cc.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Flags["limit"] != "40" {
		t.Fatalf("expected flags map populated, got %v", cfg.Flags)
	}
}

func TestLoadArgsReadsEnvironment(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{
		"COMMIT_CONTROL_FOLDER=/env/work",
		"COMMIT_CONTROL_LIMIT=15",
		"COMMIT_CONTROL_SHOW_ALL=true",
		"COMMIT_CONTROL_DEBOUNCE=1s",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Folder != "/env/work" || cfg.App.Limit != 15 || !cfg.App.ShowAll {
		t.Fatalf("environment not applied: %+v", cfg.App)
	}
	if cfg.App.Debounce != time.Second {
		t.Fatalf("expected 1s debounce, got %s", cfg.App.Debounce)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadArgs([]string{"--limit", "50"}, []string{"COMMIT_CONTROL_LIMIT=15"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Limit != 50 {
		t.Fatalf("expected flag to win, got %d", cfg.App.Limit)
	}
}

func TestLoadArgsRejectsNegatives(t *testing.T) {
	if _, err := LoadArgs([]string{"--limit", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative limit")
	}
	if _, err := LoadArgs([]string{"--width", "-5"}, nil); err == nil {
		t.Fatalf("expected error for negative width")
	}
}

func TestValidateRejectsMissingFolder(t *testing.T) {
	cfg, err := LoadArgs([]string{"--folder", "/does/not/exist"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error for missing folder")
	}
}

func TestValidateAcceptsExistingFolder(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadArgs([]string{"--folder", dir}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
