package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quickvc/commit-control/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envFolder       = "COMMIT_CONTROL_FOLDER"
	envLimit        = "COMMIT_CONTROL_LIMIT"
	envShowAll      = "COMMIT_CONTROL_SHOW_ALL"
	envPollInterval = "COMMIT_CONTROL_POLL_INTERVAL"
	envDebounce     = "COMMIT_CONTROL_DEBOUNCE"
	envWidth        = "COMMIT_CONTROL_WIDTH"
	envHeight       = "COMMIT_CONTROL_HEIGHT"
	envShowFooter   = "COMMIT_CONTROL_FOOTER"
	envVerbose      = "COMMIT_CONTROL_VERBOSE"
	envTrace        = "COMMIT_CONTROL_TRACE"
	envLogFile      = "COMMIT_CONTROL_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("commit-control", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	folder := fs.String("folder", envOrDefault(env, envFolder, ""), "working folder (defaults to the current directory)")
	limit := fs.Int("limit", envOrInt(env, envLimit, 0), "number of commits to fetch (0 uses the built-in default)")
	showAll := fs.Bool("show-all", envOrBool(env, envShowAll, false), "fetch the full history instead of the latest commits")
	pollInterval := fs.Duration("poll-interval", envOrDuration(env, envPollInterval, 0), "interval between pending-update checks (0 uses the built-in default)")
	debounce := fs.Duration("debounce", envOrDuration(env, envDebounce, 0), "settle window for limit/show-all edits (0 uses the built-in default)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *limit < 0 {
		return Config{}, fmt.Errorf("limit must be >= 0 (got %d)", *limit)
	}
	if *pollInterval < 0 {
		return Config{}, fmt.Errorf("poll-interval must be >= 0 (got %s)", *pollInterval)
	}
	if *debounce < 0 {
		return Config{}, fmt.Errorf("debounce must be >= 0 (got %s)", *debounce)
	}
	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Folder:       *folder,
			Limit:        *limit,
			ShowAll:      *showAll,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			PollInterval: *pollInterval,
			Debounce:     *debounce,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"folder":       *folder,
			"limit":        strconv.Itoa(*limit),
			"showAll":      strconv.FormatBool(*showAll),
			"pollInterval": pollInterval.String(),
			"debounce":     debounce.String(),
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Folder == "" {
		return nil
	}
	info, err := os.Stat(cfg.App.Folder)
	if err != nil {
		return fmt.Errorf("folder %s: %w", cfg.App.Folder, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("folder %s is not a directory", cfg.App.Folder)
	}
	return nil
}
