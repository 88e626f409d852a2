package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/scrollfx/internal/app"
	"github.com/atomicstack/scrollfx/internal/surface"
)

// ErrNoDeck is returned when no deck path was given.
var ErrNoDeck = errors.New("a deck file is required (--deck or SCROLLFX_DECK)")

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envDeck             = "SCROLLFX_DECK"
	envInitial          = "SCROLLFX_INITIAL"
	envAutoplay         = "SCROLLFX_AUTOPLAY"
	envInterval         = "SCROLLFX_INTERVAL"
	envGalleryAutoplay  = "SCROLLFX_GALLERY_AUTOPLAY"
	envGalleryInterval  = "SCROLLFX_GALLERY_INTERVAL"
	envFPS              = "SCROLLFX_FPS"
	envProgress         = "SCROLLFX_PROGRESS"
	envWidth            = "SCROLLFX_WIDTH"
	envHeight           = "SCROLLFX_HEIGHT"
	envShowFooter       = "SCROLLFX_FOOTER"
	envNoMouse          = "SCROLLFX_NO_MOUSE"
	envProbeConcurrency = "SCROLLFX_PROBE_CONCURRENCY"
	envProbeTimeout     = "SCROLLFX_PROBE_TIMEOUT"
	envWatch            = "SCROLLFX_WATCH"
	envTrace            = "SCROLLFX_TRACE"
	envLogFile          = "SCROLLFX_LOG_FILE"
)

// DefaultInterval is the primary surface autoplay interval.
const DefaultInterval = 5 * time.Second

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("scrollfx", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	deckPath := fs.String("deck", envOrDefault(env, envDeck, ""), "path to the YAML deck file")
	initial := fs.Int("initial", envOrInt(env, envInitial, 1), "1-based section shown first")
	autoplay := fs.Bool("autoplay", envOrBool(env, envAutoplay, false), "advance sections automatically")
	interval := fs.Duration("interval", envOrDuration(env, envInterval, DefaultInterval), "autoplay interval for the main surface")
	galleryAutoplay := fs.Bool("gallery-autoplay", envOrBool(env, envGalleryAutoplay, true), "advance gallery items automatically")
	galleryInterval := fs.Duration("gallery-interval", envOrDuration(env, envGalleryInterval, surface.DefaultGalleryInterval), "autoplay interval for galleries")
	fps := fs.Int("fps", envOrInt(env, envFPS, 60), "animation frame rate")
	progress := fs.Bool("progress", envOrBool(env, envProgress, true), "show the progress bar")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	noMouse := fs.Bool("no-mouse", envOrBool(env, envNoMouse, false), "disable mouse tracking")
	probeConcurrency := fs.Int("probe-concurrency", envOrInt(env, envProbeConcurrency, 4), "media probes run in parallel")
	probeTimeout := fs.Duration("probe-timeout", envOrDuration(env, envProbeTimeout, 10*time.Second), "timeout for a single media probe (0 disables)")
	watch := fs.Bool("watch", envOrBool(env, envWatch, true), "reload the deck when the file changes")
	list := fs.Bool("list", false, "print the deck sections and exit")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if *deckPath == "" && fs.NArg() > 0 {
		*deckPath = fs.Arg(0)
	}

	cfg := Config{
		App: app.Config{
			DeckPath:         *deckPath,
			Initial:          *initial - 1,
			Autoplay:         *autoplay,
			Interval:         *interval,
			GalleryAutoplay:  *galleryAutoplay,
			GalleryInterval:  *galleryInterval,
			FPS:              *fps,
			Progress:         *progress,
			Width:            *width,
			Height:           *height,
			ShowFooter:       *footer,
			Mouse:            !*noMouse,
			ProbeConcurrency: *probeConcurrency,
			ProbeTimeout:     *probeTimeout,
			Watch:            *watch,
			List:             *list,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"deck":             *deckPath,
			"initial":          strconv.Itoa(*initial),
			"autoplay":         strconv.FormatBool(*autoplay),
			"interval":         interval.String(),
			"galleryAutoplay":  strconv.FormatBool(*galleryAutoplay),
			"galleryInterval":  galleryInterval.String(),
			"fps":              strconv.Itoa(*fps),
			"progress":         strconv.FormatBool(*progress),
			"width":            strconv.Itoa(*width),
			"height":           strconv.Itoa(*height),
			"footer":           strconv.FormatBool(*footer),
			"noMouse":          strconv.FormatBool(*noMouse),
			"probeConcurrency": strconv.Itoa(*probeConcurrency),
			"probeTimeout":     probeTimeout.String(),
			"watch":            strconv.FormatBool(*watch),
			"list":             strconv.FormatBool(*list),
			"trace":            strconv.FormatBool(*trace),
			"logFile":          *logFile,
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
	a := cfg.App
	switch {
	case strings.TrimSpace(a.DeckPath) == "":
		return ErrNoDeck
	case a.Initial < 0:
		return fmt.Errorf("initial must be >= 1 (got %d)", a.Initial+1)
	case a.Width < 0:
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	case a.Height < 0:
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	case a.FPS <= 0:
		return fmt.Errorf("fps must be > 0 (got %d)", a.FPS)
	case a.Interval <= 0:
		return fmt.Errorf("interval must be > 0 (got %s)", a.Interval)
	case a.GalleryInterval <= 0:
		return fmt.Errorf("gallery interval must be > 0 (got %s)", a.GalleryInterval)
	case a.ProbeConcurrency <= 0:
		return fmt.Errorf("probe concurrency must be > 0 (got %d)", a.ProbeConcurrency)
	case a.ProbeTimeout < 0:
		return fmt.Errorf("probe timeout must be >= 0 (got %s)", a.ProbeTimeout)
	}
	return nil
}
