// Package obs wires the module's structured logging (SPEC_FULL.md §A):
// a zerolog.Logger value built by New and threaded down through an
// engine.Context rather than used as a global, matching the
// jhkimqd-chaos-utils reporting.Logger wrapper's shape. OutOfDomain and
// Degenerate events are logged once per distinct detail and then
// suppressed (spec.md §7's "sampled" policy for high-frequency,
// recoverable conditions); InvalidMeasure and ImplementationMissing are
// always logged at Fatal/Error severity, left to the caller to decide
// whether that also means os.Exit.
package obs

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Level mirrors the handful of severities this module's error kinds map
// to (spec.md §7's policy table).
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Config configures a Logger.
type Config struct {
	Level  Level
	Output io.Writer // defaults to os.Stderr
}

// Logger wraps a zerolog.Logger plus the log-once dedup set the
// OutOfDomain/Degenerate helpers need.
type Logger struct {
	z zerolog.Logger

	mu   sync.Mutex
	seen map[string]bool
}

// New builds a Logger. Call it once per process (or per test) and thread
// the result down via engine.Context — never assign to a package-level
// variable read from unrelated packages.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	z := zerolog.New(out).With().Timestamp().Logger()
	switch cfg.Level {
	case LevelDebug:
		z = z.Level(zerolog.DebugLevel)
	case LevelWarn:
		z = z.Level(zerolog.WarnLevel)
	case LevelError:
		z = z.Level(zerolog.ErrorLevel)
	default:
		z = z.Level(zerolog.InfoLevel)
	}
	return &Logger{z: z, seen: make(map[string]bool)}
}

// Debug logs an unconditional debug-level event.
func (l *Logger) Debug(msg string) { l.z.Debug().Msg(msg) }

// Info logs an unconditional info-level event.
func (l *Logger) Info(msg string) { l.z.Info().Msg(msg) }

// Warn logs an unconditional warn-level event.
func (l *Logger) Warn(msg string) { l.z.Warn().Msg(msg) }

// Error logs err at error severity, matching spec.md §7's
// ImplementationMissing policy ("log at Error before returning").
func (l *Logger) Error(msg string, err error) { l.z.Error().Err(err).Msg(msg) }

// Fatal logs err at fatal severity, matching spec.md §7's InvalidMeasure
// policy ("Fatal at initialization"). It does not call os.Exit itself;
// the caller (e.g. cmd/meshopt) decides whether a fatal log also means
// the process should exit.
func (l *Logger) Fatal(msg string, err error) {
	l.z.WithLevel(zerolog.FatalLevel).Err(err).Msg(msg)
}

// OutOfDomain logs a sampled warning for an OutOfDomain event: the first
// occurrence of a given detail string logs, subsequent occurrences of
// the same detail are suppressed for this Logger's lifetime (spec.md §7).
func (l *Logger) OutOfDomain(detail string) {
	l.logOnce("out_of_domain:"+detail, func() {
		l.z.Warn().Str("kind", "out_of_domain").Msg(detail)
	})
}

// Degenerate logs a sampled warning for a Degenerate event, keyed by
// element kind plus detail so each kind gets its own first-occurrence log.
func (l *Logger) Degenerate(kind, detail string) {
	l.logOnce("degenerate:"+kind+":"+detail, func() {
		l.z.Warn().Str("kind", "degenerate").Str("element_kind", kind).Msg(detail)
	})
}

func (l *Logger) logOnce(key string, emit func()) {
	l.mu.Lock()
	already := l.seen[key]
	if !already {
		l.seen[key] = true
	}
	l.mu.Unlock()
	if !already {
		emit()
	}
}

// Logf adapts this Logger to the engine.Context.Logf callback shape
// (plain printf-style diagnostic logging, info severity).
func (l *Logger) Logf(format string, args ...interface{}) {
	l.z.Info().Msgf(format, args...)
}
