package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	applogging "github.com/andrescamacho/traveller-go/internal/application/logging"
	"github.com/andrescamacho/traveller-go/internal/infrastructure/config"
)

var levelRank = map[string]int{
	applogging.LevelDebug: 0,
	applogging.LevelInfo:  1,
	applogging.LevelWarn:  2,
	applogging.LevelError: 3,
}

// StdLogger writes leveled entries through the standard library logger
// as either "text" lines or one JSON object per line.
type StdLogger struct {
	out      *log.Logger
	minLevel int
	json     bool
	now      func() time.Time
}

// New builds a logger from the logging configuration. The returned closer
// releases the log file when output is "file" and is a no-op otherwise.
func New(cfg config.LoggingConfig) (*StdLogger, io.Closer, error) {
	var w io.Writer
	var closer io.Closer = nopCloser{}

	switch cfg.Output {
	case "stdout":
		w = os.Stdout
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	default:
		w = os.Stderr
	}

	return NewWithWriter(w, cfg.Level, cfg.Format), closer, nil
}

// NewWithWriter builds a logger writing to w
func NewWithWriter(w io.Writer, level, format string) *StdLogger {
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank[applogging.LevelInfo]
	}
	return &StdLogger{
		out:      log.New(w, "", 0),
		minLevel: rank,
		json:     format == "json",
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Log implements application/logging.Logger
func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	level = strings.ToUpper(level)
	rank, ok := levelRank[level]
	if !ok {
		rank = levelRank[applogging.LevelInfo]
	}
	if rank < l.minLevel {
		return
	}

	ts := l.now().Format(time.RFC3339)
	if l.json {
		entry := make(map[string]interface{}, len(metadata)+3)
		for k, v := range metadata {
			entry[k] = v
		}
		entry["time"] = ts
		entry["level"] = level
		entry["msg"] = message
		b, err := json.Marshal(entry)
		if err != nil {
			l.out.Printf(`{"time":%q,"level":"ERROR","msg":"unencodable log entry: %v"}`, ts, err)
			return
		}
		l.out.Print(string(b))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] %s", ts, level, message)
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, metadata[k])
	}
	l.out.Print(sb.String())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
