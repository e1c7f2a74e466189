// Package eventlog keeps an append-only, timestamped record of the
// operations performed. Events carry operation kinds and numeric results
// only; secrets never reach this package.
package eventlog

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/zarlcorp/core/pkg/zfilesystem"
)

// DefaultFile is the log file name inside the data directory.
const DefaultFile = "zaudit.log"

// timeLayout matches the on-disk line prefix.
const timeLayout = "2006-01-02 15:04:05"

// Kind names an operation.
type Kind string

// event kinds
const (
	KindGenerate Kind = "GENERATE"
	KindAudit    Kind = "AUDIT"
	KindHash     Kind = "HASH"
	KindBreach   Kind = "BREACH_CHECK"
	KindQuiz     Kind = "QUIZ"
)

// Config configures a Log.
type Config struct {
	// File is the log path relative to the filesystem root.
	File string
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Log appends events to a single file. It assumes one writer.
type Log struct {
	fs   zfilesystem.ReadWriteFileFS
	file string
	now  func() time.Time
}

// Open returns a log rooted at fsys. The file is created on first append.
func Open(fsys zfilesystem.ReadWriteFileFS, cfg Config) (*Log, error) {
	file := cfg.File
	if file == "" {
		file = DefaultFile
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	if dir := path.Dir(file); dir != "." {
		if err := fsys.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("open event log: create dir: %w", err)
		}
	}

	return &Log{fs: fsys, file: file, now: now}, nil
}

// Append writes one line: "[timestamp] KIND k=v k=v". kv alternates keys
// and values; floats are written with one decimal.
func (l *Log) Append(kind Kind, kv ...any) error {
	line := Format(l.now(), kind, kv...)

	existing, err := l.fs.ReadFile(l.file)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("append event: read %s: %w", l.file, err)
	}

	buf := make([]byte, 0, len(existing)+len(line)+1)
	buf = append(buf, existing...)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	if err := l.fs.WriteFile(l.file, buf, 0o600); err != nil {
		return fmt.Errorf("append event: write %s: %w", l.file, err)
	}

	return nil
}

// Recent returns up to n of the most recent lines, oldest first. A missing
// log yields no lines.
func (l *Log) Recent(n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	data, err := l.fs.ReadFile(l.file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("recent events: read %s: %w", l.file, err)
	}

	data = bytes.TrimRight(data, "\n")
	if len(data) == 0 {
		return nil, nil
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

// Format renders an event line without the trailing newline.
func Format(at time.Time, kind Kind, kv ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", at.Format(timeLayout), sanitize(string(kind)))

	for i := 0; i < len(kv); i += 2 {
		key := sanitize(fmt.Sprint(kv[i]))
		if i+1 >= len(kv) {
			fmt.Fprintf(&b, " %s", key)
			break
		}
		fmt.Fprintf(&b, " %s=%s", key, sanitize(formatValue(kv[i+1])))
	}

	return b.String()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case float64:
		return fmt.Sprintf("%.1f", v)
	case float32:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprint(v)
	}
}

// sanitize keeps each event on one line.
func sanitize(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
