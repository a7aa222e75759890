package game

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// logTimeFormat is the timestamp layout used in game log files.
const logTimeFormat = "2006-01-02 15:04:05"

// Log is the append-only, human-readable ledger of one run. Every append is
// followed by an fsync, so a crash between cycles loses at most the in-memory
// session state, never logged cycles.
//
// A Log is written exclusively by the run loop driving one Session. Other
// consumers read it through ReadLog.
type Log struct {
	f    *os.File
	path string
}

// OpenLog creates the log file for a run under dir, creating dir on demand.
// The filename is derived from the start time and the run ID, so two runs
// started in the same second still get distinct files; creation is O_EXCL so
// a collision fails instead of overwriting.
func OpenLog(dir, runID string, start time.Time) (*Log, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	path := filepath.Join(dir, fmt.Sprintf("game_log_%d_%s.txt", start.Unix(), short))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	return &Log{f: f, path: path}, nil
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

// AppendHeader writes the run header.
func (l *Log) AppendHeader(initialPrompt string, start time.Time) error {
	return l.append(fmt.Sprintf("=== AI Telephone Game with Images ===\nStart Time: %s\nInitial Prompt: %s\n\n",
		start.Format(logTimeFormat), initialPrompt))
}

// AppendCycle writes one completed cycle block.
func (l *Log) AppendCycle(rec CycleRecord, total int) error {
	return l.append(fmt.Sprintf("--- Cycle %d of %d ---\nPrompt: %s\nImage Path: %s\nDescription: %s\n\n",
		rec.Cycle, total, rec.Prompt, rec.ImagePath, rec.Description))
}

// AppendFooter writes the completion footer.
func (l *Log) AppendFooter(end time.Time) error {
	return l.append(fmt.Sprintf("\nGame completed at: %s\n", end.Format(logTimeFormat)))
}

// append writes and flushes a single chunk.
func (l *Log) append(s string) error {
	if _, err := l.f.WriteString(s); err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *Log) Close() error {
	return l.f.Close()
}

// ReadLog returns the full contents of a game log file.
func ReadLog(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read log: %w", err)
	}
	return string(data), nil
}
