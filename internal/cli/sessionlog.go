package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogEventType identifies the type of logged event
type LogEventType string

const (
	LogEventEnqueue  LogEventType = "enqueue"
	LogEventScramble LogEventType = "scramble"
	LogEventSolve    LogEventType = "solve"
	LogEventReset    LogEventType = "reset"
)

// LogEvent represents a single logged event
type LogEvent struct {
	Timestamp time.Time    `json:"timestamp"`
	ElapsedMs int64        `json:"elapsed_ms"`
	EventType LogEventType `json:"event_type"`
	Notation  string       `json:"notation,omitempty"`
}

// SessionLog is a complete play session
type SessionLog struct {
	Version   string     `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	Events    []LogEvent `json:"events"`
}

type logHeader struct {
	Type      string    `json:"type"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

const sessionLogVersion = "1.0"

// SessionLogger appends play events to a JSONL file. A zero SessionLogger
// is disabled and drops every event.
type SessionLogger struct {
	startTime time.Time
	file      *os.File
	now       func() time.Time
}

// defaultLogDir returns ~/.cubestate/logs.
func defaultLogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubestate", "logs"), nil
}

// StartSessionLog creates a timestamped log file in logDir.
func StartSessionLog(logDir string) (*SessionLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	start := time.Now()
	filename := fmt.Sprintf("session_%s.jsonl", start.Format("20060102_150405"))
	file, err := os.Create(filepath.Join(logDir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l := &SessionLogger{startTime: start, file: file, now: time.Now}
	if err := l.writeJSON(logHeader{Type: "header", Version: sessionLogVersion, CreatedAt: start}); err != nil {
		file.Close()
		return nil, err
	}
	return l, nil
}

// LogEnqueue logs notation typed or keyed by the player.
func (l *SessionLogger) LogEnqueue(notation string) {
	l.log(LogEventEnqueue, notation)
}

// LogScramble logs a generated scramble.
func (l *SessionLogger) LogScramble(scramble string) {
	l.log(LogEventScramble, scramble)
}

// LogSolve logs a solve request.
func (l *SessionLogger) LogSolve() {
	l.log(LogEventSolve, "")
}

// LogReset logs a reset.
func (l *SessionLogger) LogReset() {
	l.log(LogEventReset, "")
}

func (l *SessionLogger) log(t LogEventType, notation string) {
	if l == nil || l.file == nil {
		return
	}
	now := l.now()
	l.writeJSON(LogEvent{
		Timestamp: now,
		ElapsedMs: now.Sub(l.startTime).Milliseconds(),
		EventType: t,
		Notation:  notation,
	})
}

func (l *SessionLogger) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = l.file.Write(append(data, '\n'))
	return err
}

// Close closes the log file
func (l *SessionLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the current log file path
func (l *SessionLogger) FilePath() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}

// LoadSessionLog loads a session log from a JSONL file
func LoadSessionLog(path string) (*SessionLog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	log := &SessionLog{Events: make([]LogEvent, 0)}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		// First line is the header
		if lineNum == 1 {
			var header logHeader
			if err := json.Unmarshal(line, &header); err != nil {
				return nil, fmt.Errorf("failed to parse header: %w", err)
			}
			if header.Type != "header" {
				return nil, fmt.Errorf("missing header in %s", path)
			}
			log.Version = header.Version
			log.CreatedAt = header.CreatedAt
			continue
		}

		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("failed to parse event at line %d: %w", lineNum, err)
		}
		log.Events = append(log.Events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	return log, nil
}
