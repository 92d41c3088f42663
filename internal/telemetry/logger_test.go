package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closeLog, err := NewLogger(path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("quiz started", "difficulty", "easy", "count", 15)
	logger.Error("bank load failed", "path", "questions.json")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("first line is not json: %v", err)
	}
	if entry["msg"] != "quiz started" || entry["difficulty"] != "easy" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestLoggerEmptyPathDiscards(t *testing.T) {
	logger, closeLog, err := NewLogger("")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("dropped")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
