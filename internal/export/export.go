package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"quizdojo/internal/leaderboard"
)

var csvHeader = []string{
	"timestamp",
	"name",
	"studentId",
	"department",
	"phone",
	"difficulty",
	"score",
	"total",
	"elapsedSec",
	"clearedDifficulty",
}

// RecordsCSV renders the rows exactly as stored, without ranking. Cell
// quoting and escaping follow RFC 4180.
func RecordsCSV(records []*leaderboard.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		elapsed := ""
		if r.ElapsedSec != nil {
			elapsed = strconv.Itoa(*r.ElapsedSec)
		}
		row := []string{
			r.Timestamp,
			r.Name,
			r.StudentID,
			r.Department,
			r.Phone,
			string(r.Difficulty),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Total),
			elapsed,
			string(r.Cleared),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func RecordsJSON(records []*leaderboard.Record) ([]byte, error) {
	if records == nil {
		records = []*leaderboard.Record{}
	}
	return json.MarshalIndent(records, "", "  ")
}

// WriteCSV writes the export into dir and returns the file path. File
// names embed the moment of export so repeated exports never clobber
// each other.
func WriteCSV(dir string, records []*leaderboard.Record, now time.Time) (string, error) {
	data, err := RecordsCSV(records)
	if err != nil {
		return "", err
	}
	return writeFile(dir, "csv", data, now)
}

func WriteJSON(dir string, records []*leaderboard.Record, now time.Time) (string, error) {
	data, err := RecordsJSON(records)
	if err != nil {
		return "", err
	}
	return writeFile(dir, "json", data, now)
}

func writeFile(dir, ext string, data []byte, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("leaderboard-%s.%s", now.UTC().Format("20060102-150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
