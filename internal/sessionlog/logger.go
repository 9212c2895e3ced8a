// Package sessionlog appends completed study intervals to a CSV record.
//
// Logging is best effort: every I/O failure is reported through the standard
// logger and swallowed, so a broken log file can never interrupt the timer
// cycle.
package sessionlog

import (
	"encoding/csv"
	"log"
	"math"
	"os"
	"strconv"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

var header = []string{"start_time", "end_time", "net_duration_minutes", "date", "day_of_week"}

// Logger writes one row per completed study interval, append-only.
type Logger struct {
	path string
}

// New creates a logger for the given CSV path and ensures the file exists
// with the expected header. An existing file is left untouched.
func New(path string) *Logger {
	logger := &Logger{path: path}
	logger.ensureFile()
	return logger
}

// Path returns the location of the CSV store.
func (logger *Logger) Path() string {
	return logger.path
}

// LogSession appends one completed interval. Zero timestamps or a
// non-positive net duration mean the interval was aborted, so the call is a
// silent no-op.
func (logger *Logger) LogSession(start, end time.Time, net time.Duration) {
	if start.IsZero() || end.IsZero() || net <= 0 {
		return
	}

	netMinutes := math.Round(net.Seconds()/60*100) / 100
	row := []string{
		start.Format(timestampLayout),
		end.Format(timestampLayout),
		strconv.FormatFloat(netMinutes, 'f', -1, 64),
		start.Format("2006-01-02"),
		start.Weekday().String(),
	}

	file, err := os.OpenFile(logger.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("session log: open %s: %v", logger.path, err)
		return
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(row); err != nil {
		log.Printf("session log: append: %v", err)
		return
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("session log: flush: %v", err)
	}
}

func (logger *Logger) ensureFile() {
	if _, err := os.Stat(logger.path); err == nil {
		return
	} else if !os.IsNotExist(err) {
		log.Printf("session log: stat %s: %v", logger.path, err)
		return
	}

	file, err := os.Create(logger.path)
	if err != nil {
		log.Printf("session log: create %s: %v", logger.path, err)
		return
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		log.Printf("session log: write header: %v", err)
		return
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("session log: flush header: %v", err)
	}
}
