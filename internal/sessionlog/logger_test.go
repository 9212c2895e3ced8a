package sessionlog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNew_CreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study_log.csv")
	New(path)

	rows := readRows(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"start_time", "end_time", "net_duration_minutes", "date", "day_of_week"}, rows[0])
}

func TestNew_DoesNotOverwriteExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study_log.csv")

	logger := New(path)
	start := time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)
	logger.LogSession(start, start.Add(5*time.Second), 5*time.Second)

	// A second logger against the same path keeps the existing rows.
	New(path)
	rows := readRows(t, path)
	assert.Len(t, rows, 2)
}

func TestLogSession_AppendsRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study_log.csv")
	logger := New(path)

	start := time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC) // a Monday
	logger.LogSession(start, start.Add(5*time.Second), 5*time.Second)

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"2024-05-06 09:30:00",
		"2024-05-06 09:30:05",
		"0.08",
		"2024-05-06",
		"Monday",
	}, rows[1])
}

func TestLogSession_RoundsNetMinutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study_log.csv")
	logger := New(path)

	start := time.Date(2024, 5, 7, 14, 0, 0, 0, time.UTC)
	logger.LogSession(start, start.Add(250*time.Second), 250*time.Second)

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "4.17", rows[1][2])
	assert.Equal(t, "Tuesday", rows[1][4])
}

func TestLogSession_IgnoresAbortedIntervals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study_log.csv")
	logger := New(path)

	now := time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)
	logger.LogSession(time.Time{}, now, 5*time.Second)
	logger.LogSession(now, time.Time{}, 5*time.Second)
	logger.LogSession(now, now.Add(5*time.Second), 0)
	logger.LogSession(now, now.Add(5*time.Second), -time.Second)

	rows := readRows(t, path)
	assert.Len(t, rows, 1, "store must stay header-only")
}

func TestLogSession_MultipleRowsAppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study_log.csv")
	logger := New(path)

	start := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * time.Minute
		logger.LogSession(start.Add(offset), start.Add(offset+30*time.Second), 30*time.Second)
	}

	rows := readRows(t, path)
	require.Len(t, rows, 4)
	assert.Equal(t, "2024-05-06 09:00:00", rows[1][0])
	assert.Equal(t, "2024-05-06 09:02:00", rows[3][0])
}
