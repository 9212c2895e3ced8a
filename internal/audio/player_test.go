package audio

import (
	"os"
	"path/filepath"
	"testing"

	"lockin/internal/core/cycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cueFiles() map[string]string {
	return map[string]string{
		"start_study":       "start_study.mp3",
		"start_short_break": "start_short_break.mp3",
		"start_long_break":  "start_long_break.mp3",
		"end_long_break":    "end_long_break.mp3",
	}
}

func TestNewPlayer_MissingFolder(t *testing.T) {
	_, err := NewPlayer(filepath.Join(t.TempDir(), "nope"), cueFiles())
	assert.ErrorContains(t, err, "cue folder not found")
}

func TestNewPlayer_MissingCueFile(t *testing.T) {
	folder := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(folder, "start_study.mp3"), []byte("x"), 0o644))

	_, err := NewPlayer(folder, cueFiles())
	assert.ErrorContains(t, err, "cue file not found")
}

func TestNewPlayer_AllCuesPresent(t *testing.T) {
	folder := t.TempDir()
	for _, fileName := range cueFiles() {
		require.NoError(t, os.WriteFile(filepath.Join(folder, fileName), []byte("x"), 0o644))
	}

	player, err := NewPlayer(folder, cueFiles())
	require.NoError(t, err)
	assert.NotNil(t, player)

	// Unknown cues are ignored without touching the speaker.
	player.Play(cycle.Cue("unknown"))
}
