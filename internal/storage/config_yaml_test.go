package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lockin/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadConfig_MissingFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), config)

	_, err = os.Stat(path)
	assert.NoError(t, err, "defaults should be written out")
}

func TestLoadConfig_BackfillsMissingKeysAndRewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "study_time_min: 60\ntotal_study_time: 300\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, time.Minute, config.StudyTimeMin)
	assert.Equal(t, 5*time.Minute, config.TotalStudyTime)
	defaults := model.DefaultConfig()
	assert.Equal(t, defaults.StudyTimeMax, config.StudyTimeMax)
	assert.Equal(t, defaults.ShortBreakDuration, config.ShortBreakDuration)
	assert.Equal(t, defaults.SoundFiles, config.SoundFiles)

	// The merged document was rewritten with the back-filled keys.
	rawData, err := os.ReadFile(path)
	require.NoError(t, err)
	var document map[string]any
	require.NoError(t, yaml.Unmarshal(rawData, &document))
	assert.Contains(t, document, "short_break_duration")
	assert.Contains(t, document, "sound_files")
	assert.Equal(t, 60, document["study_time_min"])
}

func TestLoadConfig_MalformedFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("study_time_min: [not: valid\n"), 0o644))

	config, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Equal(t, model.DefaultConfig(), config)
}

func TestSaveConfig_RoundTripsTotalStudyTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	config := model.DefaultConfig()
	config.TotalStudyTime = 42 * time.Minute
	require.NoError(t, SaveConfig(path, config))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 42*time.Minute, loaded.TotalStudyTime)
	assert.Equal(t, config, loaded)
}

func TestLoadConfig_PartialSoundFilesBackfilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "sound_files:\n  start_study: chime.mp3\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "chime.mp3", config.SoundFiles[model.SoundStartStudy])
	assert.Equal(t, "end_long_break.mp3", config.SoundFiles[model.SoundEndLongBreak])
}
