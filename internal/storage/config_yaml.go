package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lockin/internal/core/model"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

type yamlConfig struct {
	StudyTimeMin       *int              `yaml:"study_time_min"`
	StudyTimeMax       *int              `yaml:"study_time_max"`
	ShortBreakDuration *int              `yaml:"short_break_duration"`
	LongBreakThreshold *int              `yaml:"long_break_threshold"`
	LongBreakDuration  *int              `yaml:"long_break_duration"`
	SoundFolder        *string           `yaml:"sound_folder"`
	SoundFiles         map[string]string `yaml:"sound_files"`
	TotalStudyTime     *int              `yaml:"total_study_time"`
}

// AppDir returns the per-user directory holding the config document and the
// session log, creating it if needed.
func AppDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	dir := filepath.Join(configDir, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create app dir: %w", err)
	}
	return dir, nil
}

// LoadConfig reads the application config from YAML.
//
// A missing file is created with defaults. Keys absent from an existing file
// are back-filled from defaults and the merged document is written back. A
// document that fails to parse falls back to defaults entirely.
func LoadConfig(path string) (model.Config, error) {
	config := model.DefaultConfig()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if writeErr := SaveConfig(path, config); writeErr != nil {
				return config, writeErr
			}
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse config yaml: %w", err)
	}

	if applyYamlConfig(&config, fileData) {
		if err := SaveConfig(path, config); err != nil {
			return config, err
		}
	}
	return config, nil
}

// SaveConfig writes the full application config to YAML.
func SaveConfig(path string, config model.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlConfig{
		StudyTimeMin:       secondsPtr(config.StudyTimeMin),
		StudyTimeMax:       secondsPtr(config.StudyTimeMax),
		ShortBreakDuration: secondsPtr(config.ShortBreakDuration),
		LongBreakThreshold: secondsPtr(config.LongBreakThreshold),
		LongBreakDuration:  secondsPtr(config.LongBreakDuration),
		SoundFolder:        &config.SoundFolder,
		SoundFiles:         config.SoundFiles,
		TotalStudyTime:     secondsPtr(config.TotalStudyTime),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ConfigPath returns the config document location inside the app directory.
func ConfigPath(appDir string) string {
	return filepath.Join(appDir, configFileName)
}

// applyYamlConfig merges file values over defaults and reports whether any
// key was missing and needs a rewrite of the merged document.
func applyYamlConfig(config *model.Config, fileData yamlConfig) bool {
	missing := false

	applySeconds := func(target *time.Duration, value *int) {
		if value == nil {
			missing = true
			return
		}
		*target = time.Duration(*value) * time.Second
	}

	applySeconds(&config.StudyTimeMin, fileData.StudyTimeMin)
	applySeconds(&config.StudyTimeMax, fileData.StudyTimeMax)
	applySeconds(&config.ShortBreakDuration, fileData.ShortBreakDuration)
	applySeconds(&config.LongBreakThreshold, fileData.LongBreakThreshold)
	applySeconds(&config.LongBreakDuration, fileData.LongBreakDuration)
	applySeconds(&config.TotalStudyTime, fileData.TotalStudyTime)

	if fileData.SoundFolder != nil {
		config.SoundFolder = *fileData.SoundFolder
	} else {
		missing = true
	}

	if fileData.SoundFiles != nil {
		for key, fallback := range config.SoundFiles {
			if _, ok := fileData.SoundFiles[key]; !ok {
				fileData.SoundFiles[key] = fallback
				missing = true
			}
		}
		config.SoundFiles = fileData.SoundFiles
	} else {
		missing = true
	}

	return missing
}

func secondsPtr(value time.Duration) *int {
	seconds := int(value / time.Second)
	return &seconds
}
