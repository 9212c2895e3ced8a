// Package audio plays the transition cues configured for the cycle engine.
package audio

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"lockin/internal/core/cycle"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const (
	speakerRate     = beep.SampleRate(44100)
	resampleQuality = 4
)

// Player resolves cue keys to audio files and plays them through the system
// speaker. Construction fails if the cue folder or any configured file is
// missing; playback errors after that are logged and dropped.
type Player struct {
	paths map[cycle.Cue]string

	initOnce sync.Once
	initErr  error
}

// NewPlayer validates the cue folder and the configured cue files.
func NewPlayer(folder string, files map[string]string) (*Player, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("cue folder not found: %s", folder)
	}

	paths := make(map[cycle.Cue]string, len(files))
	for key, fileName := range files {
		path := filepath.Join(folder, fileName)
		fileInfo, err := os.Stat(path)
		if err != nil || fileInfo.IsDir() {
			return nil, fmt.Errorf("cue file not found: %s", path)
		}
		paths[cycle.Cue(key)] = path
	}

	return &Player{paths: paths}, nil
}

// Play decodes and plays the cue, replacing anything currently playing.
func (player *Player) Play(cue cycle.Cue) {
	path, ok := player.paths[cue]
	if !ok {
		return
	}

	player.initOnce.Do(func() {
		player.initErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	if player.initErr != nil {
		log.Printf("audio: speaker init: %v", player.initErr)
		return
	}

	file, err := os.Open(path)
	if err != nil {
		log.Printf("audio: open %s: %v", path, err)
		return
	}

	streamer, format, err := decode(file, path)
	if err != nil {
		log.Printf("audio: decode %s: %v", path, err)
		_ = file.Close()
		return
	}

	speaker.Clear()
	resampled := beep.Resample(resampleQuality, format.SampleRate, speakerRate, streamer)
	speaker.Play(beep.Seq(resampled, beep.Callback(func() {
		_ = streamer.Close()
	})))
}

// Close releases the speaker if it was initialized.
func (player *Player) Close() {
	player.initOnce.Do(func() {
		player.initErr = fmt.Errorf("speaker never initialized")
	})
	if player.initErr == nil {
		speaker.Close()
	}
}

func decode(file *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(file)
	default:
		return mp3.Decode(file)
	}
}
