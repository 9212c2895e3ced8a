package main

import (
	"log"
	"path/filepath"
	"time"

	"lockin/internal/audio"
	"lockin/internal/core/cycle"
	"lockin/internal/platform"
	"lockin/internal/sessionlog"
	"lockin/internal/storage"
	"lockin/internal/ui/tray"
	uiwidget "lockin/internal/ui/widget"
	"lockin/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName        = "LockIn"
	logFileName    = "study_log.csv"
	defaultOpacity = 0.8
)

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.lockin.app")
	fyneApp.SetIcon(resources.MustLogo("logo_active.png"))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	appDir, err := storage.AppDir(appName)
	if err != nil {
		log.Printf("app dir: %v", err)
		appDir = "."
	}

	configPath := storage.ConfigPath(appDir)
	config, err := storage.LoadConfig(configPath)
	if err != nil {
		// LoadConfig already fell back to defaults.
		log.Printf("load config: %v", err)
	}

	player, err := audio.NewPlayer(config.SoundFolder, config.SoundFiles)
	if err != nil {
		log.Printf("audio cues: %v", err)
		return
	}

	logger := sessionlog.New(filepath.Join(appDir, logFileName))
	engine := cycle.New(config.CycleConfig(), logger, player, cycle.Options{})

	panel := uiwidget.New(fyneApp, uiwidget.Config{
		Opacity: opacityToAlpha(defaultOpacity),
		Title:   appName,
	})

	activeIcon := resources.MustLogo("logo_active.png")
	pausedIcon := resources.MustLogo("logo_paused.png")

	saveTotal := func() {
		config.TotalStudyTime = engine.TotalStudyTime()
		if err := storage.SaveConfig(configPath, config); err != nil {
			log.Printf("save config: %v", err)
		}
	}

	var trayManager *tray.Manager
	refreshTray := func() {
		snapshot := tray.Snapshot{
			State:      engine.State(),
			Paused:     engine.IsPaused(),
			Active:     engine.IsActive(),
			Remaining:  engine.Remaining(),
			CycleStudy: engine.CycleStudyTime(),
			Threshold:  engine.LongBreakThreshold(),
		}
		fyne.Do(func() {
			trayManager.Update(snapshot)
		})
	}

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnStartResume: func() {
			engine.StartOrResume()
			refreshTray()
		},
		OnPause: func() {
			engine.Pause()
			refreshTray()
		},
		OnResetCycle: func() {
			engine.ResetCycle()
			refreshTray()
		},
		OnResetAll: func() {
			engine.ResetAll()
			saveTotal()
			refreshTray()
		},
		OnSetOpacity: func(value float64) {
			panel.SetOpacity(opacityToAlpha(value))
		},
		OnOpenLog: func() {
			if err := platform.OpenFolder(appDir); err != nil {
				log.Printf("open log folder: %v", err)
			}
		},
		OnQuit: func() {
			engine.Stop()
			saveTotal()
			player.Close()
			fyneApp.Quit()
		},
	})

	desktopApp.SetSystemTrayIcon(activeIcon)

	engine.SubscribeStateChanged(func(statusText string, state cycle.State) {
		paused := engine.IsPaused()
		if state == cycle.StateLongBreaking && !paused {
			panel.StartCountdown("\U0001f9d8 Long Break", engine.Remaining)
		} else {
			panel.StopCountdown()
			panel.SetStatus(statusText)
		}
		fyne.Do(func() {
			if paused {
				desktopApp.SetSystemTrayIcon(pausedIcon)
			} else {
				desktopApp.SetSystemTrayIcon(activeIcon)
			}
		})
		refreshTray()
	})
	engine.SubscribeTotalTime(func(totalSeconds int) {
		panel.SetTotal(totalSeconds)
	})
	engine.SubscribeNotification(func(title, message string) {
		fyneApp.SendNotification(fyne.NewNotification(title, message))
	})

	engine.SetTotalStudyTime(config.TotalStudyTime)
	engine.ResetCycle()

	// Keep the remaining-time rows of the tray menu roughly current.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if engine.IsActive() {
				refreshTray()
			}
		}
	}()

	panel.Show()
	fyneApp.Run()
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
