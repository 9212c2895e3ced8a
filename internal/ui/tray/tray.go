package tray

import (
	"fmt"
	"strings"
	"time"

	"lockin/internal/core/cycle"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStartResume func()
	OnPause       func()
	OnResetCycle  func()
	OnResetAll    func()
	OnSetOpacity  func(alpha float64)
	OnOpenLog     func()
	OnQuit        func()
}

// Snapshot is the engine view the menu is rendered from.
type Snapshot struct {
	State      cycle.State
	Paused     bool
	Active     bool
	Remaining  time.Duration
	CycleStudy time.Duration
	Threshold  time.Duration
}

// Manager owns the system tray menu. The engine accepts redundant commands
// without complaint, so the menu is where Start stays disabled while a phase
// runs unpaused and Pause stays disabled while nothing runs.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	longItem   *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
}

var opacityChoices = []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.longItem = fyne.NewMenuItem("", nil)
	manager.longItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("▶️ Start / Resume", func() {
		if manager.callbacks.OnStartResume != nil {
			manager.callbacks.OnStartResume()
		}
	})

	manager.pauseItem = fyne.NewMenuItem("⏸️ Pause", func() {
		if manager.callbacks.OnPause != nil {
			manager.callbacks.OnPause()
		}
	})
	manager.pauseItem.Disabled = true

	manager.Update(Snapshot{State: cycle.StateStopped})
	return manager
}

// Update re-renders the menu from an engine snapshot.
func (manager *Manager) Update(snapshot Snapshot) {
	manager.statusItem.Label = statusLabel(snapshot)
	manager.longItem.Label = longBreakLabel(snapshot)
	manager.startItem.Disabled = snapshot.Active && !snapshot.Paused
	manager.pauseItem.Disabled = !snapshot.Active || snapshot.Paused
	manager.refreshMenu(snapshot)
}

func (manager *Manager) refreshMenu(snapshot Snapshot) {
	items := make([]*fyne.MenuItem, 0, 10)
	if snapshot.Active {
		items = append(items, manager.statusItem)
	}
	if snapshot.State != cycle.StateStopped {
		items = append(items, manager.longItem)
	}
	if len(items) > 0 {
		items = append(items, fyne.NewMenuItemSeparator())
	}

	opacity := fyne.NewMenuItem("\U0001f4a7 Opacity", nil)
	opacityItems := make([]*fyne.MenuItem, 0, len(opacityChoices))
	for _, choice := range opacityChoices {
		value := choice
		opacityItems = append(opacityItems, fyne.NewMenuItem(fmt.Sprintf("%d%%", int(value*100)), func() {
			if manager.callbacks.OnSetOpacity != nil {
				manager.callbacks.OnSetOpacity(value)
			}
		}))
	}
	opacity.ChildMenu = fyne.NewMenu("", opacityItems...)

	reset := fyne.NewMenuItem("\U0001f504 Reset", nil)
	reset.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("Reset Current Cycle", func() {
			if manager.callbacks.OnResetCycle != nil {
				manager.callbacks.OnResetCycle()
			}
		}),
		fyne.NewMenuItem("\U0001f5d1️ Clear All Statistics", func() {
			if manager.callbacks.OnResetAll != nil {
				manager.callbacks.OnResetAll()
			}
		}),
	)

	openLog := fyne.NewMenuItem("\U0001f4c2 Open Log Folder", func() {
		if manager.callbacks.OnOpenLog != nil {
			manager.callbacks.OnOpenLog()
		}
	})

	quit := fyne.NewMenuItem("❌ Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})

	items = append(items,
		manager.startItem,
		manager.pauseItem,
		fyne.NewMenuItemSeparator(),
		opacity,
		reset,
		openLog,
		fyne.NewMenuItemSeparator(),
		quit,
	)

	manager.app.SetSystemTrayMenu(fyne.NewMenu("LockIn", items...))
}

func statusLabel(snapshot Snapshot) string {
	phase := strings.ReplaceAll(string(snapshot.State), "_", " ")
	seconds := int(snapshot.Remaining.Seconds())
	return fmt.Sprintf("⏳ %s: %dm %ds", phase, seconds/60, seconds%60)
}

func longBreakLabel(snapshot Snapshot) string {
	if snapshot.CycleStudy >= snapshot.Threshold {
		return "\U0001f389 Long Break Available"
	}
	until := snapshot.Threshold - snapshot.CycleStudy
	if snapshot.State == cycle.StateStudying && snapshot.Active && !snapshot.Paused {
		until -= snapshot.Remaining
	}
	if until < 0 {
		until = 0
	}
	return fmt.Sprintf("\U0001f3af Long Break in ~%dm", int(until.Minutes()))
}
