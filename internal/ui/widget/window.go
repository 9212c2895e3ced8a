// Package widget renders the always-on-top status panel.
package widget

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines panel visuals.
type Config struct {
	Opacity uint8
	Title   string
}

// Panel is the small frameless window showing the current phase and the
// accumulated focus total.
type Panel struct {
	app         fyne.App
	window      fyne.Window
	config      Config
	background  *canvas.Rectangle
	statusLabel *widget.Label
	totalLabel  *canvas.Text

	countdownMu   sync.Mutex
	countdownStop chan struct{}
}

const (
	panelWidth  = float32(220)
	panelHeight = float32(120)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the status panel. On drivers that support it the window is
// undecorated (no native frame or buttons).
func New(app fyne.App, config Config) *Panel {
	window := app.NewWindow(config.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 46, G: 52, B: 64, A: config.Opacity})

	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter
	statusLabel.Wrapping = fyne.TextWrapWord

	totalLabel := canvas.NewText("", color.NRGBA{R: 163, G: 190, B: 140, A: 255})
	totalLabel.Alignment = fyne.TextAlignCenter
	totalLabel.TextSize = 12

	content := container.NewVBox(statusLabel, totalLabel)
	root := container.NewStack(background, container.NewPadded(content))

	window.SetContent(root)
	window.Resize(fyne.NewSize(panelWidth, panelHeight))

	return &Panel{
		app:         app,
		window:      window,
		config:      config,
		background:  background,
		statusLabel: statusLabel,
		totalLabel:  totalLabel,
	}
}

// Show displays the panel.
func (panel *Panel) Show() {
	panel.window.Show()
}

// Hide hides the panel.
func (panel *Panel) Hide() {
	panel.window.Hide()
}

// SetStatus updates the phase text.
func (panel *Panel) SetStatus(text string) {
	fyne.Do(func() {
		panel.statusLabel.SetText(text)
	})
}

// SetTotal updates the focus total line.
func (panel *Panel) SetTotal(totalSeconds int) {
	fyne.Do(func() {
		panel.totalLabel.Text = fmt.Sprintf("Total focus: %dh %dm", totalSeconds/3600, (totalSeconds/60)%60)
		panel.totalLabel.Refresh()
	})
}

// SetOpacity adjusts the background transparency.
func (panel *Panel) SetOpacity(alpha uint8) {
	panel.config.Opacity = alpha
	fyne.Do(func() {
		panel.background.FillColor = color.NRGBA{R: 46, G: 52, B: 64, A: alpha}
		canvas.Refresh(panel.background)
	})
}

// StartCountdown replaces the status text with a once-per-second countdown
// fed by the remaining callback. The callback decides what "remaining"
// means, so a paused engine freezes the displayed value.
func (panel *Panel) StartCountdown(title string, remaining func() time.Duration) {
	panel.StopCountdown()

	panel.countdownMu.Lock()
	stop := make(chan struct{})
	panel.countdownStop = stop
	panel.countdownMu.Unlock()

	render := func() {
		panel.SetStatus(title + "\n" + formatCountdown(remaining()))
	}
	render()

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				render()
			}
		}
	}()
}

// StopCountdown ends the countdown display, if one is running.
func (panel *Panel) StopCountdown() {
	panel.countdownMu.Lock()
	if panel.countdownStop != nil {
		close(panel.countdownStop)
		panel.countdownStop = nil
	}
	panel.countdownMu.Unlock()
}

func formatCountdown(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
