package pipeline

import (
	"gocv.io/x/gocv"
)

const (
	DefaultKeyDelay = 5
	DefaultQuitKey  = 'q'
)

// WindowDisplay shows frames in an OpenCV highgui window and polls the
// keyboard for the quit key after each frame.
type WindowDisplay struct {
	window  *gocv.Window
	delayMS int
	quitKey int
}

func NewWindowDisplay(title string, delayMS int, quitKey rune) *WindowDisplay {
	if delayMS <= 0 {
		delayMS = DefaultKeyDelay
	}
	return &WindowDisplay{
		window:  gocv.NewWindow(title),
		delayMS: delayMS,
		quitKey: int(quitKey),
	}
}

func (d *WindowDisplay) Show(frame gocv.Mat) bool {
	view := ToDisplayable(frame)
	defer view.Close()

	d.window.IMShow(view)
	return d.window.WaitKey(d.delayMS)&0xFF == d.quitKey
}

func (d *WindowDisplay) Close() error {
	return d.window.Close()
}

// NopDisplay discards frames. Used for headless runs.
type NopDisplay struct{}

func (NopDisplay) Show(gocv.Mat) bool { return false }
func (NopDisplay) Close() error       { return nil }
