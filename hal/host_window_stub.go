//go:build !cgo

package hal

import (
	"errors"
	"log/slog"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Width, Height int
	TPS           int
	Title         string
	Clock         func() float64
	Logger        *slog.Logger
}

func RunWindow(_ Scene, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
