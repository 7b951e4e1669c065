package app

import (
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// HotReloader watches the running binary and reports when a newer build
// replaces it on disk. Useful during development: rebuild, get prompted,
// restart in place.
type HotReloader struct {
	binPath  string
	baseline time.Time
	interval time.Duration
	stop     chan struct{}
}

// NewHotReloader watches the current executable. Returns nil if the
// executable cannot be resolved.
func NewHotReloader(interval time.Duration) *HotReloader {
	path, err := os.Executable()
	if err != nil {
		return nil
	}
	// go build writes a fresh file; resolve symlinks so we stat the target.
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	return &HotReloader{
		binPath:  path,
		baseline: info.ModTime(),
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Watch polls in the background until a newer binary appears, then calls
// onNew once and stops. The callback runs on the watcher goroutine.
func (h *HotReloader) Watch(onNew func()) {
	go func() {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				info, err := os.Stat(h.binPath)
				if err != nil {
					continue
				}
				if info.ModTime().After(h.baseline) {
					onNew()
					return
				}
			}
		}
	}()
}

// Stop ends the watch.
func (h *HotReloader) Stop() {
	close(h.stop)
}

// Defer advances the baseline to the binary's current timestamp so the
// same build is not reported again. Callers re-arm with Watch.
func (h *HotReloader) Defer() {
	if info, err := os.Stat(h.binPath); err == nil {
		h.baseline = info.ModTime()
	}
}

// Restart replaces the current process with the new binary, preserving
// arguments and environment. Does not return on success.
func (h *HotReloader) Restart() error {
	return syscall.Exec(h.binPath, os.Args, os.Environ())
}
