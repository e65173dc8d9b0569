package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/ezrec/ls8/emulator"
)

const (
	WATCH_TICK_LIMIT = 1_000_000              // Instructions per run before giving up.
	WATCH_SETTLE     = 100 * time.Millisecond // Quiet time after a change before re-running.
)

// watchRun loads and runs the program once, logging the outcome.
func watchRun(emu *emulator.Emulator, ld *loader, out io.Writer) {
	err := ld.Load(emu)
	if err != nil {
		log.Printf("watch: %v", err)
		return
	}

	emu.Tape.Output = out

	err = emu.Reset()
	if err != nil {
		log.Printf("watch: %v", err)
		return
	}

	done, err := runFor(emu, WATCH_TICK_LIMIT, nil)
	switch {
	case err != nil:
		log.Printf("watch: %v", err)
	case !done:
		log.Printf("watch: still running after %d instructions, stopped", emu.Ticks())
	default:
		log.Printf("watch: halted after %d instructions", emu.Ticks())
	}
}

// watchMode re-runs the program every time its file is written, until
// interrupted.
func watchMode(emu *emulator.Emulator, ld *loader, out io.Writer) (err error) {
	path := filepath.Clean(ld.Path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	defer watcher.Close()

	err = watcher.Watch(filepath.Dir(path))
	if err != nil {
		return
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	rerun := time.After(1 * time.Millisecond)
	for {
		select {
		case <-rerun:
			log.Printf("watch: run %s", filepath.Base(path))
			watchRun(emu, ld, out)
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == path && !ev.IsAttrib() {
				rerun = time.After(WATCH_SETTLE)
			}
		case werr := <-watcher.Error:
			log.Printf("watch: watcher: %v", werr)
		case <-interrupt:
			return
		}
	}
}
