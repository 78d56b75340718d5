// boardtouch-term runs the interactive board in a terminal with mouse support.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hailam/boardtouch/internal/sound/player"
	"github.com/hailam/boardtouch/internal/storage"
	"github.com/hailam/boardtouch/internal/term"
)

func main() {
	fen := flag.String("fen", "", "start position (default: stored position or the standard start)")
	dataDir := flag.String("data", "", "directory for preferences (default: platform data dir)")
	mute := flag.Bool("mute", false, "disable sound effects")
	material := flag.String("material", "", "piece set: classic, marble, wood or neon")
	logPath := flag.String("log", "", "write the log to this file (default: discard)")
	flag.Parse()

	set, err := storage.ParseMaterialSet(*material)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// The terminal belongs to the board while it runs.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(*fen, *dataDir, *mute, set); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fen, dataDir string, mute bool, set storage.MaterialSet) error {
	prefs := storage.DefaultPreferences()
	store, err := storage.NewStorageAt(dataDir)
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
		store = nil
	} else {
		defer store.Close()
		if p, err := store.LoadPreferences(); err != nil {
			log.Printf("Warning: Failed to load preferences: %v", err)
		} else {
			prefs = p
		}
	}
	if mute {
		prefs.SoundEnabled = false
	}
	if set.Valid() {
		prefs.MaterialSet = set
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	sounds := player.New(prefs.SoundEnabled)
	defer sounds.Close()

	cfg := term.Config{Position: fen, Prefs: prefs, Sound: sounds}
	if store != nil {
		cfg.Store = store
	}
	app, err := term.New(screen, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	err = app.Run(ctx)

	if store != nil {
		sum := app.Summary()
		sum.Duration = time.Since(started)
		if err := store.RecordSession(sum); err != nil {
			log.Printf("Warning: Failed to record session: %v", err)
		}
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
