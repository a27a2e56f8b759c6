// Package main provides the entry point for the Tile Board application.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"tileboard/internal/app"
	"tileboard/internal/board"
	"tileboard/internal/persist"
	"tileboard/internal/version"
	"tileboard/ui/mainwindow"
	"tileboard/ui/prefs"
)

func main() {
	var (
		boardPath = flag.String("board", "", "path to the board file (default ~/.config/tileboard/board.json)")
		verbose   = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tileboard",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	logger.Info("starting", "version", version.Version)

	cfg, err := board.LoadConfig()
	if err != nil {
		logger.Warn("config file invalid, using defaults", "err", err)
	}

	path := *boardPath
	if path == "" {
		path = defaultBoardPath()
	}
	store, err := persist.OpenFileStore(path, cfg.MaxTiles)
	if err != nil {
		logger.Fatal("open board file", "path", path, "err", err)
	}
	logger.Debug("board file", "path", store.Path())

	state, err := app.LoadBoard(store, cfg, logger)
	if err != nil {
		logger.Fatal("load board", "err", err)
	}

	saver := persist.NewDebouncer(store, cfg.DebounceInterval, logger, nil)

	fyneApp := fyneapp.NewWithID("tileboard")
	win := mainwindow.New(fyneApp, state, store, saver, prefs.Load(), logger)

	setupHotReload(win, logger)

	win.ShowAndRun()

	// Final flush so nothing buffered rides on the debounce timer at exit.
	saver.UpdateViewport(state.ID, state.Viewport())
	saver.Flush()
	win.SavePreferences()
}

func defaultBoardPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "tileboard", "board.json")
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled, and piggybacks periodic preference saves on its tick.
func setupHotReload(win *mainwindow.MainWindow, logger *log.Logger) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		logger.Warn("hot reload: unable to determine executable path")
		return
	}

	logger.Debug("hot reload watching",
		"path", reloader.ExecPath(),
		"modified", reloader.StartupTime().Format("15:04:05"))

	reloader.OnTick(func() {
		win.SavePreferencesIfChanged()
	})

	reloader.OnNewBinary(func() {
		logger.Info("hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				win.SavePreferences()
				logger.Info("hot reload: restarting")
				if err := reloader.Restart(); err != nil {
					logger.Error("hot reload: restart failed", "err", err)
				}
			}, win)
	})

	reloader.Start()
}
