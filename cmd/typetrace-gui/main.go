// Command typetrace-gui is a desktop typing recorder.
//
// It records keystrokes typed into its own text area while that area
// holds input focus, lists them, and saves them to a tab-separated
// text file on request. It is not a system-wide input monitor: the only
// key events it ever sees are the ones the windowing toolkit delivers
// to its focused widget.
//
// Usage:
//
//	typetrace-gui [flags]
//
//	-config path   configuration file (default ~/.typetrace/config.toml)
//	-version       print version and exit
package main

import (
	"flag"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"typetrace/cmd/typetrace-gui/internal/theme"
	"typetrace/cmd/typetrace-gui/internal/ui"
	"typetrace/internal/config"
	"typetrace/internal/eventlog"
	"typetrace/internal/history"
	"typetrace/internal/keysym"
	"typetrace/internal/logging"
	"typetrace/internal/notify"
	"typetrace/internal/recorder"
)

// Version information (set at build time).
var version = "dev"

func main() {
	configPath := flag.String("config", "", "configuration file path")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("typetrace-gui %s\n", version)
		return
	}

	loader := config.NewLoader(*configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "typetrace-gui: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LoggingSetup())
	if err != nil {
		fmt.Fprintf(os.Stderr, "typetrace-gui: logging setup: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	defer logger.Close()

	translator := keysym.NewTranslator()
	if path := cfg.Keysym.OverridesPath; path != "" {
		if err := translator.LoadOverrides(path); err != nil {
			logging.Warn("keysym overrides not loaded", "path", path, "err", err)
		}
	}
	loader.OnChange(func(c *config.Config) {
		if path := c.Keysym.OverridesPath; path != "" {
			if err := translator.LoadOverrides(path); err != nil {
				logging.Warn("keysym overrides reload failed", "path", path, "err", err)
			}
		} else {
			translator.ClearOverrides()
		}
	})
	if err := loader.Watch(); err != nil {
		logging.Warn("config watch unavailable", "err", err)
	}
	defer loader.Close()

	go func() {
		w := new(app.Window)
		w.Option(
			app.Title("Typing Recorder"),
			app.Size(unit.Dp(cfg.Window.Width), unit.Dp(cfg.Window.Height)),
			app.MinSize(unit.Dp(cfg.Window.MinWidth), unit.Dp(cfg.Window.MinHeight)),
		)

		if err := loop(w, cfg, translator); err != nil {
			logging.Error("window loop failed", "err", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, cfg *config.Config, translator *keysym.Translator) error {
	t := theme.NewTheme(material.NewTheme())

	source, dialogs := ui.NewCollaborators(t, cfg.Export.Dir)

	opts := []recorder.Option{
		recorder.WithNotifier(notify.New()),
		recorder.WithExportExtension(cfg.Export.Extension),
	}
	if cfg.History.Enabled {
		archive, err := history.Open(cfg.History.Path)
		if err != nil {
			logging.Warn("session history unavailable", "path", cfg.History.Path, "err", err)
		} else {
			defer archive.Close()
			opts = append(opts, recorder.WithArchive(archive))
		}
	}

	rec := recorder.New(eventlog.New(), source, dialogs, opts...)

	view := ui.NewRecorderView(ui.Config{
		Theme:      t,
		Recorder:   rec,
		Source:     source,
		Dialogs:    dialogs,
		Translator: translator,
		OnQuit: func() {
			w.Perform(system.ActionClose)
		},
	})

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			view.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
