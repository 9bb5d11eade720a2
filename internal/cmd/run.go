package cmd

import (
	"path/filepath"

	"codelaunch/internal/gui"
	"codelaunch/internal/instance"
	"codelaunch/internal/launch"
	"codelaunch/internal/log"
	"codelaunch/internal/tui"
	"codelaunch/internal/watch"

	"github.com/spf13/cobra"
)

type frontEnd int

const (
	frontAuto frontEnd = iota
	frontGUI
	frontTUI
)

func (o *options) guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the launcher window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runFrontEnd(frontGUI)
		},
	}
}

func (o *options) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the launcher in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runFrontEnd(frontTUI)
		},
	}
}

// runFrontEnd makes sure only one launcher runs, then drives the chosen
// front end until the user exits.
func (o *options) runFrontEnd(mode frontEnd) error {
	guard, outcome, err := instance.Acquire(filepath.Dir(o.store.Path()), o.title())
	if err != nil {
		log.LogWithError(err).Warn("single-instance check unavailable, starting anyway")
	}
	if outcome == instance.Raised {
		return nil
	}
	defer guard.Release()

	var raises <-chan struct{}
	if guard != nil {
		raises = guard.Raises()
	}

	ui, err := o.newFrontEnd(mode)
	if err != nil {
		return err
	}

	cfg := o.store.Current()
	if cfg.Watching() {
		if w, err := watch.New(cfg.NativeRoot, watch.DefaultDebounce); err != nil {
			log.LogWithError(err).Warn("workspace watcher unavailable")
		} else if err := w.Start(ui.Rescan); err != nil {
			log.LogWithError(err).Warn("not watching workspace directory")
		} else {
			defer w.Stop()
		}
	}

	return ui.Run(raises)
}

func (o *options) newFrontEnd(mode frontEnd) (gui.Interface, error) {
	gate := launch.NewGate(nil)
	if mode == frontTUI {
		return tui.New(o.store, gate, o.title()), nil
	}
	ui, err := gui.New(o.store, gate, o.title())
	if err == nil {
		return ui, nil
	}
	if mode == frontGUI {
		return nil, err
	}
	log.LogWithError(err).Info("falling back to the terminal interface")
	return tui.New(o.store, gate, o.title()), nil
}
