package cmd

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/audio"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/screen"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive trainer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay opens the environment, builds screen dependencies and launches
// the TUI.
func runPlay(cmd *cobra.Command) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("wordiz play needs an interactive terminal")
	}

	e, err := openEnv(cmd, envOptions{lock: true, logToFile: true})
	if err != nil {
		return err
	}
	defer e.Close()

	speaker := audio.New(e.cfg.Audio, e.log)
	if w, ok := speaker.(interface{ Wait() }); ok {
		defer w.Wait()
	}

	deps := screen.Deps{
		Progress: e.progress,
		Events:   e.events(),
		Speaker:  speaker,
		Log:      e.log,
	}
	if e.catalog != nil {
		deps.Catalog = e.catalog
		deps.Mastery = mastery.NewService(e.catalog, e.progress)
	}

	e.log.WithField("db", e.cfg.Data.DB).Info("starting trainer")
	return app.Run(deps)
}
