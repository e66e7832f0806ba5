package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Back up or restore learning progress",
}

var progressExportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write progress to FILE, or stdout when omitted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		format, err := backupFormat(cmd, path)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		if path == "" || path == "-" {
			return e.progress.Export(cmd.OutOrStdout(), format)
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := e.progress.Export(f, format); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported progress to %s\n", path)
		return nil
	},
}

var progressImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace progress with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		format, err := backupFormat(cmd, path)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		e, err := openEnv(cmd, envOptions{lock: true, durable: true})
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.progress.Import(f, format); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s: %d words reviewed, %d wrong words, %d favorites\n",
			path, len(e.progress.Snapshot().WordProgress), len(e.progress.WrongWords()), len(e.progress.Favorites()))
		e.log.WithField("file", path).Info("progress imported")
		return nil
	},
}

// backupFormat resolves --format, falling back to the file extension.
func backupFormat(cmd *cobra.Command, path string) (progress.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	if name != "" {
		return progress.ParseFormat(name)
	}
	return progress.FormatFromPath(path), nil
}

func init() {
	for _, c := range []*cobra.Command{progressExportCmd, progressImportCmd} {
		c.Flags().String("format", "", "Backup format: json, yaml or toml (default: from the file extension)")
		progressCmd.AddCommand(c)
	}
}
