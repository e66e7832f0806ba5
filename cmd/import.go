package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/content"
)

// converter turns one Markdown source into the JSON document the catalog
// loader reads.
type converter struct {
	kind   string
	output string
	parse  func(src string) (any, *content.CheckReport)
	check  func(src string) *content.CheckReport
}

var converters = []converter{
	{
		kind:   "words",
		output: content.WordsFile,
		parse: func(src string) (any, *content.CheckReport) {
			books, rep := content.ParseWordsMarkdown(src)
			return books, rep
		},
		check: content.CheckWords,
	},
	{
		kind:   "readings",
		output: content.ReadingsFile,
		parse: func(src string) (any, *content.CheckReport) {
			readings, rep := content.ParseReadingsMarkdown(src)
			return map[string]any{"readings": readings}, rep
		},
		check: content.CheckReadings,
	},
	{
		kind:   "listen",
		output: content.ListenFile,
		parse: func(src string) (any, *content.CheckReport) {
			speeches, rep := content.ParseListenMarkdown(src)
			return map[string]any{"books": content.GroupSpeeches(speeches)}, rep
		},
		check: content.CheckListen,
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert Markdown sources into catalog JSON",
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check Markdown sources for format problems without writing anything",
}

func init() {
	for _, c := range converters {
		importCmd.AddCommand(newImportCmd(c))
		checkCmd.AddCommand(newCheckCmd(c))
	}
}

func newImportCmd(c converter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   c.kind + " SOURCE.md",
		Short: fmt.Sprintf("Convert %s Markdown into %s", c.kind, c.output),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			doc, rep := c.parse(src)
			out := cmd.OutOrStdout()
			printReport(out, args[0], rep)
			if !rep.OK() {
				return fmt.Errorf("%s: %d errors, nothing written", args[0], len(rep.Errors))
			}

			dest, _ := cmd.Flags().GetString("output")
			if dest == "" {
				cfg, err := config.Load(cmd.Flags())
				if err != nil {
					return err
				}
				dest = filepath.Join(cfg.Data.ContentDir, c.output)
			}
			if err := content.WriteJSON(dest, doc); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}
			fmt.Fprintf(out, "wrote %s\n", dest)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default: "+c.output+" in the content directory)")
	return cmd
}

func newCheckCmd(c converter) *cobra.Command {
	return &cobra.Command{
		Use:   c.kind + " SOURCE.md",
		Short: fmt.Sprintf("Check %s Markdown", c.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			rep := c.check(src)
			printReport(cmd.OutOrStdout(), args[0], rep)
			if !rep.OK() {
				return fmt.Errorf("%s: %d errors", args[0], len(rep.Errors))
			}
			return nil
		},
	}
}

func readSource(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// printReport writes the statistics table followed by every warning and
// error of a check.
func printReport(w io.Writer, name string, rep *content.CheckReport) {
	if len(rep.Stats) > 0 {
		t := newTable(w, name)
		for _, s := range rep.Stats {
			t.AppendRow(table.Row{s.Name, s.Value})
		}
		t.Render()
	}
	for _, msg := range rep.Warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
	for _, msg := range rep.Errors {
		fmt.Fprintf(w, "error: %s\n", msg)
	}
	if rep.OK() && len(rep.Warnings) == 0 {
		fmt.Fprintln(w, "✓ no problems found")
	}
}
