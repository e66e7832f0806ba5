package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/mastery"
)

var wrongCmd = &cobra.Command{
	Use:   "wrong",
	Short: "Inspect and edit the wrong book",
}

var wrongListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wrong words and wrong sentences",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		sentences, _ := cmd.Flags().GetBool("sentences")
		if sentences {
			list := e.progress.WrongSentences()
			if len(list) == 0 {
				fmt.Fprintln(out, "No wrong sentences.")
				return nil
			}
			t := newTable(out, "错句")
			t.AppendHeader(table.Row{"ID", "Sentence", "Reading", "Wrong", "Last"})
			for _, ws := range list {
				t.AppendRow(table.Row{ws.ID, ws.English, ws.ReadingTitleCn, ws.WrongCount, ws.LastWrongDate})
			}
			t.Render()
			return nil
		}

		if e.catalog == nil {
			for _, id := range e.progress.WrongWords() {
				fmt.Fprintln(out, id)
			}
			return nil
		}
		list := mastery.NewService(e.catalog, e.progress).WrongWords()
		if len(list) == 0 {
			fmt.Fprintln(out, "No wrong words.")
			return nil
		}
		t := newTable(out, "错词")
		t.AppendHeader(table.Row{"ID", "Word", "Meaning", "Wrong", "State"})
		for _, ws := range list {
			t.AppendRow(table.Row{ws.Word.ID, ws.Word.Word, ws.Word.Meaning, ws.Progress.WrongCount, ws.State.Label()})
		}
		t.Render()
		return nil
	},
}

var wrongRemoveCmd = &cobra.Command{
	Use:   "remove ID...",
	Short: "Remove words or sentences from the wrong book",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{lock: true, durable: true})
		if err != nil {
			return err
		}
		defer e.Close()

		sentences, _ := cmd.Flags().GetBool("sentences")
		out := cmd.OutOrStdout()
		for _, id := range args {
			var removed bool
			if sentences {
				removed = e.progress.RemoveFromWrongSentences(id)
			} else {
				removed = e.progress.RemoveFromWrongWords(id)
			}
			if removed {
				fmt.Fprintf(out, "removed %s\n", id)
			} else {
				fmt.Fprintf(out, "%s is not in the wrong book\n", id)
			}
		}
		return nil
	},
}

var wrongClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the wrong book",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{lock: true, durable: true})
		if err != nil {
			return err
		}
		defer e.Close()

		sentences, _ := cmd.Flags().GetBool("sentences")
		if sentences {
			n := len(e.progress.WrongSentences())
			e.progress.ClearWrongSentences()
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d wrong sentences\n", n)
			return nil
		}
		n := len(e.progress.WrongWords())
		e.progress.ClearWrongWords()
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %d wrong words\n", n)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{wrongListCmd, wrongRemoveCmd, wrongClearCmd} {
		c.Flags().Bool("sentences", false, "Operate on wrong sentences instead of wrong words")
		wrongCmd.AddCommand(c)
	}
}
