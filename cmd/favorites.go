package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progress"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "List favorite words, or toggle them with --toggle",
	RunE: func(cmd *cobra.Command, args []string) error {
		toggle, _ := cmd.Flags().GetStringSlice("toggle")

		e, err := openEnv(cmd, envOptions{lock: len(toggle) > 0, durable: len(toggle) > 0, catalog: true})
		if err != nil {
			return err
		}
		defer e.Close()
		catalog, err := e.requireCatalog()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, id := range toggle {
			if _, ok := catalog.Word(id); !ok {
				return fmt.Errorf("unknown word %q", id)
			}
			if e.progress.ToggleFavorite(id) {
				fmt.Fprintf(out, "♥ %s\n", id)
			} else {
				fmt.Fprintf(out, "♡ %s\n", id)
			}
		}
		if len(toggle) > 0 {
			return nil
		}

		list := mastery.NewService(catalog, e.progress).Favorites()
		if len(list) == 0 {
			fmt.Fprintln(out, "No favorite words yet.")
			return nil
		}
		t := newTable(out, "我的收藏")
		t.AppendHeader(table.Row{"ID", "Word", "Meaning", "Unit", "Mastery"})
		for _, ws := range list {
			t.AppendRow(table.Row{ws.Word.ID, ws.Word.Word, ws.Word.Meaning, ws.Source.UnitName,
				mastery.Stars(ws.Progress.MasteryLevel, progress.MaxMastery)})
		}
		t.Render()
		return nil
	},
}

func init() {
	favoritesCmd.Flags().StringSlice("toggle", nil, "Word IDs to add to or remove from favorites")
}
