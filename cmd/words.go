package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progress"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List catalog words with search, filters and paging",
	Example: `  wordiz words --book grade5-upper --unit "Unit 1"
  wordiz words --search apple
  wordiz words --where 'wrong && mastery < 2'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, _ := cmd.Flags().GetString("book")
		units, _ := cmd.Flags().GetStringSlice("unit")
		query, _ := cmd.Flags().GetString("search")
		where, _ := cmd.Flags().GetString("where")
		page, _ := cmd.Flags().GetInt("page")

		var filter *content.Filter
		if where != "" {
			f, err := content.CompileFilter(where)
			if err != nil {
				return err
			}
			filter = f
		}

		e, err := openEnv(cmd, envOptions{catalog: true})
		if err != nil {
			return err
		}
		defer e.Close()
		catalog, err := e.requireCatalog()
		if err != nil {
			return err
		}

		var words []content.WordItem
		if book == "" {
			for _, b := range catalog.Books {
				words = append(words, catalog.WordsIn(b.Key())...)
			}
		} else {
			if _, ok := catalog.Book(book); !ok {
				return fmt.Errorf("unknown book %q", book)
			}
			words = catalog.WordsIn(book, units...)
		}

		svc := mastery.NewService(catalog, e.progress)
		if filter != nil {
			words, err = filter.Apply(catalog, words, svc.Facts())
			if err != nil {
				return err
			}
		}
		words = content.Search(words, query)
		res := content.Page(words, page, content.WordsPerPage)

		out := cmd.OutOrStdout()
		if res.Total == 0 {
			fmt.Fprintln(out, "No words match.")
			return nil
		}

		t := newTable(out, "")
		t.AppendHeader(table.Row{"ID", "Word", "Phonetic", "Meaning", "Mastery", ""})
		for _, w := range res.Words {
			st, _ := svc.Status(w.ID)
			mark := ""
			if st.Favorite {
				mark += "♥"
			}
			if st.Wrong {
				mark += "✗"
			}
			t.AppendRow(table.Row{w.ID, w.Word, w.Phonetic, w.Meaning, mastery.Stars(st.Progress.MasteryLevel, progress.MaxMastery), mark})
		}
		t.Render()
		fmt.Fprintf(out, "Page %d/%d, %d words\n", res.Page, res.TotalPages, res.Total)
		return nil
	},
}

func init() {
	f := wordsCmd.Flags()
	f.String("book", "", "Book ID or name (default: all books)")
	f.StringSlice("unit", nil, "Units to include (repeatable; requires --book)")
	f.String("search", "", "Keep words whose spelling or meaning contains this text")
	f.String("where", "", "CEL filter over word, meaning, book, unit, mastery, reviews, wrong, favorite")
	f.Int("page", 1, "Page number")
}
