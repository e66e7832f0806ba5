package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/tutor"
)

// cliClient is the rate-limit identity of the local command line.
const cliClient = "cli"

var askCmd = &cobra.Command{
	Use:   "ask [QUESTION]",
	Short: "Ask the AI helper a question, or chat interactively without one",
	Example: `  wordiz ask "What is the past tense of go?"
  wordiz ask --word grade5-upper-u1-w3
  wordiz ask`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wordID, _ := cmd.Flags().GetString("word")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		t, err := newTutor(ctx, e)
		if err != nil {
			return err
		}
		if !t.Configured() {
			return fmt.Errorf("%w: %v", tutor.ErrNotConfigured, e.cfg.LLM.Validate())
		}
		out := cmd.OutOrStdout()

		if wordID != "" {
			catalog, err := e.requireCatalog()
			if err != nil {
				return err
			}
			w, ok := catalog.Word(wordID)
			if !ok {
				return fmt.Errorf("unknown word %q", wordID)
			}
			ex, err := t.ExplainWord(ctx, cliClient, w)
			if err != nil {
				return err
			}
			printExplanation(out, w.Word, ex)
			return nil
		}

		if len(args) > 0 {
			ans, err := t.Ask(ctx, cliClient, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ans.Text)
			return nil
		}

		fmt.Fprintln(out, "输入问题后按 Enter，空行或 Ctrl+D 退出。")
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "\n? ")
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return scanner.Err()
			}
			q := strings.TrimSpace(scanner.Text())
			if q == "" {
				return nil
			}
			ans, err := t.Ask(ctx, cliClient, q)
			var rl *tutor.RateLimitError
			switch {
			case errors.As(err, &rl):
				fmt.Fprintln(out, rl.Message)
			case err != nil:
				fmt.Fprintf(out, "出错了: %v\n", err)
			default:
				fmt.Fprintln(out, ans.Text)
				e.log.WithField("model", ans.Model).WithField("latency", ans.Latency).Debug("answered")
			}
		}
	},
}

func printExplanation(w io.Writer, word string, ex tutor.Explanation) {
	fmt.Fprintf(w, "%s: %s\n", word, ex.Meaning)
	if ex.Usage != "" {
		fmt.Fprintf(w, "\n用法: %s\n", ex.Usage)
	}
	if len(ex.Examples) > 0 {
		fmt.Fprintln(w, "\n例句:")
		for _, s := range ex.Examples {
			fmt.Fprintf(w, "  %s\n  %s\n", s.En, s.Zh)
		}
	}
	if ex.Tip != "" {
		fmt.Fprintf(w, "\n记忆: %s\n", ex.Tip)
	}
}

func init() {
	askCmd.Flags().String("word", "", "Explain a catalog word by ID instead of asking a question")
	askCmd.Flags().String("provider", "", "Override the configured provider")
}
