package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.requireStore()
		if err != nil {
			return err
		}
		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if purpose != "" {
			events = lo.Filter(events, func(ev store.LLMRequestEvent, _ int) bool { return ev.Purpose == purpose })
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		t := newTable(out, "")
		t.AppendHeader(table.Row{"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK"})
		for _, ev := range events {
			t.AppendRow(table.Row{
				ev.ID,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Purpose,
				truncate(ev.Model, 28),
				ev.InputTokens,
				ev.OutputTokens,
				ev.LatencyMs,
				okMark(ev.Success),
			})
		}
		t.Render()
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.requireStore()
		if err != nil {
			return err
		}
		ev, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintf(out, "ID:        %d\n", ev.ID)
		fmt.Fprintf(out, "Time:      %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Provider:  %s\n", ev.Provider)
		fmt.Fprintf(out, "Model:     %s\n", ev.Model)
		fmt.Fprintf(out, "Purpose:   %s\n", ev.Purpose)
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", ev.InputTokens, ev.OutputTokens)
		fmt.Fprintf(out, "Latency:   %dms\n", ev.LatencyMs)
		fmt.Fprintf(out, "Success:   %v\n", ev.Success)
		if ev.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", ev.ErrorMessage)
		}

		for _, part := range []struct{ name, body string }{
			{"REQUEST", ev.RequestBody},
			{"RESPONSE", ev.ResponseBody},
		} {
			fmt.Fprintln(out)
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, part.name)
			fmt.Fprintln(out, sep)
			if part.body == "" {
				fmt.Fprintln(out, "(not captured)")
			} else {
				fmt.Fprintln(out, part.body)
			}
		}
		return nil
	},
}

// usage aggregates token counts over a group of events.
type usage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
}

func aggregate(events []store.LLMRequestEvent, key func(store.LLMRequestEvent) string) []usage {
	groups := lo.GroupBy(events, key)
	out := make([]usage, 0, len(groups))
	for k, evs := range groups {
		u := usage{Key: k, Calls: len(evs)}
		for _, ev := range evs {
			u.InputTokens += ev.InputTokens
			u.OutputTokens += ev.OutputTokens
			u.LatencyMs += ev.LatencyMs
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Calls > out[j].Calls })
	return out
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.requireStore()
		if err != nil {
			return err
		}
		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		byPurpose := aggregate(events, func(ev store.LLMRequestEvent) string { return ev.Purpose })
		t := newTable(out, "Usage by Purpose")
		t.AppendHeader(table.Row{"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms"})
		var calls, in, outTok int
		for _, u := range byPurpose {
			t.AppendRow(table.Row{u.Key, u.Calls, u.InputTokens, u.OutputTokens,
				u.InputTokens + u.OutputTokens, u.LatencyMs / int64(u.Calls)})
			calls += u.Calls
			in += u.InputTokens
			outTok += u.OutputTokens
		}
		t.AppendFooter(table.Row{"TOTAL", calls, in, outTok, in + outTok, ""})
		t.Render()

		fmt.Fprintln(out)
		byModel := aggregate(events, func(ev store.LLMRequestEvent) string { return ev.Model })
		ct := newTable(out, "Estimated Cost (USD)")
		ct.AppendHeader(table.Row{"Model", "Calls", "Input", "Output", "Cost"})
		var total float64
		var unknown []string
		for _, u := range byModel {
			cost := llm.LookupCost(u.Key)
			if cost == nil {
				unknown = append(unknown, u.Key)
				ct.AppendRow(table.Row{truncate(u.Key, 32), u.Calls, u.InputTokens, u.OutputTokens, "?"})
				continue
			}
			c := cost.Cost(u.InputTokens, u.OutputTokens)
			total += c
			ct.AppendRow(table.Row{truncate(u.Key, 32), u.Calls, u.InputTokens, u.OutputTokens, formatCost(c)})
		}
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		ct.AppendFooter(table.Row{label, "", "", "", formatCost(total)})
		ct.Render()

		if len(unknown) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

var llmTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a one-line prompt to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.cfg.LLM.Validate(); err != nil {
			return err
		}
		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, e.cfg.LLM, e.events(), e.log)
		if err != nil {
			return err
		}

		req := llm.UserRequest("You are a connectivity check.", "Reply with the single word: pong")
		req.MaxTokens = 16
		resp, err := provider.Generate(llm.WithPurpose(ctx, llm.PurposeProbe), req)
		if err != nil {
			return fmt.Errorf("%s: %w", e.cfg.LLM.Provider, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s [%d in / %d out]\n",
			e.cfg.LLM.Provider, resp.Model, strings.TrimSpace(resp.Text()),
			resp.Usage.InputTokens, resp.Usage.OutputTokens)
		return nil
	},
}

func okMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (qa, explain-word, connectivity)")
	llmTestCmd.Flags().String("provider", "", "Override the configured provider")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
	llmCmd.AddCommand(llmTestCmd)
}
