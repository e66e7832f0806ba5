package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/mastery"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()
		catalog, err := e.requireCatalog()
		if err != nil {
			return err
		}

		ov := mastery.NewService(catalog, e.progress).Overview()
		out := cmd.OutOrStdout()

		t := newTable(out, "学习统计")
		t.AppendRows([]table.Row{
			{"已学单词", fmt.Sprintf("%d / %d", ov.Learned, ov.TotalWords)},
			{"已掌握", ov.Mastered},
			{"总正确率", fmt.Sprintf("%d%%", ov.Accuracy)},
			{"连续学习", fmt.Sprintf("%d 天", ov.CurrentStreak)},
			{"最长连续", fmt.Sprintf("%d 天", ov.LongestStreak)},
			{"今日复习", fmt.Sprintf("%d (正确率 %d%%)", ov.Today.Reviewed, ov.Today.Accuracy())},
			{"错词 / 错句", fmt.Sprintf("%d / %d", len(e.progress.WrongWords()), len(e.progress.WrongSentences()))},
		})
		for _, st := range []mastery.MasteryState{mastery.StateMastered, mastery.StateLearning, mastery.StateReview} {
			t.AppendRow(table.Row{st.Label(), ov.States[st]})
		}
		t.Render()

		if len(ov.Units) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		ut := newTable(out, "单元进度")
		ut.AppendHeader(table.Row{"课本", "单元", "标题", "已学", "总数", "完成"})
		for _, u := range ov.Units {
			ut.AppendRow(table.Row{u.BookName, u.Unit, u.Title, u.Learned, u.Total, fmt.Sprintf("%d%%", u.Percent())})
		}
		ut.Render()
		return nil
	},
}
