// Package practice holds the pieces the flashcard, dictation and
// sentence screens share: error wording, the progress line and the
// leave-session prompt.
package practice

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/dictation"
	"github.com/abhisek/wordiz/internal/sentence"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// DescribeError turns an engine error into the message shown to the
// learner.
func DescribeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrNoCatalog):
		return "词库尚未加载"
	case errors.Is(err, session.ErrEmptySelection):
		return "请至少选择一个单元"
	case errors.Is(err, session.ErrEmptyPool):
		return "所选范围内没有可练习的内容"
	case errors.Is(err, sentence.ErrTokenCount):
		return "请填写每一个单词"
	case errors.Is(err, dictation.ErrNotAnswered), errors.Is(err, sentence.ErrNotAnswered):
		return "请先答对或跳过这一题"
	}
	return err.Error()
}

// ProgressLine renders "label  3/10" with a bar filling the rest of width.
func ProgressLine(label string, pos session.Position, width int) string {
	counter := fmt.Sprintf("%d/%d", min(pos.Index+1, pos.Total), pos.Total)
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + label)
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter + "  ")

	barWidth := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	bar := components.Bar(pos.Fraction(), barWidth)

	var b strings.Builder
	b.WriteString(left + "  " + bar + "  " + right)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	return b.String()
}

// Centered renders text centered in width with the given foreground.
func Centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

// QuitConfirm renders the leave-session prompt.
func QuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(Centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "结束本次练习？"))
	b.WriteString("\n")
	b.WriteString(Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "已经作答的题目会保留记录。"))
	b.WriteString("\n\n")
	b.WriteString(Centered(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] 结束练习"))
	b.WriteString("\n")
	b.WriteString(Centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] 继续练习"))
	return b.String()
}

// ErrorLine renders a one-line error, or nothing for an empty message.
func ErrorLine(width int, msg string) string {
	if msg == "" {
		return ""
	}
	return Centered(width, lipgloss.NewStyle().Foreground(theme.Error), "⚠ "+msg)
}

// Picker cycles through a fixed list with left/right.
type Picker struct {
	Options  []string
	Selected int
}

// Move shifts the selection by delta, wrapping around.
func (p *Picker) Move(delta int) {
	n := len(p.Options)
	if n == 0 {
		return
	}
	p.Selected = ((p.Selected+delta)%n + n) % n
}

// Value returns the selected option, or "" for an empty picker.
func (p Picker) Value() string {
	if p.Selected < 0 || p.Selected >= len(p.Options) {
		return ""
	}
	return p.Options[p.Selected]
}

// View renders "‹ option ›", highlighted when focused.
func (p Picker) View(focused bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if focused {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	if len(p.Options) == 0 {
		return style.Render("(无)")
	}
	return style.Render("‹ " + p.Value() + " ›")
}

// Field renders a "label: value" setup row with a cursor mark.
func Field(label, value string, focused bool) string {
	prefix := "  "
	if focused {
		prefix = "▸ "
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(prefix+label+"  ") + value
}

// KindName is the display name of a session kind.
func KindName(kind string) string {
	switch session.Kind(kind) {
	case session.KindFlashcard:
		return "单词卡片"
	case session.KindDictation:
		return "听写练习"
	case session.KindSentence:
		return "句子练习"
	}
	return kind
}
