package mastery

import "strings"

// Label returns the learner-facing name of a state.
func (s MasteryState) Label() string {
	switch s {
	case StateMastered:
		return "已掌握"
	case StateLearning:
		return "学习中"
	default:
		return "待复习"
	}
}

// LevelLabel is StateFor(level).Label().
func LevelLabel(level int) string {
	return StateFor(level).Label()
}

// Stars renders a level as filled and empty stars out of total.
func Stars(level, total int) string {
	level = min(max(level, 0), total)
	return strings.Repeat("★", level) + strings.Repeat("☆", total-level)
}
