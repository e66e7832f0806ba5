package content

import "fmt"

// Stat is a named count reported by a Markdown check.
type Stat struct {
	Name  string
	Value int
}

// CheckReport collects the problems found while parsing a Markdown
// source. Errors make the output unusable; warnings do not.
type CheckReport struct {
	Errors   []string
	Warnings []string
	Stats    []Stat
}

// OK reports whether the source parsed without errors.
func (r *CheckReport) OK() bool { return len(r.Errors) == 0 }

func (r *CheckReport) errorf(line int, format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf("line %d: ", line)+fmt.Sprintf(format, args...))
}

func (r *CheckReport) warnf(line int, format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("line %d: ", line)+fmt.Sprintf(format, args...))
}

func (r *CheckReport) stat(name string, value int) {
	r.Stats = append(r.Stats, Stat{Name: name, Value: value})
}

// CheckWords reports on a WORDS.md document without keeping the result.
func CheckWords(src string) *CheckReport {
	_, rep := ParseWordsMarkdown(src)
	return rep
}

// CheckReadings reports on a READINGS.md document.
func CheckReadings(src string) *CheckReport {
	_, rep := ParseReadingsMarkdown(src)
	return rep
}

// CheckListen reports on a LISTEN.md document.
func CheckListen(src string) *CheckReport {
	_, rep := ParseListenMarkdown(src)
	return rep
}
