package content

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
)

// WordFacts carries the learner-specific attributes a filter can test.
type WordFacts struct {
	Mastery  int
	Reviews  int
	Wrong    bool
	Favorite bool
}

// FactsFunc resolves learner facts for a word ID.
type FactsFunc func(wordID string) WordFacts

// Filter is a compiled boolean word filter such as
//
//	mastery < 2 && unit == "Unit 3"
//	wrong || meaning.contains("动物")
type Filter struct {
	expr string
	prg  cel.Program
}

func filterEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("id", cel.StringType),
		cel.Variable("word", cel.StringType),
		cel.Variable("meaning", cel.StringType),
		cel.Variable("book", cel.StringType),
		cel.Variable("unit", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("mastery", cel.IntType),
		cel.Variable("reviews", cel.IntType),
		cel.Variable("wrong", cel.BoolType),
		cel.Variable("favorite", cel.BoolType),
	)
}

// CompileFilter parses and type-checks expr. The expression must
// evaluate to a bool.
func CompileFilter(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty filter expression")
	}
	env, err := filterEnv()
	if err != nil {
		return nil, fmt.Errorf("filter environment: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter must be a boolean expression, got %s", ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build filter program: %w", err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.expr }

// Match evaluates the filter against one word.
func (f *Filter) Match(w WordItem, src Source, facts WordFacts) (bool, error) {
	out, _, err := f.prg.Eval(map[string]any{
		"id":       w.ID,
		"word":     w.Word,
		"meaning":  w.Meaning,
		"book":     src.BookName,
		"unit":     src.UnitName,
		"category": w.Category,
		"mastery":  int64(facts.Mastery),
		"reviews":  int64(facts.Reviews),
		"wrong":    facts.Wrong,
		"favorite": facts.Favorite,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate filter on %s: %w", w.ID, err)
	}
	ok, _ := out.Value().(bool)
	return ok, nil
}

// Apply keeps the words of c matching f. facts may be nil, in which case
// every word has zero learner facts.
func (f *Filter) Apply(c *Catalog, words []WordItem, facts FactsFunc) ([]WordItem, error) {
	var out []WordItem
	for _, w := range words {
		src, _ := c.WordLocation(w.ID)
		var wf WordFacts
		if facts != nil {
			wf = facts(w.ID)
		}
		ok, err := f.Match(w, src, wf)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, w)
		}
	}
	return out, nil
}
