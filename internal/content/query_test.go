package content

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) *strings.Reader { return strings.NewReader(s) }

func numberedWords(n int) []WordItem {
	words := make([]WordItem, n)
	for i := range words {
		words[i] = WordItem{ID: fmt.Sprintf("w%d", i+1), Word: fmt.Sprintf("word%d", i+1)}
	}
	return words
}

func TestSearch(t *testing.T) {
	words := []WordItem{
		{ID: "1", Word: "Apple", Meaning: "苹果"},
		{ID: "2", Word: "pineapple", Meaning: "菠萝"},
		{ID: "3", Word: "banana", Meaning: "香蕉"},
	}

	assert.Len(t, Search(words, "APPLE"), 2)
	assert.Len(t, Search(words, " 香蕉 "), 1)
	assert.Len(t, Search(words, ""), 3)
	assert.Empty(t, Search(words, "grape"))
}

func TestPage(t *testing.T) {
	words := numberedWords(45)

	p := Page(words, 3, WordsPerPage)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 45, p.Total)
	require.Len(t, p.Words, 5)
	assert.Equal(t, "w41", p.Words[0].ID)

	p = Page(words, 9, WordsPerPage)
	assert.Equal(t, 1, p.Page, "out-of-range pages reset to the first")
	assert.Len(t, p.Words, WordsPerPage)

	p = Page(words, 2, 0)
	assert.Equal(t, "w21", p.Words[0].ID, "non-positive size uses the default")

	empty := Page(nil, 1, WordsPerPage)
	assert.Equal(t, PageResult{}, empty)
}

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 0, []int{}},
		{2, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5, Ellipsis, 10}},
		{5, 10, []int{1, Ellipsis, 3, 4, 5, 6, 7, Ellipsis, 10}},
		{10, 10, []int{1, Ellipsis, 6, 7, 8, 9, 10}},
		{3, 6, []int{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.current, tt.total), func(t *testing.T) {
			got := PageNumbers(tt.current, tt.total)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter(t *testing.T) {
	c := testCatalog(t)
	words := c.WordsIn("grade5-upper")
	facts := func(id string) WordFacts {
		if id == "grade5-upper-u1-w2" {
			return WordFacts{Mastery: 4, Reviews: 6, Favorite: true}
		}
		return WordFacts{Wrong: id == "grade5-upper-u2-w1"}
	}

	tests := []struct {
		expr string
		want []string
	}{
		{`mastery < 2 && unit == "Unit 1"`, []string{"grade5-upper-u1-w1"}},
		{`wrong || meaning.contains("年轻")`, []string{"grade5-upper-u1-w2", "grade5-upper-u2-w1"}},
		{`favorite && reviews > 5`, []string{"grade5-upper-u1-w2"}},
		{`category == "水果" && book == "英语五年级上册"`, []string{"grade5-upper-u2-w1"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := CompileFilter(tt.expr)
			require.NoError(t, err)
			got, err := f.Apply(c, words, facts)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, w := range got {
				ids[i] = w.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCompileFilterErrors(t *testing.T) {
	for _, expr := range []string{"", "mastery +", "mastery + 1", "unknown == 1"} {
		_, err := CompileFilter(expr)
		assert.Error(t, err, "expr %q", expr)
	}
}
