package content

import (
	"strings"

	"github.com/samber/lo"
)

// Search keeps words whose English form or meaning contains query,
// ignoring case. An empty query keeps everything.
func Search(words []WordItem, query string) []WordItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return words
	}
	return lo.Filter(words, func(w WordItem, _ int) bool {
		return strings.Contains(strings.ToLower(w.Word), q) ||
			strings.Contains(strings.ToLower(w.Meaning), q)
	})
}

// PageResult is one page of a word list.
type PageResult struct {
	Words      []WordItem
	Page       int // 1-based; 0 when there are no words
	TotalPages int
	Total      int
}

// Page slices words into fixed-size pages. Out-of-range pages fall back
// to the first page.
func Page(words []WordItem, page, size int) PageResult {
	if size <= 0 {
		size = WordsPerPage
	}
	total := len(words)
	pages := (total + size - 1) / size
	if pages == 0 {
		return PageResult{}
	}
	if page < 1 || page > pages {
		page = 1
	}
	start := (page - 1) * size
	end := min(start+size, total)
	return PageResult{Words: words[start:end], Page: page, TotalPages: pages, Total: total}
}

// Ellipsis marks a gap in the output of PageNumbers.
const Ellipsis = 0

// maxVisiblePages is how many numbered pages the pager shows around the
// current one.
const maxVisiblePages = 5

// PageNumbers returns the page buttons to show for current out of total:
// up to five consecutive pages plus the first and last page, with
// Ellipsis marking skipped ranges.
func PageNumbers(current, total int) []int {
	if total <= maxVisiblePages {
		return lo.RangeFrom(1, max(total, 0))
	}

	start := max(1, current-2)
	end := min(total, current+2)
	if end-start < maxVisiblePages-1 {
		if start == 1 {
			end = min(maxVisiblePages, total)
		} else if end == total {
			start = max(1, total-maxVisiblePages+1)
		}
	}

	var pages []int
	if start > 1 {
		pages = append(pages, 1)
		if start > 2 {
			pages = append(pages, Ellipsis)
		}
	}
	pages = append(pages, lo.RangeFrom(start, end-start+1)...)
	if end < total {
		if end < total-1 {
			pages = append(pages, Ellipsis)
		}
		pages = append(pages, total)
	}
	return pages
}
