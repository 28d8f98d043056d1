package bbox

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SelectPages expands a page-range expression such as "1-3,7,9-10" into
// sorted, deduplicated zero-based page indices. "all" or an empty expression
// selects every page. Ranges are clamped to [1, totalPages]; tokens that
// cannot be parsed or select nothing are skipped and reported as warnings.
// An empty result is returned as-is: deciding that it is fatal is up to the
// caller.
func SelectPages(expr string, totalPages int) ([]int, []string) {
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.EqualFold(expr, "all") {
		all := make([]int, 0, max(totalPages, 0))
		for i := 0; i < totalPages; i++ {
			all = append(all, i)
		}
		return all, nil
	}

	var warnings []string
	seen := make(map[int]bool)

	for _, tok := range strings.Split(expr, ",") {
		tok = strings.TrimSpace(tok)

		if lo, hi, isRange := strings.Cut(tok, "-"); isRange {
			a, errA := strconv.Atoi(strings.TrimSpace(lo))
			b, errB := strconv.Atoi(strings.TrimSpace(hi))
			if errA != nil || errB != nil {
				warnings = append(warnings, fmt.Sprintf("invalid page range %q", tok))
				continue
			}
			added := 0
			for p := max(a, 1); p <= min(b, totalPages); p++ {
				seen[p-1] = true
				added++
			}
			if added == 0 {
				warnings = append(warnings, fmt.Sprintf("page range %q selects no pages (document has %d)", tok, totalPages))
			}
			continue
		}

		n, err := strconv.Atoi(tok)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid page number %q", tok))
			continue
		}
		if n < 1 || n > totalPages {
			warnings = append(warnings, fmt.Sprintf("page %d out of range (1-%d)", n, totalPages))
			continue
		}
		seen[n-1] = true
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, warnings
}

// FormatPageList renders one-based page numbers for display, eliding the
// middle of long lists.
func FormatPageList(indices []int) string {
	nums := make([]string, 0, len(indices))
	for _, i := range indices {
		nums = append(nums, strconv.Itoa(i+1))
	}
	if len(nums) > 10 {
		nums = append(append(nums[:3:3], "..."), nums[len(nums)-3:]...)
	}
	return strings.Join(nums, ", ")
}
