package main

import (
	"fmt"
	"io"
	"strings"
)

// progressBar redraws a single line: "[####----] 3/10 pages".
type progressBar struct {
	w     io.Writer
	width int
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{w: w, width: 40}
}

// update matches the bbox.WithProgress callback.
func (p *progressBar) update(done, total int) {
	filled := p.width
	if total > 0 {
		filled = p.width * done / total
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", p.width-filled)
	fmt.Fprintf(p.w, "\r[%s] %d/%d pages", bar, done, total)
	if done >= total {
		fmt.Fprintln(p.w)
	}
}
