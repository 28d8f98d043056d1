package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-bbox"
	"github.com/alnah/go-bbox/internal/config"
	"github.com/alnah/go-bbox/internal/fileutil"
	"github.com/alnah/go-bbox/internal/hints"
)

// maxListedPages is the longest page list shown in full.
const maxListedPages = 10

// summary is what the pre-run settings display needs.
type summary struct {
	input     string
	output    string
	inputSize int64
	cfg       *config.Config
	settings  *bbox.Settings
	info      *bbox.DocumentInfo
	pages     []int
	caps      bbox.Capabilities
}

// printSettings shows the resolved settings and an ASCII preview so the user
// can check them before anything is written.
func printSettings(w io.Writer, s summary) {
	st := s.settings
	unit, err := bbox.ParseUnit(s.cfg.Spacing.Unit)
	if err != nil {
		unit = bbox.UnitPoint
	}

	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "BBOX SETTINGS")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	section(w, "Files")
	fmt.Fprintf(w, "  Input:  %s (%s)\n", s.input, fileutil.HumanSize(s.inputSize))
	fmt.Fprintf(w, "  Output: %s\n", s.output)

	section(w, "Pages")
	fmt.Fprintf(w, "  Processing: %d of %d pages\n", len(s.pages), s.info.PageCount)
	fmt.Fprintf(w, "  Selected:   %s\n", pageList(s.pages))

	section(w, "Spacing")
	fmt.Fprintf(w, "  Outer margin:  %s\n", measure(st.Border.OuterMargin, unit))
	fmt.Fprintf(w, "  Inner padding: %s\n", measure(st.Border.InnerPadding, unit))

	section(w, "Border")
	colorName, _ := colorLabel(st.Border.Color)
	fmt.Fprintf(w, "  Style: %s\n", st.Border.Style)
	if st.Border.Style == bbox.StyleRounded {
		fmt.Fprintf(w, "  Corner radius: %.1f pt\n", st.Border.CornerRadius)
	}
	fmt.Fprintf(w, "  Width: %.1f pt\n", st.Border.LineWidth)
	fmt.Fprintf(w, "  Color: %s\n", colorName)

	section(w, "Page Numbers")
	if st.PageNumbers.Enabled {
		pn := st.PageNumbers
		fmt.Fprintf(w, "  Format:   %s\n", pn.Format)
		fmt.Fprintf(w, "  Position: %s (%s border)\n", pn.Position, pn.Location)
		fmt.Fprintf(w, "  Font:     %s %.0f pt\n", pn.FontFamily, pn.FontSize)
		if pn.StartNumber != 1 || pn.SkipFirst > 0 || pn.SkipLast > 0 {
			fmt.Fprintf(w, "  Start at %d, skip first %d, skip last %d\n", pn.StartNumber, pn.SkipFirst, pn.SkipLast)
		}
	} else {
		fmt.Fprintln(w, "  Disabled")
	}

	section(w, "Title")
	if st.Title.Enabled {
		ti := st.Title
		text := ti.Text
		switch {
		case text == "" && s.info.Title != "":
			text = s.info.Title + " [From PDF metadata]"
		case text == "":
			text = "[From PDF metadata] (none found, title skipped)"
		}
		fmt.Fprintf(w, "  Text:     %s\n", text)
		fmt.Fprintf(w, "  Position: %s (%s border)\n", ti.Position, ti.Location)
		fmt.Fprintf(w, "  Font:     %s %.0f pt\n", ti.FontFamily, ti.FontSize)
		if ti.OnlyFirstPage {
			fmt.Fprintln(w, "  First processed page only")
		} else {
			fmt.Fprintln(w, "  All processed pages")
		}
	} else {
		fmt.Fprintln(w, "  Disabled")
	}

	section(w, "Quality")
	fmt.Fprintf(w, "  Mode: %s\n", st.Quality.Mode)
	if st.Quality.Mode == bbox.QualityHigh {
		fmt.Fprintf(w, "  DPI:  %d\n", st.Quality.DPI)
	}
	fmt.Fprintf(w, "  Preserve ratio: %s\n", yesNo(st.Quality.PreserveRatio))
	if d, err := bbox.Decide(st.Quality.Mode, s.caps); err == nil {
		fmt.Fprintf(w, "  Strategy: %s\n", d.Strategy)
		if d.Warning != "" {
			fmt.Fprintf(w, "  Note: %s%s\n", d.Warning, hints.ForRasterizer())
		}
	}

	section(w, "Preview")
	fmt.Fprint(w, renderPreview(previewFor(st, s.info.FirstPage)))
	fmt.Fprintln(w, strings.Repeat("=", 60))
}

// previewFor scales the margins against the shorter side of the first page.
func previewFor(st *bbox.Settings, page bbox.Size) previewParams {
	p := previewParams{
		color:         st.Border.Color,
		style:         st.Border.Style,
		preserveRatio: st.Quality.PreserveRatio,
	}
	if side := math.Min(page.Width, page.Height); side > 0 {
		p.outerRatio = st.Border.OuterMargin / side
		p.innerRatio = st.Border.InnerPadding / side
	}
	return p
}

// printResult reports the written document.
func printResult(w io.Writer, output string, inSize, outSize int64, res *bbox.Result, d time.Duration, verbose bool) {
	fmt.Fprintf(w, "Wrote %s: %d of %d pages bordered (%s -> %s)", output,
		len(res.Pages), res.TotalPages, fileutil.HumanSize(inSize), fileutil.HumanSize(outSize))
	if verbose {
		fmt.Fprintf(w, " in %s, %s strategy", elapsed(d), res.Decision.Strategy)
	}
	fmt.Fprintln(w)
	if n := len(res.Warnings); n > 0 {
		fmt.Fprintf(w, "%d warning(s), see log output\n", n)
	}
}

// pageList prints one-based page numbers, eliding the middle of long lists.
func pageList(pages []int) string {
	label := func(ps []int) string {
		parts := make([]string, len(ps))
		for i, p := range ps {
			parts[i] = strconv.Itoa(p + 1)
		}
		return strings.Join(parts, ", ")
	}
	if len(pages) <= maxListedPages {
		return label(pages)
	}
	return label(pages[:3]) + " ... " + label(pages[len(pages)-3:])
}

// measure shows a margin in the configured unit and in points.
func measure(pt float64, unit bbox.Unit) string {
	if unit == bbox.UnitPoint {
		return fmt.Sprintf("%.1f pt", pt)
	}
	return fmt.Sprintf("%.2f %s (%.1f pt)", unit.FromPoints(pt), unit, pt)
}

func section(w io.Writer, name string) {
	fmt.Fprintf(w, "\n%s:\n", name)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
