package pdfdoc

import (
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/alnah/go-bbox/internal/layout"
)

func TestWriteBorder(t *testing.T) {
	t.Parallel()

	rect := layout.Rect{X0: 36, Y0: 36, X1: 576, Y1: 756}

	tests := []struct {
		name     string
		path     layout.Path
		contains []string
		absent   []string
	}{
		{
			name:     "solid rectangle",
			path:     layout.BuildBorderPath(rect, layout.StyleSolid, 0, 1),
			contains: []string{"36 36 540 720 re", "[] 0 d", "1 w", "S"},
			absent:   []string{" m\n", " l\n"},
		},
		{
			name:     "dotted rectangle",
			path:     layout.BuildBorderPath(rect, layout.StyleDotted, 0, 0.5),
			contains: []string{"[2 2] 0 d", "0.5 w", " re\n"},
		},
		{
			name:     "rounded polyline",
			path:     layout.BuildBorderPath(rect, layout.StyleRounded, 10, 1),
			contains: []string{"46 36 m", " l\n", "h\nS"},
			absent:   []string{" re\n"},
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var s Stream
			WriteBorder(&s, tt.path, layout.Color{R: 1})
			got := string(s.Bytes())

			if !strings.HasPrefix(got, "q\n1 0 0 RG\n") || !strings.HasSuffix(got, "Q\n") {
				t.Errorf("border not wrapped in its own graphics state:\n%s", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("border missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("border unexpectedly contains %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestWriteBorder_RoundedLineCount(t *testing.T) {
	t.Parallel()

	rect := layout.Rect{X0: 36, Y0: 36, X1: 576, Y1: 756}
	var s Stream
	WriteBorder(&s, layout.BuildBorderPath(rect, layout.StyleRounded, 10, 1), layout.Color{})

	lines := strings.Count(string(s.Bytes()), " l\n")
	if want := 4 + 4*layout.ArcSegments; lines != want {
		t.Errorf("rounded border has %d line segments, want %d", lines, want)
	}
}

func TestWriteBorder_EmptyRect(t *testing.T) {
	t.Parallel()

	var s Stream
	WriteBorder(&s, layout.BuildBorderPath(layout.Rect{X0: 50, Y0: 50, X1: 40, Y1: 40}, layout.StyleSolid, 0, 1), layout.Color{})
	if s.Len() != 0 {
		t.Errorf("empty border wrote %q, want nothing", s.Bytes())
	}
}

func TestWriteTexts(t *testing.T) {
	t.Parallel()

	fonts := NewFontSet(nil)
	items := []layout.TextItem{
		{Text: "Page 1 of 2", Font: "Helvetica", FontSize: 10, Color: layout.Color{B: 1}, Origin: layout.Point{X: 280, Y: 16}},
		{Text: "Report", Font: "Helvetica-Bold", FontSize: 12, Origin: layout.Point{X: 290, Y: 730}},
		{Text: "again", Font: "Helvetica", FontSize: 10, Origin: layout.Point{X: 1, Y: 1}},
	}

	var s Stream
	WriteTexts(&s, items, fonts)
	got := string(s.Bytes())

	for _, want := range []string{
		"0 0 1 rg\nBT\n/BBxF1 10 Tf\n280 16 Td\n(Page 1 of 2) Tj\nET",
		"/BBxF2 12 Tf\n290 730 Td\n(Report) Tj",
		"/BBxF1 10 Tf\n1 1 Td\n(again) Tj",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("text stream missing %q:\n%s", want, got)
		}
	}
	if fonts.Len() != 2 {
		t.Errorf("fonts.Len() = %d, want 2", fonts.Len())
	}
}

func TestFontSet(t *testing.T) {
	t.Parallel()

	t.Run("avoids existing names", func(t *testing.T) {
		t.Parallel()

		fonts := NewFontSet(types.Dict{"BBxF1": types.Name("taken")})
		if got := fonts.Add("Courier"); got != "BBxF2" {
			t.Errorf("Add(Courier) = %q, want BBxF2", got)
		}
		if got := fonts.Add("Courier"); got != "BBxF2" {
			t.Errorf("second Add(Courier) = %q, want BBxF2", got)
		}
	})

	t.Run("merges font dictionaries", func(t *testing.T) {
		t.Parallel()

		fonts := NewFontSet(nil)
		fonts.Add("Helvetica")
		fonts.Add("Symbol")

		res := types.Dict{"F0": types.Name("kept")}
		fonts.MergeInto(res)

		if len(res) != 3 {
			t.Fatalf("merged font dict has %d entries, want 3", len(res))
		}
		helv, ok := res["BBxF1"].(types.Dict)
		if !ok {
			t.Fatalf("BBxF1 is %T, want types.Dict", res["BBxF1"])
		}
		if helv["BaseFont"] != types.Name("Helvetica") || helv["Encoding"] != types.Name("WinAnsiEncoding") {
			t.Errorf("Helvetica font dict = %v", helv)
		}
		sym := res["BBxF2"].(types.Dict)
		if _, has := sym["Encoding"]; has {
			t.Errorf("Symbol font dict should not set an encoding: %v", sym)
		}
	})
}
