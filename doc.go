// Package bbox draws decorative borders on PDF pages, shrinking the existing
// content to fit inside them, with optional page numbers and a title.
//
// # Quick Start
//
// Create a processor, border a document, write the result:
//
//	pdf, err := os.ReadFile("input.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var out bytes.Buffer
//	result, err := bbox.NewProcessor().Process(ctx, bbox.Input{PDF: pdf}, &out)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", out.Bytes(), 0644)
//
// A nil Input.Settings uses DefaultSettings: a black rounded border half an
// inch from the page edge, content kept as vectors.
//
// # Pipeline
//
// Each selected page goes through the same stages, in order:
//
//  1. Transform: scale and offset that fit the page inside the margins
//  2. Content: the original page placed through the transform
//  3. Border: the outline stroked along the outer margin
//  4. Text: page number and title, when enabled
//  5. Commit: the rewritten page replaces the original
//
// Pages outside Settings.Pages are left untouched, so the output has the same
// page count as the input.
//
// # Quality Modes
//
// The quality mode picks how original content reaches the output:
//
//   - QualityOriginal embeds the page as a scaled vector form
//   - QualityHigh and QualityMedium paint a rendered image of the page
//   - QualityStandard wraps the content stream in a transform
//
// Rendering needs MuPDF, linked through cgo. Builds without it (CGO_ENABLED=0
// or the nofitz tag) downgrade raster modes to QualityStandard with a
// warning in Result.Warnings.
//
// # Configuration
//
// Settings are plain structs; margins are in points. Use Unit to convert:
//
//	s := bbox.DefaultSettings()
//	s.Border.Style = bbox.StyleDashed
//	s.Border.OuterMargin = bbox.UnitMM.ToPoints(10)
//	s.Border.Color, _ = bbox.ParseColor("navy")
//	s.PageNumbers.Enabled = true
//	s.Pages = "2-5"
//
// Use functional options to customize the processor:
//
//	p := bbox.NewProcessor(
//	    bbox.WithLogger(logger),
//	    bbox.WithProgress(func(done, total int) { ... }),
//	)
//
// # Errors
//
// Errors wrap the sentinels in errors.go; test them with errors.Is.
// Recoverable problems (unparsable page tokens, margins that leave no room,
// clamped corner radii, downgraded quality) are reported in Result.Warnings
// and logged, never returned as errors.
package bbox
