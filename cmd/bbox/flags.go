package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
}

// borderFlags holds border appearance flags.
type borderFlags struct {
	style  string
	width  float64
	color  string
	radius float64
}

// spacingFlags holds margin flags, in unit.
type spacingFlags struct {
	outer float64
	inner float64
	unit  string
}

// qualityFlags holds rendering quality flags.
type qualityFlags struct {
	mode            string
	dpi             int
	noPreserveRatio bool
}

// pageNumberFlags holds page numbering flags.
type pageNumberFlags struct {
	enabled   bool
	disabled  bool
	format    string
	position  string
	location  string
	fontSize  float64
	fontColor string
	font      string
	start     int
	skipFirst int
	skipLast  int
}

// titleFlags holds title flags.
type titleFlags struct {
	enabled   bool
	disabled  bool
	text      string
	position  string
	location  string
	fontSize  float64
	fontColor string
	font      string
	allPages  bool
}

// runFlags holds processing and diagnostics flags.
type runFlags struct {
	pages       string
	yes         bool
	logLevel    string
	logFile     string
	metricsFile string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      string
	border      borderFlags
	spacing     spacingFlags
	quality     qualityFlags
	pageNumbers pageNumberFlags
	title       titleFlags
	run         runFlags

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", ".env", "dotenv file with BBOX_* variables")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addBorderFlags adds border flags to a FlagSet.
func addBorderFlags(fs *flag.FlagSet, f *borderFlags) {
	fs.StringVar(&f.style, "border-style", "", "border style: solid, dashed, dotted, rounded")
	fs.Float64Var(&f.width, "border-width", 0, "border line width in points")
	fs.StringVar(&f.color, "border-color", "", "border color: name, #hex, or R,G,B (0-255)")
	fs.Float64Var(&f.radius, "corner-radius", 0, "corner radius in points (rounded style)")
}

// addSpacingFlags adds spacing flags to a FlagSet.
func addSpacingFlags(fs *flag.FlagSet, f *spacingFlags) {
	fs.Float64Var(&f.outer, "outer", 0, "outer margin: page edge to border")
	fs.Float64Var(&f.inner, "inner", 0, "inner padding: border to content")
	fs.StringVar(&f.unit, "unit", "", "margin unit: inch, mm, pt")
}

// addQualityFlags adds quality flags to a FlagSet.
func addQualityFlags(fs *flag.FlagSet, f *qualityFlags) {
	fs.StringVar(&f.mode, "quality", "", "quality mode: original, high, medium, standard")
	fs.IntVar(&f.dpi, "dpi", 0, "render resolution for high quality")
	fs.BoolVar(&f.noPreserveRatio, "no-preserve-ratio", false, "stretch content to fill the border")
}

// addPageNumberFlags adds page number flags to a FlagSet.
func addPageNumberFlags(fs *flag.FlagSet, f *pageNumberFlags) {
	fs.BoolVar(&f.enabled, "page-numbers", false, "add page numbers")
	fs.BoolVar(&f.disabled, "no-page-numbers", false, "disable page numbers")
	fs.StringVar(&f.format, "pn-format", "", "page number format with {n} and {total}")
	fs.StringVar(&f.position, "pn-position", "", "page number position, e.g. bottom-center")
	fs.StringVar(&f.location, "pn-location", "", "page number location: inside, outside")
	fs.Float64Var(&f.fontSize, "pn-font-size", 0, "page number font size in points")
	fs.StringVar(&f.fontColor, "pn-color", "", "page number color")
	fs.StringVar(&f.font, "pn-font", "", "page number font (standard PDF fonts)")
	fs.IntVar(&f.start, "pn-start", 0, "number of the first numbered page")
	fs.IntVar(&f.skipFirst, "pn-skip-first", 0, "leave the first N processed pages unnumbered")
	fs.IntVar(&f.skipLast, "pn-skip-last", 0, "leave the last N processed pages unnumbered")
}

// addTitleFlags adds title flags to a FlagSet.
func addTitleFlags(fs *flag.FlagSet, f *titleFlags) {
	fs.BoolVar(&f.enabled, "title", false, "add the document title")
	fs.BoolVar(&f.disabled, "no-title", false, "disable the title")
	fs.StringVar(&f.text, "title-text", "", "title text (\"\" = PDF metadata title)")
	fs.StringVar(&f.position, "title-position", "", "title position, e.g. top-center")
	fs.StringVar(&f.location, "title-location", "", "title location: inside, outside")
	fs.Float64Var(&f.fontSize, "title-font-size", 0, "title font size in points")
	fs.StringVar(&f.fontColor, "title-color", "", "title color")
	fs.StringVar(&f.font, "title-font", "", "title font (standard PDF fonts)")
	fs.BoolVar(&f.allPages, "title-all-pages", false, "repeat the title on every processed page")
}

// addRunFlags adds processing and diagnostics flags to a FlagSet.
func addRunFlags(fs *flag.FlagSet, f *runFlags) {
	fs.StringVar(&f.pages, "pages", "", "page range, e.g. 1-5,10 or all")
	fs.BoolVarP(&f.yes, "yes", "y", false, "skip the confirmation prompt")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFile, "log-file", "", "also write logs to this file (rotated)")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, env *Environment) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path or s3:// location")

	addCommonFlags(fs, &f.common)
	addBorderFlags(fs, &f.border)
	addSpacingFlags(fs, &f.spacing)
	addQualityFlags(fs, &f.quality)
	addPageNumberFlags(fs, &f.pageNumbers)
	addTitleFlags(fs, &f.title)
	addRunFlags(fs, &f.run)

	fs.Usage = func() { printConvertUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.changed = fs.Changed
	return f, fs.Args(), nil
}
