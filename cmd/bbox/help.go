package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bbox <command> [flags] [args]")
	fmt.Fprintln(w, "       bbox <input.pdf> [output.pdf] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Add a border to a PDF (default command)")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  doctor     Check what this build and system support")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'bbox help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bbox convert <input> [output] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Draw a border on PDF pages, shrinking the content to fit inside it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input     PDF path, http(s):// URL, or s3://bucket/key")
	fmt.Fprintln(w, "  output    PDF path or s3://bucket/key (default: <input>_bordered.pdf)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output path (same as the second argument)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>       Dotenv file with BBOX_* variables (default .env)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Border:")
	fmt.Fprintln(w, "      --border-style <s>      Style: solid, dashed, dotted, rounded")
	fmt.Fprintln(w, "      --border-width <f>      Line width in points")
	fmt.Fprintln(w, "      --border-color <s>      Color: name, #hex, or R,G,B (0-255)")
	fmt.Fprintln(w, "      --corner-radius <f>     Corner radius in points (rounded)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Spacing:")
	fmt.Fprintln(w, "      --outer <f>             Page edge to border")
	fmt.Fprintln(w, "      --inner <f>             Border to content")
	fmt.Fprintln(w, "      --unit <s>              Unit: inch, mm, pt")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Quality:")
	fmt.Fprintln(w, "      --quality <s>           Mode: original, high, medium, standard")
	fmt.Fprintln(w, "      --dpi <n>               Render resolution for high quality (1-1200)")
	fmt.Fprintln(w, "      --no-preserve-ratio     Stretch content to fill the border")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page Numbers:")
	fmt.Fprintln(w, "      --page-numbers          Enable page numbers")
	fmt.Fprintln(w, "      --no-page-numbers       Disable page numbers")
	fmt.Fprintln(w, "      --pn-format <s>         Format with {n} and {total}")
	fmt.Fprintln(w, "      --pn-position <s>       Position: top|bottom-left|center|right")
	fmt.Fprintln(w, "      --pn-location <s>       Location: inside, outside the border")
	fmt.Fprintln(w, "      --pn-font <s>           Standard PDF font, e.g. Helvetica")
	fmt.Fprintln(w, "      --pn-font-size <f>      Font size in points")
	fmt.Fprintln(w, "      --pn-color <s>          Font color")
	fmt.Fprintln(w, "      --pn-start <n>          First page number")
	fmt.Fprintln(w, "      --pn-skip-first <n>     Leave the first N processed pages unnumbered")
	fmt.Fprintln(w, "      --pn-skip-last <n>      Leave the last N processed pages unnumbered")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Title:")
	fmt.Fprintln(w, "      --title                 Enable the title")
	fmt.Fprintln(w, "      --no-title              Disable the title")
	fmt.Fprintln(w, "      --title-text <s>        Title text (\"\" = PDF metadata title)")
	fmt.Fprintln(w, "      --title-position <s>    Position, e.g. top-center")
	fmt.Fprintln(w, "      --title-location <s>    Location: inside, outside the border")
	fmt.Fprintln(w, "      --title-font <s>        Standard PDF font")
	fmt.Fprintln(w, "      --title-font-size <f>   Font size in points")
	fmt.Fprintln(w, "      --title-color <s>       Font color")
	fmt.Fprintln(w, "      --title-all-pages       Repeat on every processed page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Processing:")
	fmt.Fprintln(w, "      --pages <s>             Page range, e.g. 1-5,10 or all")
	fmt.Fprintln(w, "  -y, --yes                   Skip the confirmation prompt")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show debug logs and timing")
	fmt.Fprintln(w, "      --log-level <s>         Log level: debug, info, warn, error")
	fmt.Fprintln(w, "      --log-file <path>       Also write JSON logs to a rotated file")
	fmt.Fprintln(w, "      --metrics-file <path>   Write Prometheus metrics after the run")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  BBOX_CONFIG, BBOX_QUALITY, BBOX_DPI, BBOX_PAGES, BBOX_UNIT,")
	fmt.Fprintln(w, "  BBOX_BORDER_STYLE, BBOX_BORDER_COLOR, BBOX_LOG_LEVEL, BBOX_LOG_FILE,")
	fmt.Fprintln(w, "  BBOX_METRICS_FILE, BBOX_YES. Flags override environment, which")
	fmt.Fprintln(w, "  overrides the config file.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bbox config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration a convert run would use, as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>       Dotenv file with BBOX_* variables (default .env)")
	fmt.Fprintln(w, "      --defaults              Print the built-in defaults only")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: bbox doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check the PDF backend, config file, environment and temp directory.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: bbox version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: bbox help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
