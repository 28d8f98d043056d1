// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-bbox/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForRasterizer returns hints for builds without page rendering.
func ForRasterizer() string {
	hints := []string{"rebuild with CGO_ENABLED=1 and without the nofitz tag for high/medium quality"}
	if IsInContainer() {
		hints = append(hints, "the build image needs a C toolchain (gcc, musl-dev on Alpine)")
	}
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-bbox") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForPageRange returns hints for page selections that match nothing.
func ForPageRange(totalPages int) string {
	return format(fmt.Sprintf("document has %d pages; use e.g. --pages 1-%d, --pages 1,3,5 or --pages all",
		totalPages, totalPages))
}

// ForNotPDF returns hints for inputs that are not PDF documents.
func ForNotPDF(detected string) string {
	if detected == "" {
		return format("input must be a PDF document")
	}
	return format("input looks like " + detected + ", not a PDF document")
}

// ForS3 returns hints for S3 access errors.
// Suggests credential variables when none are set.
func ForS3() string {
	var hints []string
	if os.Getenv("AWS_ACCESS_KEY_ID") == "" && os.Getenv("AWS_PROFILE") == "" {
		hints = append(hints, "set AWS_PROFILE or AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY")
	}
	if os.Getenv("AWS_REGION") == "" && os.Getenv("AWS_DEFAULT_REGION") == "" {
		hints = append(hints, "set AWS_REGION")
	}
	return formatHints(hints)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTextFont returns hints for unknown font families.
func ForTextFont(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
