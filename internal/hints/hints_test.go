package hints

// Notes:
// - ForRasterizer and ForS3 tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func TestForRasterizer(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()

	IsInContainer = func() bool { return false }
	hint := ForRasterizer()
	if !strings.Contains(hint, "CGO_ENABLED=1") {
		t.Errorf("hint = %q, want CGO_ENABLED suggestion", hint)
	}
	if strings.Contains(hint, "toolchain") {
		t.Error("unexpected container suggestion outside a container")
	}

	IsInContainer = func() bool { return true }
	if hint := ForRasterizer(); !strings.Contains(hint, "toolchain") {
		t.Errorf("hint = %q, want container suggestion", hint)
	}
}

func TestForS3(t *testing.T) {
	t.Run("no credentials", func(t *testing.T) {
		t.Setenv("AWS_ACCESS_KEY_ID", "")
		t.Setenv("AWS_PROFILE", "")
		t.Setenv("AWS_REGION", "")
		t.Setenv("AWS_DEFAULT_REGION", "")

		hint := ForS3()
		if !strings.Contains(hint, "AWS_PROFILE") || !strings.Contains(hint, "AWS_REGION") {
			t.Errorf("hint = %q", hint)
		}
	})

	t.Run("configured", func(t *testing.T) {
		t.Setenv("AWS_PROFILE", "print")
		t.Setenv("AWS_REGION", "eu-west-1")

		if hint := ForS3(); hint != "" {
			t.Errorf("hint = %q, want empty", hint)
		}
	})
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config not found", ForConfigNotFound([]string{"a.yaml", "/home/u/.config/go-bbox/a.yaml"}), "create /home/u/.config/go-bbox/a.yaml"},
		{"config not found without user dir", ForConfigNotFound([]string{"a.yaml"}), "--config"},
		{"page range", ForPageRange(12), "1-12"},
		{"not pdf detected", ForNotPDF("image/png"), "image/png"},
		{"not pdf unknown", ForNotPDF(""), "must be a PDF"},
		{"output directory", ForOutputDirectory(), "writable"},
		{"fonts", ForTextFont([]string{"Helvetica", "Courier"}), "Helvetica, Courier"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.got, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", tt.got)
			}
			if !strings.Contains(tt.got, tt.want) {
				t.Errorf("hint %q should contain %q", tt.got, tt.want)
			}
		})
	}

	if ForTextFont(nil) != "" {
		t.Error("ForTextFont(nil) should be empty")
	}
}
