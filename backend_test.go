package bbox

import (
	"errors"
	"math"
	"testing"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	all := Capabilities{EmbedVector: true, Rasterize: true, MergeBasic: true}
	noRaster := Capabilities{EmbedVector: true, MergeBasic: true}
	mergeOnly := Capabilities{MergeBasic: true}

	tests := []struct {
		name          string
		mode          QualityMode
		caps          Capabilities
		wantStrategy  Strategy
		wantEffective QualityMode
		wantWarning   bool
	}{
		{"original with vector", QualityOriginal, all, StrategyVector, QualityOriginal, false},
		{"high with raster", QualityHigh, all, StrategyRaster, QualityHigh, false},
		{"medium with raster", QualityMedium, all, StrategyRaster, QualityMedium, false},
		{"standard", QualityStandard, all, StrategyMerge, QualityStandard, false},
		{"high without raster", QualityHigh, noRaster, StrategyMerge, QualityStandard, true},
		{"medium without raster", QualityMedium, noRaster, StrategyMerge, QualityStandard, true},
		{"original without vector", QualityOriginal, mergeOnly, StrategyMerge, QualityStandard, true},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := Decide(tt.mode, tt.caps)
			if err != nil {
				t.Fatalf("Decide() error = %v", err)
			}
			if d.Strategy != tt.wantStrategy || d.Effective != tt.wantEffective || d.Requested != tt.mode {
				t.Errorf("Decide(%s) = %+v, want strategy %s effective %s", tt.mode, d, tt.wantStrategy, tt.wantEffective)
			}
			if (d.Warning != "") != tt.wantWarning {
				t.Errorf("Decide(%s) warning = %q, want warning %v", tt.mode, d.Warning, tt.wantWarning)
			}
		})
	}
}

func TestDecide_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Decide(QualityHigh, Capabilities{}); !errors.Is(err, ErrUnsupportedBackend) {
		t.Errorf("Decide() with no capabilities error = %v, want ErrUnsupportedBackend", err)
	}
	if _, err := Decide(QualityMode(9), Capabilities{MergeBasic: true}); !errors.Is(err, ErrInvalidQuality) {
		t.Errorf("Decide(9) error = %v, want ErrInvalidQuality", err)
	}
}

func TestRasterZoom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mode     QualityMode
		dpi      int
		t        Transform
		expected float64
	}{
		{"high at 300 dpi", QualityHigh, 300, Transform{ScaleX: 0.8, ScaleY: 0.8}, 0.8 * 300 / 72},
		{"high at 72 dpi", QualityHigh, 72, Transform{ScaleX: 0.5, ScaleY: 0.5}, 0.5},
		{"medium ignores dpi", QualityMedium, 600, Transform{ScaleX: 0.8, ScaleY: 0.8}, 1.6},
		{"stretched uses larger axis", QualityMedium, 300, Transform{ScaleX: 0.7, ScaleY: 0.9}, 1.8},
	}

	for _, tt := range tests {

		tt := tt
		if got := rasterZoom(tt.mode, tt.dpi, tt.t); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("%s: rasterZoom() = %v, want %v", tt.name, got, tt.expected)
		}
	}
}
