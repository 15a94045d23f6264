package geospatial_test

import (
	"math"
	"testing"

	"github.com/samirrijal/touristapi/internal/pkg/geospatial"
)

func TestHaversine(t *testing.T) {
	// Eiffel Tower to Louvre, roughly 3.2 km.
	d := geospatial.Haversine(48.8584, 2.2945, 48.8606, 2.3376)
	if math.Abs(d-3160) > 100 {
		t.Errorf("expected ~3160 m, got %.0f", d)
	}

	if d := geospatial.Haversine(43.263, -2.935, 43.263, -2.935); d != 0 {
		t.Errorf("expected 0 for identical points, got %f", d)
	}
}

func TestFormatDistance(t *testing.T) {
	cases := map[float64]string{
		0:      "0 m",
		849.6:  "850 m",
		3160:   "3.2 km",
		12_000: "12.0 km",
	}
	for in, want := range cases {
		if got := geospatial.FormatDistance(in); got != want {
			t.Errorf("FormatDistance(%v) = %q, want %q", in, got, want)
		}
	}
}
