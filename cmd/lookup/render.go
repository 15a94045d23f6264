package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/pkg/geospatial"
)

// render prints one block per place, best first.
func render(w io.Writer, req domain.LookupRequest, res domain.LookupResult) error {
	if res.Best == nil {
		_, err := fmt.Fprintf(w, "No places found within %s.\n", geospatial.FormatDistance(float64(req.RadiusMeters)))
		return err
	}

	var b strings.Builder
	writePlace(&b, req, res.Best, true)
	for i := range res.Candidates {
		c := &res.Candidates[i]
		if c.PageID == res.Best.PageID {
			continue
		}
		writePlace(&b, req, c, false)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writePlace(b *strings.Builder, req domain.LookupRequest, p *domain.PlaceRecord, best bool) {
	marker := " "
	if best {
		marker = "*"
	}
	dist := geospatial.Haversine(req.Lat, req.Lng, p.Coordinates.Lat, p.Coordinates.Lng)
	fmt.Fprintf(b, "%s %s (%s)\n", marker, p.Title, geospatial.FormatDistance(dist))

	for _, line := range strings.Split(p.ShortSummary, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(b, "    %s\n", line)
		}
	}
	if p.UsedEnglishFallback && !p.Translated && p.Lang != p.ContentLang {
		fmt.Fprintf(b, "    [%s]\n", p.ContentLang)
	}
	if best && p.PageURL != nil {
		fmt.Fprintf(b, "    %s\n", *p.PageURL)
	}
}
