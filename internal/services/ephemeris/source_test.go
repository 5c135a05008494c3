package ephemeris

import (
	"context"
	"errors"
	"math"
	"testing"

	"AstroCalc/internal/domain/models"
	"AstroCalc/pkg/util"
)

func TestBuiltinSourcePositions(t *testing.T) {
	src := NewBuiltinSource()
	pos, err := src.Positions(context.Background(), models.AllBodies, testJD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pos) != len(models.AllBodies) {
		t.Fatalf("got %d positions, want %d", len(pos), len(models.AllBodies))
	}
	byBody := make(map[models.Body]models.BodyPosition, len(pos))
	for _, p := range pos {
		byBody[p.Body] = p
	}

	moon := byBody[models.Moon]
	if math.Abs(moon.Speed-13.3637) > 0.02 {
		t.Fatalf("moon speed = %v, want 13.3637", moon.Speed)
	}
	if moon.Retrograde {
		t.Fatalf("moon flagged retrograde")
	}

	// Saturn was retrograde in mid-June 1990.
	if sat := byBody[models.Saturn]; !sat.Retrograde || sat.Speed >= 0 {
		t.Fatalf("saturn speed = %v retro = %v, want retrograde", sat.Speed, sat.Retrograde)
	}

	// The mean node regresses, and Ketu stays opposite Rahu.
	rahu, ketu := byBody[models.Rahu], byBody[models.Ketu]
	if !rahu.Retrograde || !ketu.Retrograde {
		t.Fatalf("nodes should be retrograde")
	}
	if sep := util.Separation(rahu.Longitude, ketu.Longitude); math.Abs(sep-180) > 1e-9 {
		t.Fatalf("rahu/ketu separation = %v, want 180", sep)
	}
}

func TestBuiltinSourceUnsupportedBody(t *testing.T) {
	src := NewBuiltinSource()
	_, err := src.Positions(context.Background(), []models.Body{models.Ascendant}, testJD)
	if !errors.Is(err, models.ErrUnsupportedParameter) {
		t.Fatalf("got %v, want ErrUnsupportedParameter", err)
	}
}
