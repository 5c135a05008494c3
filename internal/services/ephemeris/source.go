package ephemeris

import (
	"context"
	"fmt"

	"AstroCalc/internal/domain/models"
	domrepo "AstroCalc/internal/domain/repository"
	"AstroCalc/pkg/util"
)

// speedStep is the half-step in days for the central difference that
// yields daily motion.
const speedStep = 0.5

// BuiltinSource computes positions from the built-in series. It is
// pure and never performs I/O.
type BuiltinSource struct{}

// NewBuiltinSource returns the analytic ephemeris source.
func NewBuiltinSource() *BuiltinSource { return &BuiltinSource{} }

// rawPosition returns tropical longitude/latitude in degrees and
// distance in AU for one body at one instant.
func rawPosition(body models.Body, jd float64) (lon, lat, distAU float64, err error) {
	switch body {
	case models.Sun:
		lon, lat, distAU = SunPosition(jd)
	case models.Moon:
		var km float64
		lon, lat, km = MoonPosition(jd)
		distAU = MoonDistanceAU(km)
	case models.Rahu:
		lon = MeanLunarNode(jd)
		distAU = MoonDistanceAU(385000.56)
	case models.Ketu:
		lon = util.Norm360(MeanLunarNode(jd) + 180)
		distAU = MoonDistanceAU(385000.56)
	default:
		var ok bool
		lon, lat, distAU, ok = PlanetPosition(body, jd)
		if !ok {
			return 0, 0, 0, fmt.Errorf("%w: body %q", models.ErrUnsupportedParameter, body)
		}
	}
	return lon, lat, distAU, nil
}

// Positions implements repository.EphemerisSource. Daily motion is a
// central difference over one day, which also sets the retrograde
// flag; the mean node always regresses.
func (s *BuiltinSource) Positions(_ context.Context, bodies []models.Body, jd float64) ([]models.BodyPosition, error) {
	out := make([]models.BodyPosition, 0, len(bodies))
	for _, b := range bodies {
		lon, lat, dist, err := rawPosition(b, jd)
		if err != nil {
			return nil, err
		}
		before, _, _, err := rawPosition(b, jd-speedStep)
		if err != nil {
			return nil, err
		}
		after, _, _, err := rawPosition(b, jd+speedStep)
		if err != nil {
			return nil, err
		}
		speed := util.Wrap180(after - before)
		out = append(out, models.BodyPosition{
			Body:       b,
			Longitude:  lon,
			Latitude:   lat,
			DistanceAU: dist,
			Speed:      speed,
			Retrograde: speed < 0,
		})
	}
	return out, nil
}

var _ domrepo.EphemerisSource = (*BuiltinSource)(nil)
