package ephemeris

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"AstroCalc/internal/domain/models"
)

type fakeSource struct {
	calls    int
	failures int
	err      error
	pos      []models.BodyPosition
}

func (f *fakeSource) Positions(_ context.Context, _ []models.Body, _ float64) ([]models.BodyPosition, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return f.pos, nil
}

func TestGatewayOutOfBounds(t *testing.T) {
	src := &fakeSource{}
	g := NewGateway(src, WithYearBounds(1900, 2100))

	// 1850-01-01 is well before the supported range.
	_, err := g.Positions(context.Background(), models.AllBodies, 2396759.0)
	require.ErrorIs(t, err, models.ErrEphemerisUnavailable)
	require.Zero(t, src.calls, "source must not be queried out of bounds")
}

func TestGatewayRetriesOnce(t *testing.T) {
	want := []models.BodyPosition{{Body: models.Sun, Longitude: 84.13}}
	src := &fakeSource{failures: 1, err: errors.New("transient"), pos: want}
	g := NewGateway(src, WithRetryBackoff(time.Millisecond))

	got, err := g.Positions(context.Background(), []models.Body{models.Sun}, testJD)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, 2, src.calls)
}

func TestGatewayExhaustedRetry(t *testing.T) {
	src := &fakeSource{failures: 10, err: errors.New("down")}
	g := NewGateway(src, WithRetryBackoff(time.Millisecond))

	_, err := g.Positions(context.Background(), []models.Body{models.Sun}, testJD)
	require.ErrorIs(t, err, models.ErrEphemerisUnavailable)
	require.Equal(t, 2, src.calls, "exactly one retry")
}

func TestGatewayNoRetryOnUnsupported(t *testing.T) {
	src := &fakeSource{failures: 10, err: models.ErrUnsupportedParameter}
	g := NewGateway(src, WithRetryBackoff(time.Minute))

	_, err := g.Positions(context.Background(), []models.Body{"comet"}, testJD)
	require.ErrorIs(t, err, models.ErrUnsupportedParameter)
	require.Equal(t, 1, src.calls)
}
