package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"AstroCalc/internal/domain/models"
	domrepo "AstroCalc/internal/domain/repository"
	pkgch "AstroCalc/pkg/clickhouse"
	applogger "AstroCalc/pkg/logger"
	"AstroCalc/pkg/util"
)

// CHEphemerisStore serves positions from a precomputed daily
// ephemeris table in ClickHouse, interpolating between the two
// bracketing rows. An optional fallback source covers table gaps and
// outages.
type CHEphemerisStore struct {
	db       *sql.DB
	table    string
	fallback domrepo.EphemerisSource
	l        *applogger.Logger
}

// CHEphemerisOption configures a CHEphemerisStore.
type CHEphemerisOption func(*CHEphemerisStore)

// WithFallback delegates to src when ClickHouse cannot answer.
func WithFallback(src domrepo.EphemerisSource) CHEphemerisOption {
	return func(s *CHEphemerisStore) { s.fallback = src }
}

// WithTable overrides the daily positions table name.
func WithTable(table string) CHEphemerisOption {
	return func(s *CHEphemerisStore) { s.table = table }
}

// WithStoreLogger injects a structured logger.
func WithStoreLogger(l *applogger.Logger) CHEphemerisOption {
	return func(s *CHEphemerisStore) { s.l = l }
}

func NewCHEphemerisStore(ch *pkgch.Client, opts ...CHEphemerisOption) *CHEphemerisStore {
	s := &CHEphemerisStore{db: ch.DB(), table: "ephemeris_daily"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EphemerisSchema creates the daily positions table. Rows are keyed
// by body and the integer Julian Day of the sample.
func EphemerisSchema(table string) []string {
	return []string{fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            body       LowCardinality(String),
            jd         Float64,
            longitude  Float64,
            latitude   Float64,
            distance   Float64,
            speed      Float64
        ) ENGINE = MergeTree()
        ORDER BY (body, jd)
    `, table)}
}

type dailyRow struct {
	lon, lat, dist, speed float64
}

// Positions interpolates each body linearly between the rows at
// floor(jd) and floor(jd)+1. Any miss falls through to the fallback
// source when one is configured.
func (s *CHEphemerisStore) Positions(ctx context.Context, bodies []models.Body, jd float64) ([]models.BodyPosition, error) {
	start := time.Now()
	jd0 := math.Floor(jd)
	f := jd - jd0

	rows, err := s.queryBracket(ctx, bodies, jd0)
	if err != nil {
		return s.recover(ctx, bodies, jd, err)
	}

	out := make([]models.BodyPosition, 0, len(bodies))
	for _, b := range bodies {
		lo, okLo := rows[b][0]
		hi, okHi := rows[b][1]
		if !okLo || !okHi {
			return s.recover(ctx, bodies, jd,
				fmt.Errorf("body %s has no rows bracketing jd %.2f", b, jd))
		}
		lon := util.Norm360(lo.lon + f*util.Wrap180(hi.lon-lo.lon))
		speed := lo.speed + f*(hi.speed-lo.speed)
		out = append(out, models.BodyPosition{
			Body:       b,
			Longitude:  lon,
			Latitude:   lo.lat + f*(hi.lat-lo.lat),
			DistanceAU: lo.dist + f*(hi.dist-lo.dist),
			Speed:      speed,
			Retrograde: speed < 0,
		})
	}

	if s.l != nil {
		s.l.Debug("clickhouse ephemeris ok",
			applogger.String("table", s.table),
			applogger.Int("bodies", len(bodies)),
			applogger.Duration("duration_ms", time.Since(start)))
	}
	return out, nil
}

// queryBracket loads both daily samples around jd0 for every body,
// indexed by body then bracket side (0 = jd0, 1 = jd0+1).
func (s *CHEphemerisStore) queryBracket(ctx context.Context, bodies []models.Body, jd0 float64) (map[models.Body]map[int]dailyRow, error) {
	placeholders := make([]string, len(bodies))
	args := make([]any, 0, len(bodies)+2)
	for i, b := range bodies {
		placeholders[i] = "?"
		args = append(args, string(b))
	}
	args = append(args, jd0, jd0+1)

	q := fmt.Sprintf(`
        SELECT body, jd, longitude, latitude, distance, speed
        FROM %s
        WHERE body IN (%s) AND jd IN (?, ?)
    `, s.table, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("ephemeris query: %w", err)
	}
	defer rows.Close()

	out := make(map[models.Body]map[int]dailyRow, len(bodies))
	for rows.Next() {
		var (
			body string
			jd   float64
			r    dailyRow
		)
		if err := rows.Scan(&body, &jd, &r.lon, &r.lat, &r.dist, &r.speed); err != nil {
			return nil, fmt.Errorf("scan ephemeris row: %w", err)
		}
		side := 0
		if jd > jd0 {
			side = 1
		}
		b := models.Body(body)
		if out[b] == nil {
			out[b] = make(map[int]dailyRow, 2)
		}
		out[b][side] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ephemeris rows: %w", err)
	}
	return out, nil
}

func (s *CHEphemerisStore) recover(ctx context.Context, bodies []models.Body, jd float64, cause error) ([]models.BodyPosition, error) {
	if s.l != nil {
		s.l.Warn("clickhouse ephemeris miss",
			applogger.String("table", s.table),
			applogger.Any("jd", jd),
			applogger.Error(cause))
	}
	if s.fallback != nil {
		return s.fallback.Positions(ctx, bodies, jd)
	}
	return nil, fmt.Errorf("%w: %v", models.ErrEphemerisUnavailable, cause)
}

var _ domrepo.EphemerisSource = (*CHEphemerisStore)(nil)
