package util

import (
    "math"
    "testing"
)

func TestNorm360(t *testing.T) {
    cases := []struct{ in, want float64 }{
        {0, 0}, {360, 0}, {-30, 330}, {725, 5}, {-725, 355},
    }
    for _, c := range cases {
        if got := Norm360(c.in); math.Abs(got-c.want) > 1e-12 {
            t.Fatalf("Norm360(%v) = %v, want %v", c.in, got, c.want)
        }
    }
}

func TestWrap180(t *testing.T) {
    if got := Wrap180(190); got != -170 {
        t.Fatalf("Wrap180(190) = %v", got)
    }
    if got := Wrap180(-190); got != 170 {
        t.Fatalf("Wrap180(-190) = %v", got)
    }
    if got := Wrap180(180); got != 180 {
        t.Fatalf("Wrap180(180) = %v", got)
    }
}

func TestSeparationSymmetric(t *testing.T) {
    if got := Separation(350, 10); math.Abs(got-20) > 1e-12 {
        t.Fatalf("Separation(350,10) = %v", got)
    }
    if Separation(10, 350) != Separation(350, 10) {
        t.Fatalf("separation not symmetric")
    }
}

func TestMidpointShorterArc(t *testing.T) {
    if got := Midpoint(350, 10); math.Abs(got-0) > 1e-9 {
        t.Fatalf("Midpoint(350,10) = %v, want 0", got)
    }
    if got := Midpoint(10, 350); math.Abs(got-0) > 1e-9 {
        t.Fatalf("Midpoint(10,350) = %v, want 0", got)
    }
}

func TestMidpointAntipodalTieBreak(t *testing.T) {
    // order must not matter for exactly antipodal points
    a := Midpoint(20, 200)
    b := Midpoint(200, 20)
    if a != b {
        t.Fatalf("antipodal midpoint depends on order: %v vs %v", a, b)
    }
    if math.Abs(a-110) > 1e-9 {
        t.Fatalf("antipodal midpoint = %v, want 110", a)
    }
}

func TestJulianDay(t *testing.T) {
    got := JulianDay(mustDate(t, "2000-01-01T12:00:00Z"))
    if math.Abs(got-2451545.0) > 1e-9 {
        t.Fatalf("J2000 = %v", got)
    }
    got = JulianDay(mustDate(t, "1990-06-15T12:00:00Z"))
    if math.Abs(got-2448058.0) > 1e-9 {
        t.Fatalf("1990-06-15 = %v", got)
    }
}

func TestJulianDayRoundTrip(t *testing.T) {
    in := mustDate(t, "2024-10-10T10:10:10Z")
    out := TimeFromJulianDay(JulianDay(in))
    if !out.Equal(in) {
        t.Fatalf("round trip %v -> %v", in, out)
    }
}
