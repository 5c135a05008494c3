package util

import "math"

// Norm360 normalizes an angle in degrees to [0, 360).
func Norm360(deg float64) float64 {
    d := math.Mod(deg, 360)
    if d < 0 {
        d += 360
    }
    return d
}

// Wrap180 maps an angular difference to (-180, 180].
func Wrap180(deg float64) float64 {
    d := math.Mod(deg+180, 360)
    if d <= 0 {
        d += 360
    }
    return d - 180
}

// Separation returns the minimal angular distance between two
// longitudes, always in [0, 180].
func Separation(a, b float64) float64 {
    return math.Abs(Wrap180(a - b))
}

// Midpoint returns the shorter-arc midpoint of two longitudes.
// Exactly antipodal pairs tie-break to the midpoint reached going
// forward from the smaller longitude, so the result does not depend
// on argument order.
func Midpoint(a, b float64) float64 {
    a, b = Norm360(a), Norm360(b)
    d := Wrap180(b - a)
    if d == -180 || d == 180 {
        lo := math.Min(a, b)
        return Norm360(lo + 90)
    }
    return Norm360(a + d/2)
}

// Sind, Cosd and Tand are degree-argument trigonometric helpers.
func Sind(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
func Cosd(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func Tand(deg float64) float64 { return math.Tan(deg * math.Pi / 180) }

// Atan2d returns atan2 in degrees normalized to [0, 360).
func Atan2d(y, x float64) float64 {
    return Norm360(math.Atan2(y, x) * 180 / math.Pi)
}

// Asind returns asin in degrees.
func Asind(v float64) float64 { return math.Asin(v) * 180 / math.Pi }
