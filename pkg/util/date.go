package util

import (
    "strconv"
    "time"
)

// ParseTime tries RFC3339, RFC3339Nano, a date-only form, and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if t, err := time.Parse("2006-01-02", s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0).UTC(), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// JulianDay converts a UTC instant to its Julian Day number.
func JulianDay(t time.Time) float64 {
    t = t.UTC()
    y, mo, d := t.Year(), int(t.Month()), t.Day()
    if mo <= 2 {
        y--
        mo += 12
    }
    a := y / 100
    b := 2 - a + a/4
    day := float64(d) +
        (float64(t.Hour())+float64(t.Minute())/60+
            (float64(t.Second())+float64(t.Nanosecond())/1e9)/3600)/24
    return float64(int(365.25*float64(y+4716))) +
        float64(int(30.6001*float64(mo+1))) +
        day + float64(b) - 1524.5
}

// TimeFromJulianDay converts a Julian Day number back to a UTC instant,
// truncated to whole seconds so the round trip is deterministic.
func TimeFromJulianDay(jd float64) time.Time {
    const epoch = 2440587.5 // JD of 1970-01-01T00:00:00Z
    sec := (jd - epoch) * 86400.0
    return time.Unix(int64(sec), 0).UTC()
}
