package models

// Body identifies a celestial body or computed point.
type Body string

const (
	Sun     Body = "sun"
	Moon    Body = "moon"
	Mercury Body = "mercury"
	Venus   Body = "venus"
	Mars    Body = "mars"
	Jupiter Body = "jupiter"
	Saturn  Body = "saturn"
	Uranus  Body = "uranus"
	Neptune Body = "neptune"
	Pluto   Body = "pluto"
	Rahu    Body = "rahu" // mean ascending lunar node
	Ketu    Body = "ketu" // mean descending lunar node

	// Chart angles, valid as aspect points but not ephemeris bodies.
	Ascendant Body = "ascendant"
	Midheaven Body = "midheaven"
)

// AllBodies is the canonical computation order for a chart.
var AllBodies = []Body{
	Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn,
	Uranus, Neptune, Pluto, Rahu, Ketu,
}

// BodyClass groups bodies for orb scaling.
type BodyClass string

const (
	ClassLuminary BodyClass = "luminary"
	ClassPersonal BodyClass = "personal"
	ClassOuter    BodyClass = "outer"
	ClassPoint    BodyClass = "point"
)

// Class returns the orb class of a body.
func (b Body) Class() BodyClass {
	switch b {
	case Sun, Moon:
		return ClassLuminary
	case Mercury, Venus, Mars:
		return ClassPersonal
	case Ascendant, Midheaven:
		return ClassPoint
	default:
		return ClassOuter
	}
}

// IsNode reports whether the body is a lunar node.
func (b Body) IsNode() bool { return b == Rahu || b == Ketu }

// IsBenefic reports the classical benefic grouping used by the
// aspectual strength component.
func (b Body) IsBenefic() bool {
	switch b {
	case Jupiter, Venus, Moon, Mercury:
		return true
	default:
		return false
	}
}

// IsValidBody reports whether s names a computable ephemeris body.
func IsValidBody(s string) bool {
	for _, b := range AllBodies {
		if Body(s) == b {
			return true
		}
	}
	return false
}
