package strength

import "AstroCalc/internal/domain/models"

// exaltationSign per body, zero-based from Aries. Debilitation is the
// opposite sign.
var exaltationSign = map[models.Body]int{
	models.Sun:     0,  // Aries
	models.Moon:    1,  // Taurus
	models.Mercury: 5,  // Virgo
	models.Venus:   11, // Pisces
	models.Mars:    9,  // Capricorn
	models.Jupiter: 3,  // Cancer
	models.Saturn:  6,  // Libra
	models.Rahu:    1,  // Taurus
	models.Ketu:    7,  // Scorpio
}

// signLord per sign, the classical rulership scheme.
var signLord = [12]models.Body{
	models.Mars, models.Venus, models.Mercury, models.Moon,
	models.Sun, models.Mercury, models.Venus, models.Mars,
	models.Jupiter, models.Saturn, models.Saturn, models.Jupiter,
}

// friends and enemies among the seven classical lords; absence from
// both maps means a neutral relationship.
var friends = map[models.Body][]models.Body{
	models.Sun:     {models.Moon, models.Mars, models.Jupiter},
	models.Moon:    {models.Sun, models.Mercury},
	models.Mars:    {models.Sun, models.Moon, models.Jupiter},
	models.Mercury: {models.Sun, models.Venus},
	models.Jupiter: {models.Sun, models.Moon, models.Mars},
	models.Venus:   {models.Mercury, models.Saturn},
	models.Saturn:  {models.Mercury, models.Venus},
}

var enemies = map[models.Body][]models.Body{
	models.Sun:     {models.Venus, models.Saturn},
	models.Mars:    {models.Mercury},
	models.Mercury: {models.Moon},
	models.Jupiter: {models.Mercury, models.Venus},
	models.Venus:   {models.Sun, models.Moon},
	models.Saturn:  {models.Sun, models.Moon, models.Mars},
}

// bestHouse is the house of directional strength per body.
var bestHouse = map[models.Body]int{
	models.Mercury: 1,
	models.Jupiter: 1,
	models.Moon:    4,
	models.Venus:   4,
	models.Saturn:  7,
	models.Sun:     10,
	models.Mars:    10,
}

// dayPlanets are strong in day births, nightPlanets in night births.
// Mercury scores both ways.
var dayPlanets = map[models.Body]bool{
	models.Sun: true, models.Jupiter: true, models.Saturn: true,
}

var nightPlanets = map[models.Body]bool{
	models.Moon: true, models.Venus: true, models.Mars: true,
}

// weekdayLord indexed by time.Weekday (Sunday = 0).
var weekdayLord = [7]models.Body{
	models.Sun, models.Moon, models.Mars, models.Mercury,
	models.Jupiter, models.Venus, models.Saturn,
}

// meanDailyMotion in degrees per day, the reference for motional
// strength.
var meanDailyMotion = map[models.Body]float64{
	models.Sun:     0.9856,
	models.Moon:    13.1764,
	models.Mercury: 1.3833,
	models.Venus:   1.2000,
	models.Mars:    0.5240,
	models.Jupiter: 0.0831,
	models.Saturn:  0.0334,
	models.Uranus:  0.0117,
	models.Neptune: 0.0060,
	models.Pluto:   0.0040,
}

// naturalStrength is the fixed classical ordering, Saturn weakest to
// the Sun strongest. Nodes score as their malefic analogues, the
// outer bodies sit at the neutral midpoint.
var naturalStrength = map[models.Body]float64{
	models.Sun:     7.0 / 7,
	models.Moon:    6.0 / 7,
	models.Venus:   5.0 / 7,
	models.Jupiter: 4.0 / 7,
	models.Mercury: 3.0 / 7,
	models.Mars:    2.0 / 7,
	models.Saturn:  1.0 / 7,
	models.Rahu:    1.0 / 7,
	models.Ketu:    2.0 / 7,
}
