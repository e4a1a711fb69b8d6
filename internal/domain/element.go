package domain

import "math"

// Sign is one of the 12 zodiacal signs, 30 ecliptic degrees each.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return "Unknown"
	}
	return signNames[s]
}

// Element is the closed 4-element grouping of the signs.
type Element int

const (
	Fire Element = iota
	Earth
	Air
	Water
)

var elementNames = [...]string{"Fire", "Earth", "Air", "Water"}

func (e Element) String() string {
	if e < Fire || e > Water {
		return "Unknown"
	}
	return elementNames[e]
}

// Fixed sign -> element assignment, three signs per element. The
// pattern repeats every four signs starting from Aries/Fire.
var signElements = [12]Element{
	Fire, Earth, Air, Water,
	Fire, Earth, Air, Water,
	Fire, Earth, Air, Water,
}

func (s Sign) Element() Element { return signElements[s] }

// NormalizeLongitude maps any angle onto [0, 360). Every longitude is
// normalized before sign or element classification.
func NormalizeLongitude(deg float64) float64 {
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	if n >= 360 {
		n -= 360
	}
	return n
}

// SignOf classifies an ecliptic longitude into its zodiacal sign.
func SignOf(lon float64) Sign {
	return Sign(int(NormalizeLongitude(lon) / 30))
}

// DegreeInSign returns the longitude's offset within its sign, [0, 30).
func DegreeInSign(lon float64) float64 {
	n := NormalizeLongitude(lon)
	return n - 30*math.Floor(n/30)
}

// ElementalWeights is a normalized elemental distribution, each value
// a percentage rounded to one decimal. The four values need not sum
// to exactly 100.0; rounding is applied per element independently.
type ElementalWeights struct {
	Fire  float64
	Earth float64
	Air   float64
	Water float64
}
