package domain

import "math"

// Parcel holds package dimensions and weight.
type Parcel struct {
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	DistanceUnit string  `json:"distance_unit,omitempty"`
	Weight       float64 `json:"weight"`
	MassUnit     string  `json:"mass_unit,omitempty"`
}

// dimDivisor is the domestic US dimensional weight divisor for cubic inches.
const dimDivisor = 166

// WithDefaults returns a copy with inch and pound units filled in.
func (p Parcel) WithDefaults() Parcel {
	if p.DistanceUnit == "" {
		p.DistanceUnit = "in"
	}
	if p.MassUnit == "" {
		p.MassUnit = "lb"
	}
	return p
}

// Valid reports whether every dimension and the weight are positive.
func (p Parcel) Valid() bool {
	return p.Length > 0 && p.Width > 0 && p.Height > 0 && p.Weight > 0
}

// DimensionalWeight returns the carrier dimensional weight in pounds, rounded to cents.
func (p Parcel) DimensionalWeight() float64 {
	l, w, h := p.Length, p.Width, p.Height
	if p.DistanceUnit == "cm" {
		l, w, h = l/2.54, w/2.54, h/2.54
	}
	return math.Round(l*w*h/dimDivisor*100) / 100
}
