package astro

// Location is a place on Earth and the standard time zone used there.
type Location struct {
	Latitude  float64 // degrees, north positive
	Longitude float64 // degrees, east positive
	Elevation float64 // meters above sea level
	Zone      float64 // hours ahead of UTC
}

// UniversalFromStandard converts standard time at loc to Universal Time.
func UniversalFromStandard(t float64, loc Location) float64 {
	return t - loc.Zone/24
}

// StandardFromUniversal converts Universal Time to standard time at loc.
func StandardFromUniversal(t float64, loc Location) float64 {
	return t + loc.Zone/24
}

// LocalFromUniversal converts Universal Time to local mean time at loc.
func LocalFromUniversal(t float64, loc Location) float64 {
	return t + loc.Longitude/360
}

// UniversalFromLocal converts local mean time at loc to Universal Time.
func UniversalFromLocal(t float64, loc Location) float64 {
	return t - loc.Longitude/360
}

// ApparentFromLocal converts local mean time to sundial time.
func ApparentFromLocal(t float64, loc Location) float64 {
	return t + EquationOfTime(UniversalFromLocal(t, loc))
}

// LocalFromApparent converts sundial time to local mean time.
func LocalFromApparent(t float64, loc Location) float64 {
	return t - EquationOfTime(UniversalFromLocal(t, loc))
}
