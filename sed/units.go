package sed

// Unit conversion between MeV and erg.
const (
	MeVToErg = 1.602e-6
	ErgToMeV = 1 / MeVToErg
)
