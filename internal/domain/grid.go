package domain

import "math"

// Lambert conformal conic projection onto the 5 km national weather grid.
// Standard parallels 30°N/60°N, origin 126°E/38°N, with the origin placed at
// grid cell (43, 136). The closed form must reproduce the grid operator's
// reference conversion exactly — cell boundaries are an external contract —
// so the constants below are not tunable.
const (
	gridEarthRadiusKM = 6371.00877
	gridSpacingKM     = 5.0
	gridParallel1Deg  = 30.0
	gridParallel2Deg  = 60.0
	gridOriginLonDeg  = 126.0
	gridOriginLatDeg  = 38.0
	gridOriginX       = 43
	gridOriginY       = 136
)

// GridCell is an integer cell index on the weather grid.
type GridCell struct {
	NX int `json:"nx"`
	NY int `json:"ny"`
}

// Projection intermediates depend only on the fixed constants, computed once.
var lcc = newLambertGrid()

type lambertGrid struct {
	re        float64 // earth radius in grid units
	sn        float64 // cone factor
	sf        float64 // scale factor
	ro        float64 // radius at origin latitude
	originLon float64 // radians
}

func newLambertGrid() lambertGrid {
	const degrad = math.Pi / 180

	re := gridEarthRadiusKM / gridSpacingKM
	slat1 := gridParallel1Deg * degrad
	slat2 := gridParallel2Deg * degrad
	olon := gridOriginLonDeg * degrad
	olat := gridOriginLatDeg * degrad

	sn := math.Tan(math.Pi*0.25+slat2*0.5) / math.Tan(math.Pi*0.25+slat1*0.5)
	sn = math.Log(math.Cos(slat1)/math.Cos(slat2)) / math.Log(sn)
	sf := math.Pow(math.Tan(math.Pi*0.25+slat1*0.5), sn) * math.Cos(slat1) / sn
	ro := re * sf / math.Pow(math.Tan(math.Pi*0.25+olat*0.5), sn)

	return lambertGrid{re: re, sn: sn, sf: sf, ro: ro, originLon: olon}
}

// ToGrid converts a WGS-84 coordinate to its weather grid cell.
func ToGrid(lat, lon float64) GridCell {
	const degrad = math.Pi / 180

	ra := lcc.re * lcc.sf / math.Pow(math.Tan(math.Pi*0.25+lat*degrad*0.5), lcc.sn)

	theta := lon*degrad - lcc.originLon
	if theta > math.Pi {
		theta -= 2 * math.Pi
	}
	if theta < -math.Pi {
		theta += 2 * math.Pi
	}
	theta *= lcc.sn

	return GridCell{
		NX: int(math.Floor(ra*math.Sin(theta) + gridOriginX + 0.5)),
		NY: int(math.Floor(lcc.ro - ra*math.Cos(theta) + gridOriginY + 0.5)),
	}
}
