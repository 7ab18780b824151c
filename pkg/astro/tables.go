package astro

import "sync"

// Scratch buffers for summing the periodic series. Each call borrows its
// own buffer so the functions stay safe for concurrent use.
var (
	solarScratch     = sync.Pool{New: func() any { return new([len(solarTerms)]float64) }}
	lunarScratch     = sync.Pool{New: func() any { return new([len(lunarTerms)]float64) }}
	newMoonScratch   = sync.Pool{New: func() any { return new([len(newMoonTerms) + 1]float64) }}
	planetaryScratch = sync.Pool{New: func() any { return new([len(planetaryTerms)]float64) }}
)

// Periodic terms of the solar longitude series: amplitude in units of
// 0.000005729577951308232 degrees, phase in degrees, rate in degrees per
// Julian century.
var solarTerms = [...]struct{ amplitude, phase, rate float64 }{
	{403406, 270.54861, 0.9287892},
	{195207, 340.19128, 35999.1376958},
	{119433, 63.91854, 35999.4089666},
	{112392, 331.26220, 35998.7287385},
	{3891, 317.843, 71998.20261},
	{2819, 86.631, 71998.4403},
	{1721, 240.052, 36000.35726},
	{660, 310.26, 71997.4812},
	{350, 247.23, 32964.4678},
	{334, 260.87, -19.4410},
	{314, 297.82, 445267.1117},
	{268, 343.14, 45036.8840},
	{242, 166.79, 3.1008},
	{234, 81.53, 22518.4434},
	{158, 3.50, -19.9739},
	{132, 132.75, 65928.9345},
	{129, 182.95, 9038.0293},
	{114, 162.03, 3034.7684},
	{99, 29.8, 33718.148},
	{93, 266.4, 3034.448},
	{86, 249.2, -2280.773},
	{78, 157.6, 29929.992},
	{72, 257.8, 31556.493},
	{68, 185.1, 149.588},
	{64, 69.9, 9037.750},
	{46, 8, 107997.405},
	{38, 197.1, -4444.176},
	{37, 250.4, 151.771},
	{32, 65.3, 67555.316},
	{29, 162.7, 31556.080},
	{28, 341.5, -4561.540},
	{27, 291.6, 107996.706},
	{27, 98.5, 1221.655},
	{25, 146.7, 62894.167},
	{24, 110, 31437.369},
	{21, 5.2, 14578.298},
	{21, 342.6, -31931.757},
	{20, 230.9, 34777.243},
	{18, 256.1, 1221.999},
	{17, 45.3, 62894.511},
	{14, 242.9, -4442.039},
	{13, 115.2, 107997.909},
	{13, 151.8, 119.066},
	{13, 285.3, 16859.071},
	{12, 53.3, -4.578},
	{10, 126.6, 26895.292},
	{10, 205.7, -39.127},
	{10, 85.9, 12297.536},
	{10, 146.1, 90073.778},
}

// Corrections to the mean new moon: amplitude in days, power of the
// eccentricity factor, multipliers of the solar anomaly, lunar anomaly and
// moon argument of latitude.
var newMoonTerms = [...]struct {
	amplitude          float64
	eccentricity       float64
	solar, lunar, node float64
}{
	{-0.40720, 0, 0, 1, 0},
	{0.17241, 1, 1, 0, 0},
	{0.01608, 0, 0, 2, 0},
	{0.01039, 0, 0, 0, 2},
	{0.00739, 1, -1, 1, 0},
	{-0.00514, 1, 1, 1, 0},
	{0.00208, 2, 2, 0, 0},
	{-0.00111, 0, 0, 1, -2},
	{-0.00057, 0, 0, 1, 2},
	{0.00056, 1, 1, 2, 0},
	{-0.00042, 0, 0, 3, 0},
	{0.00042, 1, 1, 0, 2},
	{0.00038, 1, 1, 0, -2},
	{-0.00024, 1, -1, 2, 0},
	{-0.00007, 0, 2, 1, 0},
	{0.00004, 0, 0, 2, -2},
	{0.00004, 0, 3, 0, 0},
	{0.00003, 0, 1, 1, -2},
	{0.00003, 0, 0, 2, 2},
	{-0.00003, 0, 1, 1, 2},
	{0.00003, 0, -1, 1, 2},
	{-0.00002, 0, -1, 1, -2},
	{-0.00002, 0, 1, 3, 0},
	{0.00002, 0, 0, 4, 0},
}

// Additional new-moon corrections from planetary arguments.
var planetaryTerms = [...]struct{ phase, rate, amplitude float64 }{
	{251.88, 0.016321, 0.000165},
	{251.83, 26.651886, 0.000164},
	{349.42, 36.412478, 0.000126},
	{84.66, 18.206239, 0.000110},
	{141.74, 53.303771, 0.000062},
	{207.14, 2.453732, 0.000060},
	{154.84, 7.306860, 0.000056},
	{34.52, 27.261239, 0.000047},
	{207.19, 0.121824, 0.000042},
	{291.34, 1.844379, 0.000040},
	{161.72, 24.198154, 0.000037},
	{239.56, 25.513099, 0.000035},
	{331.55, 3.592518, 0.000023},
}

// Periodic terms of the lunar longitude in millionths of a degree with
// multipliers of elongation, solar anomaly, lunar anomaly and node argument.
var lunarTerms = [...]struct{ amplitude, elongation, solar, lunar, node float64 }{
	{6288774, 0, 0, 1, 0},
	{1274027, 2, 0, -1, 0},
	{658314, 2, 0, 0, 0},
	{213618, 0, 0, 2, 0},
	{-185116, 0, 1, 0, 0},
	{-114332, 0, 0, 0, 2},
	{58793, 2, 0, -2, 0},
	{57066, 2, -1, -1, 0},
	{53322, 2, 0, 1, 0},
	{45758, 2, -1, 0, 0},
	{-40923, 0, 1, -1, 0},
	{-34720, 1, 0, 0, 0},
	{-30383, 0, 1, 1, 0},
	{15327, 2, 0, 0, -2},
	{-12528, 0, 0, 1, 2},
	{10980, 0, 0, 1, -2},
	{10675, 4, 0, -1, 0},
	{10034, 0, 0, 3, 0},
	{8548, 4, 0, -2, 0},
	{-7888, 2, 1, -1, 0},
	{-6766, 2, 1, 0, 0},
	{-5163, 1, 0, -1, 0},
	{4987, 1, 1, 0, 0},
	{4036, 2, -1, 1, 0},
	{3994, 2, 0, 2, 0},
	{3861, 4, 0, 0, 0},
	{3665, 2, 0, -3, 0},
	{-2689, 0, 1, -2, 0},
	{-2602, 2, 0, -1, 2},
	{2390, 2, -1, -2, 0},
	{-2348, 1, 0, 1, 0},
	{2236, 2, -2, 0, 0},
	{-2120, 0, 1, 2, 0},
	{-2069, 0, 2, 0, 0},
	{2048, 2, -2, -1, 0},
	{-1773, 2, 0, 1, -2},
	{-1595, 2, 0, 0, 2},
	{1215, 4, -1, -1, 0},
	{-1110, 0, 0, 2, 2},
	{-892, 3, 0, -1, 0},
	{-810, 2, 1, 1, 0},
	{759, 4, -1, -2, 0},
	{-713, 0, 2, -1, 0},
	{-700, 2, 2, -1, 0},
	{691, 2, 1, -2, 0},
	{596, 2, -1, 0, -2},
	{549, 4, 0, 1, 0},
	{537, 0, 0, 4, 0},
	{520, 4, -1, 0, 0},
	{-487, 1, 0, -2, 0},
	{-399, 2, 1, 0, -2},
	{-381, 0, 0, 2, -2},
	{351, 1, 1, 1, 0},
	{-340, 3, 0, -2, 0},
	{330, 4, 0, -3, 0},
	{327, 2, -1, 2, 0},
	{-323, 0, 2, 1, 0},
	{299, 1, 1, -1, 0},
	{294, 2, 0, 3, 0},
}
