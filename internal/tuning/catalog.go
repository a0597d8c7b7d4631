package tuning

// Key addresses one coefficient row of the catalog. Méndez & Rímolo rows
// are additionally indexed by the time-constant ratio a, which is passed
// to Lookup separately because no other method depends on it.
type Key struct {
	Method     Method
	Mode       Mode
	Controller ControllerType
	Criterion  Criterion
}

type usortKey struct {
	mode Mode
	ctrl ControllerType
	ms   float64
}

type mendezKey struct {
	mode  Mode
	index ErrorIndex
	ratio float64
}

type responseKey struct {
	ctrl  ControllerType
	index ErrorIndex
}

// uSORT coefficient rows (shared by the 1GdL and 2GdL variants; only the
// 2GdL evaluation reads the d-fields). Regulator rows are indexed by
// Ms in {2.0, 1.6}, servo rows by Ms in {1.8, 1.6}.
var usortCoeffs = map[usortKey]CoefficientSet{
	{Regulator, PI, 2.0}: {
		A0: 0.265, A1: 0.603, A2: -0.971,
		B0: -1.382, B1: 2.837, B2: 0.211,
		D0: 0.372, D1: 1.205, D2: 0.608,
	},
	{Regulator, PI, 1.6}: {
		A0: 0.175, A1: 0.466, A2: -0.911,
		B0: -1.382, B1: 2.837, B2: 0.211,
		D0: 0.446, D1: 0.811, D2: 0.446,
	},
	{Regulator, PID, 2.0}: {
		A0: 0.235, A1: 0.840, A2: -0.919,
		B0: -0.198, B1: 1.291, B2: 0.485,
		C0: 0.004, C1: 0.389, C2: 0.869,
		D0: 0.248, D1: 0.571, D2: 0.362,
	},
	{Regulator, PID, 1.6}: {
		A0: 0.435, A1: 0.551, A2: -1.123,
		B0: 0.095, B1: 1.165, B2: 0.517,
		C0: 0.104, C1: 0.414, C2: 0.758,
		D0: 0.255, D1: 0.277, D2: 0.476,
	},
	{Servo, PI, 1.8}: {
		A0: 0.243, A1: 0.509, A2: -1.063,
		B0: 14.650, B1: 8.450, B2: 0.000, B3: 15.740,
		D0: 0.372, D1: 1.205, D2: 0.608,
	},
	{Servo, PI, 1.6}: {
		A0: 0.209, A1: 0.417, A2: -1.064,
		B0: 0.107, B1: 1.164, B2: 0.377, B3: 0.066,
		D0: 0.446, D1: 0.811, D2: 0.446,
	},
	{Servo, PID, 1.8}: {
		A0: 0.377, A1: 0.727, A2: -1.041,
		B0: 1.687, B1: 339.2, B2: 39.86, B3: 1299.0,
		C0: -0.016, C1: 0.333, C2: 0.815,
		D0: 0.248, D1: 0.571, D2: 0.362,
	},
	{Servo, PID, 1.6}: {
		A0: 0.502, A1: 0.518, A2: -1.194,
		B0: 0.135, B1: 1.355, B2: 0.333, B3: 0.403,
		C0: 0.026, C1: 0.403, C2: 0.613,
		D0: 0.255, D1: 0.277, D2: 0.476,
	},
}

// Méndez & Rímolo rows: PI only, tabulated per time-constant ratio. The
// five ratio levels are exactly representable in binary, so float map keys
// are safe here.
var mendezCoeffs = map[mendezKey]CoefficientSet{
	{Regulator, IAE, 0.0}:  {A0: 0.124, A1: 0.886, A2: -1.005, B0: -2.422, B1: 3.855, B2: 0.780},
	{Regulator, IAE, 0.25}: {A0: 0.250, A1: 0.658, A2: -0.991, B0: 0.272, B1: 1.341, B2: 0.087},
	{Regulator, IAE, 0.5}:  {A0: 0.225, A1: 0.731, A2: -1.010, B0: 0.280, B1: 1.627, B2: -0.013},
	{Regulator, IAE, 0.75}: {A0: 0.190, A1: 0.868, A2: -0.999, B0: 0.223, B1: 2.013, B2: -0.022},
	{Regulator, IAE, 1.0}:  {A0: 0.184, A1: 0.994, A2: -0.999, B0: 0.194, B1: 2.358, B2: -0.020},

	{Regulator, ITAE, 0.0}:  {A0: 0.114, A1: 0.758, A2: -1.012, B0: -1.997, B1: 3.273, B2: 0.763},
	{Regulator, ITAE, 0.25}: {A0: 0.179, A1: 0.598, A2: -0.910, B0: 0.276, B1: 1.161, B2: 0.097},
	{Regulator, ITAE, 0.5}:  {A0: 0.212, A1: 0.592, A2: -0.952, B0: 0.248, B1: 1.437, B2: 0.018},
	{Regulator, ITAE, 0.75}: {A0: 0.191, A1: 0.648, A2: -0.970, B0: 0.202, B1: 1.691, B2: -0.007},
	{Regulator, ITAE, 1.0}:  {A0: 0.225, A1: 0.718, A2: -0.978, B0: 0.239, B1: 1.938, B2: -0.011},

	{Servo, IAE, 0.0}:  {A0: 0.265, A1: 0.509, A2: -1.042, B0: 0.433, B1: 0.922, B2: -0.017},
	{Servo, IAE, 0.25}: {A0: -0.035, A1: 0.761, A2: -0.619, B0: 0.395, B1: 1.117, B2: -0.080},
	{Servo, IAE, 0.5}:  {A0: 0.013, A1: 0.730, A2: -0.616, B0: 0.382, B1: 1.381, B2: -0.114},
	{Servo, IAE, 0.75}: {A0: -0.040, A1: 0.835, A2: -0.587, B0: 0.353, B1: 1.671, B2: -0.121},
	{Servo, IAE, 1.0}:  {A0: 0.035, A1: 0.825, A2: -0.618, B0: 0.406, B1: 1.903, B2: -0.134},

	{Servo, ITAE, 0.0}:  {A0: 0.209, A1: 0.441, A2: -1.054, B0: 0.326, B1: 0.882, B2: -0.035},
	{Servo, ITAE, 0.25}: {A0: -0.148, A1: 0.748, A2: -0.475, B0: 0.316, B1: 1.005, B2: -0.033},
	{Servo, ITAE, 0.5}:  {A0: -0.198, A1: 0.788, A2: -0.416, B0: 0.307, B1: 1.169, B2: -0.067},
	{Servo, ITAE, 0.75}: {A0: -0.299, A1: 0.914, A2: -0.372, B0: 0.299, B1: 1.371, B2: -0.076},
	{Servo, ITAE, 1.0}:  {A0: -0.338, A1: 0.997, A2: -0.360, B0: 0.291, B1: 1.605, B2: -0.072},
}

// López et al. (1967): regulator only. The paper's a..f coefficients map
// onto A1,A2 (gain), B1,B2 (integral) and C1,C2 (derivative).
var lopezCoeffs = map[responseKey]CoefficientSet{
	{P, ISE}:  {A1: 1.4110, A2: -0.9170},
	{P, IAE}:  {A1: 0.9023, A2: -0.9850},
	{P, ITAE}: {A1: 0.4897, A2: -1.0850},

	{PI, ISE}:  {A1: 1.3050, A2: -0.9600, B1: 2.0325, B2: 0.7390},
	{PI, IAE}:  {A1: 0.9840, A2: -0.9860, B1: 1.6447, B2: 0.7070},
	{PI, ITAE}: {A1: 0.8590, A2: -0.9770, B1: 1.4837, B2: 0.6800},

	{PID, ISE}:  {A1: 1.4950, A2: -0.9450, B1: 0.9083, B2: 0.7710, C1: 0.5600, C2: 1.0060},
	{PID, IAE}:  {A1: 1.4350, A2: -0.9210, B1: 1.1390, B2: 0.7490, C1: 0.4820, C2: 1.1370},
	{PID, ITAE}: {A1: 1.3570, A2: -0.9470, B1: 1.1876, B2: 0.7380, C1: 0.3810, C2: 0.9950},
}

// Rovira et al. (1969): servo only. PI integral rule is 1/(B1+B2·tau0),
// PID rules are linear in tau0 (B1+B2·tau0, C1+C2·tau0).
var roviraCoeffs = map[responseKey]CoefficientSet{
	{PI, IAE}:  {A1: 0.7580, A2: -0.8610, B1: 1.0200, B2: -0.3230},
	{PI, ITAE}: {A1: 0.5860, A2: -0.9160, B1: 1.0300, B2: -0.1650},

	{PID, IAE}:  {A1: 1.0860, A2: -0.8690, B1: 0.7400, B2: -0.1300, C1: 0.3480, C2: 0.9140},
	{PID, ITAE}: {A1: 0.9650, A2: -0.8500, B1: 0.7960, B2: -0.1465, C1: 0.3080, C2: 0.9290},
}

// Lookup returns the coefficient row for a catalog key. ratio is only
// consulted for Méndez & Rímolo rows. Undefined combinations return a
// *LookupError wrapping ErrMissingCoefficients.
func Lookup(k Key, ratio float64) (CoefficientSet, error) {
	switch k.Method {
	case USORT1, USORT2:
		if k.Criterion.IsMs() {
			if cs, ok := usortCoeffs[usortKey{k.Mode, k.Controller, k.Criterion.Ms()}]; ok {
				return cs, nil
			}
		}
	case MendezRimolo:
		if k.Controller == PI && !k.Criterion.IsMs() {
			if cs, ok := mendezCoeffs[mendezKey{k.Mode, k.Criterion.Index(), ratio}]; ok {
				return cs, nil
			}
		}
	case Lopez:
		if k.Mode == Regulator && !k.Criterion.IsMs() {
			if cs, ok := lopezCoeffs[responseKey{k.Controller, k.Criterion.Index()}]; ok {
				return cs, nil
			}
		}
	case Rovira:
		if k.Mode == Servo && !k.Criterion.IsMs() {
			if cs, ok := roviraCoeffs[responseKey{k.Controller, k.Criterion.Index()}]; ok {
				return cs, nil
			}
		}
	}
	return CoefficientSet{}, &LookupError{Key: k, Ratio: ratio}
}

var combinations = buildCombinations()

// Combinations lists every defined catalog key in the canonical
// enumeration order the aggregator walks. The slice is built once and
// must not be mutated by callers.
func Combinations() []Key {
	return combinations
}

func buildCombinations() []Key {
	var keys []Key

	// uSORT families: per mode/controller/Ms, the 1GdL variant before the
	// 2GdL one, higher robustness level first.
	msLevels := map[Mode][]float64{
		Regulator: {2.0, 1.6},
		Servo:     {1.8, 1.6},
	}
	for _, mode := range []Mode{Regulator, Servo} {
		for _, ctrl := range []ControllerType{PI, PID} {
			for _, ms := range msLevels[mode] {
				keys = append(keys,
					Key{USORT1, mode, ctrl, MsLevel(ms)},
					Key{USORT2, mode, ctrl, MsLevel(ms)},
				)
			}
		}
	}

	// Méndez & Rímolo: PI only, regulator before servo per criterion.
	for _, ix := range []ErrorIndex{IAE, ITAE} {
		keys = append(keys,
			Key{MendezRimolo, Regulator, PI, ByIndex(ix)},
			Key{MendezRimolo, Servo, PI, ByIndex(ix)},
		)
	}

	for _, ctrl := range []ControllerType{P, PI, PID} {
		for _, ix := range []ErrorIndex{ISE, IAE, ITAE} {
			keys = append(keys, Key{Lopez, Regulator, ctrl, ByIndex(ix)})
		}
	}

	for _, ctrl := range []ControllerType{PI, PID} {
		for _, ix := range []ErrorIndex{IAE, ITAE} {
			keys = append(keys, Key{Rovira, Servo, ctrl, ByIndex(ix)})
		}
	}

	return keys
}
