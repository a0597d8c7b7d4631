package tuning

import (
	"fmt"
	"math"
	"strconv"
)

// Method identifies a published correlation family.
type Method int

const (
	USORT1 Method = iota
	USORT2
	MendezRimolo
	Lopez
	Rovira
)

func (m Method) String() string {
	switch m {
	case USORT1:
		return "uSORT1"
	case USORT2:
		return "uSORT2"
	case MendezRimolo:
		return "Méndez & Rímolo"
	case Lopez:
		return "López et al."
	case Rovira:
		return "Rovira et al."
	}
	return "unknown"
}

// ParseMethod inverts Method.String; used when reading saved tables back.
func ParseMethod(s string) (Method, error) {
	for _, m := range []Method{USORT1, USORT2, MendezRimolo, Lopez, Rovira} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("tuning: unknown method %q", s)
}

// Mode is the tuning objective: disturbance rejection or setpoint tracking.
// Display labels keep the Spanish names used by the source papers.
type Mode int

const (
	Regulator Mode = iota
	Servo
)

func (m Mode) String() string {
	if m == Servo {
		return "Servo"
	}
	return "Regulador"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "Regulador":
		return Regulator, nil
	case "Servo":
		return Servo, nil
	}
	return 0, fmt.Errorf("tuning: unknown mode %q", s)
}

type ControllerType int

const (
	P ControllerType = iota
	PI
	PID
)

func (c ControllerType) String() string {
	switch c {
	case PI:
		return "PI"
	case PID:
		return "PID"
	}
	return "P"
}

func ParseControllerType(s string) (ControllerType, error) {
	switch s {
	case "P":
		return P, nil
	case "PI":
		return PI, nil
	case "PID":
		return PID, nil
	}
	return 0, fmt.Errorf("tuning: unknown controller type %q", s)
}

// ErrorIndex is a classical integral-error tuning objective.
type ErrorIndex int

const (
	ISE ErrorIndex = iota
	IAE
	ITAE
)

func (e ErrorIndex) String() string {
	switch e {
	case IAE:
		return "IAE"
	case ITAE:
		return "ITAE"
	}
	return "ISE"
}

// Criterion indexes a coefficient row either by a robustness level Ms or by
// an integral-error index. The two never mix: uSORT rows carry Ms targets,
// everything else carries an error index.
type Criterion struct {
	ms    float64
	index ErrorIndex
	isMs  bool
}

// MsLevel builds a criterion from a maximum-sensitivity robustness target.
func MsLevel(ms float64) Criterion {
	return Criterion{ms: ms, isMs: true}
}

// ByIndex builds a criterion from an integral-error index.
func ByIndex(e ErrorIndex) Criterion {
	return Criterion{index: e}
}

func (c Criterion) IsMs() bool { return c.isMs }

func (c Criterion) Ms() float64 { return c.ms }

func (c Criterion) Index() ErrorIndex { return c.index }

// Label renders the table cell: "2.0" for Ms rows, "IAE" for index rows.
func (c Criterion) Label() string {
	if c.isMs {
		return strconv.FormatFloat(c.ms, 'f', 1, 64)
	}
	return c.index.String()
}

// sortValue makes the mixed column numerically comparable: named indices
// compare as +Inf so they sort after every Ms level in ascending order.
func (c Criterion) sortValue() float64 {
	if c.isMs {
		return c.ms
	}
	return math.Inf(1)
}

// ParseCriterion inverts Label; used when reading saved result tables back.
func ParseCriterion(label string) (Criterion, error) {
	if ms, err := strconv.ParseFloat(label, 64); err == nil {
		return MsLevel(ms), nil
	}
	switch label {
	case "ISE":
		return ByIndex(ISE), nil
	case "IAE":
		return ByIndex(IAE), nil
	case "ITAE":
		return ByIndex(ITAE), nil
	}
	return Criterion{}, fmt.Errorf("tuning: unknown criterion label %q", label)
}

// ProcessParameters describes the FOPDT model K·e^(-L·s)/((T·s+1)(a·T·s+1)).
type ProcessParameters struct {
	K    float64 // process gain, > 0
	T    float64 // dominant time constant, > 0
	A    float64 // time-constant ratio, one of {0, 0.25, 0.5, 0.75, 1.0}
	Tau0 float64 // normalized dead time, >= 0
}

// RatioLevels are the only time-constant ratios the published correlations
// tabulate. There is no interpolation between them.
var RatioLevels = []float64{0.0, 0.25, 0.5, 0.75, 1.0}

// Validate checks the parameters before any catalog work happens.
func (p ProcessParameters) Validate() error {
	if p.K <= 0 {
		return &ParameterError{Name: "K", Value: p.K, Reason: "gain must be positive"}
	}
	if p.T <= 0 {
		return &ParameterError{Name: "T", Value: p.T, Reason: "time constant must be positive"}
	}
	if p.Tau0 < 0 {
		return &ParameterError{Name: "tau0", Value: p.Tau0, Reason: "dead time must be non-negative"}
	}
	for _, lvl := range RatioLevels {
		if p.A == lvl {
			return nil
		}
	}
	return &ParameterError{Name: "a", Value: p.A, Reason: "ratio must be one of 0, 0.25, 0.5, 0.75, 1.0"}
}

// CoefficientSet holds the regression coefficients of one catalog row.
// Which fields are populated depends on the method, mode and controller
// type; unused fields stay zero. The literals are regression results from
// the source papers and must never be altered.
type CoefficientSet struct {
	A0, A1, A2     float64
	B0, B1, B2, B3 float64
	C0, C1, C2     float64
	D0, D1, D2     float64
}

// Beta is the setpoint-weighting factor of two-degree-of-freedom variants.
// Valid is false for every 1GdL record; the value is meaningless then.
type Beta struct {
	Value float64
	Valid bool
}

func (b Beta) String() string {
	if !b.Valid {
		return "-"
	}
	return strconv.FormatFloat(b.Value, 'f', 4, 64)
}

// ResultRecord is one tuning recommendation. Immutable once computed.
type ResultRecord struct {
	Method     Method
	Variant    string
	Mode       Mode
	Controller ControllerType
	Criterion  Criterion
	Kp         float64
	Ti         float64
	Td         float64
	Beta       Beta
}

// ResultSet is an ordered sequence of records, re-orderable by the sorter.
type ResultSet []ResultRecord

// Clone returns an independent copy so sorts never alias the input.
func (rs ResultSet) Clone() ResultSet {
	out := make(ResultSet, len(rs))
	copy(out, rs)
	return out
}
