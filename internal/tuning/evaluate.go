package tuning

import (
	"fmt"
	"math"
)

// pow evaluates base^exp, rejecting the 0^x cases (x negative or
// fractional) that the regression formulas cannot define. Returning an
// explicit error lets the aggregator branch instead of propagating an
// Inf/NaN into the result table.
func pow(base, exp float64) (float64, error) {
	if base == 0 && (exp < 0 || exp != math.Trunc(exp)) {
		return 0, &PowerError{Exponent: exp}
	}
	return math.Pow(base, exp), nil
}

// kappaP is the shared gain rule κp = a0 + a1·τ0^a2. Every method uses it;
// López and Rovira simply carry a0 = 0.
func kappaP(cs CoefficientSet, tau0 float64) (float64, error) {
	t, err := pow(tau0, cs.A2)
	if err != nil {
		return 0, err
	}
	return cs.A0 + cs.A1*t, nil
}

// evalUSORT covers uSORT1 and uSORT2; the 2GdL flag adds the β rule.
// Regulator: τi = b0 + b1·τ0^b2. Servo: τi = (b0 + b1·τ0 + b2·τ0²)/(b3+τ0),
// where a zero denominator falls back to τi = 0.
func evalUSORT(cs CoefficientSet, p ProcessParameters, mode Mode, twoDoF bool) (ResultRecord, error) {
	kappa, err := kappaP(cs, p.Tau0)
	if err != nil {
		return ResultRecord{}, err
	}

	var taui float64
	if mode == Regulator {
		t, err := pow(p.Tau0, cs.B2)
		if err != nil {
			return ResultRecord{}, err
		}
		taui = cs.B0 + cs.B1*t
	} else {
		num := cs.B0 + cs.B1*p.Tau0 + cs.B2*p.Tau0*p.Tau0
		den := cs.B3 + p.Tau0
		if den != 0 {
			taui = num / den
		}
	}

	t, err := pow(p.Tau0, cs.C2)
	if err != nil {
		return ResultRecord{}, err
	}
	taud := cs.C0 + cs.C1*t

	rec := ResultRecord{
		Kp: kappa / p.K,
		Ti: taui * p.T,
		Td: taud * p.T,
	}
	if twoDoF {
		t, err := pow(p.Tau0, cs.D2)
		if err != nil {
			return ResultRecord{}, err
		}
		rec.Beta = Beta{Value: cs.D0 + cs.D1*t, Valid: true}
	}
	return rec, nil
}

// evalMendez is PI-only: τi = b0·τ0 + b1·τ0^b2, divided by (1+τ0) in servo
// mode. Td is always zero.
func evalMendez(cs CoefficientSet, p ProcessParameters, mode Mode) (ResultRecord, error) {
	kappa, err := kappaP(cs, p.Tau0)
	if err != nil {
		return ResultRecord{}, err
	}

	t, err := pow(p.Tau0, cs.B2)
	if err != nil {
		return ResultRecord{}, err
	}
	taui := cs.B0*p.Tau0 + cs.B1*t
	if mode == Servo {
		den := 1.0 + p.Tau0
		if den != 0 {
			taui = taui / den
		} else {
			taui = 0
		}
	}

	return ResultRecord{Kp: kappa / p.K, Ti: taui * p.T}, nil
}

// evalLopez: κp·K = a·τ0^b; τi = c·τ0^d (PI/PID); τd = e·τ0^f (PID only).
func evalLopez(cs CoefficientSet, p ProcessParameters, ctrl ControllerType) (ResultRecord, error) {
	kappa, err := kappaP(cs, p.Tau0)
	if err != nil {
		return ResultRecord{}, err
	}
	rec := ResultRecord{Kp: kappa / p.K}

	if ctrl == PI || ctrl == PID {
		t, err := pow(p.Tau0, cs.B2)
		if err != nil {
			return ResultRecord{}, err
		}
		rec.Ti = cs.B1 * t * p.T
	}
	if ctrl == PID {
		t, err := pow(p.Tau0, cs.C2)
		if err != nil {
			return ResultRecord{}, err
		}
		rec.Td = cs.C1 * t * p.T
	}
	return rec, nil
}

// evalRovira: PI uses τi = 1/(c + d·τ0) with a zero-denominator fallback to
// τi = 0; PID uses the linear rules τi = c + d·τ0 and τd = e + f·τ0.
func evalRovira(cs CoefficientSet, p ProcessParameters, ctrl ControllerType) (ResultRecord, error) {
	kappa, err := kappaP(cs, p.Tau0)
	if err != nil {
		return ResultRecord{}, err
	}
	rec := ResultRecord{Kp: kappa / p.K}

	if ctrl == PID {
		rec.Ti = (cs.B1 + cs.B2*p.Tau0) * p.T
		rec.Td = (cs.C1 + cs.C2*p.Tau0) * p.T
		return rec, nil
	}

	den := cs.B1 + cs.B2*p.Tau0
	if den != 0 {
		rec.Ti = (1.0 / den) * p.T
	}
	return rec, nil
}

// variantLabel renders the table's Variante column: "PI 1GdL" for uSORT
// rows, "IAE (PI)" for Méndez rows, "PID (ITAE)" style otherwise.
func variantLabel(k Key) string {
	switch k.Method {
	case USORT1:
		return fmt.Sprintf("%s 1GdL", k.Controller)
	case USORT2:
		return fmt.Sprintf("%s 2GdL", k.Controller)
	case MendezRimolo:
		return fmt.Sprintf("%s (PI)", k.Criterion.Index())
	default:
		return fmt.Sprintf("%s (%s)", k.Controller, k.Criterion.Index())
	}
}

// EvaluateOne computes the tuning record for a single catalog key. A key
// the catalog does not define returns an error wrapping
// ErrMissingCoefficients; an undefined 0^x during evaluation returns one
// wrapping ErrUndefinedPower.
func EvaluateOne(p ProcessParameters, k Key) (ResultRecord, error) {
	if err := p.Validate(); err != nil {
		return ResultRecord{}, err
	}

	cs, err := Lookup(k, p.A)
	if err != nil {
		return ResultRecord{}, err
	}

	var rec ResultRecord
	switch k.Method {
	case USORT1:
		rec, err = evalUSORT(cs, p, k.Mode, false)
	case USORT2:
		rec, err = evalUSORT(cs, p, k.Mode, true)
	case MendezRimolo:
		rec, err = evalMendez(cs, p, k.Mode)
	case Lopez:
		rec, err = evalLopez(cs, p, k.Controller)
	case Rovira:
		rec, err = evalRovira(cs, p, k.Controller)
	}
	if err != nil {
		return ResultRecord{}, err
	}

	rec.Method = k.Method
	rec.Variant = variantLabel(k)
	rec.Mode = k.Mode
	rec.Controller = k.Controller
	rec.Criterion = k.Criterion
	return rec, nil
}
