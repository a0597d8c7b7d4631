package tuning

import "errors"

// Evaluate runs every combination the catalog defines against one set of
// process parameters and returns the aggregated result table in catalog
// enumeration order.
//
// Failure modes:
//   - invalid parameters abort before any catalog work (ErrInvalidParameters);
//   - a missing coefficient row aborts the whole aggregation with no
//     partial result (ErrMissingCoefficients);
//   - an undefined 0^x skips only the offending record and the
//     aggregation continues.
func Evaluate(p ProcessParameters) (ResultSet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	keys := Combinations()
	results := make(ResultSet, 0, len(keys))
	for _, k := range keys {
		rec, err := EvaluateOne(p, k)
		if err != nil {
			if errors.Is(err, ErrUndefinedPower) {
				continue
			}
			return nil, err
		}
		results = append(results, rec)
	}
	return results, nil
}
