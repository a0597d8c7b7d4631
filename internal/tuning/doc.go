// Package tuning evaluates published PID tuning correlations for FOPDT
// process models.
//
// The package holds the coefficient catalog and the algebra of five
// correlation families (uSORT1, uSORT2, Méndez & Rímolo, López et al.,
// Rovira et al.):
//
//   - [ProcessParameters]: the process model (K, T, a, τ0)
//   - [Key]: addresses one catalog row (method, mode, controller, criterion)
//   - [Lookup]: coefficient retrieval; [Combinations] enumerates all rows
//   - [EvaluateOne] / [Evaluate]: single-rule and full-table evaluation
//   - [Sort] / [SortDefault] / [Sorter]: stable result-table ordering
//
// # Example
//
//	p := tuning.ProcessParameters{K: 2, T: 5, A: 0.5, Tau0: 0.3}
//	results, _ := tuning.Evaluate(p)
//	results = tuning.SortDefault(results)
//
// # Determinism
//
// Evaluation is pure: the same parameters always produce the same records
// in the same order. All catalog coefficients are regression results from
// the source papers and are reproduced exactly.
package tuning
