// Package biquad provides generic biquad (second-order IIR) filter runtime
// primitives.
//
// [Coefficients] follows the naming in "Designing Audio Effect Plugins in
// C++" by Will C. Pirkle (2019): the 'a' values form the numerator of the
// H(z) transform and the 'b' values the denominator. Coefficient generators
// ([LPF1], [HPF1], [LPF2], [HPF2], [APF1], [APF2]) are pure functions of
// sample rate, frequency and (for the two-pole forms) Q.
//
// A [Filter] pairs one Coefficients value with one [State] value and a
// transform strategy selecting the recursion equations. The strategy is a
// type parameter, so the per-sample call is monomorphized with no dynamic
// dispatch. Four strategies are provided: [Direct], [Canonical],
// [DirectTransposed] and [CanonicalTransposed].
package biquad
