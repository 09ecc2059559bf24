// Package interp evaluates tabulated parton distributions and the strong
// coupling over grid.GridSet data.
//
// The Evaluator is stateless apart from its extrapolation policy: every call
// locates the subgrid covering the query point, builds one interpolation
// stencil per active axis, and combines them by tensor-product composition.
// x and Q2 use a cubic Lagrange stencil in log space, degrading to quadratic
// and then linear where the subgrid edge leaves fewer neighboring knots;
// transverse momentum, nucleon number and coupling-value axes interpolate
// linearly; degenerate (single-knot) axes contribute their fixed value.
//
// Queries landing exactly on a stored knot collapse the stencil to that knot
// and return the stored value bit-exactly. The evaluation path performs no
// heap allocation, so one Evaluator can serve many goroutines concurrently.
package interp
