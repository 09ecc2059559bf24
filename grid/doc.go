// Package grid defines the in-memory data model for tabulated parton
// distribution sets.
//
// The model is strictly hierarchical: a GridSet owns ordered Members, each
// Member owns ordered Subgrids, and every Subgrid owns five knot Axes plus a
// dense value tensor laid out [A][alphas][pid][kT][x][Q2]. A GridSet also
// owns a Metadata table and at most one CouplingTable for the strong
// coupling. There are no back-references; any "which subgrid covers this
// point" question is answered by lookup.
//
// Everything in this package is immutable after construction. Decoded grid
// sets can therefore be evaluated concurrently from many goroutines without
// locking; only construction and decoding allocate.
//
// Values stored in the tensors follow the x·f(x,Q²) convention of the field:
// they are momentum-fraction-scaled densities, not probability densities.
// Callers needing the bare density divide by x themselves.
package grid
