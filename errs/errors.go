// Package errs defines the sentinel errors shared across pdfgrid packages.
//
// Callers match against these values with errors.Is; the packages that raise
// them wrap additional context (member, subgrid, axis, expected vs. actual
// shape) with fmt.Errorf("%w: ...").
package errs

import "errors"

// File format errors (codec, section).
var (
	// ErrInvalidMagicNumber indicates the data does not start with a pdfgrid header.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrUnsupportedVersion indicates a pdfgrid file written by a newer format
	// version. It is fatal; the decoder never downgrades silently.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrInvalidHeaderSize indicates the data is too short to hold the fixed header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidTocEntrySize indicates a truncated table-of-contents entry.
	ErrInvalidTocEntrySize = errors.New("invalid TOC entry size")

	// ErrCorruptData indicates a block failed its checksum or is truncated.
	ErrCorruptData = errors.New("corrupt data")

	// ErrInvalidMetadataBlock indicates the metadata block cannot be parsed.
	ErrInvalidMetadataBlock = errors.New("invalid metadata block")
)

// Data model construction errors (grid).
var (
	// ErrAxisNotMonotonic indicates axis knots are not strictly increasing.
	ErrAxisNotMonotonic = errors.New("axis knots not strictly increasing")

	// ErrEmptyAxis indicates an axis with no knots.
	ErrEmptyAxis = errors.New("axis has no knots")

	// ErrShapeMismatch indicates a value tensor whose length does not match
	// the product of its axis lengths.
	ErrShapeMismatch = errors.New("tensor shape mismatch")

	// ErrSubgridOverlap indicates member subgrids whose Q2 ranges overlap
	// beyond a shared boundary knot.
	ErrSubgridOverlap = errors.New("subgrid Q2 ranges overlap")

	// ErrSubgridGap indicates adjacent member subgrids that do not share a
	// boundary Q2 knot.
	ErrSubgridGap = errors.New("adjacent subgrids do not share a boundary knot")

	// ErrNoSubgrids indicates a member without any subgrid.
	ErrNoSubgrids = errors.New("member has no subgrids")

	// ErrNoMembers indicates a grid set without any member.
	ErrNoMembers = errors.New("grid set has no members")

	// ErrDuplicatePid indicates a flavor list carrying the same parton id twice.
	ErrDuplicatePid = errors.New("duplicate parton id in flavor list")
)

// Lookup errors (grid, interp).
var (
	// ErrInvalidMemberIndex indicates a member index outside the grid set.
	ErrInvalidMemberIndex = errors.New("invalid member index")

	// ErrInvalidSubgridIndex indicates a subgrid index outside the member.
	ErrInvalidSubgridIndex = errors.New("invalid subgrid index")

	// ErrUnknownPid indicates a parton id absent from the grid set's flavor list.
	ErrUnknownPid = errors.New("unknown parton id")

	// ErrOutOfDomain indicates an interpolation coordinate outside the covered
	// range while extrapolation is disabled.
	ErrOutOfDomain = errors.New("coordinate out of domain")

	// ErrNoCouplingTable indicates a grid set without a strong-coupling table.
	ErrNoCouplingTable = errors.New("grid set has no coupling table")
)

// Combination errors (grid).
var (
	// ErrIncompatibleDomain indicates input grid sets whose shared axes or
	// flavor lists differ; combine never coerces or resamples.
	ErrIncompatibleDomain = errors.New("incompatible grid domains")

	// ErrDuplicateAxisValue indicates two inputs carrying the same value on
	// the combining axis.
	ErrDuplicateAxisValue = errors.New("duplicate combining axis value")

	// ErrMemberCountMismatch indicates input grid sets with different member counts.
	ErrMemberCountMismatch = errors.New("member count mismatch")

	// ErrNotDegenerate indicates an input whose combining axis already has
	// more than one knot.
	ErrNotDegenerate = errors.New("combining axis not degenerate")
)
