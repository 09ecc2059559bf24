package grid

import (
	"fmt"

	"github.com/arloliu/pdfgrid/errs"
)

// GridSet is the unit persisted to and loaded from a grid file: ordered
// members (index 0 conventionally the central value), the flavor list shared
// by all member tensors, a metadata table and at most one coupling table.
//
// A GridSet is immutable after construction; evaluation never mutates it, so
// concurrent reads need no locking.
type GridSet struct {
	pids     []int32
	members  []*Member
	meta     *Metadata
	coupling *CouplingTable

	pidIndex map[int32]int
}

// NewGridSet assembles a GridSet and validates that every subgrid tensor
// carries exactly one flavor slot per pid. The coupling table may be nil.
func NewGridSet(pids []int32, members []*Member, meta *Metadata, coupling *CouplingTable) (*GridSet, error) {
	if len(members) == 0 {
		return nil, errs.ErrNoMembers
	}
	if len(pids) == 0 {
		return nil, fmt.Errorf("%w: empty flavor list", errs.ErrShapeMismatch)
	}

	for mi, m := range members {
		for si, sg := range m.Subgrids() {
			if sg.PidCount() != len(pids) {
				return nil, fmt.Errorf("%w: member %d subgrid %d has %d flavors, set declares %d",
					errs.ErrShapeMismatch, mi, si, sg.PidCount(), len(pids))
			}
		}
	}

	if meta == nil {
		meta = NewMetadata()
	}

	gs := &GridSet{
		pids:     append([]int32(nil), pids...),
		members:  append([]*Member(nil), members...),
		meta:     meta,
		coupling: coupling,
		pidIndex: make(map[int32]int, len(pids)),
	}
	for i, pid := range gs.pids {
		if prev, ok := gs.pidIndex[pid]; ok {
			return nil, fmt.Errorf("%w: pid %d at positions %d and %d", errs.ErrDuplicatePid, pid, prev, i)
		}
		gs.pidIndex[pid] = i
	}

	return gs, nil
}

// NumMembers returns the number of members in the set.
func (gs *GridSet) NumMembers() int {
	return len(gs.members)
}

// Member returns the member at the given index.
func (gs *GridSet) Member(i int) (*Member, error) {
	if i < 0 || i >= len(gs.members) {
		return nil, fmt.Errorf("%w: member %d of %d", errs.ErrInvalidMemberIndex, i, len(gs.members))
	}

	return gs.members[i], nil
}

// Members returns the ordered member slice. Callers must not modify it.
func (gs *GridSet) Members() []*Member {
	return gs.members
}

// Pids returns the parton id list shared by all member tensors.
// Callers must not modify the slice.
func (gs *GridSet) Pids() []int32 {
	return gs.pids
}

// PidIndex returns the tensor flavor index for a parton id.
func (gs *GridSet) PidIndex(pid int32) (int, error) {
	idx, ok := gs.pidIndex[pid]
	if !ok {
		return 0, fmt.Errorf("%w: pid %d not in flavor list %v", errs.ErrUnknownPid, pid, gs.pids)
	}

	return idx, nil
}

// Metadata returns the set's metadata table.
func (gs *GridSet) Metadata() *Metadata {
	return gs.meta
}

// Coupling returns the strong coupling table, or nil when the set has none.
func (gs *GridSet) Coupling() *CouplingTable {
	return gs.coupling
}

// NumSubgrids returns the number of subgrids of the given member.
func (gs *GridSet) NumSubgrids(member int) (int, error) {
	m, err := gs.Member(member)
	if err != nil {
		return 0, err
	}

	return m.NumSubgrids(), nil
}

// SubgridInfo returns the axis domains and shape of one subgrid.
func (gs *GridSet) SubgridInfo(member, subgrid int) (Info, error) {
	m, err := gs.Member(member)
	if err != nil {
		return Info{}, err
	}
	sg, err := m.Subgrid(subgrid)
	if err != nil {
		return Info{}, fmt.Errorf("member %d: %w", member, err)
	}

	return sg.Info(), nil
}

// SubgridValues returns a copy of the x-Q2 value plane of one subgrid for the
// given parton id at fixed nucleon, coupling and kT knot indices.
func (gs *GridSet) SubgridValues(member, subgrid int, pid int32, nucleonIdx, couplingIdx, ktIdx int) ([]float64, error) {
	m, err := gs.Member(member)
	if err != nil {
		return nil, err
	}
	sg, err := m.Subgrid(subgrid)
	if err != nil {
		return nil, fmt.Errorf("member %d: %w", member, err)
	}
	pidIdx, err := gs.PidIndex(pid)
	if err != nil {
		return nil, err
	}

	values, err := sg.Slab(nucleonIdx, couplingIdx, pidIdx, ktIdx)
	if err != nil {
		return nil, fmt.Errorf("member %d subgrid %d: %w", member, subgrid, err)
	}

	return values, nil
}

// VersionInfo returns the provenance tag embedded in the metadata: the
// generating code version plus source revision when present.
func (gs *GridSet) VersionInfo() string {
	code := gs.meta.GetDefault(KeyCodeVersion, "unknown")
	git, ok := gs.meta.Get(KeyGitVersion)
	if !ok || git == "" {
		return code
	}

	return code + " (" + git + ")"
}
