package mstrie

// slotKind tags the state of one child slot.
type slotKind uint8

const (
	slotEmpty slotKind = iota
	slotInterior
	slotAcceptor
)

// slot is one child-slot of a node: a dense fan-out position that is either
// empty, owns another arena node (interior), or marks acceptance (acceptor).
// This is the tagged-variant representation spec.md §4.1 endorses: no
// pointer-comparable acceptor sentinel object is allocated, the tag itself
// carries the acceptance marker.
type slot struct {
	kind  slotKind
	child int32
}

// arena is a flat, append-mostly store of nodes. Node id 0 is always the
// root. Each node occupies exactly (maxMultiplicity+1) contiguous slots at
// arena.slots[id*width : id*width+width]. Freed node ids are recycled via
// freeList so that delete never leaves garbage reachable and insert after a
// delete does not grow the arena unnecessarily.
type arena struct {
	width    int32 // M+1
	slots    []slot
	freeList []int32
}

func newArena(width int32) *arena {
	a := &arena{width: width}
	a.allocate() // node 0: the root
	return a
}

// allocate returns the id of a fresh node, all of whose slots are empty.
// It reuses a freed id when available.
func (a *arena) allocate() int32 {
	if n := len(a.freeList); n > 0 {
		id := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		base := id * a.width
		for i := int32(0); i < a.width; i++ {
			a.slots[base+i] = slot{}
		}
		return id
	}
	id := int32(len(a.slots)) / a.width
	a.slots = append(a.slots, make([]slot, a.width)...)
	return id
}

// free releases a node id back to the free list without clearing it; the
// clear happens lazily on reuse in allocate.
func (a *arena) free(id int32) {
	a.freeList = append(a.freeList, id)
}

// at returns a pointer to the slot of node id for multiplicity value v.
func (a *arena) at(id int32, v uint) *slot {
	return &a.slots[id*a.width+int32(v)]
}

// occupied counts the non-empty slots of node id.
func (a *arena) occupied(id int32) int {
	base := id * a.width
	n := 0
	for i := int32(0); i < a.width; i++ {
		if a.slots[base+i].kind != slotEmpty {
			n++
		}
	}
	return n
}
