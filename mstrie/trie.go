// Package mstrie implements the multiset-trie (mstrie): a fixed-depth
// digital search tree over a dense per-node fan-out that indexes multisets
// drawn from a fixed finite alphabet, supporting exact, sub-multiset and
// super-multiset membership queries plus insertion, deletion and flat-file
// persistence.
package mstrie

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/xerrors"
)

// Trie owns the root, the arena of interior nodes, the settings and the
// statistics counter for one mstrie instance.
type Trie struct {
	settings Settings
	arena    *arena
	stats    *Stats
	codec    codec
}

// New constructs an empty Trie: only the root exists, and the lifetime node
// counter starts at 2 (root + the conceptual acceptor sentinel).
func New(settings Settings, unit TimeUnit) (*Trie, error) {
	if err := settings.validate(); err != nil {
		return nil, xerrors.Errorf("constructing trie: %w", err)
	}
	return &Trie{
		settings: settings,
		arena:    newArena(int32(settings.MaxMultiplicity) + 1),
		stats:    NewStats(unit),
		codec:    codec{alphabet: settings.Alphabet},
	}, nil
}

// Settings returns the trie's immutable construction parameters.
func (t *Trie) Settings() Settings { return t.settings }

// Stats returns the trie's statistics tracker.
func (t *Trie) Stats() *Stats { return t.stats }

// decodeQuery decodes a token and validates every multiplicity is within
// [0, MaxMultiplicity], the out-of-range check the Codec itself defers to
// the Trie per spec.md §4.2.
func (t *Trie) decodeQuery(word string) ([]uint, error) {
	q, err := t.codec.decode(word)
	if err != nil {
		return nil, err
	}
	for _, v := range q {
		if v > t.settings.MaxMultiplicity {
			return nil, xerrors.Errorf("decoding token %q: %w", word, ErrMultiplicityOverflow)
		}
	}
	return q, nil
}

func (t *Trie) A() int { return int(t.settings.Alphabet) }

// Insert adds word's multiset to the trie. Idempotent: reinserting a present
// multiset leaves the lifetime counters unchanged.
func (t *Trie) Insert(word string) error {
	q, err := t.decodeQuery(word)
	if err != nil {
		return xerrors.Errorf("insert: %w", err)
	}
	t.stats.reset("insert")
	t.stats.start()
	t.insertVector(q)
	t.stats.stop()
	return nil
}

func (t *Trie) insertVector(q []uint) {
	a := t.arena
	A := len(q)
	cur := int32(0)
	for k := 0; k < A-1; k++ {
		t.stats.traverse()
		v := q[k]
		sl := a.at(cur, v)
		if sl.kind == slotEmpty {
			newID := a.allocate()
			sl = a.at(cur, v) // re-fetch: allocate may have reallocated the backing slice
			sl.kind = slotInterior
			sl.child = newID
			t.stats.totalNodes++
			cur = newID
		} else {
			cur = sl.child
		}
	}
	t.stats.traverse()
	last := a.at(cur, q[A-1])
	if last.kind != slotAcceptor {
		last.kind = slotAcceptor
		t.stats.totalMultisets++
	}
}

// Delete removes word's multiset from the trie. Fails with
// ErrNothingToDelete if the multiset is not present; on failure the trie is
// left unchanged.
func (t *Trie) Delete(word string) error {
	q, err := t.decodeQuery(word)
	if err != nil {
		return xerrors.Errorf("delete: %w", err)
	}
	t.stats.reset("delete")
	t.stats.start()
	defer t.stats.stop()

	A := t.A()
	a := t.arena
	path := make([]int32, A)
	path[0] = 0
	for k := 0; k < A-1; k++ {
		t.stats.traverse()
		sl := a.at(path[k], q[k])
		if sl.kind != slotInterior {
			return ErrNothingToDelete
		}
		path[k+1] = sl.child
	}
	t.stats.traverse()
	finalSlot := a.at(path[A-1], q[A-1])
	if finalSlot.kind != slotAcceptor {
		return ErrNothingToDelete
	}

	// deepest ancestor whose subtree along this path has an occupied sibling
	kAnc := 0
	for k := A - 1; k >= 0; k-- {
		if a.occupied(path[k]) > 1 {
			kAnc = k
			break
		}
	}

	*a.at(path[kAnc], q[kAnc]) = slot{}
	for i := kAnc + 1; i < A; i++ {
		a.free(path[i])
	}
	t.stats.totalNodes -= A - kAnc - 1
	t.stats.totalMultisets--
	return nil
}

// Exact reports whether word's multiset is present.
func (t *Trie) Exact(word string) (bool, error) {
	q, err := t.decodeQuery(word)
	if err != nil {
		return false, xerrors.Errorf("search =: %w", err)
	}
	t.stats.reset("search eq")
	t.stats.start()
	defer t.stats.stop()

	a := t.arena
	A := t.A()
	cur := int32(0)
	for k := 0; k < A-1; k++ {
		t.stats.traverse()
		sl := a.at(cur, q[k])
		if sl.kind != slotInterior {
			return false, nil
		}
		cur = sl.child
	}
	t.stats.traverse()
	return a.at(cur, q[A-1]).kind == slotAcceptor, nil
}

// Subseteq reports whether a stored multiset s exists with s ⊆ q and
// q[e]-s[e] <= limit for every element e, under the frozen per-level-cap
// interpretation (spec.md §9): at each level the branching is capped at
// limit+1 descents, not a cumulative path-wide budget, so sum(q-s) may
// exceed limit.
func (t *Trie) Subseteq(word string, limit int) (bool, error) {
	q, err := t.decodeQuery(word)
	if err != nil {
		return false, xerrors.Errorf("search <=: %w", err)
	}
	l := t.settings.clampLimit(limit)
	t.stats.reset("search sub")
	t.stats.start()
	defer t.stats.stop()
	return t.subseteqRec(0, q, 0, l), nil
}

// Superseteq is Subseteq's symmetric counterpart, scanning upward.
func (t *Trie) Superseteq(word string, limit int) (bool, error) {
	q, err := t.decodeQuery(word)
	if err != nil {
		return false, xerrors.Errorf("search >=: %w", err)
	}
	l := t.settings.clampLimit(limit)
	t.stats.reset("search sup")
	t.stats.start()
	defer t.stats.stop()
	return t.superseteqRec(0, q, 0, l), nil
}

func (t *Trie) subseteqRec(id int32, q []uint, k int, limit uint) bool {
	A := len(q)
	a := t.arena
	for i := uint(0); i <= limit; i++ {
		if q[k] < i {
			break
		}
		v := q[k] - i
		sl := a.at(id, v)
		if sl.kind == slotEmpty {
			continue
		}
		t.stats.traverse()
		if k == A-1 {
			if sl.kind == slotAcceptor {
				return true
			}
			continue
		}
		if sl.kind == slotInterior && t.subseteqRec(sl.child, q, k+1, limit) {
			return true
		}
	}
	return false
}

func (t *Trie) superseteqRec(id int32, q []uint, k int, limit uint) bool {
	A := len(q)
	a := t.arena
	M := t.settings.MaxMultiplicity
	for i := uint(0); i <= limit; i++ {
		v := q[k] + i
		if v > M {
			break
		}
		sl := a.at(id, v)
		if sl.kind == slotEmpty {
			continue
		}
		t.stats.traverse()
		if k == A-1 {
			if sl.kind == slotAcceptor {
				return true
			}
			continue
		}
		if sl.kind == slotInterior && t.superseteqRec(sl.child, q, k+1, limit) {
			return true
		}
	}
	return false
}

// GetSubseteq returns the encoded tokens of every stored multiset reachable
// under Subseteq's bound, in depth-first, descending-per-level order.
func (t *Trie) GetSubseteq(word string, limit int) ([]string, error) {
	q, err := t.decodeQuery(word)
	if err != nil {
		return nil, xerrors.Errorf("retrieve <=: %w", err)
	}
	l := t.settings.clampLimit(limit)
	t.stats.reset("retrieve sub_" + strconv.FormatUint(uint64(l), 10))
	t.stats.start()
	defer t.stats.stop()

	out := make([]uint, t.A())
	var results []string
	t.getSubseteqRec(0, q, 0, l, out, &results)
	return results, nil
}

// GetSuperseteq is GetSubseteq's symmetric counterpart, scanning upward.
func (t *Trie) GetSuperseteq(word string, limit int) ([]string, error) {
	q, err := t.decodeQuery(word)
	if err != nil {
		return nil, xerrors.Errorf("retrieve >=: %w", err)
	}
	l := t.settings.clampLimit(limit)
	t.stats.reset("retrieve sup_" + strconv.FormatUint(uint64(l), 10))
	t.stats.start()
	defer t.stats.stop()

	out := make([]uint, t.A())
	var results []string
	t.getSuperseteqRec(0, q, 0, l, out, &results)
	return results, nil
}

func (t *Trie) getSubseteqRec(id int32, q []uint, k int, limit uint, out []uint, results *[]string) {
	A := len(q)
	a := t.arena
	for i := uint(0); i <= limit; i++ {
		if q[k] < i {
			break
		}
		v := q[k] - i
		sl := a.at(id, v)
		if sl.kind == slotEmpty {
			continue
		}
		t.stats.traverse()
		out[k] = v
		if k == A-1 {
			if sl.kind == slotAcceptor {
				*results = append(*results, t.codec.encode(append([]uint(nil), out...)))
			}
			continue
		}
		if sl.kind == slotInterior {
			t.getSubseteqRec(sl.child, q, k+1, limit, out, results)
		}
	}
}

func (t *Trie) getSuperseteqRec(id int32, q []uint, k int, limit uint, out []uint, results *[]string) {
	A := len(q)
	a := t.arena
	M := t.settings.MaxMultiplicity
	for i := uint(0); i <= limit; i++ {
		v := q[k] + i
		if v > M {
			break
		}
		sl := a.at(id, v)
		if sl.kind == slotEmpty {
			continue
		}
		t.stats.traverse()
		out[k] = v
		if k == A-1 {
			if sl.kind == slotAcceptor {
				*results = append(*results, t.codec.encode(append([]uint(nil), out...)))
			}
			continue
		}
		if sl.kind == slotInterior {
			t.getSuperseteqRec(sl.child, q, k+1, limit, out, results)
		}
	}
}

// enumerateAll lists every stored multiset's token, unininstrumented (used
// by Dump, which must not perturb query stats).
func (t *Trie) enumerateAll() []string {
	out := make([]uint, t.A())
	zero := make([]uint, t.A())
	var results []string
	t.getSuperseteqRecQuiet(0, zero, 0, t.settings.MaxMultiplicity, out, &results)
	return results
}

// getSuperseteqRecQuiet mirrors getSuperseteqRec without touching Stats.
func (t *Trie) getSuperseteqRecQuiet(id int32, q []uint, k int, limit uint, out []uint, results *[]string) {
	A := len(q)
	a := t.arena
	M := t.settings.MaxMultiplicity
	for i := uint(0); i <= limit; i++ {
		v := q[k] + i
		if v > M {
			break
		}
		sl := a.at(id, v)
		if sl.kind == slotEmpty {
			continue
		}
		out[k] = v
		if k == A-1 {
			if sl.kind == slotAcceptor {
				*results = append(*results, t.codec.encode(append([]uint(nil), out...)))
			}
			continue
		}
		if sl.kind == slotInterior {
			t.getSuperseteqRecQuiet(sl.child, q, k+1, limit, out, results)
		}
	}
}

// Dump renders the trie's textual flat-file form, per spec.md §4.4: a
// creation timestamp line, a "<M> <A>" parameters line, then one token line
// per stored multiset in full get_superseteq(zero-vector, M) traversal
// order. The whole form is built in memory before being handed to a writer.
func (t *Trie) Dump() string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	b.WriteByte('\n')
	b.WriteString(strconv.FormatUint(uint64(t.settings.MaxMultiplicity), 10))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(uint64(t.settings.Alphabet), 10))
	b.WriteByte('\n')
	for _, tok := range t.enumerateAll() {
		b.WriteString(tok)
		b.WriteByte('\n')
	}
	return b.String()
}

// Load parses content in Dump's format and inserts every multiset it
// describes. The timestamp line is discarded. The parameters line must
// agree with the trie's own Settings, else ErrParametrizationMismatch.
// Every token is decoded before any is inserted, so a dump that fails to
// load leaves the trie unchanged.
func (t *Trie) Load(content string) error {
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return ErrMalformedDump
	}
	fields := strings.Fields(lines[1])
	if len(fields) != 2 {
		return xerrors.Errorf("parsing parameters line %q: %w", lines[1], ErrMalformedDump)
	}
	m, err1 := strconv.ParseUint(fields[0], 10, 64)
	a, err2 := strconv.ParseUint(fields[1], 10, 64)
	if err1 != nil || err2 != nil {
		return xerrors.Errorf("parsing parameters line %q: %w", lines[1], ErrMalformedDump)
	}
	if uint(m) != t.settings.MaxMultiplicity || uint(a) != t.settings.Alphabet {
		return ErrParametrizationMismatch
	}
	t.stats.reset("load")
	t.stats.start()
	defer t.stats.stop()
	vectors := make([][]uint, 0, len(lines)-2)
	for _, tok := range lines[2:] {
		q, err := t.decodeQuery(tok)
		if err != nil {
			return xerrors.Errorf("loading token %q: %w", tok, err)
		}
		vectors = append(vectors, q)
	}
	for _, q := range vectors {
		t.insertVector(q)
	}
	return nil
}
