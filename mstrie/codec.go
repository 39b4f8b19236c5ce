package mstrie

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// codec translates between textual multiset tokens and dense multiplicity
// vectors, per spec.md §4.2. A token is either "*" (the empty multiset) or a
// comma-separated list of decimal element indices in [0, alphabet-1].
type codec struct {
	alphabet uint
}

// decode parses a token into a length-alphabet multiplicity vector.
func (c codec) decode(token string) ([]uint, error) {
	v := make([]uint, c.alphabet)
	if token == "*" {
		return v, nil
	}
	if token == "" {
		return v, nil
	}
	for _, el := range strings.Split(token, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(el))
		if err != nil {
			return nil, xerrors.Errorf("decoding token %q: %w: %q", token, ErrParseToken, el)
		}
		if n < 0 {
			return nil, xerrors.Errorf("decoding token %q: %w", token, ErrNegativeValue)
		}
		if uint(n) > c.alphabet-1 {
			return nil, xerrors.Errorf("decoding token %q: %w", token, ErrAlphabetOverflow)
		}
		v[n]++
	}
	return v, nil
}

// encode renders a multiplicity vector back to its textual token form: for
// each element index in ascending order, v[e] copies of its decimal form,
// joined by commas; the zero vector encodes to the empty string.
func (c codec) encode(v []uint) string {
	var b strings.Builder
	first := true
	for e, mult := range v {
		s := strconv.Itoa(e)
		for i := uint(0); i < mult; i++ {
			if !first {
				b.WriteByte(',')
			}
			b.WriteString(s)
			first = false
		}
	}
	return b.String()
}
