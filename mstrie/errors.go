package mstrie

import "golang.org/x/xerrors"

// Sentinel errors returned by the mstrie package. Callers compare with
// errors.Is; wrapped chains are produced with xerrors.Errorf("...: %w", ...).
var (
	// ErrNegativeValue is returned by the codec when a token component is negative.
	ErrNegativeValue = xerrors.New("token cannot have negative values")
	// ErrAlphabetOverflow is returned when a token component is >= the alphabet size.
	ErrAlphabetOverflow = xerrors.New("token cannot have values greater than alphabet size")
	// ErrParseToken is returned when a token component is not a decimal integer.
	ErrParseToken = xerrors.New("token component is not a valid number")
	// ErrMultiplicityOverflow is returned when a decoded multiplicity exceeds the configured maximum.
	ErrMultiplicityOverflow = xerrors.New("decoded multiplicity exceeds maximum allowed value")
	// ErrNothingToDelete is returned by Delete when the multiset is not present.
	ErrNothingToDelete = xerrors.New("nothing to delete")
	// ErrParametrizationMismatch is returned by Load when the dump header disagrees with the trie's settings.
	ErrParametrizationMismatch = xerrors.New("mstrie parametrization is not correct")
	// ErrMalformedDump is returned by Load when the dump's structure cannot be parsed.
	ErrMalformedDump = xerrors.New("malformed mstrie dump")
)
