package mstriemanager

import "golang.org/x/xerrors"

// ErrNoIndexLoaded is returned by every Manager operation that needs a
// live trie when InitIndex has not yet been called (or the index was
// destroyed by a prior FlushIndex(true)).
var ErrNoIndexLoaded = xerrors.New("no index loaded")
