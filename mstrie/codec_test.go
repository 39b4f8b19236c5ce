package mstrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecDecodeEmpty(t *testing.T) {
	c := codec{alphabet: 3}
	v, err := c.decode("*")
	require.NoError(t, err)
	require.Equal(t, []uint{0, 0, 0}, v)
}

func TestCodecDecodeCounts(t *testing.T) {
	c := codec{alphabet: 3}
	v, err := c.decode("1,2")
	require.NoError(t, err)
	require.Equal(t, []uint{0, 1, 1}, v)

	v, err = c.decode("0,1,2")
	require.NoError(t, err)
	require.Equal(t, []uint{1, 1, 1}, v)
}

func TestCodecDecodeRejectsNegative(t *testing.T) {
	c := codec{alphabet: 3}
	_, err := c.decode("-1")
	require.ErrorIs(t, err, ErrNegativeValue)
}

func TestCodecDecodeRejectsOverflow(t *testing.T) {
	c := codec{alphabet: 3}
	_, err := c.decode("3")
	require.ErrorIs(t, err, ErrAlphabetOverflow)
}

func TestCodecDecodeRejectsParseError(t *testing.T) {
	c := codec{alphabet: 3}
	_, err := c.decode("x")
	require.ErrorIs(t, err, ErrParseToken)
}

func TestCodecEncodeRoundTrip(t *testing.T) {
	c := codec{alphabet: 3}
	for _, tok := range []string{"*", "1,2", "0,1,2", "0,0,1,2"} {
		v, err := c.decode(tok)
		require.NoError(t, err)
		got := c.encode(v)
		want := tok
		if tok == "*" {
			want = ""
		}
		require.Equal(t, want, got)
	}
}

func TestCodecEncodeZeroVectorIsEmptyString(t *testing.T) {
	c := codec{alphabet: 3}
	require.Equal(t, "", c.encode([]uint{0, 0, 0}))
}
