package fault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larsks/faultblink/internal/pattern"
)

func TestKindPatterns(t *testing.T) {
	tests := []struct {
		kind Kind
		want pattern.Pattern
	}{
		{MemoryLoadFailed, "1100"},
		{ConnectionRefused, "1010"},
		{DeadBeef, "0001"},
		{Unknown, "00010101"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p, ok := tt.kind.Pattern()
			assert.True(t, ok)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestEveryKindHasValidPattern(t *testing.T) {
	for _, k := range Kinds() {
		p, ok := k.Pattern()
		require.True(t, ok, "kind %d has no pattern", int(k))
		require.NoError(t, p.Validate(), "kind %s", k)
		assert.True(t, k.IsKnown())

		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	assert.Len(t, patterns, len(Kinds()))
	assert.Len(t, names, len(Kinds()))
}

func TestOrdinalsMatchCodes(t *testing.T) {
	for i, k := range Kinds() {
		assert.Equal(t, i, int(k))
	}
}

func TestUntaggedKind(t *testing.T) {
	for _, code := range []int{-1, 4, 42, 1 << 20} {
		k := Kind(code)
		p, ok := k.Pattern()
		assert.False(t, ok)
		assert.Equal(t, UntaggedPattern, p)
		assert.False(t, k.IsKnown())
	}
	assert.NoError(t, UntaggedPattern.Validate())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("  DeadBeef ")
	require.NoError(t, err)
	assert.Equal(t, DeadBeef, k)

	_, err = ParseKind("segfault")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
