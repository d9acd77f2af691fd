package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulberry32_ReferenceSequence(t *testing.T) {
	rng := NewMulberry32(42)

	assert.Equal(t, 0.6011037519201636, rng.Next())
	assert.Equal(t, 0.44829055899754167, rng.Next())
	assert.Equal(t, 0.8524657934904099, rng.Next())
}

func TestMulberry32_Range(t *testing.T) {
	rng := NewMulberry32(0)
	for i := 0; i < 10000; i++ {
		v := rng.Next()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestMulberry32_SameSeedSameSequence(t *testing.T) {
	a, b := NewMulberry32(987654321), NewMulberry32(987654321)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestMulberry32_Draw(t *testing.T) {
	ref := NewMulberry32(42)
	rng := NewMulberry32(42)

	first := ref.Next()
	assert.Equal(t, 10+float64(first*5), rng.Draw(10, 5))
}

func TestHashString(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0},
		{"all", 96673},
		{"reels", 108390809},
		{"posts", 106855379},
		{"stories", 2410700883},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, HashString(tt.in))
		})
	}
}

func TestHashString_UTF16Units(t *testing.T) {
	// U+1F600 is the surrogate pair D83D DE00
	assert.Equal(t, uint32(31*0xD83D+0xDE00), HashString("\U0001F600"))
}

func TestMixSeed(t *testing.T) {
	assert.Equal(t, uint32(108386750), MixSeed(12345, "reels", 30))
	assert.Equal(t, uint32(96652), MixSeed(42, "all", 7))
	assert.Equal(t, MixSeed(42, "all", 7), MixSeed(42, "", 7))
}

func TestMixSeed_NegativeRangeWraps(t *testing.T) {
	assert.Equal(t, uint32(5)^HashString("all")^0xFFFFFFFF, MixSeed(5, "all", -1))
}
