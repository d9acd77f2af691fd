package analytics

import "unicode/utf16"

const mulberryIncrement = 0x6D2B79F5

// Mulberry32 is a 32-bit state generator. Its output sequence is shared
// with the browser dashboard, so the arithmetic must stay bit-exact.
type Mulberry32 struct {
	state uint32
}

func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Next returns the next value in [0, 1).
func (m *Mulberry32) Next() float64 {
	m.state += mulberryIncrement
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// Draw returns base + Next()*span. The product is rounded on its own so
// the result matches on architectures that would otherwise fuse it.
func (m *Mulberry32) Draw(base, span float64) float64 {
	return base + float64(m.Next()*span)
}

// HashString mirrors Java's String.hashCode over UTF-16 code units.
func HashString(value string) uint32 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(value)) {
		hash = 31*hash + int32(unit)
	}
	return uint32(hash)
}

func MixSeed(seed uint32, format string, rangeDays int) uint32 {
	if format == "" {
		format = string(FormatAll)
	}
	return seed ^ HashString(format) ^ uint32(int32(rangeDays))
}
