package analytics

import (
	"errors"
	"math"
	"math/big"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"kgsite/internal/storage"
)

const DefaultSeedKey = "kg_analytics_seed"

// SeedStore keeps one seed per profile so a dashboard shows the same
// numbers until the user regenerates them.
type SeedStore struct {
	store storage.Store
	key   string
	now   func() time.Time
	rand  func(n int64) int64
}

func NewSeedStore(store storage.Store, key string) *SeedStore {
	if key == "" {
		key = DefaultSeedKey
	}
	return &SeedStore{store: store, key: key, now: time.Now, rand: rand.Int64N}
}

func (s *SeedStore) Key(profile string) string {
	if profile == "" {
		return s.key
	}
	return s.key + ":" + profile
}

// Load returns the profile's seed, creating and persisting one when none
// is stored or the stored value is unreadable.
func (s *SeedStore) Load(profile string) uint32 {
	raw, err := s.store.Get(s.Key(profile))
	if err == nil {
		if seed, ok := ParseSeed(raw); ok {
			return seed
		}
	}
	return s.Regenerate(profile)
}

// Regenerate replaces the profile's seed. When storage fails the fresh
// seed is still returned, just not remembered.
func (s *SeedStore) Regenerate(profile string) uint32 {
	seed := s.create()
	_ = s.store.Set(s.Key(profile), strconv.FormatUint(uint64(seed), 10))
	return seed
}

func (s *SeedStore) create() uint32 {
	return uint32(s.now().UnixMilli() + s.rand(1_000_000_000))
}

var decimalSeed = regexp.MustCompile(`^[+-]?(?:Infinity|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)$`)

// ParseSeed reads raw the way Number(raw) >>> 0 does in a browser:
// decimal or 0x/0o/0b text, truncated and wrapped to 32 bits. Text that is
// not a finite number is rejected.
func ParseSeed(raw string) (uint32, bool) {
	if raw == "" {
		return 0, false
	}
	f, ok := jsNumber(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return toUint32(f), true
}

func jsNumber(raw string) (float64, bool) {
	text := strings.TrimFunc(raw, func(r rune) bool { return unicode.IsSpace(r) || r == '\uFEFF' })
	if text == "" {
		return 0, true
	}
	if len(text) > 2 && text[0] == '0' {
		base := 0
		switch text[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, ok := new(big.Int).SetString(text[2:], base)
			if !ok || n.Sign() < 0 || strings.ContainsAny(text[2:], "+-_") {
				return 0, false
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f, true
		}
	}
	if !decimalSeed.MatchString(text) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimPrefix(text, "+"), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// toUint32 is ECMAScript ToUint32 for a finite f.
func toUint32(f float64) uint32 {
	m := math.Mod(math.Trunc(f), 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return uint32(m)
}
