package service

import (
	"math/rand"
	"strings"
	"time"
)

// RandomSource yields uniform values in [0, 1). Both the seeded generator
// and *rand.Rand satisfy it, so callers never branch on which is active.
type RandomSource interface {
	Float64() float64
}

const (
	mulberryIncrement = 0x6D2B79F5
	twoPow32          = 4294967296.0
)

// Mulberry32 is a small seedable generator used to make sessions
// reproducible. It is NOT cryptographically secure.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 creates a generator from a 32-bit seed.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Next advances the state and returns the mixed 32-bit value.
func (m *Mulberry32) Next() uint32 {
	m.state += mulberryIncrement
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Next()) / twoPow32
}

// NewUnseededSource returns a non-deterministic source for sessions started
// without a seed.
func NewUnseededSource() RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// SeedFromInt reduces an integer seed modulo 2^32.
func SeedFromInt(n int64) uint32 {
	return uint32(n)
}

// ParseSeed normalizes a textual seed. A blank seed means "no seed" and
// returns ok=false. Otherwise the leading base-10 integer (optional sign,
// leading whitespace allowed) is reduced modulo 2^32. Input without digits
// yields seed 0; input with trailing characters keeps the numeric prefix.
// Both cases return a non-empty warning.
func ParseSeed(raw string) (seed uint32, ok bool, warning string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false, ""
	}

	negative := false
	if s[0] == '+' || s[0] == '-' {
		negative = s[0] == '-'
		s = s[1:]
	}

	digits := 0
	var acc uint32
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		acc = acc*10 + uint32(s[digits]-'0')
		digits++
	}

	if digits == 0 {
		return 0, true, "seed is not a number, using 0"
	}
	if negative {
		acc = -acc
	}
	if digits < len(s) {
		return acc, true, "seed has trailing characters, using numeric prefix"
	}
	return acc, true, ""
}
