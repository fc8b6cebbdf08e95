package service

import "testing"

// TestMulberry32ReferenceSequence verifies the generator matches known outputs.
func TestMulberry32ReferenceSequence(t *testing.T) {
	cases := map[uint32][]float64{
		0:   {0.26642920868471265, 0.0003297457005828619, 0.2232720274478197},
		1:   {0.6270739405881613, 0.002735721180215478, 0.5274470399599522},
		42:  {0.6011037519201636, 0.44829055899754167, 0.8524657934904099},
		123: {0.7872516233474016, 0.1785435655619949, 0.49531551403924823},
	}

	for seed, want := range cases {
		rng := NewMulberry32(seed)
		for i, w := range want {
			if got := rng.Float64(); got != w {
				t.Fatalf("seed %d draw %d: expected %v, got %v", seed, i, w, got)
			}
		}
	}
}

// TestMulberry32Range verifies every draw lies in [0, 1).
func TestMulberry32Range(t *testing.T) {
	rng := NewMulberry32(2024)
	for i := 0; i < 10000; i++ {
		v := rng.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of range: %v", i, v)
		}
	}
}

// TestMulberry32SameSeedSameSequence verifies two generators agree over
// 1000 draws and stay in [0, 1).
func TestMulberry32SameSeedSameSequence(t *testing.T) {
	a, b := NewMulberry32(77), NewMulberry32(77)
	for i := 0; i < 1000; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("sequences diverged at %d", i)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d out of range: %v", i, x)
		}
	}
}

// TestSeedFromInt verifies integers are reduced modulo 2^32.
func TestSeedFromInt(t *testing.T) {
	if got := SeedFromInt(4294967297); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := SeedFromInt(-5); got != 4294967291 {
		t.Fatalf("expected 4294967291, got %d", got)
	}
}

// TestParseSeed verifies textual seeds are normalized.
func TestParseSeed(t *testing.T) {
	cases := []struct {
		raw     string
		seed    uint32
		ok      bool
		warning bool
	}{
		{"", 0, false, false},
		{"   ", 0, false, false},
		{"42", 42, true, false},
		{" 42 ", 42, true, false},
		{"+7", 7, true, false},
		{"-5", 4294967291, true, false},
		{"4294967296", 0, true, false},
		{"4294967297", 1, true, false},
		{"12abc", 12, true, true},
		{"abc", 0, true, true},
		{"-", 0, true, true},
	}

	for _, tc := range cases {
		seed, ok, warning := ParseSeed(tc.raw)
		if seed != tc.seed || ok != tc.ok {
			t.Fatalf("ParseSeed(%q) = (%d, %v), expected (%d, %v)", tc.raw, seed, ok, tc.seed, tc.ok)
		}
		if (warning != "") != tc.warning {
			t.Fatalf("ParseSeed(%q) warning = %q, expected warning=%v", tc.raw, warning, tc.warning)
		}
	}
}
