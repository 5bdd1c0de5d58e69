package reverb

import (
	"testing"
)

func impulse(n int) []float32 {
	buf := make([]float32, n)
	buf[0] = 1
	return buf
}

func TestFreeverbImpulseProducesTail(t *testing.T) {
	f := New(44100)
	f.SetDryLevel(0)
	f.SetWetLevel(1)

	// The shortest comb is 1116 samples, so the wet tail appears after the
	// first delay line wraps.
	heard := false
	buf := make([]float32, 512)
	buf[0] = 1
	for block := 0; block < 8; block++ {
		f.Process(buf, buf)
		for _, v := range buf {
			if v != 0 {
				heard = true
			}
		}
		for i := range buf {
			buf[i] = 0
		}
	}
	if !heard {
		t.Fatal("no reverb tail from an impulse")
	}
}

func TestFreeverbDryPassThrough(t *testing.T) {
	f := New(44100)
	f.SetDryLevel(1)
	f.SetWetLevel(0)

	in := impulse(64)
	out := make([]float32, 64)
	f.Process(in, out)

	if out[0] != 1 {
		t.Fatalf("out[0] = %v, want dry impulse 1", out[0])
	}
	for i := 1; i < 64; i++ {
		if out[i] != 0 {
			t.Fatalf("out[%d] = %v, want 0 with wet level 0", i, out[i])
		}
	}
}

func TestFreeverbInPlaceMatchesOutOfPlace(t *testing.T) {
	a := New(44100)
	b := New(44100)

	in := make([]float32, 2048)
	for i := range in {
		in[i] = float32(i%7) * 0.1
	}

	inPlace := make([]float32, len(in))
	copy(inPlace, in)
	a.Process(inPlace, inPlace)

	outOfPlace := make([]float32, len(in))
	b.Process(in, outOfPlace)

	for i := range inPlace {
		if inPlace[i] != outOfPlace[i] {
			t.Fatalf("sample %d: in-place %v != out-of-place %v", i, inPlace[i], outOfPlace[i])
		}
	}
}

func TestFreeverbReset(t *testing.T) {
	f := New(44100)
	f.SetDryLevel(0)
	f.SetWetLevel(1)

	buf := make([]float32, 4096)
	buf[0] = 1
	f.Process(buf, buf)
	f.Reset()

	in := make([]float32, 4096)
	out := make([]float32, 4096)
	f.Process(in, out)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v after Reset, want 0", i, v)
		}
	}
}

func TestFreeverbParameterClamping(t *testing.T) {
	f := New(44100)
	f.SetRoomSize(2)
	if f.roomSize != 1 {
		t.Fatalf("roomSize = %v, want clamped to 1", f.roomSize)
	}
	f.SetDamping(-1)
	if f.damping != 0 {
		t.Fatalf("damping = %v, want clamped to 0", f.damping)
	}
}
