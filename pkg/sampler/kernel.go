package sampler

// Work is the resampling kernel workspace. Src is the full sample data; Pos
// and PosF are the integer and fractional read phase into it. The kernel
// adds into Dst and advances Pos and PosF in place.
type Work struct {
	Src   []int16
	Dst   []float32
	Pos   int
	PosF  float32
	Gain  float32
	Pitch float32
}

// Kernel renders n output samples from a source waveform through pitched
// linear interpolation. Gain and Pitch are constant across one invocation;
// the caller re-applies loop points and envelope between invocations. An
// architecture-specific implementation can replace the portable one via
// Sampler.SetKernel.
type Kernel interface {
	Render(w *Work, n int)
}

// PortableKernel is the reference kernel. The loop body keeps every value
// in locals so the compiler can hold them in registers.
type PortableKernel struct{}

// Render implements Kernel.
func (PortableKernel) Render(w *Work, n int) {
	src := w.Src
	dst := w.Dst[:n]
	pos := w.Pos
	posF := w.PosF
	gain := w.Gain
	pitch := w.Pitch
	for k := range dst {
		s0 := float32(src[pos])
		s1 := float32(src[pos+1])
		dst[k] += (s0 + (s1-s0)*posF) * gain
		posF += pitch
		intval := int(posF)
		posF -= float32(intval)
		pos += intval
	}
	w.Pos = pos
	w.PosF = posF
}
