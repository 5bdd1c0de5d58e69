package soundbank

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/wararyo/capsulego/pkg/sampler"
)

// ADSRSpec gives envelope times in seconds and the sustain level (0-1), the
// way instrument designers think about them. They are converted to the
// per-envelope-step coefficients the engine consumes.
type ADSRSpec struct {
	Enabled bool    `json:"enabled"`
	Attack  float64 `json:"attack"`
	Sustain float64 `json:"sustain"`
	Decay   float64 `json:"decay"`
	Release float64 `json:"release"`
}

// RegionSpec maps one sample file onto a note and velocity range.
type RegionSpec struct {
	File          string   `json:"file"`
	Root          uint8    `json:"root"`
	LowerNote     uint8    `json:"lowerNote"`
	UpperNote     uint8    `json:"upperNote"`
	LowerVelocity uint8    `json:"lowerVelocity"`
	UpperVelocity uint8    `json:"upperVelocity"`
	ADSR          ADSRSpec `json:"adsr"`
	LoopStart     int      `json:"loopStart"`
	LoopEnd       int      `json:"loopEnd"`
}

// TimbreSpec names an ordered list of regions; earlier regions win.
type TimbreSpec struct {
	Name    string       `json:"name"`
	Regions []RegionSpec `json:"regions"`
}

// BankSpec is the on-disk bank format.
type BankSpec struct {
	Timbres []TimbreSpec `json:"timbres"`
}

// Bank is a loaded set of timbres ready to bind to sampler channels.
type Bank struct {
	Timbres []*sampler.Timbre

	byName map[string]*sampler.Timbre
}

// Lookup returns the named timbre, or nil.
func (b *Bank) Lookup(name string) *sampler.Timbre {
	return b.byName[name]
}

// LoadBank reads a JSON bank file and every sample file it references.
// Sample paths are resolved relative to the bank file. A file referenced by
// several regions is loaded once.
func LoadBank(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("soundbank: %w", err)
	}

	var spec BankSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("soundbank: %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cache := make(map[string]*pcmEntry)

	bank := &Bank{byName: make(map[string]*sampler.Timbre)}
	for _, ts := range spec.Timbres {
		timbre := &sampler.Timbre{Name: ts.Name}
		for _, rs := range ts.Regions {
			smp, err := buildSample(dir, rs, cache)
			if err != nil {
				return nil, fmt.Errorf("soundbank: timbre %q: %w", ts.Name, err)
			}
			timbre.Samples = append(timbre.Samples, sampler.MappedSample{
				LowerNoteNo:   rs.LowerNote,
				UpperNoteNo:   rs.UpperNote,
				LowerVelocity: rs.LowerVelocity,
				UpperVelocity: rs.UpperVelocity,
				Sample:        smp,
			})
		}
		bank.Timbres = append(bank.Timbres, timbre)
		bank.byName[ts.Name] = timbre
	}
	return bank, nil
}

type pcmEntry struct {
	data   []int16
	length int
}

func buildSample(dir string, rs RegionSpec, cache map[string]*pcmEntry) (*sampler.Sample, error) {
	entry, ok := cache[rs.File]
	if !ok {
		data, length, err := LoadPCM(filepath.Join(dir, rs.File))
		if err != nil {
			return nil, err
		}
		entry = &pcmEntry{data: data, length: length}
		cache[rs.File] = entry
	}

	smp := &sampler.Sample{
		Data:        entry.data,
		Length:      entry.length,
		Root:        rs.Root,
		AdsrEnabled: rs.ADSR.Enabled,
	}
	if rs.ADSR.Enabled {
		smp.Attack, smp.Decay, smp.Sustain, smp.Release = StepCoefficients(rs.ADSR)
		smp.LoopStart = rs.LoopStart
		smp.LoopEnd = rs.LoopEnd
		if smp.LoopEnd <= smp.LoopStart || smp.LoopEnd > smp.Length {
			return nil, fmt.Errorf("%s: bad loop region [%d, %d)", rs.File, rs.LoopStart, rs.LoopEnd)
		}
	}
	return smp, nil
}

// StepCoefficients converts envelope times in seconds to the per-step
// coefficients the voice engine applies every AdsrUpdateSampleCount output
// samples: a linear attack increment, exponential decay and release
// multipliers, and the sustain level unchanged.
func StepCoefficients(spec ADSRSpec) (attack, decay, sustain, release float32) {
	stepDur := float64(sampler.AdsrUpdateSampleCount) / float64(SampleRate)

	if spec.Attack <= 0 {
		attack = 1
	} else {
		attack = float32(math.Min(1, stepDur/spec.Attack))
	}
	if spec.Decay <= 0 {
		decay = 0
	} else {
		decay = float32(math.Exp(-stepDur / spec.Decay))
	}
	sustain = float32(math.Max(0, math.Min(1, spec.Sustain)))
	if spec.Release <= 0 {
		release = 0
	} else {
		release = float32(math.Exp(-stepDur / spec.Release))
	}
	return attack, decay, sustain, release
}
