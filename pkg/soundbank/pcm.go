// Package soundbank loads PCM sample data and timbre definitions from disk
// and builds the structures the sampler plays. Nothing here runs on the
// audio path.
package soundbank

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
)

// SampleRate is the engine output rate. Sample files are not rate-converted;
// files recorded at other rates simply play transposed.
const SampleRate = 44100

// LoadPCM reads a WAV or MP3 file into mono 16-bit PCM with the guard
// sample the resampling kernel requires. The returned length excludes the
// guard.
func LoadPCM(path string) ([]int16, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("soundbank: %w", err)
	}
	defer f.Close()

	var data []int16
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		data, err = decodeWAV(f)
	case ".mp3":
		data, err = decodeMP3(f)
	default:
		err = fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, 0, fmt.Errorf("soundbank: %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("soundbank: %s: no sample data", path)
	}

	length := len(data)
	// Guard sample past the end: the interpolator reads one sample ahead.
	data = append(data, 0)
	return data, length, nil
}

// decodeWAV loads the first channel of a WAV file as int16.
func decodeWAV(f io.ReadSeeker) ([]int16, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: not a valid wav file")
	}

	// Load all data at once; banks are read at startup, not streamed.
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	numChans := int(dec.NumChans)
	if numChans < 1 {
		numChans = 1
	}
	shift := int(dec.BitDepth) - 16

	data := make([]int16, 0, len(buf.Data)/numChans)
	for i := 0; i < len(buf.Data); i += numChans {
		v := buf.Data[i]
		if shift > 0 {
			v >>= shift
		} else if shift < 0 {
			v <<= -shift
		}
		data = append(data, int16(v))
	}
	return data, nil
}

// decodeMP3 loads the left channel of an MP3 file. The decoder always emits
// 16-bit little-endian stereo, so a frame is four bytes.
func decodeMP3(f io.Reader) ([]int16, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	var data []int16
	chunk := make([]byte, 4096)
	for {
		n, err := dec.Read(chunk)
		for i := 0; i+1 < n; i += 4 {
			data = append(data, int16(uint16(chunk[i])|uint16(chunk[i+1])<<8))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mp3: %w", err)
		}
	}
	return data, nil
}
