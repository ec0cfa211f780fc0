// This file is part of Gopher80.
//
// Gopher80 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher80 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher80.  If not, see <https://www.gnu.org/licenses/>.

package cassette

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/logger"
)

const pcmLogTag = "cassette: pcm"

// Samples within this fraction of the peak amplitude of the neutral line
// are treated as silence. Anything above is a positive excursion, anything
// below a negative one.
const pcmThreshold = 0.25

// The amplitude used for pulse excursions when rendering a tape to audio.
const pcmAmplitude = 0.75

// Parameters of rendered audio files.
const (
	pcmSampleRate = 44100
	pcmBitDepth   = 16
)

// A corrupt recording can describe days of silence in very few bytes. Audio
// rendering gives up after this many seconds, which is comfortably more
// than a side of real tape.
const pcmMaxRenderSeconds = 3600

// pcmData is a mono audio stream. Stereo sources contribute their left
// channel only.
type pcmData struct {
	sampleRate float64
	data       []float32
}

// getPCM decodes a WAV or MP3 file. The file type is decided by the
// filename extension.
func getPCM(env *environment.Environment, filename string) (pcmData, error) {
	p := pcmData{
		data: make([]float32, 0),
	}

	f, err := os.Open(filename)
	if err != nil {
		return p, curated.Errorf("cassette: %v", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		dec := wav.NewDecoder(f)
		if dec == nil {
			return p, curated.Errorf("cassette: wav: error decoding")
		}

		if !dec.IsValidFile() {
			return p, curated.Errorf("cassette: wav: not a valid wav file")
		}

		logger.Log(env, pcmLogTag, "loading from wav file")

		// load all data at once
		buf, err := dec.FullPCMBuffer()
		if err != nil {
			return p, curated.Errorf("cassette: wav: %v", err)
		}
		floatBuf := buf.AsFloat32Buffer()

		// copy first channel only of data stream
		p.data = make([]float32, 0, len(floatBuf.Data)/int(dec.NumChans))
		for i := 0; i < len(floatBuf.Data); i += int(dec.NumChans) {
			p.data = append(p.data, floatBuf.Data[i])
		}

		p.sampleRate = float64(dec.SampleRate)

	case ".mp3":
		dec, err := mp3.NewDecoder(f)
		if err != nil {
			return p, curated.Errorf("cassette: mp3: %v", err)
		}

		logger.Log(env, pcmLogTag, "loading from mp3 file")

		// the go-mp3 stream is always 16bit little-endian stereo, four
		// bytes per sample pair. we keep the left channel
		err = nil
		chunk := make([]byte, 4096)
		for err != io.EOF {
			var chunkLen int
			chunkLen, err = dec.Read(chunk)
			if err != nil && err != io.EOF {
				return p, curated.Errorf("cassette: mp3: %v", err)
			}

			for i := 0; i+1 < chunkLen; i += 4 {
				v := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
				p.data = append(p.data, float32(v))
			}
		}

		p.sampleRate = float64(dec.SampleRate())

	default:
		return p, curated.Errorf("cassette: unsupported audio file: %v", filename)
	}

	logger.Logf(env, pcmLogTag, "sample rate: %0.2fHz", p.sampleRate)
	logger.Logf(env, pcmLogTag, "total time: %.02fs", float64(len(p.data))/p.sampleRate)

	return p, nil
}

// normalise scales the stream so that the peak amplitude is 1.0. Decoders
// for different file types and bit depths hand us different scales and
// recordings of real tapes arrive at unpredictable volumes.
func (p *pcmData) normalise() {
	peak := float32(0.0)
	for _, v := range p.data {
		if v > peak {
			peak = v
		}
		if -v > peak {
			peak = -v
		}
	}
	if peak == 0.0 {
		return
	}
	for i := range p.data {
		p.data[i] /= peak
	}
}

// ImportPCM converts an audio recording of a real tape into a CPT file.
func ImportPCM(env *environment.Environment, srcFilename string, dstFilename string) error {
	p, err := getPCM(env, srcFilename)
	if err != nil {
		return err
	}
	p.normalise()

	m := &media{path: dstFilename}

	// classify each sample and emit a record whenever the classification
	// changes. delays are measured against absolute sample positions so
	// rounding cannot drift over the length of the recording
	level := uint8(0)
	lastUs := 0
	for i, v := range p.data {
		var l uint8
		switch {
		case v > pcmThreshold:
			l = 1
		case v < -pcmThreshold:
			l = 2
		}

		if l != level {
			us := int(math.Round(float64(i) * 1e6 / p.sampleRate))
			cptRecord(m, l, us-lastUs)
			lastUs = us
			level = l
		}
	}

	logger.Logf(env, pcmLogTag, "imported %d transition records", len(m.buffer))

	return m.save()
}

// ExportWAV renders a tape to an audio file. speed selects the pulse shapes
// used for a CAS tape and is ignored for a CPT tape, which carries its own
// timings.
func ExportWAV(env *environment.Environment, srcFilename string, format Format, speed Speed, dstFilename string) error {
	m, err := loadMedia(srcFilename)
	if err != nil {
		return err
	}
	if len(m.buffer) == 0 {
		return curated.Errorf("cassette: %v is empty, nothing to export", srcFilename)
	}

	f, err := os.Create(dstFilename)
	if err != nil {
		return curated.Errorf("cassette: %v", err)
	}

	enc := wav.NewEncoder(f, pcmSampleRate, pcmBitDepth, 1, 1)

	rd := reader{}
	rd.begin(format, speed)

	amp := [3]int{0, pcmAmplitude * (1 << (pcmBitDepth - 1)), -pcmAmplitude * (1 << (pcmBitDepth - 1))}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  pcmSampleRate,
		},
		SourceBitDepth: pcmBitDepth,
	}

	// advance the pulse train in sample sized steps, accumulating the
	// fractional cycle left over from each step
	cyclesPerSample := float64(clocks.CPUClock) / pcmSampleRate
	carry := 0.0
	samples := 0

	for samples < pcmMaxRenderSeconds*pcmSampleRate {
		exact := cyclesPerSample + carry
		step := int(exact)
		carry = exact - float64(step)

		rd.tick(step, m)
		samples++
		buf.Data = append(buf.Data, amp[rd.value])

		if len(buf.Data) >= pcmSampleRate {
			err = enc.Write(buf)
			if err != nil {
				f.Close()
				return curated.Errorf("cassette: wav: %v", err)
			}
			buf.Data = buf.Data[:0]
		}

		// a CPT train goes idle at the end of the recording. a CAS train
		// runs on into blank tape, which we detect by the head moving past
		// the last real byte
		if format == CPT {
			if !rd.active {
				break
			}
		} else if m.head > len(m.buffer) {
			break
		}
	}

	if len(buf.Data) > 0 {
		err = enc.Write(buf)
		if err != nil {
			f.Close()
			return curated.Errorf("cassette: wav: %v", err)
		}
	}

	err = enc.Close()
	if err != nil {
		f.Close()
		return curated.Errorf("cassette: wav: %v", err)
	}

	err = f.Close()
	if err != nil {
		return curated.Errorf("cassette: wav: %v", err)
	}

	logger.Logf(env, pcmLogTag, "exported %.02fs of audio", float64(samples)/pcmSampleRate)

	return nil
}
