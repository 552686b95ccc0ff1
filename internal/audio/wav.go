package audio

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/olivier-w/crtsim/internal/signal"
)

// wavChunkFrames bounds the memory used per encoder write.
const wavChunkFrames = 4096

// WriteWAV encodes seconds of the drive pair as a 16-bit stereo WAV.
func WriteWAV(w io.WriteSeeker, l signal.Lissajous, seconds, pitch float64) error {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return fmt.Errorf("wav duration must be positive, got %g s", seconds)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth*8, channelCount, 1)
	tone := NewToneReader(sampleRate, pitch, l)
	format := &goaudio.Format{NumChannels: channelCount, SampleRate: sampleRate}

	remaining := int(math.Round(seconds * sampleRate))
	for remaining > 0 {
		n := min(remaining, wavChunkFrames)
		buf := &goaudio.IntBuffer{
			Format:         format,
			Data:           tone.Samples(n),
			SourceBitDepth: bitDepth * 8,
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("failed to encode wav: %w", err)
		}
		remaining -= n
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize wav: %w", err)
	}
	return nil
}
