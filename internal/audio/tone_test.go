package audio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/olivier-w/crtsim/internal/signal"
)

func TestToneReaderQuarterPeriod(t *testing.T) {
	// 8 samples per second, 1 Hz drive, pitch 1: sample 2 is the crest.
	r := NewToneReader(8, 1, signal.NewLissajous(1, 1, 50, 0, 0))
	got := r.Samples(4)
	peak := int(math.Round(gain * math.MaxInt16))
	want := []int{0, 0, 0, 0, peak, peak, 0, 0}
	for i := range 4 {
		want[2*i] = int(math.Round(math.Sin(2*math.Pi*float64(i)/8) * gain * math.MaxInt16))
		want[2*i+1] = want[2*i]
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: expected %d, got %d (all %v)", i, want[i], got[i], got)
		}
	}
	if got[4] != peak {
		t.Fatalf("expected crest %d, got %d", peak, got[4])
	}
}

func TestToneReaderChannelsFollowAmplitudes(t *testing.T) {
	l := signal.NewLissajous(1, 1, 0, math.Pi/2, math.Pi/2)
	l.Vertical.Amplitude = 40
	l.Horizontal.Amplitude = 20
	r := NewToneReader(8, 1, l)
	s := r.Samples(1)
	if s[1] != int(math.Round(gain*math.MaxInt16)) {
		t.Fatalf("expected louder drive at full scale, got %d", s[1])
	}
	if s[0] != int(math.Round(0.5*gain*math.MaxInt16)) {
		t.Fatalf("expected quieter drive at half scale, got %d", s[0])
	}

	silent := NewToneReader(8, 1, signal.Lissajous{})
	for _, v := range silent.Samples(4) {
		if v != 0 {
			t.Fatalf("expected silence for zero amplitude, got %d", v)
		}
	}
}

func TestToneReaderReadWholeFrames(t *testing.T) {
	r := NewToneReader(8, 1, signal.NewLissajous(1, 2, 50, math.Pi/2, 0))
	p := make([]byte, 4*3+2)
	n, err := r.Read(p)
	if err != nil {
		t.Fatal(err)
	}
	if n != 12 {
		t.Fatalf("expected 12 bytes (3 frames), got %d", n)
	}
	left := int16(binary.LittleEndian.Uint16(p[0:]))
	right := int16(binary.LittleEndian.Uint16(p[2:]))
	if left != int16(math.Round(gain*math.MaxInt16)) || right != 0 {
		t.Fatalf("expected first frame (crest, 0), got (%d, %d)", left, right)
	}
}

func TestToneReaderSetDriveKeepsPhase(t *testing.T) {
	r := NewToneReader(8, 1, signal.NewLissajous(1, 1, 50, 0, 0))
	r.Samples(2) // phase now π/2
	r.SetDrive(signal.NewLissajous(2, 2, 50, 0, 0))
	s := r.Samples(1)
	if s[0] != int(math.Round(gain*math.MaxInt16)) {
		t.Fatalf("expected frequency change to continue from the crest, got %d", s[0])
	}
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drive.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteWAV(f, signal.NewLissajous(1, 2, 50, 0, 0), 0.25, DefaultPitch); err != nil {
		f.Close()
		t.Fatalf("WriteWAV: %v", err)
	}
	f.Close()

	f, err = os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("expected a valid wav file")
	}
	if err := dec.FwdToPCM(); err != nil {
		t.Fatalf("FwdToPCM: %v", err)
	}
	if dec.NumChans != channelCount || dec.SampleRate != sampleRate || dec.BitDepth != 16 {
		t.Fatalf("unexpected format: %d ch, %d Hz, %d bit", dec.NumChans, dec.SampleRate, dec.BitDepth)
	}
	if want := int64(math.Round(0.25*sampleRate)) * frameBytes; dec.PCMLen() != want {
		t.Fatalf("expected %d PCM bytes, got %d", want, dec.PCMLen())
	}
}

func TestWriteWAVRejectsBadDuration(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	for _, s := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := WriteWAV(f, signal.Lissajous{}, s, 1); err == nil {
			t.Fatalf("expected error for %g s", s)
		}
	}
}
