// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/aupstream/audio"
	"github.com/ik5/aupstream/internal/audiotest"
)

func encodeToFile(t *testing.T, src audio.Source) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	if err := (Encoder{}).Encode(f, src); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	return path
}

func TestEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.5, -0.25, 1, -1}
	path := encodeToFile(t, audiotest.NewSliceSource(8000, samples))

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("IsValidFile() = false")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}

	if buf.Format.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", buf.Format.SampleRate)
	}
	if buf.Format.NumChannels != 1 {
		t.Errorf("NumChannels = %d, want 1", buf.Format.NumChannels)
	}
	if dec.BitDepth != 16 {
		t.Errorf("BitDepth = %d, want 16", dec.BitDepth)
	}

	want := []int{0, 16384, -8192, 32767, -32768}
	if len(buf.Data) != len(want) {
		t.Fatalf("len(Data) = %d, want %d", len(buf.Data), len(want))
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("Data[%d] = %d, want %d", i, buf.Data[i], want[i])
		}
	}
}

func TestEncoder_Stereo(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(16000, 2, 1000, func(_ int, ch int) float32 {
		if ch == 0 {
			return 0.5
		}
		return -0.5
	})
	path := encodeToFile(t, src)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	buf, err := gowav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}

	if buf.Format.NumChannels != 2 {
		t.Errorf("NumChannels = %d, want 2", buf.Format.NumChannels)
	}
	if len(buf.Data) != 2000 {
		t.Fatalf("len(Data) = %d, want 2000", len(buf.Data))
	}
	if buf.Data[0] != 16384 || buf.Data[1] != -16384 {
		t.Errorf("first frame = (%d, %d), want (16384, -16384)", buf.Data[0], buf.Data[1])
	}
}

func TestEncoder_EmptySourceWritesHeader(t *testing.T) {
	t.Parallel()

	path := encodeToFile(t, audiotest.NewSliceSource(8000, nil))

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() < 44 {
		t.Errorf("file size = %d, want at least a 44 byte header", info.Size())
	}
}

func TestEncoder_NoChannels(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	err = Encoder{}.Encode(f, audiotest.NewSilentSource(8000, 0, 10))
	if !errors.Is(err, ErrEncode) {
		t.Errorf("Encode() error = %v, want ErrEncode", err)
	}
	if !errors.Is(err, audio.ErrNoChannels) {
		t.Errorf("Encode() error = %v, want ErrNoChannels", err)
	}
}
