package audio

import (
	"encoding/binary"
	"io"
	"math"
	"testing"
)

type rampSource struct {
	next     float32
	finished bool
}

func (r *rampSource) Process(dst []float32) {
	for i := range dst {
		dst[i] = r.next
		r.next += 1
	}
}

func (r *rampSource) Finished() bool { return r.finished }

func TestStreamDuplicatesMonoToStereo(t *testing.T) {
	r := NewStreamReader(&rampSource{})
	p := make([]byte, 4*8) // 4 frames
	n, err := r.Read(p)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(p) {
		t.Fatalf("read %d bytes, want %d", n, len(p))
	}
	for frame := 0; frame < 4; frame++ {
		l := math.Float32frombits(binary.LittleEndian.Uint32(p[frame*8:]))
		rch := math.Float32frombits(binary.LittleEndian.Uint32(p[frame*8+4:]))
		if l != float32(frame) || rch != float32(frame) {
			t.Fatalf("frame %d: L=%v R=%v, want both %v", frame, l, rch, float32(frame))
		}
	}
}

func TestStreamSignalsEOFWhenSourceFinishes(t *testing.T) {
	src := &rampSource{finished: true}
	r := NewStreamReader(src)
	p := make([]byte, 16)
	n, err := r.Read(p)
	if n != 16 {
		t.Errorf("read %d bytes, want 16", n)
	}
	if err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestStreamShortBufferReadsNothing(t *testing.T) {
	r := NewStreamReader(&rampSource{})
	n, err := r.Read(make([]byte, 7))
	if n != 0 || err != nil {
		t.Errorf("short read = %d, %v; want 0, nil", n, err)
	}
}
