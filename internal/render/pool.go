package render

import (
	"sync"

	"github.com/san-kum/vizvault/internal/geom"
)

// FramePool double-buffers frames: frame n is written into slot n%2, so the
// frame handed to a consumer stays intact while the next one is generated.
type FramePool struct {
	slots [2]*geom.Frame
}

func NewFramePool() *FramePool {
	return &FramePool{slots: [2]*geom.Frame{{}, {}}}
}

// Acquire resets and returns the slot for frame n.
func (p *FramePool) Acquire(n uint64) *geom.Frame {
	i := n % 2
	if p.slots[i] == nil {
		p.slots[i] = &geom.Frame{}
	}
	f := p.slots[i]
	f.Reset()
	f.Index = n
	return f
}

// Release drops both buffers.
func (p *FramePool) Release() {
	p.slots[0], p.slots[1] = nil, nil
}

var scratch = sync.Pool{
	New: func() interface{} {
		return &geom.Frame{}
	},
}

// GetFrame returns an empty frame for one-shot renders.
func GetFrame() *geom.Frame {
	f := scratch.Get().(*geom.Frame)
	f.Reset()
	f.Index = 0
	return f
}

// PutFrame recycles a frame obtained from GetFrame.
func PutFrame(f *geom.Frame) {
	if f != nil {
		scratch.Put(f)
	}
}
