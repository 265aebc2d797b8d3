package texture

// Barrier counts resolved texture loads. Rendering may start once every
// expected load has resolved, whether it succeeded, failed or timed out.
// It is owned by the render thread and is not safe for concurrent use.
type Barrier struct {
	expected  int
	completed int
}

// NewBarrier expects n loads.
func NewBarrier(n int) *Barrier {
	if n < 0 {
		n = 0
	}
	return &Barrier{expected: n}
}

// Complete records one resolved load. Extra calls past the expected count
// are ignored.
func (b *Barrier) Complete() {
	if b.completed < b.expected {
		b.completed++
	}
}

// Done reports whether every expected load has resolved.
func (b *Barrier) Done() bool {
	return b.completed == b.expected
}

// Counts returns completed and expected.
func (b *Barrier) Counts() (completed, expected int) {
	return b.completed, b.expected
}

// Progress returns the resolved fraction in [0, 1].
func (b *Barrier) Progress() float32 {
	if b.expected == 0 {
		return 1
	}
	return float32(b.completed) / float32(b.expected)
}
