package states

// fpsCounter averages frame rate over one second windows.
type fpsCounter struct {
	frames  int
	elapsed float64
	fps     float32
}

// tick records a frame of dt seconds and reports when a new average is
// available.
func (f *fpsCounter) tick(dt float64) bool {
	f.frames++
	f.elapsed += dt
	if f.elapsed < 1 {
		return false
	}
	f.fps = float32(float64(f.frames) / f.elapsed)
	f.frames = 0
	f.elapsed = 0
	return true
}
