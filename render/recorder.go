package render

// Recorder is a Surface that keeps the instructions of the last frame
type Recorder struct {
	Background RGB
	Circles    []Circle
	Frames     int
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear(bg RGB) {
	r.Background = bg
	r.Circles = r.Circles[:0]
	r.Frames++
}

func (r *Recorder) FillCircle(c Circle) {
	r.Circles = append(r.Circles, c)
}
