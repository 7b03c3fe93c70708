package canvas

import "image/color"

// OpKind identifies a recorded draw call.
type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
)

// Op is one recorded draw call.
type Op struct {
	Kind   OpKind
	X, Y   float64 // circle center or line start
	X1, Y1 float64 // line end
	R      float64 // circle radius
	Width  float64 // line width
	Color  color.NRGBA
	Alpha  float64
	Glow   Glow
}

// Recorder is a Surface that remembers every call. It draws nothing.
type Recorder struct {
	W, H float64
	Ops  []Op
}

// NewRecorder creates a recorder reporting the given bounds.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

// Bounds implements Surface.
func (r *Recorder) Bounds() (float64, float64) {
	return r.W, r.H
}

// Clear implements Surface. Earlier operations are dropped.
func (r *Recorder) Clear(bg color.NRGBA) {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear, Color: bg, Alpha: 1})
}

// FillCircle implements Surface.
func (r *Recorder) FillCircle(x, y, radius float64, fill color.NRGBA, alpha float64, glow Glow) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X: x, Y: y, R: radius, Color: fill, Alpha: alpha, Glow: glow})
}

// StrokeLine implements Surface.
func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, stroke color.NRGBA, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X: x0, Y: y0, X1: x1, Y1: y1, Width: width, Color: stroke, Alpha: alpha})
}

// Count returns how many recorded operations have kind k.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the recorded operations of kind k.
func (r *Recorder) Filter(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}
