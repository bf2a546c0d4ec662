package vmath

// Rect is an integer pixel region, used for viewports.
type Rect struct {
	X, Y, W, H int32
}

// RectF is a float region in draw space, e.g. the bounds an orthographic
// camera looks at. X,Y is the bottom-left corner.
type RectF struct {
	X, Y, W, H float32
}

// CenteredRectF returns a rect of size w×h centered on the origin.
func CenteredRectF(w, h float32) RectF {
	return RectF{X: -w * 0.5, Y: -h * 0.5, W: w, H: h}
}

func (r RectF) Left() float32   { return r.X }
func (r RectF) Right() float32  { return r.X + r.W }
func (r RectF) Bottom() float32 { return r.Y }
func (r RectF) Top() float32    { return r.Y + r.H }

// Aspect returns W/H.
func (r Rect) Aspect() float32 {
	if r.H == 0 {
		return 0
	}
	return float32(r.W) / float32(r.H)
}
