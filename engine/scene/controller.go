package scene

import (
	"github.com/hubastard/gl2d/engine/core"
	"github.com/hubastard/gl2d/engine/vmath"
)

// Controller maps held keys to a Transform and, optionally, a Camera.
//
//	arrows            move Target
//	PageUp/PageDown   grow/shrink Target uniformly
//	comma/period      rotate Target counter-clockwise/clockwise
//	W/A/S/D           move Camera
//
// Speeds are per second.
type Controller struct {
	MoveSpeed   float32
	ScaleSpeed  float32
	RotateSpeed float32 // degrees
	MinScale    float32

	Target *Transform
	Camera *Camera
}

func NewController(target *Transform, cam *Camera) *Controller {
	return &Controller{
		MoveSpeed:   0.5,
		ScaleSpeed:  0.5,
		RotateSpeed: 90,
		MinScale:    0.05,
		Target:      target,
		Camera:      cam,
	}
}

func (cc *Controller) Update(in *core.Input, dt float32) {
	if t := cc.Target; t != nil {
		step := cc.MoveSpeed * dt
		t.Position = t.Position.Add(axis(in, core.KeyRight, core.KeyLeft, core.KeyUp, core.KeyDown).Scale(step))

		if in.IsKeyDown(core.KeyPageUp) {
			t.Scale = t.Scale.AddScalar(cc.ScaleSpeed * dt)
		}
		if in.IsKeyDown(core.KeyPageDown) {
			t.Scale = t.Scale.SubScalar(cc.ScaleSpeed * dt)
		}
		if t.Scale.X < cc.MinScale || t.Scale.Y < cc.MinScale {
			t.Scale = vmath.V2(max(t.Scale.X, cc.MinScale), max(t.Scale.Y, cc.MinScale))
		}

		if in.IsKeyDown(core.KeyComma) {
			t.Rotation += cc.RotateSpeed * dt
		}
		if in.IsKeyDown(core.KeyPeriod) {
			t.Rotation -= cc.RotateSpeed * dt
		}
	}

	if c := cc.Camera; c != nil {
		d := axis(in, core.KeyD, core.KeyA, core.KeyW, core.KeyS).Scale(cc.MoveSpeed * dt)
		c.Move(d.X, d.Y)
	}
}

func axis(in *core.Input, right, left, up, down core.Key) vmath.Vec2 {
	var v vmath.Vec2
	if in.IsKeyDown(right) {
		v.X++
	}
	if in.IsKeyDown(left) {
		v.X--
	}
	if in.IsKeyDown(up) {
		v.Y++
	}
	if in.IsKeyDown(down) {
		v.Y--
	}
	return v
}
