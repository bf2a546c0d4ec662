package gfx

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hubastard/gl2d/engine/assets"
	"github.com/hubastard/gl2d/engine/colors"
	"github.com/hubastard/gl2d/engine/vmath"
)

// Shader is a linked program made of one vertex and one fragment stage.
type Shader struct {
	handle
	locs map[string]int32
}

// NewShader compiles both stages and links them. On any failure no program
// is left allocated and the returned error wraps a *ShaderError.
func NewShader(ctx *Context, vertexSrc, fragmentSrc string) (*Shader, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	b := ctx.b

	vs, err := compileStage(ctx, VertexStage, vertexSrc)
	if err != nil {
		return nil, err
	}
	fs, err := compileStage(ctx, FragmentStage, fragmentSrc)
	if err != nil {
		b.DeleteShader(vs)
		return nil, err
	}

	prog, err := b.LinkProgram(vs, fs)
	b.DeleteShader(vs)
	b.DeleteShader(fs)
	if err != nil {
		serr := &ShaderError{Linking: true, Log: err.Error()}
		ctx.log.Error("program link failed", slog.String("log", serr.Log))
		return nil, serr
	}
	if prog == 0 {
		return nil, fmt.Errorf("link program: %w", ErrAllocFailed)
	}

	return &Shader{handle: newHandle(ctx, "shader", prog), locs: make(map[string]int32)}, nil
}

func compileStage(ctx *Context, stage ShaderStage, src string) (uint32, error) {
	id, err := ctx.b.CompileShader(stage, src)
	if err != nil {
		serr := &ShaderError{Stage: stage, Log: err.Error()}
		ctx.log.Error("shader compile failed", slog.String("stage", stage.String()), slog.String("log", serr.Log))
		return 0, serr
	}
	if id == 0 {
		return 0, fmt.Errorf("compile %s shader: %w", stage, ErrAllocFailed)
	}
	return id, nil
}

// NewShaderFromFiles reads both sources from disk and calls NewShader.
func NewShaderFromFiles(ctx *Context, vertexPath, fragmentPath string) (*Shader, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	vs, fs, err := assets.LoadShaderPair(vertexPath, fragmentPath)
	if err != nil {
		ctx.log.Error("shader source unreadable", slog.Any("err", err))
		return nil, err
	}
	s, err := NewShader(ctx, vs, fs)
	if err != nil {
		return nil, fmt.Errorf("shader %q + %q: %w", vertexPath, fragmentPath, err)
	}
	return s, nil
}

func (s *Shader) alive() error {
	if s == nil {
		return ErrDestroyed
	}
	return s.handle.alive()
}

// Bind makes the program current.
func (s *Shader) Bind() error {
	if err := s.alive(); err != nil {
		return err
	}
	s.ctx.b.UseProgram(s.id)
	return nil
}

// Destroy deletes the program. Destroying twice returns ErrDestroyed.
func (s *Shader) Destroy() error {
	if err := s.alive(); err != nil {
		return err
	}
	s.ctx.b.DeleteProgram(s.id)
	s.locs = nil
	s.release()
	return nil
}

// location binds the program and returns the cached uniform location.
// Unknown names resolve to -1, which the backend ignores.
func (s *Shader) location(name string) (int32, error) {
	if err := s.Bind(); err != nil {
		return -1, err
	}
	if loc, ok := s.locs[name]; ok {
		return loc, nil
	}
	loc := s.ctx.b.UniformLocation(s.id, name)
	if loc < 0 {
		s.ctx.log.Debug("uniform not found", slog.String("name", name))
	}
	s.locs[name] = loc
	return loc, nil
}

// The setters below bind the program before uploading.

func (s *Shader) SetBool(name string, v bool) error {
	var i int32
	if v {
		i = 1
	}
	return s.SetInt(name, i)
}

func (s *Shader) SetInt(name string, v int32) error {
	loc, err := s.location(name)
	if err != nil {
		return err
	}
	s.ctx.b.Uniform1i(loc, v)
	return nil
}

func (s *Shader) SetIntArray(name string, v []int32) error {
	if len(v) == 0 {
		return ErrEmptyData
	}
	loc, err := s.location(name)
	if err != nil {
		return err
	}
	s.ctx.b.Uniform1iv(loc, v)
	return nil
}

func (s *Shader) SetFloat(name string, v float32) error {
	loc, err := s.location(name)
	if err != nil {
		return err
	}
	s.ctx.b.Uniform1f(loc, v)
	return nil
}

func (s *Shader) SetVec2(name string, v vmath.Vec2) error {
	loc, err := s.location(name)
	if err != nil {
		return err
	}
	s.ctx.b.Uniform2f(loc, v.X, v.Y)
	return nil
}

func (s *Shader) SetColor(name string, c colors.Color) error {
	loc, err := s.location(name)
	if err != nil {
		return err
	}
	v := c.Vec4()
	s.ctx.b.Uniform4f(loc, v[0], v[1], v[2], v[3])
	return nil
}

func (s *Shader) SetMat4(name string, m vmath.Mat4) error {
	loc, err := s.location(name)
	if err != nil {
		return err
	}
	arr := [16]float32(m)
	s.ctx.b.UniformMatrix4(loc, &arr)
	return nil
}

// IsShaderError reports whether err came from a failed compile or link.
func IsShaderError(err error) bool {
	var serr *ShaderError
	return errors.As(err, &serr)
}
