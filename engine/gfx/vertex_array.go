package gfx

import "fmt"

// VertexArray records attribute layouts and the element buffer binding.
type VertexArray struct {
	handle
	index *IndexBuffer
}

// NewVertexArray creates a vertex array and leaves it bound, so buffers
// created right after are captured by it.
func NewVertexArray(ctx *Context) (*VertexArray, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	id := ctx.b.CreateVertexArray()
	if id == 0 {
		return nil, fmt.Errorf("create vertex array: %w", ErrAllocFailed)
	}
	ctx.b.BindVertexArray(id)
	return &VertexArray{handle: newHandle(ctx, "vertex_array", id)}, nil
}

func (va *VertexArray) alive() error {
	if va == nil {
		return ErrDestroyed
	}
	return va.handle.alive()
}

// AddVertexBuffer binds vb into the array and enables every attribute in layout.
func (va *VertexArray) AddVertexBuffer(vb *VertexBuffer, layout VertexLayout) error {
	if err := va.Bind(); err != nil {
		return err
	}
	if err := vb.Bind(); err != nil {
		return err
	}
	return va.SetLayout(layout)
}

// SetLayout enables every attribute in layout against the currently bound
// vertex buffer.
func (va *VertexArray) SetLayout(layout VertexLayout) error {
	if err := va.Bind(); err != nil {
		return err
	}
	for _, a := range layout.Attributes {
		va.ctx.b.VertexAttribPointer(a, layout.Stride)
	}
	return nil
}

// SetIndexBuffer records ib as the array's element buffer.
func (va *VertexArray) SetIndexBuffer(ib *IndexBuffer) error {
	if err := va.Bind(); err != nil {
		return err
	}
	if err := ib.Bind(); err != nil {
		return err
	}
	va.index = ib
	return nil
}

// IndexCount is the count of the attached index buffer, or 0.
func (va *VertexArray) IndexCount() int {
	if va.index == nil || va.index.alive() != nil {
		return 0
	}
	return va.index.Count()
}

func (va *VertexArray) Bind() error {
	if err := va.alive(); err != nil {
		return err
	}
	va.ctx.b.BindVertexArray(va.id)
	return nil
}

// Destroy deletes the array object. Attached buffers are not destroyed.
func (va *VertexArray) Destroy() error {
	if err := va.alive(); err != nil {
		return err
	}
	va.ctx.b.DeleteVertexArray(va.id)
	va.index = nil
	va.release()
	return nil
}
