package gfx

import "fmt"

// VertexBuffer holds interleaved float32 vertex data.
type VertexBuffer struct {
	handle
	usage BufferUsage
	size  int
}

// NewVertexBuffer creates a buffer, binds it and uploads vertices.
func NewVertexBuffer(ctx *Context, vertices []float32, usage BufferUsage) (*VertexBuffer, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if len(vertices) == 0 {
		return nil, fmt.Errorf("vertex buffer: %w", ErrEmptyData)
	}
	id := ctx.b.CreateBuffer()
	if id == 0 {
		return nil, fmt.Errorf("create vertex buffer: %w", ErrAllocFailed)
	}
	vb := &VertexBuffer{handle: newHandle(ctx, "vertex_buffer", id), usage: usage}
	vb.upload(vertices)
	return vb, nil
}

func (vb *VertexBuffer) alive() error {
	if vb == nil {
		return ErrDestroyed
	}
	return vb.handle.alive()
}

func (vb *VertexBuffer) upload(vertices []float32) {
	vb.size = len(vertices) * 4
	vb.ctx.b.BindBuffer(ArrayBuffer, vb.id)
	vb.ctx.b.BufferData(ArrayBuffer, vb.size, vertices, vb.usage)
}

// Update replaces the buffer contents.
func (vb *VertexBuffer) Update(vertices []float32) error {
	if err := vb.alive(); err != nil {
		return err
	}
	if len(vertices) == 0 {
		return ErrEmptyData
	}
	vb.upload(vertices)
	return nil
}

// Size is the byte size of the last upload.
func (vb *VertexBuffer) Size() int { return vb.size }

func (vb *VertexBuffer) Bind() error {
	if err := vb.alive(); err != nil {
		return err
	}
	vb.ctx.b.BindBuffer(ArrayBuffer, vb.id)
	return nil
}

func (vb *VertexBuffer) Destroy() error {
	if err := vb.alive(); err != nil {
		return err
	}
	vb.ctx.b.DeleteBuffer(vb.id)
	vb.release()
	return nil
}

// IndexBuffer holds uint32 triangle indices.
type IndexBuffer struct {
	handle
	usage BufferUsage
	count int
}

// NewIndexBuffer creates an element buffer, binds it and uploads indices.
// If a vertex array is bound, the binding is recorded in it.
func NewIndexBuffer(ctx *Context, indices []uint32, usage BufferUsage) (*IndexBuffer, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("index buffer: %w", ErrEmptyData)
	}
	id := ctx.b.CreateBuffer()
	if id == 0 {
		return nil, fmt.Errorf("create index buffer: %w", ErrAllocFailed)
	}
	ib := &IndexBuffer{handle: newHandle(ctx, "index_buffer", id), usage: usage}
	ib.upload(indices)
	return ib, nil
}

func (ib *IndexBuffer) alive() error {
	if ib == nil {
		return ErrDestroyed
	}
	return ib.handle.alive()
}

func (ib *IndexBuffer) upload(indices []uint32) {
	ib.count = len(indices)
	ib.ctx.b.BindBuffer(ElementArrayBuffer, ib.id)
	ib.ctx.b.BufferData(ElementArrayBuffer, len(indices)*4, indices, ib.usage)
}

// Update replaces the indices.
func (ib *IndexBuffer) Update(indices []uint32) error {
	if err := ib.alive(); err != nil {
		return err
	}
	if len(indices) == 0 {
		return ErrEmptyData
	}
	ib.upload(indices)
	return nil
}

// Count is the number of indices in the last upload.
func (ib *IndexBuffer) Count() int { return ib.count }

func (ib *IndexBuffer) Bind() error {
	if err := ib.alive(); err != nil {
		return err
	}
	ib.ctx.b.BindBuffer(ElementArrayBuffer, ib.id)
	return nil
}

func (ib *IndexBuffer) Destroy() error {
	if err := ib.alive(); err != nil {
		return err
	}
	ib.ctx.b.DeleteBuffer(ib.id)
	ib.release()
	return nil
}
