package gfx

import (
	"fmt"
	"log/slog"

	"github.com/hubastard/gl2d/engine/assets"
	"github.com/hubastard/gl2d/engine/vmath"
)

// MaxTextureSlots is the number of texture units a Texture may be bound to.
const MaxTextureSlots = 16

// TextureOptions configures sampling. The zero value repeats in both
// directions, filters linearly and generates mipmaps on unit 0.
type TextureOptions struct {
	Sampler   SamplerParams
	NoMipmaps bool
	Slot      uint32
}

// Texture is a 2D texture plus the unit it binds to.
type Texture struct {
	handle
	size   vmath.Vec2
	slot   uint32
	format PixelFormat
}

// NewTexture uploads img. Only 3 (RGB) and 4 (RGBA) channel images are
// accepted; anything else fails with ErrUnsupportedChannels before any
// backend object is created.
func NewTexture(ctx *Context, img assets.Image, opts TextureOptions) (*Texture, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var format PixelFormat
	switch img.Channels {
	case 3:
		format = FormatRGB8
	case 4:
		format = FormatRGBA8
	default:
		ctx.log.Error("texture upload rejected", slog.Int("channels", img.Channels))
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, img.Channels)
	}
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) < img.Width*img.Height*img.Channels {
		return nil, fmt.Errorf("texture %dx%d with %d bytes: %w", img.Width, img.Height, len(img.Pix), ErrEmptyData)
	}
	if opts.Slot >= MaxTextureSlots {
		return nil, fmt.Errorf("%w: %d", ErrBadTextureSlot, opts.Slot)
	}

	b := ctx.b
	id := b.CreateTexture()
	if id == 0 {
		ctx.log.Error("texture allocation failed")
		return nil, fmt.Errorf("create texture: %w", ErrAllocFailed)
	}
	b.BindTexture(opts.Slot, id)
	b.TexParameters(resolveSampler(opts))
	b.TexImage2D(int32(img.Width), int32(img.Height), format, img.Pix)
	if !opts.NoMipmaps {
		b.GenerateMipmap()
	}

	return &Texture{
		handle: newHandle(ctx, "texture", id),
		size:   vmath.V2(float32(img.Width), float32(img.Height)),
		slot:   opts.Slot,
		format: format,
	}, nil
}

// NewTextureFromFile decodes the image at path (flipped vertically) and
// uploads it.
func NewTextureFromFile(ctx *Context, path string, opts TextureOptions) (*Texture, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	img, err := assets.LoadImage(path)
	if err != nil {
		ctx.log.Error("texture load failed", slog.String("path", path), slog.Any("err", err))
		return nil, err
	}
	t, err := NewTexture(ctx, img, opts)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", path, err)
	}
	return t, nil
}

func resolveSampler(opts TextureOptions) SamplerParams {
	p := opts.Sampler
	if p.Min == FilterDefault {
		if opts.NoMipmaps {
			p.Min = FilterLinear
		} else {
			p.Min = FilterLinearMipmapLinear
		}
	}
	if p.Mag == FilterDefault {
		p.Mag = FilterLinear
	}
	return p
}

func (t *Texture) alive() error {
	if t == nil {
		return ErrDestroyed
	}
	return t.handle.alive()
}

// Size is the pixel size the texture was uploaded with.
func (t *Texture) Size() vmath.Vec2 { return t.size }

func (t *Texture) Format() PixelFormat { return t.format }

func (t *Texture) Slot() uint32 { return t.slot }

// SetSlot changes the unit used by Bind.
func (t *Texture) SetSlot(slot uint32) error {
	if slot >= MaxTextureSlots {
		return fmt.Errorf("%w: %d", ErrBadTextureSlot, slot)
	}
	t.slot = slot
	return nil
}

// Bind activates the texture's unit and binds it there.
func (t *Texture) Bind() error {
	if err := t.alive(); err != nil {
		return err
	}
	t.ctx.b.BindTexture(t.slot, t.id)
	return nil
}

// BindTo binds the texture on an explicit unit without changing its slot.
func (t *Texture) BindTo(unit uint32) error {
	if err := t.alive(); err != nil {
		return err
	}
	if unit >= MaxTextureSlots {
		return fmt.Errorf("%w: %d", ErrBadTextureSlot, unit)
	}
	t.ctx.b.BindTexture(unit, t.id)
	return nil
}

func (t *Texture) Destroy() error {
	if err := t.alive(); err != nil {
		return err
	}
	t.ctx.b.DeleteTexture(t.id)
	t.release()
	return nil
}
