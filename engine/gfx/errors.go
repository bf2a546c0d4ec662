package gfx

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotInitialized      = errors.New("gfx: context not initialized")
	ErrDestroyed           = errors.New("gfx: handle destroyed")
	ErrAllocFailed         = errors.New("gfx: backend object allocation failed")
	ErrUnsupportedChannels = errors.New("gfx: unsupported image channel count")
	ErrEmptyData           = errors.New("gfx: empty data")
	ErrShaderCompile       = errors.New("gfx: shader compilation failed")
	ErrProgramLink         = errors.New("gfx: program link failed")
	ErrBadTextureSlot      = errors.New("gfx: texture slot out of range")
)

// ShaderError carries the driver log for a failed compile or link.
// Link failures have Linking set and no meaningful Stage.
type ShaderError struct {
	Stage   ShaderStage
	Linking bool
	Log     string
}

func (e *ShaderError) Error() string {
	log := strings.TrimRight(e.Log, "\x00 \n")
	if e.Linking {
		return fmt.Sprintf("gfx: program link failed: %s", log)
	}
	return fmt.Sprintf("gfx: %s shader compilation failed: %s", e.Stage, log)
}

func (e *ShaderError) Unwrap() error {
	if e.Linking {
		return ErrProgramLink
	}
	return ErrShaderCompile
}
