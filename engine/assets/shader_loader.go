package assets

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// LoadShader reads a GLSL source file. The backend adds the null terminator.
func LoadShader(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", path, err)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("load shader %q: not valid UTF-8", path)
	}
	return string(b), nil
}

// LoadShaderPair reads a vertex and fragment source.
func LoadShaderPair(vertexPath, fragmentPath string) (vs, fs string, err error) {
	if vs, err = LoadShader(vertexPath); err != nil {
		return "", "", err
	}
	if fs, err = LoadShader(fragmentPath); err != nil {
		return "", "", err
	}
	return vs, fs, nil
}
