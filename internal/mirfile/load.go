package mirfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mirvm/internal/mir"
)

// Extensions recognized by Load.
const (
	ExtTOML   = ".toml"
	ExtBinary = ".mirb"
)

// Load reads a module, picking the decoder from the file extension.
func Load(path string) (mod *mir.Module, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtTOML:
		mod, err = DecodeTOML(f)
	case ExtBinary:
		mod, err = DecodeBinary(f)
	default:
		return nil, fmt.Errorf("%s: unknown module format (want %s or %s)", path, ExtTOML, ExtBinary)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mod, nil
}

// WriteBinary atomically writes the msgpack form of m to path.
func WriteBinary(path string, m *mir.Module) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*.mirb")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(f.Name()))
		}
	}()

	if err := EncodeBinary(f, m); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// OutputPath derives the compiled module path for a TOML source.
func OutputPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ExtBinary
}
