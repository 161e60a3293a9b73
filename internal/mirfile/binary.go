package mirfile

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"mirvm/internal/mir"
)

// Current schema version - increment when the encoded mir types change.
const binarySchemaVersion uint16 = 1

const binaryMagic = "MIRB"

type binaryPayload struct {
	Magic  string      `msgpack:"magic"`
	Schema uint16      `msgpack:"schema"`
	Module *mir.Module `msgpack:"module"`
}

// EncodeBinary writes the msgpack form of m.
func EncodeBinary(w io.Writer, m *mir.Module) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&binaryPayload{
		Magic:  binaryMagic,
		Schema: binarySchemaVersion,
		Module: m,
	})
}

// DecodeBinary reads a module written by EncodeBinary.
func DecodeBinary(r io.Reader) (*mir.Module, error) {
	var payload binaryPayload
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode module: %w", err)
	}
	if payload.Magic != binaryMagic {
		return nil, fmt.Errorf("not a compiled module (magic %q)", payload.Magic)
	}
	if payload.Schema != binarySchemaVersion {
		return nil, fmt.Errorf("unsupported module schema %d (want %d)", payload.Schema, binarySchemaVersion)
	}
	if payload.Module == nil {
		return nil, fmt.Errorf("compiled module is empty")
	}
	m := payload.Module
	if m.Funcs == nil {
		m.Funcs = make(map[mir.FuncID]*mir.Func)
	}
	if m.ByName == nil {
		m.ByName = make(map[string]mir.FuncID)
	}
	return m, nil
}
