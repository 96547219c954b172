package curriculum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Format is an instance file encoding.
type Format string

// Supported instance formats.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for file extensions or format names that are
// not TOML or JSON.
var ErrUnknownFormat = errors.New("unknown instance format")

// ErrMalformed is returned when an instance file cannot be decoded.
var ErrMalformed = errors.New("malformed instance")

// ParseFormat converts a format name ("toml", "json") into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTOML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Load reads, normalises and validates the instance file at path.
func Load(path string) (*Instance, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	inst, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if inst.Name == "" {
		inst.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return inst, nil
}

// Decode reads an instance in the given format, normalises it and validates
// it. Unknown fields are rejected so that typos do not silently drop limits.
func Decode(r io.Reader, format Format) (*Instance, error) {
	var inst Instance
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&inst)
		if err != nil {
			return nil, fmt.Errorf("%w: decode toml: %w", ErrMalformed, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown field %q", ErrMalformed, undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&inst); err != nil {
			return nil, fmt.Errorf("%w: decode json: %w", ErrMalformed, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	inst.Normalize()
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &inst, nil
}

// Encode writes the instance in the given format.
func Encode(w io.Writer, inst *Instance, format Format) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(inst); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(inst); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Marshal returns the canonical JSON form of a normalised copy of inst. Equal
// instances marshal to equal bytes, which makes the output suitable for
// content hashing.
func Marshal(inst *Instance) ([]byte, error) {
	c := inst.Clone()
	c.Normalize()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("marshal instance: %w", err)
	}
	return buf.Bytes(), nil
}

// Hash returns the hex SHA-256 of the canonical form of the instance. Two
// instances that differ only in course or prerequisite order hash equally.
func (in *Instance) Hash() string {
	data, err := Marshal(in)
	if err != nil {
		panic(err) // plain structs always encode
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
