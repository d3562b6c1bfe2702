package loafwire

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Compression names a payload compressor.
type Compression string

const (
	CompressionRaw  Compression = "raw"
	CompressionZstd Compression = "zstd"
)

// DefaultMaxPayload bounds the decoded payload of a frame when
// Options.MaxPayload is zero.
const DefaultMaxPayload = 64 << 20

// Options controls encoding and decoding of frames.
type Options struct {
	// ZeroCopy lets Decode alias the input bytes instead of copying them.
	// The caller must keep the input unchanged while the result is in use.
	ZeroCopy bool `yaml:"zero_copy"`

	// CheckAlignment makes zero-copy decoding fall back to a copy when the
	// payload is not aligned for the element type.
	CheckAlignment bool `yaml:"check_alignment"`

	// Compression used by Encode. Empty means raw.
	Compression Compression `yaml:"compression"`

	// MaxPayload is the largest decoded payload, in bytes, Decode accepts.
	// Zero means DefaultMaxPayload.
	MaxPayload uint64 `yaml:"max_payload"`
}

func (o Options) maxPayload() uint64 {
	if o.MaxPayload == 0 {
		return DefaultMaxPayload
	}
	return o.MaxPayload
}

func (c Compression) flag() (byte, error) {
	switch c {
	case "", CompressionRaw:
		return CompRaw, nil
	case CompressionZstd:
		return CompZstd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, string(c))
	}
}

// ParseOptions reads Options from YAML.
func ParseOptions(data []byte) (Options, error) {
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("loafwire: parse options: %w", err)
	}
	if _, err := o.Compression.flag(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// LoadOptions reads Options from a YAML file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	return ParseOptions(data)
}
