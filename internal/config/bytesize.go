package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ByteSize is a size in bytes that accepts human-readable values in YAML.
//
// Plain integers are bytes. Suffixes are binary multiples and are case
// insensitive:
//   - "512"    → 512 bytes
//   - "64KiB"  → 65536 bytes (also "64K", "64KB")
//   - "1MiB"   → 1048576 bytes (also "1M", "1MB")
//   - "1GiB"   → 1073741824 bytes
type ByteSize int64

// Common sizes.
const (
	Byte     ByteSize = 1
	Kibibyte          = 1024 * Byte
	Mebibyte          = 1024 * Kibibyte
	Gibibyte          = 1024 * Mebibyte
)

var byteSizeUnits = []struct {
	suffixes []string
	size     ByteSize
}{
	{[]string{"gib", "gb", "g"}, Gibibyte},
	{[]string{"mib", "mb", "m"}, Mebibyte},
	{[]string{"kib", "kb", "k"}, Kibibyte},
	{[]string{"b"}, Byte},
}

// ParseByteSize parses a size such as "1MiB" or "4096".
func ParseByteSize(s string) (ByteSize, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	if value == "" {
		return 0, nil
	}

	multiplier := Byte
	for _, unit := range byteSizeUnits {
		found := false
		for _, suffix := range unit.suffixes {
			if strings.HasSuffix(value, suffix) {
				value = strings.TrimSpace(strings.TrimSuffix(value, suffix))
				multiplier = unit.size
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("byte size %q must not be negative", s)
	}
	if n > math.MaxInt64/int64(multiplier) {
		return 0, fmt.Errorf("byte size %q overflows int64", s)
	}
	return ByteSize(n) * multiplier, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: byte size must be a scalar", value.Line)
	}
	size, err := ParseByteSize(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*b = size
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (b ByteSize) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

// String formats the size with the largest exact binary unit.
func (b ByteSize) String() string {
	switch {
	case b != 0 && b%Gibibyte == 0:
		return fmt.Sprintf("%dGiB", b/Gibibyte)
	case b != 0 && b%Mebibyte == 0:
		return fmt.Sprintf("%dMiB", b/Mebibyte)
	case b != 0 && b%Kibibyte == 0:
		return fmt.Sprintf("%dKiB", b/Kibibyte)
	default:
		return strconv.FormatInt(int64(b), 10)
	}
}

// Bytes returns the size as an int64.
func (b ByteSize) Bytes() int64 {
	return int64(b)
}
