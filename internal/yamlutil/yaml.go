// Package yamlutil wraps YAML parsing so the rest of simtex never imports the
// YAML library directly.
package yamlutil

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring keys v does not declare.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v with two-space indentation, the layout used by the
// shipped simtex.yaml.
func Marshal(v any) ([]byte, error) {
	result, err := yaml.MarshalWithOptions(v, yaml.Indent(2))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// ReadFileStrict reads path and strictly decodes it into v.
// os errors are returned unwrapped by yamlutil so callers can test them
// with errors.Is(err, fs.ErrNotExist).
func ReadFileStrict(path string, v any) error {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-provided config path
	if err != nil {
		return err
	}
	return UnmarshalStrict(data, v)
}

// MergeMissing adds to user every key of defaults that user lacks, at any
// depth, and returns the result re-encoded. Keys present in user keep their
// value unless it is null or an empty string. The dotted paths of the filled
// keys are returned in document order. Key order of user is preserved;
// comments are not.
func MergeMissing(user, defaults []byte) ([]byte, []string, error) {
	var dst, src yaml.MapSlice
	if err := decodeOrdered(user, &dst); err != nil {
		return nil, nil, err
	}
	if err := decodeOrdered(defaults, &src); err != nil {
		return nil, nil, err
	}

	var added []string
	merged := mergeMapSlice(dst, src, "", &added)
	if len(added) == 0 {
		return user, nil, nil
	}

	out, err := Marshal(merged)
	if err != nil {
		return nil, nil, err
	}
	return out, added, nil
}

func decodeOrdered(data []byte, v *yaml.MapSlice) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.UseOrderedMap()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func mergeMapSlice(dst, src yaml.MapSlice, prefix string, added *[]string) yaml.MapSlice {
	for _, item := range src {
		key := fmt.Sprint(item.Key)
		i := indexOf(dst, key)
		switch {
		case i < 0:
			dst = append(dst, item)
			*added = append(*added, prefix+key)
		case isEmpty(dst[i].Value):
			if !isEmpty(item.Value) {
				dst[i].Value = item.Value
				*added = append(*added, prefix+key)
			}
		default:
			dm, dok := dst[i].Value.(yaml.MapSlice)
			sm, sok := item.Value.(yaml.MapSlice)
			if dok && sok {
				dst[i].Value = mergeMapSlice(dm, sm, prefix+key+".", added)
			}
		}
	}
	return dst
}

func indexOf(m yaml.MapSlice, key string) int {
	for i, item := range m {
		if fmt.Sprint(item.Key) == key {
			return i
		}
	}
	return -1
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	default:
		return false
	}
}
