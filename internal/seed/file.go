package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a Dataset from a YAML file.
func LoadFile(path string) (*Dataset, error) {
	if path == "" {
		return nil, fmt.Errorf("seed file path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseYAML(raw)
}

// ParseYAML decodes a Dataset. Unknown fields are rejected.
func ParseYAML(raw []byte) (*Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("seed yaml is empty")
		}
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}
	return &ds, nil
}

// WriteYAML encodes d in the format ParseYAML reads.
func (d *Dataset) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode seed yaml: %w", err)
	}
	return enc.Close()
}
