package resource

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadBytes reads the entire resource into memory.
func (p Path) LoadBytes() ([]byte, error) {
	data, err := os.ReadFile(p.OSPath())
	if err != nil {
		return nil, fmt.Errorf("unable to load resource %v: %w", p, err)
	}
	return data, nil
}

// LoadString reads the entire resource as UTF-8 text.
func (p Path) LoadString() (string, error) {
	data, err := p.LoadBytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadJSON decodes a JSON resource into a value of type T.
func LoadJSON[T any](p Path) (T, error) {
	var v T
	data, err := p.LoadBytes()
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("malformed JSON resource %v: %w", p, err)
	}
	return v, nil
}
