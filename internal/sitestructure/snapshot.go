package sitestructure

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrSnapshotNotFound is returned when a snapshot file does not exist.
var ErrSnapshotNotFound = errors.New("site structure snapshot not found")

// Marshal encodes s as indented JSON.
func (s *Structure) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Read loads a snapshot written by a previous build.
func Read(path string) (*Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, path)
		}
		return nil, err
	}
	return Unmarshal(data)
}

// Unmarshal decodes a snapshot.
func Unmarshal(data []byte) (*Structure, error) {
	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode site structure: %w", err)
	}
	return s, nil
}
