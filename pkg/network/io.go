package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Marshal converts a Network to indented JSON bytes.
func Marshal(n *Network) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(n, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes JSON bytes to a Network.
func Unmarshal(data []byte) (*Network, error) {
	var n Network
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &n, nil
}

// Write encodes a Network as indented JSON to w.
func Write(n *Network, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON network from r.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (*Network, error) {
	var n Network
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &n, nil
}

// ReadFile reads a JSON file and returns the decoded Network.
func ReadFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes a Network to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(n *Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(n, f)
}
