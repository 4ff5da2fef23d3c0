package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// MarshalGraph serializes a Graph to indented JSON bytes. The encoding is
// deterministic for a given snapshot, so the bytes double as a cache key
// input (see cache.TranscriptKey).
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadGraph decodes a JSON graph snapshot from an io.Reader.
// Use ReadGraphFile for files or pass bytes.NewReader for in-memory data.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
//
// Decoding is deliberately lenient: only malformed JSON is an error.
// Dangling connections, missing pins, and unknown node shapes are legal
// input - the renderer degrades gracefully instead of validating.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraphFile writes a Graph snapshot to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
