// Package filestore keeps learned payee mappings in a JSON file of the form
// {"payee": {"category_id": ..., "category_name": ..., "count": ...}}.
// Key order in the file is the mapping insertion order.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
)

// MappingRepository implements categorizer.Repository on a JSON file.
type MappingRepository struct {
	path string
}

var _ categorizer.Repository = (*MappingRepository)(nil)

func NewMappingRepository(path string) *MappingRepository {
	return &MappingRepository{path: path}
}

// Load returns nothing for a missing file and an error for a corrupt one.
func (r *MappingRepository) Load(ctx context.Context) ([]categorizer.Mapping, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read mappings file: %w", err)
	}
	return decodeOrdered(data)
}

// Save writes to a temporary file in the same directory and renames it over
// the old file, so readers never see a partial write.
func (r *MappingRepository) Save(ctx context.Context, mappings []categorizer.Mapping) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("create mappings directory: %w", err)
	}

	data, err := encodeOrdered(mappings)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write mappings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace mappings file: %w", err)
	}
	return nil
}

func encodeOrdered(mappings []categorizer.Mapping) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, m := range mappings {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(m.Payee)
		if err != nil {
			return nil, fmt.Errorf("encode payee key: %w", err)
		}
		value, err := json.MarshalIndent(m, "  ", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode mapping %q: %w", m.Payee, err)
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	if len(mappings) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func decodeOrdered(data []byte) ([]categorizer.Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode mappings: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode mappings: expected object")
	}

	var out []categorizer.Mapping
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode mapping key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decode mapping key: unexpected %v", tok)
		}
		var m categorizer.Mapping
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode mapping %q: %w", key, err)
		}
		m.Payee = key
		out = append(out, m)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode mappings: %w", err)
	}
	return out, nil
}
