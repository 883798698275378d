package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edvartis/swapsync/internal/models"
	"github.com/edvartis/swapsync/internal/swap"
)

// swapKey is the section of the metadata document owned by this tool.
const swapKey = "projectSwap"

// FileStore reads and writes the projectSwap section of a JSON metadata
// file, preserving all sibling keys.
type FileStore struct {
	path string
}

// NewFileStore returns a store over the metadata file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read implements Store. Data-shape problems never error: a corrupt or
// legacy-shaped swap section normalizes to an empty document. Only I/O
// failures propagate.
func (s *FileStore) Read(_ context.Context) (*models.SwapInfo, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		// Metadata document entirely missing: swap state unknown.
		return swap.Normalize(nil), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read metadata document: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		// The document exists but is unreadable as a whole; treat the swap
		// section as explicitly empty rather than failing the check.
		return swap.Normalize(nil), true, nil
	}

	// Absence of the swap section on a present document is an explicit
	// empty, distinct from the document being missing.
	return swap.Normalize(doc[swapKey]), true, nil
}

// Write implements Store. The swap section is serialized canonically before
// embedding, so writing a semantically unchanged document is byte-stable in
// git. The file is written via a temp file + rename so a crash never leaves
// a half-written metadata document.
func (s *FileStore) Write(_ context.Context, info *models.SwapInfo) error {
	doc := make(map[string]json.RawMessage)
	if data, err := os.ReadFile(s.path); err == nil {
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse metadata document before write: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read metadata document: %w", err)
	}

	section, err := swap.Serialize(info)
	if err != nil {
		return err
	}
	doc[swapKey] = section

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata document: %w", err)
	}
	out = append(out, '\n')

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create metadata directory: %w", err)
	}
	if err := os.WriteFile(tmp, out, 0644); err != nil {
		return fmt.Errorf("write metadata document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace metadata document: %w", err)
	}
	return nil
}
