// Package swap implements the swap-state reconciliation engine: document
// normalization, the commutative merge algorithm, canonical sorting and
// serialization, lineage reconstruction, and the swap requirement check.
package swap

import (
	"bytes"
	"encoding/json"

	"github.com/edvartis/swapsync/internal/models"
)

// Normalize decodes raw bytes into a valid swap document. It never fails:
// missing, empty, corrupt, or legacy-shaped input yields an empty document.
// Used both for the git-tracked document and for anything read out of the
// local cache.
//
// The legacy shape is a bare top-level array of entries, from before the
// document grew the swapEntries wrapper.
func Normalize(raw []byte) *models.SwapInfo {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return emptyInfo()
	}

	if trimmed[0] == '[' {
		var entries []models.SwapEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return emptyInfo()
		}
		return NormalizeInfo(&models.SwapInfo{SwapEntries: entries})
	}

	var info models.SwapInfo
	if err := json.Unmarshal(trimmed, &info); err != nil {
		return emptyInfo()
	}
	return NormalizeInfo(&info)
}

// NormalizeInfo repairs an already-decoded document: nil documents and nil
// entry slices become empty, entries missing their identity fields are
// dropped, and nil user lists become empty slices so merge and
// serialization see one canonical shape.
func NormalizeInfo(info *models.SwapInfo) *models.SwapInfo {
	if info == nil {
		return emptyInfo()
	}

	entries := make([]models.SwapEntry, 0, len(info.SwapEntries))
	for _, e := range info.SwapEntries {
		if e.SwapUUID == "" {
			// An entry without its merge key cannot participate in
			// reconciliation at all.
			continue
		}
		if e.SwapStatus != models.SwapActive && e.SwapStatus != models.SwapCancelled {
			// Unknown status: a cancellation trace outranks everything,
			// otherwise default to active.
			if e.CancelledBy != "" || e.CancelledAt != 0 {
				e.SwapStatus = models.SwapCancelled
			} else {
				e.SwapStatus = models.SwapActive
			}
		}
		if e.SwappedUsers == nil {
			e.SwappedUsers = []models.SwapUserEntry{}
		}
		entries = append(entries, e)
	}

	return &models.SwapInfo{SwapEntries: entries}
}

func emptyInfo() *models.SwapInfo {
	return &models.SwapInfo{SwapEntries: []models.SwapEntry{}}
}
