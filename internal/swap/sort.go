package swap

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/edvartis/swapsync/internal/models"
)

// SortSwapEntries returns the entries in canonical order: active entries
// before cancelled ones, then lexicographically by swapUUID. Timestamps are
// deliberately not part of the ordering — clock skew regenerates them and
// would churn the git-tracked file without any semantic change.
//
// The sort is idempotent: sorting an already-sorted list is a no-op, so
// independent writers holding semantically equal documents serialize to
// identical bytes and never produce spurious git conflicts.
func SortSwapEntries(entries []models.SwapEntry) []models.SwapEntry {
	sorted := make([]models.SwapEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		iActive := sorted[i].SwapStatus == models.SwapActive
		jActive := sorted[j].SwapStatus == models.SwapActive
		if iActive != jActive {
			return iActive
		}
		return sorted[i].SwapUUID < sorted[j].SwapUUID
	})
	return sorted
}

// Serialize produces the canonical byte form of a document: normalized,
// sorted, and marshalled with a fixed field layout (struct declaration
// order) and fixed indentation. Semantically equal documents serialize to
// identical bytes.
func Serialize(info *models.SwapInfo) ([]byte, error) {
	canonical := &models.SwapInfo{
		SwapEntries: SortSwapEntries(NormalizeInfo(info).SwapEntries),
	}
	data, err := json.MarshalIndent(canonical, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize swap document: %w", err)
	}
	return data, nil
}
