package swap

import (
	"github.com/charmbracelet/log"

	"github.com/edvartis/swapsync/internal/models"
)

// ActiveSwapEntry returns the live, non-cancelled migration for this
// document, or nil if none exists. At most one active entry is expected per
// repository; more than one is a data anomaly, resolved by picking the
// largest swapInitiatedAt (tiebreak: larger swapUUID) and logging a warning.
func ActiveSwapEntry(info *models.SwapInfo) *models.SwapEntry {
	info = NormalizeInfo(info)

	var active *models.SwapEntry
	count := 0
	for i := range info.SwapEntries {
		e := &info.SwapEntries[i]
		if e.SwapStatus != models.SwapActive {
			continue
		}
		count++
		if active == nil || newerInitiation(e, active) {
			active = e
		}
	}

	if count > 1 {
		log.Warn("multiple active swap entries in one document",
			"count", count, "picked", active.SwapUUID)
	}
	if active == nil {
		return nil
	}
	picked := *active
	return &picked
}

func newerInitiation(a, b *models.SwapEntry) bool {
	if a.SwapInitiatedAt != b.SwapInitiatedAt {
		return a.SwapInitiatedAt > b.SwapInitiatedAt
	}
	return a.SwapUUID > b.SwapUUID
}

// FindSwapEntryByUUID looks up one entry directly. Used to re-validate that
// the entry a user was prompted about still exists, unchanged, at execution
// time.
func FindSwapEntryByUUID(info *models.SwapInfo, uuid string) *models.SwapEntry {
	if info == nil {
		return nil
	}
	for i := range info.SwapEntries {
		if info.SwapEntries[i].SwapUUID == uuid {
			e := info.SwapEntries[i]
			return &e
		}
	}
	return nil
}

// HasActiveOldProjectSwap reports whether this client must act: an active
// entry exists AND the local repository is its source. Entries where the
// local repository is the destination are visible for display but never
// trigger a required action.
func HasActiveOldProjectSwap(info *models.SwapInfo) bool {
	if info == nil {
		return false
	}
	for i := range info.SwapEntries {
		e := &info.SwapEntries[i]
		if e.SwapStatus == models.SwapActive && e.IsOldProject {
			return true
		}
	}
	return false
}
