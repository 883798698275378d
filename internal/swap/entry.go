package swap

import (
	"github.com/charmbracelet/log"

	"github.com/edvartis/swapsync/internal/models"
)

// MergeEntry merges two versions of the same swap entry (a.SwapUUID must
// equal b.SwapUUID). It is the single source of truth for the dominance
// rules; callers must never re-derive timestamp comparisons themselves.
//
// Rules, in order:
//  1. swappedUsers merge by composite key; swappedUsersModifiedAt takes the
//     max of both sides.
//  2. The side with the larger swapModifiedAt supplies all non-user fields.
//  3. A cancellation on either side is sticky: the result is cancelled no
//     matter which side was structurally newer. An administrator's
//     cancellation must not be undone by a client that completed its step
//     later but had not yet observed it. If both sides are cancelled, the
//     larger cancelledAt supplies the cancellation provenance.
//
// MergeEntry is commutative and associative (up to the documented
// equal-timestamp tiebreaks), so clients pulling divergent copies in any
// order converge on identical documents.
func MergeEntry(a, b models.SwapEntry) models.SwapEntry {
	users := MergeSwappedUsers(a.SwappedUsers, b.SwappedUsers)
	usersModifiedAt := max(a.SwappedUsersModifiedAt, b.SwappedUsersModifiedAt)

	base := a
	if b.SwapModifiedAt > a.SwapModifiedAt {
		base = b
	}

	if a.SwapStatus == models.SwapCancelled || b.SwapStatus == models.SwapCancelled {
		cancelled := pickCancellation(a, b)
		base.SwapStatus = models.SwapCancelled
		base.CancelledBy = cancelled.CancelledBy
		base.CancelledAt = cancelled.CancelledAt
	}

	base.SwappedUsers = users
	base.SwappedUsersModifiedAt = usersModifiedAt
	return base
}

// pickCancellation selects which side's cancellation provenance survives.
// Exactly one cancelled side: that side. Both cancelled: the larger
// cancelledAt, tiebroken toward the lexicographically larger cancelledBy so
// the choice is order-independent.
func pickCancellation(a, b models.SwapEntry) models.SwapEntry {
	aCancelled := a.SwapStatus == models.SwapCancelled
	bCancelled := b.SwapStatus == models.SwapCancelled

	switch {
	case aCancelled && !bCancelled:
		return a
	case bCancelled && !aCancelled:
		return b
	case a.CancelledAt != b.CancelledAt:
		if a.CancelledAt > b.CancelledAt {
			return a
		}
		return b
	default:
		if a.CancelledBy > b.CancelledBy {
			return a
		}
		return b
	}
}

// MergeInfo merges two whole documents: entries are grouped by swapUUID,
// colliding entries go through MergeEntry, and the result is canonically
// sorted. Both inputs are normalized first, so either may be nil.
func MergeInfo(a, b *models.SwapInfo) *models.SwapInfo {
	a = NormalizeInfo(a)
	b = NormalizeInfo(b)

	byUUID := dedupeDocument(a)
	for uuid, e := range dedupeDocument(b) {
		if existing, ok := byUUID[uuid]; ok {
			byUUID[uuid] = MergeEntry(existing, e)
		} else {
			byUUID[uuid] = e
		}
	}

	merged := make([]models.SwapEntry, 0, len(byUUID))
	for _, e := range byUUID {
		merged = append(merged, e)
	}
	return &models.SwapInfo{SwapEntries: SortSwapEntries(merged)}
}

// dedupeDocument indexes one document's entries by UUID. Duplicate UUIDs
// inside a single document violate the uniqueness invariant; they are a data
// anomaly, absorbed by the same merge rules rather than treated as fatal.
func dedupeDocument(info *models.SwapInfo) map[string]models.SwapEntry {
	byUUID := make(map[string]models.SwapEntry, len(info.SwapEntries))
	for _, e := range info.SwapEntries {
		if existing, ok := byUUID[e.SwapUUID]; ok {
			log.Warn("duplicate swap entry within one document", "swapUUID", e.SwapUUID)
			e = MergeEntry(existing, e)
		}
		byUUID[e.SwapUUID] = e
	}
	return byUUID
}
