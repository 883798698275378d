package swap

import (
	"sort"

	"github.com/edvartis/swapsync/internal/models"
)

// MergeSwappedUsers merges two per-user completion lists by composite key
// (userToSwap, createdAt). Where a key appears on both sides the record with
// the larger updatedAt wins; on a tie b wins. Records present on only one
// side are kept unchanged — an empty opposite side never drops anything.
//
// Two records for the same user with different createdAt are distinct events
// (a user re-swapping after reset) and both survive.
//
// Output is sorted by (userToSwap, createdAt) ascending so repeated merges of
// equal inputs are byte-stable.
func MergeSwappedUsers(a, b []models.SwapUserEntry) []models.SwapUserEntry {
	merged := make(map[models.UserKey]models.SwapUserEntry, len(a)+len(b))

	for _, u := range a {
		merged[u.Key()] = u
	}
	for _, u := range b {
		existing, ok := merged[u.Key()]
		if !ok || u.UpdatedAt >= existing.UpdatedAt {
			merged[u.Key()] = u
		}
	}

	out := make([]models.SwapUserEntry, 0, len(merged))
	for _, u := range merged {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserToSwap != out[j].UserToSwap {
			return out[i].UserToSwap < out[j].UserToSwap
		}
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}
