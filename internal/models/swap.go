// Package models defines the core data structures used throughout swapsync:
// swap entries, per-user completion records, and the swap document.
package models

// SwapStatus is the lifecycle state of a swap entry.
type SwapStatus string

const (
	// SwapActive means the migration is in progress and clients on the old
	// project must act.
	SwapActive SwapStatus = "active"
	// SwapCancelled means an administrator aborted the migration. Once any
	// replica records this status it dominates every future merge.
	SwapCancelled SwapStatus = "cancelled"
)

// SwapUserEntry is one user's completion record for one swap.
//
// Identity is the composite key (UserToSwap, CreatedAt): the same user
// re-swapping after a reset produces a second record, never an update of
// the first.
type SwapUserEntry struct {
	UserToSwap      string `json:"userToSwap"`
	CreatedAt       int64  `json:"createdAt"`
	UpdatedAt       int64  `json:"updatedAt"`
	Executed        bool   `json:"executed"`
	SwapCompletedAt int64  `json:"swapCompletedAt,omitempty"`
}

// Key returns the composite identity of the record.
func (u SwapUserEntry) Key() UserKey {
	return UserKey{UserToSwap: u.UserToSwap, CreatedAt: u.CreatedAt}
}

// UserKey uniquely identifies a completion record within one entry.
type UserKey struct {
	UserToSwap string
	CreatedAt  int64
}

// SwapEntry is one migration event between two hosted repositories.
//
// Field declaration order is the canonical JSON field order: the document is
// stored in a git-tracked text file, and re-serializing an unchanged entry
// must produce identical bytes. Do not reorder fields.
type SwapEntry struct {
	SwapUUID     string     `json:"swapUUID"`
	SwapStatus   SwapStatus `json:"swapStatus"`
	IsOldProject bool       `json:"isOldProject"`

	OldProjectURL  string `json:"oldProjectUrl"`
	OldProjectName string `json:"oldProjectName"`
	NewProjectURL  string `json:"newProjectUrl"`
	NewProjectName string `json:"newProjectName"`

	SwapInitiatedAt int64  `json:"swapInitiatedAt"`
	SwapInitiatedBy string `json:"swapInitiatedBy"`
	SwapReason      string `json:"swapReason,omitempty"`

	// SwapModifiedAt tracks changes to status/identity fields only.
	// SwappedUsersModifiedAt tracks the user list independently: completing
	// a user's swap never advances SwapModifiedAt.
	SwapModifiedAt         int64 `json:"swapModifiedAt"`
	SwappedUsersModifiedAt int64 `json:"swappedUsersModifiedAt"`

	SwappedUsers []SwapUserEntry `json:"swappedUsers"`

	CancelledBy string `json:"cancelledBy,omitempty"`
	CancelledAt int64  `json:"cancelledAt,omitempty"`
}

// Cancelled reports whether the entry is cancelled, and if so by whom and
// when. Callers should never read CancelledBy/CancelledAt directly without
// checking status.
func (e *SwapEntry) Cancelled() (by string, at int64, ok bool) {
	if e.SwapStatus != SwapCancelled {
		return "", 0, false
	}
	return e.CancelledBy, e.CancelledAt, true
}

// ShortUUID returns a shortened swap UUID for display (first 8 characters).
func (e *SwapEntry) ShortUUID() string {
	if len(e.SwapUUID) > 8 {
		return e.SwapUUID[:8]
	}
	return e.SwapUUID
}

// SwapInfo is the swap document: the `projectSwap` section of the
// git-synchronized project metadata file. SwapUUID values are unique within
// one document after merge.
type SwapInfo struct {
	SwapEntries []SwapEntry `json:"swapEntries"`
}

// DeprecatedProject identifies a repository superseded by a later swap.
// Name matters independently of URL: a remote-only, not-yet-cloned
// repository has no locally discoverable URL, so deprecation matching may
// need to occur by name alone.
type DeprecatedProject struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}
