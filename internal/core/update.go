package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/edvartis/swapsync/internal/docstore"
	"github.com/edvartis/swapsync/internal/models"
	"github.com/edvartis/swapsync/internal/swap"
)

// InitiateOptions describes a new migration.
type InitiateOptions struct {
	OldProjectURL  string
	OldProjectName string
	NewProjectURL  string
	NewProjectName string

	InitiatedBy string
	Reason      string
	Timestamp   int64

	// FromOldProject is true when this document is written from the source
	// repository's perspective. The same entry carries isOldProject=false in
	// the destination's own document.
	FromOldProject bool
}

// InitiateSwap creates a new active swap entry, reconciles lineage flags for
// the local perspective, and writes the merged document back. Returns the
// created entry.
func InitiateSwap(ctx context.Context, store docstore.Store, opts InitiateOptions) (*models.SwapEntry, error) {
	current, _, err := store.Read(ctx)
	if err != nil {
		return nil, err
	}

	entry := models.SwapEntry{
		SwapUUID:        uuid.NewString(),
		SwapStatus:      models.SwapActive,
		IsOldProject:    opts.FromOldProject,
		OldProjectURL:   opts.OldProjectURL,
		OldProjectName:  opts.OldProjectName,
		NewProjectURL:   opts.NewProjectURL,
		NewProjectName:  opts.NewProjectName,
		SwapInitiatedAt: opts.Timestamp,
		SwapInitiatedBy: opts.InitiatedBy,
		SwapReason:      opts.Reason,
		SwapModifiedAt:  opts.Timestamp,
		SwappedUsers:    []models.SwapUserEntry{},
	}

	merged := swap.MergeInfo(current, &models.SwapInfo{SwapEntries: []models.SwapEntry{entry}})

	// A new outbound swap makes every older entry historical. From the
	// destination's perspective the inherited history is re-tagged against
	// the destination repository instead.
	currentURL, currentName := opts.OldProjectURL, opts.OldProjectName
	if !opts.FromOldProject {
		currentURL, currentName = opts.NewProjectURL, opts.NewProjectName
	}
	merged.SwapEntries = swap.SortSwapEntries(
		swap.ReconcileLineageFlags(merged.SwapEntries, currentURL, currentName))

	if err := store.Write(ctx, merged); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CancelSwap marks an entry cancelled. The cancellation is sticky: no later
// write, however recent, reactivates the entry. Bumps swapModifiedAt since
// this is a status change.
func CancelSwap(ctx context.Context, store docstore.Store, swapUUID, cancelledBy string, timestamp int64) (*models.SwapEntry, error) {
	current, _, err := store.Read(ctx)
	if err != nil {
		return nil, err
	}

	target := swap.FindSwapEntryByUUID(current, swapUUID)
	if target == nil {
		return nil, fmt.Errorf("swap %s not found", swapUUID)
	}

	cancelled := *target
	cancelled.SwapStatus = models.SwapCancelled
	cancelled.CancelledBy = cancelledBy
	cancelled.CancelledAt = timestamp
	cancelled.SwapModifiedAt = timestamp

	merged := swap.MergeInfo(current, &models.SwapInfo{SwapEntries: []models.SwapEntry{cancelled}})
	if err := store.Write(ctx, merged); err != nil {
		return nil, err
	}
	return swap.FindSwapEntryByUUID(merged, swapUUID), nil
}

// CompleteUserSwap records that user finished migrating under the given
// entry. Only swappedUsersModifiedAt advances — completing a user's swap
// never touches swapModifiedAt, so it can never outrank a concurrent
// cancellation in the entry merge.
//
// A record for (user, createdAt) that already exists is refined in place;
// re-swapping after a reset uses a fresh createdAt and yields a second
// record.
func CompleteUserSwap(ctx context.Context, store docstore.Store, swapUUID, user string, createdAt, timestamp int64) (*models.SwapEntry, error) {
	current, _, err := store.Read(ctx)
	if err != nil {
		return nil, err
	}

	target := swap.FindSwapEntryByUUID(current, swapUUID)
	if target == nil {
		return nil, fmt.Errorf("swap %s not found", swapUUID)
	}

	record := models.SwapUserEntry{
		UserToSwap:      user,
		CreatedAt:       createdAt,
		UpdatedAt:       timestamp,
		Executed:        true,
		SwapCompletedAt: timestamp,
	}

	updated := *target
	updated.SwappedUsers = swap.MergeSwappedUsers(target.SwappedUsers, []models.SwapUserEntry{record})
	updated.SwappedUsersModifiedAt = timestamp

	merged := swap.MergeInfo(current, &models.SwapInfo{SwapEntries: []models.SwapEntry{updated}})
	if err := store.Write(ctx, merged); err != nil {
		return nil, err
	}
	return swap.FindSwapEntryByUUID(merged, swapUUID), nil
}
