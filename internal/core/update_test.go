package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvartis/swapsync/internal/models"
	"github.com/edvartis/swapsync/internal/swap"
)

func TestInitiateSwap_CreatesActiveEntry(t *testing.T) {
	store := &memStore{exists: true, info: &models.SwapInfo{}}

	entry, err := InitiateSwap(context.Background(), store, InitiateOptions{
		OldProjectURL:  "https://git.example.com/old",
		OldProjectName: "old",
		NewProjectURL:  "https://git.example.com/new",
		NewProjectName: "new",
		InitiatedBy:    "alice",
		Reason:         "hosting migration",
		Timestamp:      1000,
		FromOldProject: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.SwapUUID)
	assert.Equal(t, models.SwapActive, entry.SwapStatus)
	assert.True(t, entry.IsOldProject)
	assert.Equal(t, "alice", entry.SwapInitiatedBy)
	assert.Equal(t, int64(1000), entry.SwapModifiedAt)
	assert.NotNil(t, entry.SwappedUsers)

	require.Equal(t, 1, store.writes)
	written := swap.FindSwapEntryByUUID(store.info, entry.SwapUUID)
	require.NotNil(t, written)
	assert.Equal(t, "hosting migration", written.SwapReason)
}

func TestInitiateSwap_LineageFromSourcePerspective(t *testing.T) {
	// The project already migrated A -> B; B now initiates B -> C. In B's own
	// document the inherited A -> B entry still names B as its destination and
	// stays inbound, while the fresh B -> C entry is outbound.
	previous := models.SwapEntry{
		SwapUUID:        "prev",
		SwapStatus:      models.SwapActive,
		IsOldProject:    false,
		OldProjectURL:   "https://git.example.com/a",
		OldProjectName:  "a",
		NewProjectURL:   "https://git.example.com/b",
		NewProjectName:  "b",
		SwapInitiatedAt: 100,
		SwappedUsers:    []models.SwapUserEntry{},
	}
	store := &memStore{
		exists: true,
		info:   &models.SwapInfo{SwapEntries: []models.SwapEntry{previous}},
	}

	entry, err := InitiateSwap(context.Background(), store, InitiateOptions{
		OldProjectURL:  "https://git.example.com/b",
		OldProjectName: "b",
		NewProjectURL:  "https://git.example.com/c",
		NewProjectName: "c",
		Timestamp:      2000,
		FromOldProject: true,
	})
	require.NoError(t, err)

	old := swap.FindSwapEntryByUUID(store.info, "prev")
	require.NotNil(t, old)
	assert.False(t, old.IsOldProject, "inbound entry still targets this repository")

	fresh := swap.FindSwapEntryByUUID(store.info, entry.SwapUUID)
	require.NotNil(t, fresh)
	assert.True(t, fresh.IsOldProject)
}

func TestInitiateSwap_RetagsInheritedHistoryAtDestination(t *testing.T) {
	// C inherits A -> B history when the B -> C swap is written from C's
	// perspective. Only the entry naming C as destination stays inbound; the
	// inherited A -> B entry becomes historical.
	previous := models.SwapEntry{
		SwapUUID:        "prev",
		SwapStatus:      models.SwapActive,
		IsOldProject:    false,
		OldProjectURL:   "https://git.example.com/a",
		OldProjectName:  "a",
		NewProjectURL:   "https://git.example.com/b",
		NewProjectName:  "b",
		SwapInitiatedAt: 100,
		SwappedUsers:    []models.SwapUserEntry{},
	}
	store := &memStore{
		exists: true,
		info:   &models.SwapInfo{SwapEntries: []models.SwapEntry{previous}},
	}

	entry, err := InitiateSwap(context.Background(), store, InitiateOptions{
		OldProjectURL:  "https://git.example.com/b",
		OldProjectName: "b",
		NewProjectURL:  "https://git.example.com/c",
		NewProjectName: "c",
		Timestamp:      2000,
		FromOldProject: false,
	})
	require.NoError(t, err)

	old := swap.FindSwapEntryByUUID(store.info, "prev")
	require.NotNil(t, old)
	assert.True(t, old.IsOldProject, "inherited entry is historical here")

	fresh := swap.FindSwapEntryByUUID(store.info, entry.SwapUUID)
	require.NotNil(t, fresh)
	assert.False(t, fresh.IsOldProject)
}

func TestInitiateSwap_DestinationPerspective(t *testing.T) {
	store := &memStore{exists: true, info: &models.SwapInfo{}}

	entry, err := InitiateSwap(context.Background(), store, InitiateOptions{
		OldProjectURL:  "https://git.example.com/old",
		OldProjectName: "old",
		NewProjectURL:  "https://git.example.com/new",
		NewProjectName: "new",
		Timestamp:      1000,
		FromOldProject: false,
	})
	require.NoError(t, err)

	// The destination's own document records the entry as inbound.
	written := swap.FindSwapEntryByUUID(store.info, entry.SwapUUID)
	require.NotNil(t, written)
	assert.False(t, written.IsOldProject)
}

func TestCancelSwap_IsSticky(t *testing.T) {
	store := &memStore{
		exists: true,
		info:   &models.SwapInfo{SwapEntries: []models.SwapEntry{outboundActive("swap-1")}},
	}

	entry, err := CancelSwap(context.Background(), store, "swap-1", "admin", 5000)
	require.NoError(t, err)

	assert.Equal(t, models.SwapCancelled, entry.SwapStatus)
	assert.Equal(t, "admin", entry.CancelledBy)
	assert.Equal(t, int64(5000), entry.CancelledAt)
	assert.Equal(t, int64(5000), entry.SwapModifiedAt)

	// A stale active copy with a later modification timestamp cannot undo it.
	stale := outboundActive("swap-1")
	stale.SwapModifiedAt = 9999
	remerged := swap.MergeInfo(store.info, &models.SwapInfo{SwapEntries: []models.SwapEntry{stale}})
	merged := swap.FindSwapEntryByUUID(remerged, "swap-1")
	require.NotNil(t, merged)
	assert.Equal(t, models.SwapCancelled, merged.SwapStatus)
}

func TestCancelSwap_UnknownUUID(t *testing.T) {
	store := &memStore{exists: true, info: &models.SwapInfo{}}

	_, err := CancelSwap(context.Background(), store, "missing", "admin", 5000)
	require.Error(t, err)
	assert.Equal(t, 0, store.writes)
}

func TestCompleteUserSwap_RecordsExecution(t *testing.T) {
	store := &memStore{
		exists: true,
		info:   &models.SwapInfo{SwapEntries: []models.SwapEntry{outboundActive("swap-1")}},
	}

	entry, err := CompleteUserSwap(context.Background(), store, "swap-1", "bob", 3000, 3000)
	require.NoError(t, err)

	require.Len(t, entry.SwappedUsers, 1)
	record := entry.SwappedUsers[0]
	assert.Equal(t, "bob", record.UserToSwap)
	assert.True(t, record.Executed)
	assert.Equal(t, int64(3000), record.SwapCompletedAt)
	assert.Equal(t, int64(3000), entry.SwappedUsersModifiedAt)
}

func TestCompleteUserSwap_NeverAdvancesSwapModifiedAt(t *testing.T) {
	base := outboundActive("swap-1")
	base.SwapModifiedAt = 100
	store := &memStore{
		exists: true,
		info:   &models.SwapInfo{SwapEntries: []models.SwapEntry{base}},
	}

	entry, err := CompleteUserSwap(context.Background(), store, "swap-1", "bob", 7000, 7000)
	require.NoError(t, err)

	// Completing a user's swap is a per-user event; if it advanced
	// swapModifiedAt it could outrank a concurrent cancellation.
	assert.Equal(t, int64(100), entry.SwapModifiedAt)
	assert.Equal(t, int64(7000), entry.SwappedUsersModifiedAt)
}

func TestCompleteUserSwap_ResetYieldsSecondRecord(t *testing.T) {
	base := outboundActive("swap-1")
	base.SwappedUsers = []models.SwapUserEntry{
		{UserToSwap: "bob", CreatedAt: 1000, UpdatedAt: 1000, Executed: true, SwapCompletedAt: 1000},
	}
	base.SwappedUsersModifiedAt = 1000
	store := &memStore{
		exists: true,
		info:   &models.SwapInfo{SwapEntries: []models.SwapEntry{base}},
	}

	// Same user, fresh createdAt: a re-swap after a reset, not a refinement.
	entry, err := CompleteUserSwap(context.Background(), store, "swap-1", "bob", 2000, 2000)
	require.NoError(t, err)
	assert.Len(t, entry.SwappedUsers, 2)

	// Same user and createdAt: the existing record is refined in place.
	entry, err = CompleteUserSwap(context.Background(), store, "swap-1", "bob", 2000, 2500)
	require.NoError(t, err)
	assert.Len(t, entry.SwappedUsers, 2)
}

func TestCompleteUserSwap_UnknownUUID(t *testing.T) {
	store := &memStore{exists: true, info: &models.SwapInfo{}}

	_, err := CompleteUserSwap(context.Background(), store, "missing", "bob", 1, 1)
	require.Error(t, err)
}
