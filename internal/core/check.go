// Package core orchestrates the swap engine against the canonical document
// store and the local cache: the requirement check run on project open and
// manual sync, the pre-execution re-validation, and the write-back
// operations that initiate, cancel, and complete swaps.
package core

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/edvartis/swapsync/internal/cache"
	"github.com/edvartis/swapsync/internal/docstore"
	"github.com/edvartis/swapsync/internal/models"
	"github.com/edvartis/swapsync/internal/swap"
)

// CheckOptions configures a swap requirement check.
type CheckOptions struct {
	// BypassCache reads the canonical remote document fresh, ignoring the
	// cached copy of the swap state (but still consulting the cache for
	// pending downloads). Always true on project open.
	BypassCache bool

	// Timestamp is the logical clock value recorded as fetchedAt when the
	// cache is refreshed.
	Timestamp int64

	// SourceOriginURL identifies where the remote document came from,
	// recorded in the cache for later staleness decisions.
	SourceOriginURL string
}

// CheckResult is the outcome of a swap requirement check.
type CheckResult struct {
	// Required is true when an active swap names the local repository as
	// its source: this client must perform the migration.
	Required bool

	// ActiveEntry is the live migration, if any — present even when
	// Required is false (the destination side sees it for display only).
	ActiveEntry *models.SwapEntry

	// DocumentExists distinguishes "metadata document present with no swap
	// section" (explicit empty) from "document missing entirely" (unknown).
	DocumentExists bool

	// HasPendingDownloads reports a persisted half-completed transfer,
	// which keeps the cache alive independently of swap state.
	HasPendingDownloads bool

	// CacheDeleted is true when the cleanup rule removed the cache file.
	CacheDeleted bool
}

// CheckSwapRequired answers "is there a swap this client must perform right
// now" and keeps the local cache consistent along the way:
//
//  1. Read the canonical document (fresh when BypassCache, which is always
//     the case on project open) and the local cache concurrently.
//  2. Re-validate the cache against remote: fold remote per-user state in,
//     copying swappedUsers and swappedUsersModifiedAt together.
//  3. Delete the cache iff no active old-project swap remains AND no
//     pending downloads are recorded; otherwise persist the refreshed copy.
//
// Data-shape problems never surface as errors; only I/O failures do.
func CheckSwapRequired(ctx context.Context, store docstore.Store, coord *cache.Coordinator, opts CheckOptions) (*CheckResult, error) {
	var (
		remote     *models.SwapInfo
		docExists  bool
		cached     *models.SwapCache
		cacheFound bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		remote, docExists, err = store.Read(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cached, cacheFound, err = coord.Load()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The decision always comes from the freshest state we are allowed to
	// trust: the canonical document alone when bypassing, the cached copy
	// refined by remote otherwise.
	decision := remote
	if !opts.BypassCache && cacheFound && cached.RemoteSwapInfo != nil {
		decision = swap.MergeInfo(cached.RemoteSwapInfo, remote)
	}

	result := &CheckResult{
		DocumentExists:      docExists,
		ActiveEntry:         swap.ActiveSwapEntry(decision),
		HasPendingDownloads: cached.HasPendingDownloads(),
	}
	result.Required = swap.HasActiveOldProjectSwap(decision)

	// Re-validate the cache before trusting it again: fold remote per-user
	// state in, swappedUsers and swappedUsersModifiedAt moving together.
	if cacheFound {
		cache.SyncUsers(cached, remote)
	}

	if !result.Required && !result.HasPendingDownloads {
		if cacheFound {
			if err := coord.Delete(); err != nil {
				return nil, err
			}
			result.CacheDeleted = true
		}
		return result, nil
	}

	// The refreshed cache converges cache and remote rather than clobbering
	// either: cancellations are sticky through the merge, and user
	// completions recorded offline survive until they reach the canonical
	// document.
	refreshed := &models.SwapCache{
		RemoteSwapInfo:  remote,
		FetchedAt:       opts.Timestamp,
		SourceOriginURL: opts.SourceOriginURL,
	}
	if cacheFound && cached.RemoteSwapInfo != nil {
		refreshed.RemoteSwapInfo = swap.MergeInfo(cached.RemoteSwapInfo, remote)
	}
	if cached != nil {
		refreshed.SwapPendingDownloads = cached.SwapPendingDownloads
	}
	if err := coord.Save(refreshed); err != nil {
		return nil, err
	}

	return result, nil
}

// RevalidateBeforeExecute re-reads canonical state immediately before a
// transfer executes. Time passes between prompting the user and acting, and
// an administrator may have cancelled or replaced the swap in that window.
// ok is false when the caller must abort: the active entry is gone, or its
// UUID is no longer the one the user was prompted about. That abort is an
// ordinary outcome, not an error; only I/O failures return err.
func RevalidateBeforeExecute(ctx context.Context, store docstore.Store, expectedUUID string) (entry *models.SwapEntry, ok bool, err error) {
	remote, _, err := store.Read(ctx)
	if err != nil {
		return nil, false, err
	}

	active := swap.ActiveSwapEntry(remote)
	if active == nil || active.SwapUUID != expectedUUID {
		return nil, false, nil
	}
	return active, true, nil
}
