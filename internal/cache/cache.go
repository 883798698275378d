// Package cache manages the offline-readable local copy of the remote swap
// document: loading it tolerantly, saving it atomically, keeping its user
// lists in sync with remote, and deleting it once no action remains.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edvartis/swapsync/internal/models"
	"github.com/edvartis/swapsync/internal/swap"
)

// Coordinator owns the cache file. It is constructed with an explicit path;
// there is no process-wide instance.
type Coordinator struct {
	path string
}

// NewCoordinator returns a coordinator for the cache file at path.
func NewCoordinator(path string) *Coordinator {
	return &Coordinator{path: path}
}

// Path returns the cache file location.
func (c *Coordinator) Path() string {
	return c.path
}

// Load reads the cache file. A missing file returns (nil, false, nil);
// corrupt content normalizes to an empty cache rather than erroring — only
// I/O failures propagate.
func (c *Coordinator) Load() (*models.SwapCache, bool, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read swap cache: %w", err)
	}

	var cached models.SwapCache
	if err := json.Unmarshal(data, &cached); err != nil {
		return &models.SwapCache{RemoteSwapInfo: swap.Normalize(nil)}, true, nil
	}
	cached.RemoteSwapInfo = swap.NormalizeInfo(cached.RemoteSwapInfo)
	return &cached, true, nil
}

// Save writes the cache file atomically (temp file + rename).
func (c *Coordinator) Save(cached *models.SwapCache) error {
	cached.RemoteSwapInfo = swap.NormalizeInfo(cached.RemoteSwapInfo)

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal swap cache: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write swap cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace swap cache: %w", err)
	}
	return nil
}

// Delete removes the cache file. Deleting an already-absent file is not an
// error.
func (c *Coordinator) Delete() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete swap cache: %w", err)
	}
	return nil
}

// SyncUsers folds the remote document's per-user state into a cached copy.
// For every entry present on both sides, the merged swappedUsers and
// swappedUsersModifiedAt are copied together — never one without the other,
// since they are logically paired. Returns true if the cache changed.
func SyncUsers(cached *models.SwapCache, remote *models.SwapInfo) bool {
	if cached == nil || cached.RemoteSwapInfo == nil || remote == nil {
		return false
	}

	changed := false
	for i := range cached.RemoteSwapInfo.SwapEntries {
		local := &cached.RemoteSwapInfo.SwapEntries[i]
		remoteEntry := swap.FindSwapEntryByUUID(remote, local.SwapUUID)
		if remoteEntry == nil {
			continue
		}

		merged := swap.MergeSwappedUsers(local.SwappedUsers, remoteEntry.SwappedUsers)
		mergedAt := max(local.SwappedUsersModifiedAt, remoteEntry.SwappedUsersModifiedAt)
		if usersEqual(local.SwappedUsers, merged) && local.SwappedUsersModifiedAt == mergedAt {
			continue
		}
		local.SwappedUsers = merged
		local.SwappedUsersModifiedAt = mergedAt
		changed = true
	}
	return changed
}

func usersEqual(a, b []models.SwapUserEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
