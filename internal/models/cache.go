package models

import "encoding/json"

// SwapCache is the offline-readable local copy of the remote swap document.
// It lives in the tool's own non-versioned directory and is never synced by
// git.
type SwapCache struct {
	RemoteSwapInfo  *SwapInfo `json:"remoteSwapInfo"`
	FetchedAt       int64     `json:"fetchedAt"`
	SourceOriginURL string    `json:"sourceOriginUrl"`

	// SwapPendingDownloads is a persisted pending-transfer record owned by
	// the transfer executor. Opaque to this tool beyond presence/absence,
	// but its presence gates cache deletion: losing it would strand a
	// half-completed transfer.
	SwapPendingDownloads json.RawMessage `json:"swapPendingDownloads,omitempty"`
}

// HasPendingDownloads reports whether a pending-transfer record is present.
func (c *SwapCache) HasPendingDownloads() bool {
	if c == nil {
		return false
	}
	trimmed := string(c.SwapPendingDownloads)
	return trimmed != "" && trimmed != "null"
}
