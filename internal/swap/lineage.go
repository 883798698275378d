package swap

import (
	"sort"

	"github.com/edvartis/swapsync/internal/models"
)

// DeprecatedProjectsFromHistory walks the full inherited swap chain —
// regardless of entry status — and returns every repository superseded by
// the current one, oldest first. For a chain A→B→C→D→E fully inherited into
// E's document this returns A, B, C, D and excludes E: the current
// repository only ever appears as the destination of the newest inbound
// entry, never as anyone's source.
//
// Both URL and name are captured: remote-only repositories that were never
// cloned have no locally discoverable URL, so deprecation matching may have
// to happen by name alone.
func DeprecatedProjectsFromHistory(info *models.SwapInfo) []models.DeprecatedProject {
	info = NormalizeInfo(info)

	chain := make([]models.SwapEntry, len(info.SwapEntries))
	copy(chain, info.SwapEntries)
	sort.SliceStable(chain, func(i, j int) bool {
		if chain[i].SwapInitiatedAt != chain[j].SwapInitiatedAt {
			return chain[i].SwapInitiatedAt < chain[j].SwapInitiatedAt
		}
		return chain[i].SwapUUID < chain[j].SwapUUID
	})

	seen := make(map[models.DeprecatedProject]bool, len(chain))
	deprecated := make([]models.DeprecatedProject, 0, len(chain))
	for _, e := range chain {
		if e.OldProjectURL == "" && e.OldProjectName == "" {
			continue
		}
		p := models.DeprecatedProject{URL: e.OldProjectURL, Name: e.OldProjectName}
		if seen[p] {
			continue
		}
		seen[p] = true
		deprecated = append(deprecated, p)
	}
	return deprecated
}

// ReconcileLineageFlags rewrites isOldProject across an inherited history so
// the document is correct from the current repository's perspective: every
// entry is re-tagged isOldProject=true except the newest inbound entry that
// names the current repository as its destination, which keeps
// isOldProject=false. Matching falls back to name when the URL is unknown
// locally.
//
// Exposed as its own operation (rather than inferred during document
// assembly) so the rewrite is independently testable.
func ReconcileLineageFlags(entries []models.SwapEntry, currentURL, currentName string) []models.SwapEntry {
	out := make([]models.SwapEntry, len(entries))
	copy(out, entries)

	newestInbound := -1
	for i := range out {
		if !matchesProject(out[i].NewProjectURL, out[i].NewProjectName, currentURL, currentName) {
			continue
		}
		if newestInbound == -1 || initiationAfter(out[i], out[newestInbound]) {
			newestInbound = i
		}
	}

	for i := range out {
		out[i].IsOldProject = i != newestInbound
	}
	return out
}

func initiationAfter(a, b models.SwapEntry) bool {
	if a.SwapInitiatedAt != b.SwapInitiatedAt {
		return a.SwapInitiatedAt > b.SwapInitiatedAt
	}
	return a.SwapUUID > b.SwapUUID
}

// matchesProject compares a swap endpoint against the current repository,
// by URL when both sides have one, else by name.
func matchesProject(url, name, currentURL, currentName string) bool {
	if url != "" && currentURL != "" {
		return url == currentURL
	}
	return name != "" && name == currentName
}
