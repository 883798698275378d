// Package docstore provides access to the canonical swap document: the
// projectSwap section of the git-tracked project metadata file. The git
// transport that moves that file between clients is outside this tool; the
// store only reads and writes the file it finds in the worktree.
package docstore

import (
	"context"

	"github.com/edvartis/swapsync/internal/models"
)

// Store is the injected capability for reading and writing the canonical
// swap document. There is deliberately no process-wide instance; callers
// construct one and pass it down.
type Store interface {
	// Read returns the current swap document. exists is false when the
	// metadata document itself is missing (state unknown); a present
	// document without a projectSwap section reads as an explicit empty
	// document with exists=true.
	Read(ctx context.Context) (info *models.SwapInfo, exists bool, err error)

	// Write replaces the swap document, leaving every sibling section of
	// the metadata file untouched.
	Write(ctx context.Context, info *models.SwapInfo) error
}
