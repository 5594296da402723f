package filestore

import "context"

// FileStore removes stored media by its public URL. The audit-rejection
// cascade is the only caller; deletions are best-effort there.
type FileStore interface {
	Delete(ctx context.Context, url string) error
}
