package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Key namespaces. Writers evict the exact detail entry plus the whole
// list prefix; tracking exact list membership is not worth it for
// paginated listings.
const (
	projectDetailPrefix = "project:detail:"
	ProjectListPrefix   = "project:list:"
)

func ProjectDetailKey(projectID int64) string {
	return projectDetailPrefix + strconv.FormatInt(projectID, 10)
}

func ProjectListKey(filter string, page, size int) string {
	return fmt.Sprintf("%s%s:%d:%d", ProjectListPrefix, filter, page, size)
}

// Cache is a read-through byte cache. Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}
