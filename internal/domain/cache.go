package domain

// CacheStats is a point-in-time aggregate over the image cache. Sizes are
// approximate (serialized payload length in bytes); timestamps are unix
// milliseconds, zero when the cache is empty.
type CacheStats struct {
	TotalKeys   int   `json:"totalKeys"`
	TotalSize   int64 `json:"totalSize"`
	OldestEntry int64 `json:"oldestEntry"`
	NewestEntry int64 `json:"newestEntry"`
}
