package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values, centralized so modules never invent
// ad-hoc key shapes.
// Pattern: yatra:{module}:{operation}:{params}

// Search results track a live inventory feed; keep them short-lived.
const (
	TTL_SEARCH_RESULTS = 5 * time.Minute
	TTL_TRAIN_DETAILS  = 30 * time.Minute
)

// SearchResultsKey builds the cache key for one search tuple.
func SearchResultsKey(from, to, date, class, quota string) string {
	return fmt.Sprintf("yatra:search:%s:%s:%s:%s:%s", from, to, date, class, quota)
}

// TrainDetailsKey builds the cache key for a single train lookup.
func TrainDetailsKey(trainNumber string) string {
	return fmt.Sprintf("yatra:trains:details:%s", trainNumber)
}
