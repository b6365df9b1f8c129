package cache

import "fmt"

// PropertyListKey is the cache key for the full catalog record sequence.
func PropertyListKey() string {
	return "catalog:properties"
}

// ReviewListKey is the cache key for the full review sequence.
func ReviewListKey() string {
	return "catalog:reviews"
}

// FavoritesKey is the cache key for one user's favorite set.
func FavoritesKey(userID string) string {
	return fmt.Sprintf("favorites:%s", userID)
}
