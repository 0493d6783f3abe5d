package util

import "time"

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// Claves y TTLs del caché de lectura por usuario.
const (
	PAESDataCachePrefix = "paes_data_"
	PlanListCachePrefix = "learning_plans_"

	PAESDataCacheTTL = 5 * time.Minute
	PlanListCacheTTL = 30 * time.Minute
)

func PAESDataCacheKey(userID uint) string {
	return PAESDataCachePrefix + UintToString(userID)
}

func PlanListCacheKey(userID uint) string {
	return PlanListCachePrefix + UintToString(userID)
}
