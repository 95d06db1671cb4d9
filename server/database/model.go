package database

import (
	"time"

	"github.com/topi314/academy-dashboard/internal/xpgtype"
)

type CacheGroup struct {
	SessionID string                          `db:"session_id"`
	GroupName string                          `db:"group_name"`
	Values    xpgtype.JSON[map[string]string] `db:"cache_values"`
	UpdatedAt time.Time                       `db:"updated_at"`
	ExpiresAt time.Time                       `db:"expires_at"`
}
