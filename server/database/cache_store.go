package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/topi314/academy-dashboard/internal/xpgtype"
	"github.com/topi314/academy-dashboard/server/cache"
)

var _ cache.Store = (*Database)(nil)

// SetGroup replaces a whole group in a single upsert so readers never see it half written.
func (d *Database) SetGroup(ctx context.Context, sessionID string, group cache.Group, values map[string]string) error {
	if err := cache.ValidateGroup(group, values); err != nil {
		return err
	}

	now := time.Now()
	query := `
		INSERT INTO session_cache (session_id, group_name, cache_values, updated_at, expires_at)
		VALUES (:session_id, :group_name, :cache_values, :updated_at, :expires_at)
		ON CONFLICT (session_id, group_name) DO UPDATE SET
			cache_values = EXCLUDED.cache_values,
			updated_at = EXCLUDED.updated_at,
			expires_at = EXCLUDED.expires_at
	`
	_, err := d.db.NamedExecContext(ctx, query, CacheGroup{
		SessionID: sessionID,
		GroupName: string(group),
		Values:    xpgtype.NewJSON(values),
		UpdatedAt: now,
		ExpiresAt: now.Add(d.ttl),
	})
	if err != nil {
		return fmt.Errorf("failed to set cache group: %w", err)
	}
	return nil
}

func (d *Database) Group(ctx context.Context, sessionID string, group cache.Group) (map[string]string, bool, error) {
	if !group.Valid() {
		return nil, false, fmt.Errorf("%w: %s", cache.ErrUnknownGroup, group)
	}

	var row CacheGroup
	err := d.db.GetContext(ctx, &row, "SELECT * FROM session_cache WHERE session_id = $1 AND group_name = $2 AND expires_at > NOW()", sessionID, string(group))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cache group: %w", err)
	}
	return row.Values.V, true, nil
}

func (d *Database) ClearGroups(ctx context.Context, sessionID string, groups ...cache.Group) error {
	if len(groups) == 0 {
		return nil
	}

	names := make([]string, len(groups))
	for i, group := range groups {
		names[i] = string(group)
	}

	_, err := d.db.ExecContext(ctx, "DELETE FROM session_cache WHERE session_id = $1 AND group_name = ANY($2)", sessionID, pq.Array(names))
	if err != nil {
		return fmt.Errorf("failed to clear cache groups: %w", err)
	}
	return nil
}

func (d *Database) ClearSession(ctx context.Context, sessionID string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM session_cache WHERE session_id = $1", sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear cache session: %w", err)
	}
	return nil
}

func (d *Database) DeleteExpiredCacheGroups(ctx context.Context) (int64, error) {
	rs, err := d.db.ExecContext(ctx, "DELETE FROM session_cache WHERE expires_at < NOW()")
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cache groups: %w", err)
	}
	return rs.RowsAffected()
}
