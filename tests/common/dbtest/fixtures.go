//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"innkeeper/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"; every fixture user shares it.
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

const TestPassword = "password123"

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID))
	}
	return userID
}

func CreateTestRoomType(t *testing.T, db DBLike, name string, capacity int, baseRateCents int64) uuid.UUID {
	t.Helper()

	typeID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO room_types (id, name, capacity, base_rate_cents) VALUES ($1, $2, $3, $4) ON CONFLICT (name) DO NOTHING",
		typeID, name, capacity, baseRateCents)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM room_types WHERE name = $1", name).Scan(&typeID))
	}
	return typeID
}

func CreateTestRoom(t *testing.T, db DBLike, number string, floor int, roomTypeID uuid.UUID) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO rooms (id, number, floor, room_type_id, status) VALUES ($1, $2, $3, $4, 'available')",
		roomID, number, floor, roomTypeID)
	require.NoError(t, err)
	return roomID
}

// CreateTestReservation inserts a reservation in the given status directly,
// bypassing the booking flow; userID nil models a walk-in.
func CreateTestReservation(t *testing.T, db DBLike, roomID uuid.UUID, userID *uuid.UUID, status string, arrival, departure time.Time) uuid.UUID {
	t.Helper()

	reference, err := reservation.NewReference()
	require.NoError(t, err)

	nights := int64(departure.Sub(arrival).Hours() / 24)
	resID := uuid.New()
	_, err = db.Exec(context.Background(),
		`INSERT INTO reservations
		   (id, reference, room_id, user_id, status, arrival, departure, total_cents, guest_name, guest_email, guest_phone)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		resID, reference, roomID, userID, status, arrival, departure,
		nights*12000, "Jamie Harper", "jamie@example.com", "+1-555-0101")
	require.NoError(t, err)
	return resID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table so each subtest starts from an empty schema.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, name)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})

	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
