package entitlements

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type sqliteStore struct {
	DB *sql.DB
}

// NewSQLiteStore constructs a SQLite-backed entitlement store. The handle
// should come from db.OpenSQLite, which serializes writers.
func NewSQLiteStore(db *sql.DB) *sqliteStore {
	return &sqliteStore{DB: db}
}

func (s *sqliteStore) Get(ctx context.Context, userID string) (Entitlement, error) {
	e, err := scanEntitlement(s.DB.QueryRowContext(ctx, `
SELECT plan, receipt_id, unlocked_at FROM entitlements WHERE user_id = ?`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return freeEntitlement(), nil
	}
	if err != nil {
		return Entitlement{}, err
	}
	return e, nil
}

func (s *sqliteStore) Grant(ctx context.Context, userID, receiptID string, at time.Time) (Entitlement, bool, error) {
	at = at.UTC()
	res, err := s.DB.ExecContext(ctx, `
INSERT INTO entitlements (user_id, plan, receipt_id, unlocked_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET plan = excluded.plan, receipt_id = excluded.receipt_id,
	unlocked_at = excluded.unlocked_at, updated_at = excluded.updated_at
WHERE entitlements.plan <> ?`,
		userID, PlanPremium, receiptID, at, at, PlanPremium)
	if err != nil {
		return Entitlement{}, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Entitlement{}, false, err
	}
	if n == 0 {
		e, err := s.Get(ctx, userID)
		return e, false, err
	}
	return Entitlement{Plan: PlanPremium, Unlocked: true, ReceiptID: receiptID, UnlockedAt: &at}, true, nil
}

func (s *sqliteStore) Reset(ctx context.Context, userID string) (Entitlement, error) {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM entitlements WHERE user_id = ?`, userID); err != nil {
		return Entitlement{}, err
	}
	return freeEntitlement(), nil
}
