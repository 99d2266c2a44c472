package entitlements

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntitlement(row rowScanner) (Entitlement, error) {
	var (
		plan    string
		receipt sql.NullString
		at      sql.NullTime
	)
	if err := row.Scan(&plan, &receipt, &at); err != nil {
		return Entitlement{}, err
	}
	e := Entitlement{Plan: plan, Unlocked: plan == PlanPremium, ReceiptID: receipt.String}
	if at.Valid {
		t := at.Time.UTC()
		e.UnlockedAt = &t
	}
	return e, nil
}

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed entitlement store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Get(ctx context.Context, userID string) (Entitlement, error) {
	e, err := scanEntitlement(s.DB.QueryRowContext(ctx, `
SELECT plan, receipt_id, unlocked_at FROM entitlements WHERE user_id = $1`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return freeEntitlement(), nil
	}
	if err != nil {
		return Entitlement{}, err
	}
	return e, nil
}

func (s *pgStore) Grant(ctx context.Context, userID, receiptID string, at time.Time) (Entitlement, bool, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Entitlement{}, false, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	current, err := scanEntitlement(tx.QueryRowContext(ctx, `
SELECT plan, receipt_id, unlocked_at FROM entitlements WHERE user_id = $1 FOR UPDATE`, userID))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Entitlement{}, false, err
	}
	if err == nil && current.Unlocked {
		if err = tx.Commit(); err != nil {
			return Entitlement{}, false, err
		}
		return current, false, nil
	}

	at = at.UTC()
	if _, err = tx.ExecContext(ctx, `
INSERT INTO entitlements (user_id, plan, receipt_id, unlocked_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (user_id) DO UPDATE SET plan = EXCLUDED.plan, receipt_id = EXCLUDED.receipt_id,
	unlocked_at = EXCLUDED.unlocked_at, updated_at = EXCLUDED.updated_at`,
		userID, PlanPremium, receiptID, at); err != nil {
		return Entitlement{}, false, err
	}
	if err = tx.Commit(); err != nil {
		return Entitlement{}, false, err
	}
	return Entitlement{Plan: PlanPremium, Unlocked: true, ReceiptID: receiptID, UnlockedAt: &at}, true, nil
}

func (s *pgStore) Reset(ctx context.Context, userID string) (Entitlement, error) {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM entitlements WHERE user_id = $1`, userID); err != nil {
		return Entitlement{}, err
	}
	return freeEntitlement(), nil
}
