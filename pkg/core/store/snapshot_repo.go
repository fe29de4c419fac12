package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
	"bank_dashboard/pkg/core/team"
)

// SnapshotRepo loads the request inputs (accounts, roster, assumption
// sets) that upstream ingestion jobs write as JSONB blobs. The engine
// never writes these tables; it only reads one consistent snapshot per
// request.
//
// Schema assumption (managed by migrations elsewhere):
//
//	CREATE TABLE IF NOT EXISTS bank_accounts (
//	  account_id TEXT PRIMARY KEY,
//	  account_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
//	CREATE TABLE IF NOT EXISTS team_roster (
//	  id INT PRIMARY KEY DEFAULT 1,
//	  roster_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
//	CREATE TABLE IF NOT EXISTS assumption_sets (
//	  version TEXT PRIMARY KEY,
//	  set_json JSONB,
//	  created_at TIMESTAMPTZ
//	);
type SnapshotRepo struct{}

// NewSnapshotRepo creates a new repository instance.
func NewSnapshotRepo() *SnapshotRepo {
	return &SnapshotRepo{}
}

// LoadAccounts returns every bank account in the portfolio.
func (r *SnapshotRepo) LoadAccounts(ctx context.Context) ([]*account.Account, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `SELECT account_json FROM bank_accounts ORDER BY account_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		acct := &account.Account{}
		if err := json.Unmarshal(jsonData, acct); err != nil {
			return nil, fmt.Errorf("failed to unmarshal account: %w", err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// LoadRoster returns the current sales-team roster and hiring plan.
// A missing row means an empty roster, not an error.
func (r *SnapshotRepo) LoadRoster(ctx context.Context) (*team.Roster, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT roster_json FROM team_roster WHERE id = 1`).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &team.Roster{}, nil
		}
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	roster := &team.Roster{}
	if err := json.Unmarshal(jsonData, roster); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
	}
	return roster, nil
}

// LoadAssumptions returns one versioned assumption set, fully defaulted
// and validated. An empty version selects the most recent set.
func (r *SnapshotRepo) LoadAssumptions(ctx context.Context, version string) (*assumption.Set, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	var err error
	if version == "" {
		err = pool.QueryRow(ctx,
			`SELECT set_json FROM assumption_sets ORDER BY created_at DESC LIMIT 1`).Scan(&jsonData)
	} else {
		err = pool.QueryRow(ctx,
			`SELECT set_json FROM assumption_sets WHERE version = $1`, version).Scan(&jsonData)
	}
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no assumption set found for version %q", version)
		}
		return nil, fmt.Errorf("failed to load assumption set: %w", err)
	}

	set := &assumption.Set{}
	if err := json.Unmarshal(jsonData, set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assumption set: %w", err)
	}
	set.ApplyDefaults()
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("stored assumption set %q is invalid: %w", set.Version, err)
	}
	return set, nil
}

// SaveAssumptions upserts a versioned assumption set.
func (r *SnapshotRepo) SaveAssumptions(ctx context.Context, set *assumption.Set) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if err := set.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid assumption set: %w", err)
	}

	jsonData, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal assumption set: %w", err)
	}

	query := `
		INSERT INTO assumption_sets (version, set_json, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (version)
		DO UPDATE SET
			set_json = EXCLUDED.set_json,
			created_at = EXCLUDED.created_at;
	`
	if _, err := pool.Exec(ctx, query, set.Version, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save assumption set: %w", err)
	}
	return nil
}

// AssumptionVersion is one row of the version listing.
type AssumptionVersion struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// ListAssumptionVersions returns all stored versions, newest first.
func (r *SnapshotRepo) ListAssumptionVersions(ctx context.Context) ([]AssumptionVersion, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT version, created_at FROM assumption_sets ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assumption versions: %w", err)
	}
	defer rows.Close()

	var versions []AssumptionVersion
	for rows.Next() {
		var v AssumptionVersion
		if err := rows.Scan(&v.Version, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version row: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
