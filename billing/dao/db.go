package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"encore.app/billing/model"
	"encore.dev/rlog"
	"encore.dev/storage/sqldb"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var ErrContractNotFound = errors.New("contract not found")

var db = sqldb.NewDatabase("billing", sqldb.DatabaseConfig{
	Migrations: "./migrations",
})

type dbStore struct {
	db *sqldb.Database
}

func New() DB {
	return &dbStore{db: db}
}

// CreateContract inserts a new contract. Re-running the insert for the same
// contract is a no-op so workflow retries stay idempotent.
func (d *dbStore) CreateContract(ctx context.Context, contractID string, planType model.PlanType, startDate time.Time, endDate *time.Time, prepaidAmount decimal.Decimal) error {
	var prepaid any
	if planType == model.Prepaid {
		prepaid = prepaidAmount
	}
	_, err := d.db.Exec(ctx, `
		INSERT INTO contracts (contract_id, plan_type, status, start_date, end_date, prepaid_amount, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (contract_id) DO NOTHING;
	`, contractID, planType, model.ContractStatusActive, startDate, endDate, prepaid)
	if err != nil {
		return err
	}
	return nil
}

// GetContractStatus retrieves the lifecycle status of a contract.
func (d *dbStore) GetContractStatus(ctx context.Context, contractID string) (model.ContractStatus, error) {
	var status model.ContractStatus
	err := d.db.QueryRow(ctx, "SELECT status FROM contracts WHERE contract_id = $1", contractID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return "", ErrContractNotFound
		}
		return "", err
	}
	return status, nil
}

// UpsertStatement writes the monthly statement for a contract. The same
// month may be written more than once as the month progresses; the last
// snapshot wins.
func (d *dbStore) UpsertStatement(ctx context.Context, statement model.Statement) error {
	_, err := d.db.Exec(ctx, `
		INSERT INTO statements (contract_id, month, year, plan, per_minute_rate, fixed_cost, billed_minutes, free_minutes, total, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (contract_id, year, month) DO UPDATE
		SET plan = EXCLUDED.plan,
			per_minute_rate = EXCLUDED.per_minute_rate,
			fixed_cost = EXCLUDED.fixed_cost,
			billed_minutes = EXCLUDED.billed_minutes,
			free_minutes = EXCLUDED.free_minutes,
			total = EXCLUDED.total,
			updated_at = now();
	`, statement.ContractID, statement.Month, statement.Year, statement.Plan,
		statement.PerMinuteRate, statement.FixedCost, statement.BilledMinutes,
		statement.FreeMinutes, statement.Total)
	if err != nil {
		return fmt.Errorf("failed to upsert statement: %w", err)
	}
	return nil
}

// InsertCall records a billed call. The call ID is the idempotency key: a
// retried activity inserts nothing the second time.
func (d *dbStore) InsertCall(ctx context.Context, call model.CallRecord) error {
	_, err := d.db.Exec(ctx, `
		INSERT INTO calls (call_id, contract_id, month, year, duration_seconds, minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (call_id) DO NOTHING;
	`, call.CallID, call.ContractID, call.Month, call.Year, call.DurationSeconds, call.Minutes)
	if err != nil {
		return fmt.Errorf("failed to insert call: %w", err)
	}
	return nil
}

// CloseContract marks the contract cancelled and stores the final amount
// due.
func (d *dbStore) CloseContract(ctx context.Context, contractID string, amountDue decimal.Decimal) error {
	_, err := d.db.Exec(ctx, `
		UPDATE contracts
		SET status = $1, amount_due = $2, cancelled_at = now(), updated_at = now()
		WHERE contract_id = $3
	`, model.ContractStatusCancelled, amountDue, contractID)
	if err != nil {
		return err
	}
	rlog.Debug("CloseContract success", "contractID", contractID)
	return nil
}

// GetContract retrieves a contract with its statements and calls.
func (d *dbStore) GetContract(ctx context.Context, contractID string) (*model.ContractDetail, error) {
	var detail model.ContractDetail
	err := d.db.QueryRow(ctx, `
		SELECT contract_id, plan_type, status, start_date, end_date, prepaid_amount, amount_due, created_at, cancelled_at
		FROM contracts
		WHERE contract_id = $1
	`, contractID).Scan(&detail.ContractID, &detail.PlanType, &detail.Status,
		&detail.StartDate, &detail.EndDate, &detail.PrepaidAmount,
		&detail.AmountDue, &detail.CreatedAt, &detail.CancelledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}

	statements, err := d.getStatementsForContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	detail.Statements = statements

	calls, err := d.getCallsForContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	detail.Calls = calls
	return &detail, nil
}

func (d *dbStore) getStatementsForContract(ctx context.Context, contractID string) ([]model.Statement, error) {
	rows, err := d.db.Query(ctx, `
		SELECT contract_id, month, year, plan, per_minute_rate, fixed_cost, billed_minutes, free_minutes, total
		FROM statements
		WHERE contract_id = $1
		ORDER BY year, month
	`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statements []model.Statement
	for rows.Next() {
		var st model.Statement
		if err := rows.Scan(&st.ContractID, &st.Month, &st.Year, &st.Plan,
			&st.PerMinuteRate, &st.FixedCost, &st.BilledMinutes, &st.FreeMinutes, &st.Total); err != nil {
			return nil, err
		}
		statements = append(statements, st)
	}
	return statements, nil
}

func (d *dbStore) getCallsForContract(ctx context.Context, contractID string) ([]model.CallRecord, error) {
	rows, err := d.db.Query(ctx, `
		SELECT call_id, contract_id, month, year, duration_seconds, minutes, created_at
		FROM calls
		WHERE contract_id = $1
		ORDER BY created_at DESC
	`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []model.CallRecord
	for rows.Next() {
		var call model.CallRecord
		if err := rows.Scan(&call.CallID, &call.ContractID, &call.Month, &call.Year,
			&call.DurationSeconds, &call.Minutes, &call.CreatedAt); err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// GetContracts retrieves a page of contracts filtered by status. Statements
// and calls are not expanded on the list path.
func (d *dbStore) GetContracts(ctx context.Context, status model.ContractStatus, limit int, cursor time.Time) ([]*model.ContractDetail, bool, error) {
	rows, err := d.db.Query(ctx, `
		SELECT contract_id, plan_type, status, start_date, end_date, prepaid_amount, amount_due, created_at, cancelled_at
		FROM contracts
		WHERE created_at < $1 AND status = $2
		ORDER BY created_at DESC LIMIT $3
	`, cursor, status, limit+1)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var contracts []*model.ContractDetail
	for rows.Next() {
		var detail model.ContractDetail
		if err := rows.Scan(&detail.ContractID, &detail.PlanType, &detail.Status,
			&detail.StartDate, &detail.EndDate, &detail.PrepaidAmount,
			&detail.AmountDue, &detail.CreatedAt, &detail.CancelledAt); err != nil {
			return nil, false, err
		}
		contracts = append(contracts, &detail)
	}

	hasMore := len(contracts) > limit
	if hasMore {
		contracts = contracts[:limit]
	}

	return contracts, hasMore, nil
}

// GetActiveContractIDs retrieves a page of active contract IDs, used by the
// monthly cron to advance every open line.
func (d *dbStore) GetActiveContractIDs(ctx context.Context, limit int, cursor time.Time) ([]string, bool, error) {
	rows, err := d.db.Query(ctx, `
		SELECT contract_id
		FROM contracts
		WHERE created_at < $1 AND status = $2
		ORDER BY created_at DESC LIMIT $3
	`, cursor, model.ContractStatusActive, limit+1)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var contractIDs []string
	for rows.Next() {
		var contractID string
		if err := rows.Scan(&contractID); err != nil {
			return nil, false, err
		}
		contractIDs = append(contractIDs, contractID)
	}

	hasMore := len(contractIDs) > limit
	if hasMore {
		contractIDs = contractIDs[:limit]
	}

	return contractIDs, hasMore, nil
}

// IsContractExists checks if a contract with the given ID exists.
func (d *dbStore) IsContractExists(ctx context.Context, contractID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM contracts WHERE contract_id = $1)"
	err := d.db.QueryRow(ctx, query, contractID).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		rlog.Error("failed to check if contract exists", "error", err, "contract_id", contractID)
		return false, err
	}
	return exists, nil
}
