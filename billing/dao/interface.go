package dao

import (
	"context"
	"time"

	"encore.app/billing/model"
	"github.com/shopspring/decimal"
)

type DB interface {
	CreateContract(ctx context.Context, contractID string, planType model.PlanType, startDate time.Time, endDate *time.Time, prepaidAmount decimal.Decimal) error
	GetContractStatus(ctx context.Context, contractID string) (model.ContractStatus, error)
	GetContract(ctx context.Context, contractID string) (*model.ContractDetail, error)
	GetContracts(ctx context.Context, status model.ContractStatus, limit int, cursor time.Time) ([]*model.ContractDetail, bool, error)
	GetActiveContractIDs(ctx context.Context, limit int, cursor time.Time) ([]string, bool, error)
	UpsertStatement(ctx context.Context, statement model.Statement) error
	InsertCall(ctx context.Context, call model.CallRecord) error
	CloseContract(ctx context.Context, contractID string, amountDue decimal.Decimal) error
	IsContractExists(ctx context.Context, contractID string) (bool, error)
}

//go:generate mockery --name=DB --output=./mocks --outpkg=mocks
