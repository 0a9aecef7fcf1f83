package billing

import (
	"context"
	"database/sql"
	"errors"

	"encore.app/billing/dao"
	"encore.app/billing/model"
	"encore.dev/beta/errs"
	"encore.dev/rlog"
)

//encore:api public method=GET path=/contracts/:contractID
func (s *Service) GetContract(ctx context.Context, contractID string) (*model.ContractDetail, error) {
	detail, err := s.db.GetContract(ctx, contractID)
	if err != nil {
		if errors.Is(err, dao.ErrContractNotFound) || errors.Is(err, sql.ErrNoRows) {
			return nil, &errs.Error{
				Code:    errs.NotFound,
				Message: "contract not found",
			}
		}
		rlog.Error("failed to get contract", "error", err)
		return nil, err
	}
	return detail, nil
}
