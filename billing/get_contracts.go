package billing

import (
	"context"
	"strings"
	"time"

	"encore.app/billing/model"
	temporal "encore.app/billing/workflow"
	"encore.dev/beta/errs"
	"encore.dev/rlog"
)

type Contract struct {
	ContractID  string     `json:"contract_id"`
	PlanType    string     `json:"plan_type"`
	Status      string     `json:"status"`
	StartDate   time.Time  `json:"start_date"`
	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	// CurrentMonthTotal is the live total of the month being accrued, in
	// display form. Empty for cancelled lines; they carry AmountDue
	// instead.
	CurrentMonthTotal string `json:"current_month_total,omitempty"`
	AmountDue         string `json:"amount_due,omitempty"`
}

type GetContractsResponse struct {
	Contracts []Contract `json:"contracts"`
	HasMore   bool       `json:"has_more"`
}

type GetContractsParams struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Cursor string `query:"cursor"`
}

//encore:api public method=GET path=/contracts
func (s *Service) GetContracts(ctx context.Context, params *GetContractsParams) (*GetContractsResponse, error) {
	status, err := model.ToContractStatus(strings.ToUpper(params.Status))
	if err != nil {
		rlog.Error("invalid status", params.Status, "error", err)
		return nil, &errs.Error{
			Code:    errs.InvalidArgument,
			Message: "invalid status",
		}
	}

	if params.Limit == 0 {
		params.Limit = 10
	}

	cursor := time.Now()
	if params.Cursor != "" {
		var err error
		cursor, err = time.Parse(time.RFC3339, params.Cursor)
		if err != nil {
			return nil, err
		}
	}

	contracts, hasMore, err := s.db.GetContracts(ctx, status, params.Limit, cursor)
	if err != nil {
		rlog.Error("failed to get contracts", "error", err)
		return nil, err
	}
	resp := &GetContractsResponse{
		HasMore: hasMore,
	}
	resp.Contracts = make([]Contract, len(contracts))
	for i, detail := range contracts {
		resp.Contracts[i] = Contract{
			ContractID:  detail.ContractID,
			PlanType:    detail.PlanType,
			Status:      detail.Status,
			StartDate:   detail.StartDate,
			CreatedAt:   detail.CreatedAt,
			CancelledAt: detail.CancelledAt,
		}
		if detail.AmountDue != nil {
			resp.Contracts[i].AmountDue = model.FormatAmount(*detail.AmountDue)
		}
		// Active lines carry their in-flight month in workflow state, not
		// in the database; query it live.
		if detail.Status == string(model.ContractStatusActive) {
			workflowID := temporal.ContractWorkflowID(detail.ContractID)
			queryResult, err := s.client.QueryWorkflow(ctx, workflowID, "", temporal.QueryStatement)
			if err != nil {
				rlog.Error("failed to query workflow for live statement", "error", err, "contract_id", detail.ContractID)
				continue
			}
			var statement *model.Statement
			if err := queryResult.Get(&statement); err != nil {
				rlog.Error("failed to decode workflow statement query", "error", err, "contract_id", detail.ContractID)
				continue
			}
			if statement != nil {
				resp.Contracts[i].CurrentMonthTotal = model.FormatAmount(statement.Total)
			}
		}
	}

	return resp, nil
}
