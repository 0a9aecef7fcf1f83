package billing

import (
	"context"
	"fmt"

	"encore.app/billing/dao"
	temporal "encore.app/billing/workflow"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

//encore:service
type Service struct {
	client client.Client
	worker worker.Worker
	db     dao.DB
}

func initService() (*Service, error) {
	// For local development the default in-memory client is enough. For
	// production this would point at the actual Temporal cluster address.
	tc, err := client.NewLazyClient(client.Options{
		HostPort:  client.DefaultHostPort,
		Namespace: client.DefaultNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create temporal client: %w", err)
	}

	db := dao.New()

	// Initialize and start the worker using the created client
	w := worker.New(tc, temporal.ContractTaskQueue, worker.Options{})

	w.RegisterWorkflow(temporal.ContractLifecycleWorkflow)
	w.RegisterActivity(&temporal.Activities{DB: db})

	err = w.Start()
	if err != nil {
		tc.Close()
		return nil, fmt.Errorf("failed to start temporal worker: %v", err)
	}
	return &Service{client: tc, worker: w, db: db}, nil
}

func (s *Service) Shutdown(force context.Context) {
	s.client.Close()
	s.worker.Stop() // Stop the worker gracefully
}
