package services

import "context"

type ExpirySweepService interface {
	// Sweep publishes one tasks.expiring event per user with open tasks inside the warning window.
	// Returns the number of tasks reported.
	Sweep(ctx context.Context) (int, error)
	RegisterSweepJob() error
}
