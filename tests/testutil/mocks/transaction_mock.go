package mocks

import (
	"context"
	"testing"
)

// MockTransactionManager is a mock of repository.TransactionManager.
// It runs fn directly and counts how the transaction ended.
type MockTransactionManager struct {
	// CommitErr is returned instead of nil when fn succeeds
	CommitErr error

	Commits   int
	Rollbacks int
}

func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	return &MockTransactionManager{}
}

// WithTransaction executes the function directly without a real transaction
func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.Rollbacks++
		return err
	}
	if m.CommitErr != nil {
		m.Rollbacks++
		return m.CommitErr
	}
	m.Commits++
	return nil
}
