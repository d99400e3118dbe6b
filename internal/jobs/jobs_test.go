package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"stockway/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRiderAssigner struct {
	mock.Mock
}

func (m *MockRiderAssigner) Handle(ctx context.Context, cmd commands.AutoAssignRidersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockOutboxRelayer struct {
	mock.Mock
}

func (m *MockOutboxRelayer) Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRiderAssignmentJob_RunSendsBatchCommand(t *testing.T) {
	handler := &MockRiderAssigner{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AutoAssignRidersCommand) bool {
		return cmd.Validate() == nil && cmd.BatchSize() == DefaultRiderAssignmentBatch
	})).Return(2, nil).Once()

	NewRiderAssignmentJob(handler, "", discardLogger()).run(t.Context())

	handler.AssertExpectations(t)
}

func TestRiderAssignmentJob_RunSurvivesHandlerError(t *testing.T) {
	handler := &MockRiderAssigner{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()

	assert.NotPanics(t, func() {
		NewRiderAssignmentJob(handler, "", discardLogger()).run(t.Context())
	})
	handler.AssertExpectations(t)
}

func TestOutboxRelayJob_DrainsFullBatches(t *testing.T) {
	handler := &MockOutboxRelayer{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(DefaultOutboxRelayBatch, nil).Twice()
	handler.On("Handle", mock.Anything, mock.Anything).Return(3, nil).Once()

	NewOutboxRelayJob(handler, "", discardLogger()).run(t.Context())

	handler.AssertNumberOfCalls(t, "Handle", 3)
}

func TestOutboxRelayJob_StopsOnError(t *testing.T) {
	handler := &MockOutboxRelayer{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("broker down")).Once()

	NewOutboxRelayJob(handler, "", discardLogger()).run(t.Context())

	handler.AssertNumberOfCalls(t, "Handle", 1)
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := NewJobManager(&MockRiderAssigner{}, &MockOutboxRelayer{}, Schedules{
		RiderAssignment: "0 0 0 1 1 *",
		OutboxRelay:     "0 0 0 1 1 *",
	}, discardLogger())

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

func TestJobManager_InvalidScheduleFails(t *testing.T) {
	manager := NewJobManager(&MockRiderAssigner{}, &MockOutboxRelayer{}, Schedules{
		RiderAssignment: "0 0 0 1 1 *",
		OutboxRelay:     "not a schedule",
	}, discardLogger())

	err := manager.StartAll()

	require.ErrorContains(t, err, "outbox relay job")
}
