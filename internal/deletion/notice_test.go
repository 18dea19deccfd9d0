package deletion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slshults/gpra-web-sub001/internal/backend"
	"github.com/slshults/gpra-web-sub001/internal/domain"
	"github.com/slshults/gpra-web-sub001/internal/testutil"
)

func newNoticeFixture(t *testing.T, schedule *domain.DeletionSchedule) (*NoticeController, *fakeStore, *testutil.MockDeletionAPI, *testutil.FakeEnv) {
	t.Helper()
	snap := testutil.PaidSnapshot()
	snap.DeletionSchedule = schedule
	store := &fakeStore{snap: snap}
	api := new(testutil.MockDeletionAPI)
	env := testutil.NewFakeEnv()
	controller := NewNoticeController(store, api, env, "/", testutil.NewTestLogger())
	return controller, store, api, env
}

func TestNotice_Schedule(t *testing.T) {
	schedule := &domain.DeletionSchedule{
		ScheduledDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Kind:          domain.DeletionScheduled,
		RefundAmount:  12.50,
	}
	controller, _, _, _ := newNoticeFixture(t, schedule)

	assert.Equal(t, schedule, controller.Schedule())
}

func TestNotice_CancelDeletion(t *testing.T) {
	controller, store, api, env := newNoticeFixture(t, &domain.DeletionSchedule{})
	api.On("CancelScheduledDeletion", mock.Anything).Return(nil).Once()

	require.NoError(t, controller.CancelDeletion(context.Background()))

	assert.True(t, store.invalidated, "session invalidated so dependents re-read")
	assert.Equal(t, []string{"/"}, env.Navigations(), "page reloads after cancel")
	api.AssertExpectations(t)
}

func TestNotice_CancelFailureLeavesSession(t *testing.T) {
	controller, store, api, env := newNoticeFixture(t, &domain.DeletionSchedule{})
	api.On("CancelScheduledDeletion", mock.Anything).Return(&backend.APIError{
		Status:  500,
		Message: "try again later",
	}).Once()

	err := controller.CancelDeletion(context.Background())
	assert.Error(t, err)
	assert.False(t, store.invalidated)
	assert.Empty(t, env.Navigations())
}

func TestNotice_DismissIsSessionLocal(t *testing.T) {
	controller, _, api, _ := newNoticeFixture(t, &domain.DeletionSchedule{})

	assert.False(t, controller.Dismissed())
	controller.Dismiss()
	assert.True(t, controller.Dismissed())

	// Dismissal never touches the backend record
	api.AssertNotCalled(t, "CancelScheduledDeletion", mock.Anything)
}
