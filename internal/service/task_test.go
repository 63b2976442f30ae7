package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

func ptr[T any](v T) *T { return &v }

var (
	alice = model.User{ID: 1, Username: "alice", IsActive: true}
	bob   = model.User{ID: 2, Username: "bob", IsActive: true}
)

func TestTaskService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     TaskCreateInput
		setupMock func(*MockTaskRepository)
		wantErr   error
	}{
		{
			name:  "owner is the caller",
			input: TaskCreateInput{Title: "buy milk"},
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(t model.Task) bool {
					return t.Title == "buy milk" && t.OwnerID != nil && *t.OwnerID == alice.ID && !t.IsDone
				})).Return(model.Task{ID: 1, Title: "buy milk", OwnerID: ptr(alice.ID)}, nil)
			},
		},
		{
			name:      "empty title",
			input:     TaskCreateInput{Title: ""},
			setupMock: func(m *MockTaskRepository) {},
			wantErr:   ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := new(MockTaskRepository)
			tt.setupMock(tasks)
			svc := NewTaskService(tasks)

			task, err := svc.Create(context.Background(), alice, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), task.ID)
			}
			tasks.AssertExpectations(t)
		})
	}
}

func TestTaskService_Lists(t *testing.T) {
	tasks := new(MockTaskRepository)
	tasks.On("List", mock.Anything, model.TaskFilter{OwnerID: ptr(alice.ID), Query: "milk"}).
		Return([]model.Task{{ID: 1}}, nil)
	tasks.On("List", mock.Anything, model.TaskFilter{Query: "milk"}).
		Return([]model.Task{{ID: 1}, {ID: 2}}, nil)
	svc := NewTaskService(tasks)

	own, err := svc.ListOwn(context.Background(), alice, "milk")
	require.NoError(t, err)
	assert.Len(t, own, 1)

	public, err := svc.ListPublic(context.Background(), "milk")
	require.NoError(t, err)
	assert.Len(t, public, 2)

	tasks.AssertExpectations(t)
}

func TestTaskService_OwnershipIsHidden(t *testing.T) {
	owned := model.Task{ID: 7, Title: "alice's", OwnerID: ptr(alice.ID)}
	ownerless := model.Task{ID: 8, Title: "nobody's"}

	tasks := new(MockTaskRepository)
	tasks.On("Get", mock.Anything, int64(7)).Return(owned, nil)
	tasks.On("Get", mock.Anything, int64(8)).Return(ownerless, nil)
	tasks.On("Get", mock.Anything, int64(9)).Return(model.Task{}, repo.ErrorNotFound)
	svc := NewTaskService(tasks)
	ctx := context.Background()

	got, err := svc.Get(ctx, alice, 7)
	require.NoError(t, err)
	assert.Equal(t, owned, got)

	for _, id := range []int64{7, 8, 9} {
		_, err := svc.Get(ctx, bob, id)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = svc.Update(ctx, bob, id, TaskUpdateInput{IsDone: ptr(true)})
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, bob, id), ErrNotFound)
	}

	// ни одной записи от чужого пользователя
	tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	tasks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTaskService_Update(t *testing.T) {
	owned := model.Task{ID: 7, Title: "buy milk", Description: ptr("2l"), OwnerID: ptr(alice.ID)}

	t.Run("only is_done", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		tasks.On("Get", mock.Anything, int64(7)).Return(owned, nil)
		tasks.On("Update", mock.Anything, int64(7), model.TaskPatch{IsDone: ptr(true)}).
			Return(model.TaskPatch{IsDone: ptr(true)}.Apply(owned), nil)
		svc := NewTaskService(tasks)

		got, err := svc.Update(context.Background(), alice, 7, TaskUpdateInput{IsDone: ptr(true)})
		require.NoError(t, err)
		assert.True(t, got.IsDone)
		assert.Equal(t, "buy milk", got.Title)
		assert.Equal(t, ptr("2l"), got.Description)
		tasks.AssertExpectations(t)
	})

	t.Run("explicit null description", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		tasks.On("Get", mock.Anything, int64(7)).Return(owned, nil)
		tasks.On("Update", mock.Anything, int64(7), model.TaskPatch{DescriptionSet: true}).
			Return(model.TaskPatch{DescriptionSet: true}.Apply(owned), nil)
		svc := NewTaskService(tasks)

		in := TaskUpdateInput{Description: model.OptionalString{Set: true}}
		got, err := svc.Update(context.Background(), alice, 7, in)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		tasks.AssertExpectations(t)
	})

	t.Run("empty patch writes nothing", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		tasks.On("Get", mock.Anything, int64(7)).Return(owned, nil)
		svc := NewTaskService(tasks)

		got, err := svc.Update(context.Background(), alice, 7, TaskUpdateInput{})
		require.NoError(t, err)
		assert.Equal(t, owned, got)
		tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		svc := NewTaskService(new(MockTaskRepository))

		_, err := svc.Update(context.Background(), alice, 7, TaskUpdateInput{Title: ptr("")})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("deleted concurrently", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		tasks.On("Get", mock.Anything, int64(7)).Return(owned, nil)
		tasks.On("Update", mock.Anything, int64(7), mock.Anything).Return(model.Task{}, repo.ErrorNotFound)
		svc := NewTaskService(tasks)

		_, err := svc.Update(context.Background(), alice, 7, TaskUpdateInput{IsDone: ptr(true)})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTaskService_Delete(t *testing.T) {
	owned := model.Task{ID: 7, Title: "buy milk", OwnerID: ptr(alice.ID)}

	tasks := new(MockTaskRepository)
	tasks.On("Get", mock.Anything, int64(7)).Return(owned, nil).Once()
	tasks.On("Delete", mock.Anything, int64(7)).Return(nil).Once()
	tasks.On("Get", mock.Anything, int64(7)).Return(model.Task{}, repo.ErrorNotFound)
	svc := NewTaskService(tasks)

	require.NoError(t, svc.Delete(context.Background(), alice, 7))
	assert.ErrorIs(t, svc.Delete(context.Background(), alice, 7), ErrNotFound)
	tasks.AssertExpectations(t)
}

func TestTaskService_StoreFailure(t *testing.T) {
	boom := errors.New("connection reset")
	tasks := new(MockTaskRepository)
	tasks.On("Get", mock.Anything, int64(7)).Return(model.Task{}, boom)
	svc := NewTaskService(tasks)

	_, err := svc.Get(context.Background(), alice, 7)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}
