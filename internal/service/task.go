package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

type TaskCreateInput struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
}

type TaskUpdateInput struct {
	Title       *string              `json:"title" validate:"omitempty,min=1"`
	Description model.OptionalString `json:"description"`
	IsDone      *bool                `json:"is_done"`
}

func (in TaskUpdateInput) patch() model.TaskPatch {
	return model.TaskPatch{
		Title:          in.Title,
		Description:    in.Description.Value,
		DescriptionSet: in.Description.Set,
		IsDone:         in.IsDone,
	}
}

type TaskService struct {
	repo     repo.TaskRepository
	validate *validator.Validate
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo, validate: newValidator()}
}

func (s *TaskService) Create(ctx context.Context, owner model.User, in TaskCreateInput) (model.Task, error) {
	if err := validateStruct(s.validate, in); err != nil { // Валидация входных данных
		return model.Task{}, err
	}
	ownerID := owner.ID
	t, err := s.repo.Create(ctx, model.Task{
		Title:       in.Title,
		Description: in.Description,
		OwnerID:     &ownerID,
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (s *TaskService) ListOwn(ctx context.Context, owner model.User, q string) ([]model.Task, error) {
	ownerID := owner.ID
	return s.repo.List(ctx, model.TaskFilter{OwnerID: &ownerID, Query: q})
}

// ListPublic lists every task regardless of owner.
func (s *TaskService) ListPublic(ctx context.Context, q string) ([]model.Task, error) {
	return s.repo.List(ctx, model.TaskFilter{Query: q})
}

func (s *TaskService) Get(ctx context.Context, owner model.User, id int64) (model.Task, error) {
	return s.ownedTask(ctx, owner, id)
}

func (s *TaskService) Update(ctx context.Context, owner model.User, id int64, in TaskUpdateInput) (model.Task, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return model.Task{}, err
	}
	t, err := s.ownedTask(ctx, owner, id)
	if err != nil {
		return model.Task{}, err
	}
	patch := in.patch()
	if patch.Empty() {
		return t, nil
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if errors.Is(err, repo.ErrorNotFound) { // удалили между чтением и записью
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, owner model.User, id int64) error {
	if _, err := s.ownedTask(ctx, owner, id); err != nil {
		return err
	}
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repo.ErrorNotFound) {
		return ErrNotFound
	}
	return err
}

// ownedTask loads a task and hides it unless owner owns it. A missing task
// and someone else's task are indistinguishable to the caller.
func (s *TaskService) ownedTask(ctx context.Context, owner model.User, id int64) (model.Task, error) {
	t, err := s.repo.Get(ctx, id)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("get task: %w", err)
	}
	if t.OwnerID == nil || *t.OwnerID != owner.ID {
		return model.Task{}, ErrNotFound
	}
	return t, nil
}
