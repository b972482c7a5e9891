package service

import (
	"context"
	"log/slog"

	"github.com/homeboard/homeboard-backend/internal/domain"
	"github.com/homeboard/homeboard-backend/internal/policy"
	"github.com/homeboard/homeboard-backend/internal/reconcile"
	"github.com/homeboard/homeboard-backend/internal/repository"
)

// TodoService implements the todo workflows: upsert (create or full update),
// partial edit, reads, and deletes. All operations run in the visibility
// scope of the connected user.
type TodoService interface {
	Upsert(ctx context.Context, user *domain.User, req TodoRequest) (*TodoResponse, bool, error)
	Edit(ctx context.Context, user *domain.User, id uint, req TodoRequest) (*TodoResponse, error)
	GetByID(ctx context.Context, user *domain.User, id uint) (*TodoResponse, error)
	List(ctx context.Context, user *domain.User) ([]TodoResponse, error)
	Delete(ctx context.Context, user *domain.User, id uint) error
	MultiDelete(ctx context.Context, user *domain.User, items []MultiDeleteItem) error
}

type todoService struct {
	todos  repository.TodoRepository
	groups repository.GroupRepository
}

func NewTodoService(todos repository.TodoRepository, groups repository.GroupRepository) TodoService {
	return &todoService{todos: todos, groups: groups}
}

// matchTask reconciles one requested task against the todo's current list.
// A request carrying an id patches the matching task and is dropped with a
// warning when no task has that id. A request without an id creates a task,
// unless its description is empty.
func (s *todoService) matchTask(todo *domain.Todo) reconcile.MatchFunc[TaskRequest, domain.Task] {
	return func(req TaskRequest) (*domain.Task, error) {
		if req.ID != 0 {
			for i := range todo.Tasks {
				if todo.Tasks[i].ID != req.ID {
					continue
				}
				task := todo.Tasks[i]
				if req.Description != "" {
					task.Description = req.Description
				}
				if req.Status != nil {
					task.Status = *req.Status
				}
				return &task, nil
			}
			slog.Warn("dropping task with unknown id", "todo_id", todo.ID, "task_id", req.ID)
			return nil, nil
		}
		if req.Description == "" {
			return nil, nil
		}
		task := domain.Task{Description: req.Description}
		if req.Status != nil {
			task.Status = *req.Status
		}
		if err := checkEntity(&task); err != nil {
			return nil, err
		}
		return &task, nil
	}
}

// Upsert creates a todo when the request carries no id, otherwise applies a
// full update to the referenced todo. The returned flag reports creation.
func (s *todoService) Upsert(ctx context.Context, user *domain.User, req TodoRequest) (*TodoResponse, bool, error) {
	todo := &domain.Todo{OwnerID: user.ID, Owner: user}
	created := true

	if req.ID != 0 {
		found, err := s.todos.FindVisibleByID(ctx, req.ID, user.ID)
		if err != nil {
			return nil, false, notFound(err, "todo", req.ID)
		}
		if !policy.CanAccess(user, found) {
			return nil, false, domain.ErrForbidden
		}
		todo = found
		created = false
	}

	if req.Name != "" {
		todo.Name = req.Name
	}
	if req.Status != nil {
		todo.Status = *req.Status
	}
	if req.Group.Present {
		group, err := resolveGroupRef(ctx, s.groups, req.Group, user.ID)
		if err != nil {
			return nil, false, err
		}
		attachGroup(group, &todo.GroupID, &todo.Group)
	}
	if req.Tasks != nil && len(*req.Tasks) > 0 {
		tasks, err := reconcile.Merge(*req.Tasks, s.matchTask(todo))
		if err != nil {
			return nil, false, err
		}
		todo.Tasks = tasks
	}

	if err := checkEntity(todo); err != nil {
		return nil, false, err
	}
	if err := s.todos.Save(ctx, todo); err != nil {
		return nil, false, mapStoreError(err)
	}
	return toTodoResponse(todo), created, nil
}

// Edit applies a partial update. It differs from Upsert on two points: a
// name shorter than six characters is ignored rather than applied, and a
// present empty task list clears the tasks instead of being skipped.
func (s *todoService) Edit(ctx context.Context, user *domain.User, id uint, req TodoRequest) (*TodoResponse, error) {
	todo, err := s.todos.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return nil, notFound(err, "todo", id)
	}
	if !policy.CanAccess(user, todo) {
		return nil, domain.ErrForbidden
	}

	if len(req.Name) > 5 {
		todo.Name = req.Name
	}
	if req.Status != nil {
		todo.Status = *req.Status
	}
	if req.Group.Present {
		group, err := resolveGroupRef(ctx, s.groups, req.Group, user.ID)
		if err != nil {
			return nil, err
		}
		attachGroup(group, &todo.GroupID, &todo.Group)
	}
	if req.Tasks != nil {
		tasks, err := reconcile.Merge(*req.Tasks, s.matchTask(todo))
		if err != nil {
			return nil, err
		}
		todo.Tasks = tasks
	}

	if err := checkEntity(todo); err != nil {
		return nil, err
	}
	if err := s.todos.Save(ctx, todo); err != nil {
		return nil, mapStoreError(err)
	}
	return toTodoResponse(todo), nil
}

func (s *todoService) GetByID(ctx context.Context, user *domain.User, id uint) (*TodoResponse, error) {
	todo, err := s.todos.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return nil, notFound(err, "todo", id)
	}
	if !policy.CanAccess(user, todo) {
		return nil, domain.ErrForbidden
	}
	return toTodoResponse(todo), nil
}

func (s *todoService) List(ctx context.Context, user *domain.User) ([]TodoResponse, error) {
	todos, err := s.todos.FindAllVisible(ctx, user.ID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	out := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		out = append(out, *toTodoResponse(&todos[i]))
	}
	return out, nil
}

func (s *todoService) Delete(ctx context.Context, user *domain.User, id uint) error {
	todo, err := s.todos.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return notFound(err, "todo", id)
	}
	if !policy.CanDelete(user, todo) {
		return domain.ErrForbidden
	}
	return mapStoreError(s.todos.SoftDelete(ctx, todo.ID))
}

// MultiDelete removes every requested todo the user can see. Invisible ids
// are skipped, so resubmitting the same body stays idempotent.
func (s *todoService) MultiDelete(ctx context.Context, user *domain.User, items []MultiDeleteItem) error {
	ids := deleteIDs(items)
	if len(ids) == 0 {
		return nil
	}
	return mapStoreError(s.todos.SoftDeleteVisible(ctx, ids, user.ID))
}
