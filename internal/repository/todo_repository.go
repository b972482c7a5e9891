package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homeboard/homeboard-backend/internal/domain"
)

// TodoRepository defines the data operations for todos. Single-entity lookups
// and lists are visibility-scoped: a todo resolves only when the user owns it
// or belongs to the group it is shared with. Soft-deleted rows never resolve.
type TodoRepository interface {
	FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Todo, error)
	FindAllVisible(ctx context.Context, userID uint) ([]domain.Todo, error)
	Save(ctx context.Context, todo *domain.Todo) error
	SoftDelete(ctx context.Context, id uint) error
	SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error
}

type gormTodoRepository struct {
	db *gorm.DB
}

func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

// visibleTodos scopes a query to rows the user owns or shares a group with.
func visibleTodos(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"todos.owner_id = ? OR todos.group_id IN (SELECT group_id FROM group_users WHERE user_id = ?)",
			userID, userID,
		)
	}
}

func (r *gormTodoRepository) FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.WithContext(ctx).
		Scopes(visibleTodos(userID)).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("tasks.status ASC, tasks.id ASC") }).
		Preload("Owner").
		Preload("Group.Users").
		First(&todo, id).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *gormTodoRepository) FindAllVisible(ctx context.Context, userID uint) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := r.db.WithContext(ctx).
		Scopes(visibleTodos(userID)).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("tasks.status ASC, tasks.id ASC") }).
		Preload("Owner").
		Preload("Group").
		Order("todos.updated_at DESC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// Save persists the todo and replaces its task list wholesale: tasks missing
// from todo.Tasks are soft-deleted, the rest are updated or created. Runs in
// one transaction so the aggregate commits or rolls back as a unit.
func (r *gormTodoRepository) Save(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(todo).Error; err != nil {
			return err
		}

		kept := make([]uint, 0, len(todo.Tasks))
		for i := range todo.Tasks {
			if todo.Tasks[i].ID != 0 {
				kept = append(kept, todo.Tasks[i].ID)
			}
		}
		removal := tx.Where("todo_id = ?", todo.ID)
		if len(kept) > 0 {
			removal = removal.Where("id NOT IN ?", kept)
		}
		if err := removal.Delete(&domain.Task{}).Error; err != nil {
			return err
		}

		for i := range todo.Tasks {
			todo.Tasks[i].TodoID = todo.ID
			if err := tx.Save(&todo.Tasks[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormTodoRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id = ?", id).Delete(&domain.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Todo{}, id).Error
	})
}

func (r *gormTodoRepository) SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var visible []uint
		err := tx.Model(&domain.Todo{}).
			Scopes(visibleTodos(userID)).
			Where("todos.id IN ?", ids).
			Pluck("todos.id", &visible).Error
		if err != nil || len(visible) == 0 {
			return err
		}
		if err := tx.Where("todo_id IN ?", visible).Delete(&domain.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Todo{}, visible).Error
	})
}
