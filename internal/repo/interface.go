package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/YVINAY2005/task-manager/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами.
// Все операции чтения/изменения привязаны к владельцу.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error)
	List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error)
	Count(ctx context.Context, filter model.TaskFilter) (int64, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
	CountByStatus(ctx context.Context, userID uuid.UUID) (map[string]int, error)
}

// UserRepository определяет интерфейс для работы с пользователями
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
}
