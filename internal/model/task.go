package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

type Task struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortTitle  = "title"
)

// TaskFilter - нормализованное описание запроса списка задач.
// UserID заполнен всегда: без фильтра по владельцу запросы не выполняются.
type TaskFilter struct {
	UserID uuid.UUID
	Search string
	Status *string
	Sort   string
	Page   int
	Limit  int
}

func (f TaskFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
