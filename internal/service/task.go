package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/YVINAY2005/task-manager/internal/model"
	"github.com/YVINAY2005/task-manager/internal/repo"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListQuery - сырые параметры запроса списка, как пришли с клиента
type ListQuery struct {
	Search string
	Status string
	Sort   string
	Page   int
	Limit  int
}

// Page - страница задач вместе с данными пагинации
type Page struct {
	Tasks      []model.Task
	Count      int
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
}

// UpdateTaskInput - частичное обновление: nil-поля не трогаем
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
}

type Stats struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
}

type TaskService struct {
	repo repo.TaskRepository
	sf   singleflight.Group
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) List(ctx context.Context, userID uuid.UUID, q ListQuery) (Page, error) {
	filter := normalize(userID, q)

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return Page{}, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Tasks:      tasks,
		Count:      len(tasks),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error) {
	return s.repo.Get(ctx, userID, taskID)
}

func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, in CreateTaskInput) (model.Task, error) {
	if in.Status == "" {
		in.Status = model.StatusPending
	}

	var verr ValidationError
	if strings.TrimSpace(in.Title) == "" {
		verr.add("title", "Title is required")
	}
	if !model.ValidStatus(in.Status) {
		verr.add("status", "Status must be one of Pending, In Progress, Completed")
	}
	if err := verr.orNil(); err != nil {
		return model.Task{}, err
	}

	return s.repo.Create(ctx, model.Task{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      in.Status,
	})
}

// Update накладывает присланные поля на существующую задачу и
// перепроверяет результат. Гонка двух обновлений решается последней записью.
func (s *TaskService) Update(ctx context.Context, userID, taskID uuid.UUID, in UpdateTaskInput) (model.Task, error) {
	task, err := s.repo.Get(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	if in.Title != nil {
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}

	var verr ValidationError
	if task.Title == "" {
		verr.add("title", "Title is required")
	}
	if !model.ValidStatus(task.Status) {
		verr.add("status", "Status must be one of Pending, In Progress, Completed")
	}
	if err := verr.orNil(); err != nil {
		return model.Task{}, err
	}

	return s.repo.Update(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, taskID)
}

// Stats считает задачи по статусам. Одновременные запросы одного
// пользователя схлопываются в один поход в БД.
func (s *TaskService) Stats(ctx context.Context, userID uuid.UUID) (Stats, error) {
	v, err, _ := s.sf.Do(userID.String(), func() (any, error) {
		return s.repo.CountByStatus(ctx, userID)
	})
	if err != nil {
		return Stats{}, err
	}

	counts := v.(map[string]int)
	return Stats{
		Pending:    counts[model.StatusPending],
		InProgress: counts[model.StatusInProgress],
		Completed:  counts[model.StatusCompleted],
		Total:      counts[model.StatusPending] + counts[model.StatusInProgress] + counts[model.StatusCompleted],
	}, nil
}

// normalize приводит сырые параметры к полностью определенному фильтру.
// Чистая функция, не зависит от языка запросов хранилища.
func normalize(userID uuid.UUID, q ListQuery) model.TaskFilter {
	filter := model.TaskFilter{
		UserID: userID,
		Search: strings.TrimSpace(q.Search),
		Sort:   model.SortNewest,
		Page:   q.Page,
		Limit:  q.Limit,
	}

	// Любой статус кроме All уходит в фильтр как точное совпадение:
	// неизвестное значение дает пустую выборку, а не все задачи
	if q.Status != "" && q.Status != "All" {
		status := q.Status
		filter.Status = &status
	}

	switch q.Sort {
	case model.SortOldest, model.SortTitle:
		filter.Sort = q.Sort
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	return filter
}

func totalPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}
