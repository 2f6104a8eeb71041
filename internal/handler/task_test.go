package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YVINAY2005/task-manager/internal/model"
	"github.com/YVINAY2005/task-manager/internal/repo"
	"github.com/YVINAY2005/task-manager/internal/service"
	"github.com/YVINAY2005/task-manager/internal/token"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *mockTaskRepo) Get(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *mockTaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *mockTaskRepo) Count(ctx context.Context, filter model.TaskFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

func (m *mockTaskRepo) CountByStatus(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(map[string]int), args.Error(1)
}

// setupTaskRouter поднимает роутер задач так же, как main
func setupTaskRouter(t *testing.T, mockRepo *mockTaskRepo) (*chi.Mux, string, uuid.UUID) {
	t.Helper()

	tokens := token.NewManager("test-secret", time.Hour)
	taskHandler := NewTaskHandler(service.NewTaskService(mockRepo), zap.NewNop())

	r := chi.NewRouter()
	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(Authenticator(tokens))
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/stats", taskHandler.Stats)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	userID := uuid.New()
	bearer, err := tokens.Generate(userID)
	require.NoError(t, err)

	return r, bearer, userID
}

func doJSON(t *testing.T, r http.Handler, method, target, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_AuthRequired(t *testing.T) {
	r, _, _ := setupTaskRouter(t, new(mockTaskRepo))

	tests := []struct {
		name   string
		bearer string
	}{
		{name: "no token", bearer: ""},
		{name: "garbage token", bearer: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, "/api/tasks", tt.bearer, nil)

			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestTaskHandler_ExpiredToken(t *testing.T) {
	r, _, _ := setupTaskRouter(t, new(mockTaskRepo))

	expired := token.NewManager("test-secret", -time.Minute)
	bearer, err := expired.Generate(uuid.New())
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/tasks", bearer, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTaskHandler_Create(t *testing.T) {
	tests := []struct {
		name      string
		body      interface{}
		setupMock func(*mockTaskRepo, uuid.UUID)
		wantCode  int
	}{
		{
			name: "successful creation",
			body: createTaskRequest{Title: "Buy milk", Description: "2 liters"},
			setupMock: func(m *mockTaskRepo, userID uuid.UUID) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
					return task.UserID == userID && task.Title == "Buy milk"
				})).Return(model.Task{
					ID:     uuid.New(),
					UserID: userID,
					Title:  "Buy milk",
					Status: model.StatusPending,
				}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "empty body",
			body:      nil,
			setupMock: func(m *mockTaskRepo, userID uuid.UUID) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "missing title",
			body:      createTaskRequest{Description: "no title"},
			setupMock: func(m *mockTaskRepo, userID uuid.UUID) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mockTaskRepo)
			r, bearer, userID := setupTaskRouter(t, mockRepo)
			tt.setupMock(mockRepo, userID)

			w := doJSON(t, r, http.MethodPost, "/api/tasks", bearer, tt.body)

			assert.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode == http.StatusCreated {
				var resp taskResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.True(t, resp.Success)
				assert.Equal(t, "Buy milk", resp.Data.Title)
				assert.Equal(t, model.StatusPending, resp.Data.Status)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_CreateValidationShape(t *testing.T) {
	mockRepo := new(mockTaskRepo)
	r, bearer, _ := setupTaskRouter(t, mockRepo)

	w := doJSON(t, r, http.MethodPost, "/api/tasks", bearer, createTaskRequest{Title: ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "title", resp.Errors[0].Field)
	assert.Equal(t, "Title is required", resp.Errors[0].Message)
}

func TestTaskHandler_List(t *testing.T) {
	mockRepo := new(mockTaskRepo)
	r, bearer, userID := setupTaskRouter(t, mockRepo)

	tasks := []model.Task{
		{ID: uuid.New(), UserID: userID, Title: "A", Status: model.StatusPending},
		{ID: uuid.New(), UserID: userID, Title: "B", Status: model.StatusCompleted},
	}
	mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f model.TaskFilter) bool {
		return f.UserID == userID && f.Page == 2 && f.Limit == 6 &&
			f.Search == "milk" && f.Status != nil && *f.Status == model.StatusPending
	})).Return(tasks, nil)
	mockRepo.On("Count", mock.Anything, mock.Anything).Return(int64(14), nil)

	w := doJSON(t, r, http.MethodGet, "/api/tasks?search=milk&status=Pending&sort=newest&page=2&limit=6", bearer, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, int64(14), resp.Total)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 6, resp.Pagination.Limit)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Len(t, resp.Data, 2)
	mockRepo.AssertExpectations(t)
}

func TestTaskHandler_Get(t *testing.T) {
	mockRepo := new(mockTaskRepo)
	r, bearer, userID := setupTaskRouter(t, mockRepo)

	taskID := uuid.New()
	mockRepo.On("Get", mock.Anything, userID, taskID).Return(model.Task{}, repo.ErrorNotFound)

	t.Run("missing task", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/tasks/"+taskID.String(), bearer, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Task not found", body["message"])
	})

	t.Run("malformed id looks like a missing task", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/tasks/42", bearer, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_Update(t *testing.T) {
	mockRepo := new(mockTaskRepo)
	r, bearer, userID := setupTaskRouter(t, mockRepo)

	taskID := uuid.New()
	existing := model.Task{
		ID:          taskID,
		UserID:      userID,
		Title:       "Keep me",
		Description: "And me",
		Status:      model.StatusPending,
	}
	mockRepo.On("Get", mock.Anything, userID, taskID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
		return task.Title == "Keep me" && task.Status == model.StatusInProgress
	})).Return(existing, nil)

	w := doJSON(t, r, http.MethodPut, "/api/tasks/"+taskID.String(), bearer,
		map[string]string{"status": model.StatusInProgress})

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestTaskHandler_Delete(t *testing.T) {
	mockRepo := new(mockTaskRepo)
	r, bearer, userID := setupTaskRouter(t, mockRepo)

	taskID := uuid.New()
	mockRepo.On("Delete", mock.Anything, userID, taskID).Return(nil)

	w := doJSON(t, r, http.MethodDelete, "/api/tasks/"+taskID.String(), bearer, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{}, body["data"])
	mockRepo.AssertExpectations(t)
}

func TestTaskHandler_Stats(t *testing.T) {
	mockRepo := new(mockTaskRepo)
	r, bearer, userID := setupTaskRouter(t, mockRepo)

	mockRepo.On("CountByStatus", mock.Anything, userID).Return(map[string]int{
		model.StatusPending:    2,
		model.StatusInProgress: 1,
	}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/tasks/stats", bearer, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp statsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, service.Stats{Pending: 2, InProgress: 1, Completed: 0, Total: 3}, resp.Data)
}
