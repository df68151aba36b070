package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"option-set-api/internal/domain"
	"option-set-api/internal/dto"
	"option-set-api/internal/response"
)

// MockOptionSetService is a mock implementation of OptionSetService
type MockOptionSetService struct {
	ListSetsFunc            func(ctx context.Context) ([]*dto.OptionSetResponse, error)
	GetSetFunc              func(ctx context.Context, setID uuid.UUID) (*dto.OptionSetResponse, error)
	CreateSetFunc           func(ctx context.Context, req *dto.CreateOptionSetRequest) (*dto.OptionSetResponse, error)
	UpdateSetFunc           func(ctx context.Context, setID uuid.UUID, req *dto.UpdateOptionSetRequest) (*dto.OptionSetResponse, error)
	AddOptionFunc           func(ctx context.Context, setID uuid.UUID, req *dto.AddOptionRequest) (*dto.OptionResponse, error)
	UpdateOptionFunc        func(ctx context.Context, setID, optionID uuid.UUID, req *dto.UpdateOptionRequest) (*dto.OptionResponse, error)
	BulkAddOptionsFunc      func(ctx context.Context, setID uuid.UUID, req *dto.BulkAddOptionsRequest) ([]*dto.OptionResponse, error)
	ArchiveSetFunc          func(ctx context.Context, setID uuid.UUID, reason string, actor domain.Actor) (*dto.ArchivedSetResponse, error)
	ArchiveOptionFunc       func(ctx context.Context, setID, optionID uuid.UUID, reason string, actor domain.Actor) error
	RestoreArchivedSetFunc  func(ctx context.Context, archiveID uuid.UUID, newName string) (*dto.OptionSetResponse, error)
	PermanentlyDeleteFunc   func(ctx context.Context, archiveID uuid.UUID) error
	BindFieldFunc           func(ctx context.Context, setID uuid.UUID, fieldID string) (*dto.BindFieldResponse, error)
	ListArchivesFunc        func(ctx context.Context, limit, skip int, sortBy string) (*dto.ArchivePageResponse, error)
	GetArchiveFunc          func(ctx context.Context, archiveID uuid.UUID) (*dto.ArchivedSetResponse, error)
	ListArchivedOptionsFunc func(ctx context.Context, setID uuid.UUID) ([]*dto.ArchivedOptionResponse, error)
}

func (m *MockOptionSetService) ListSets(ctx context.Context) ([]*dto.OptionSetResponse, error) {
	if m.ListSetsFunc != nil {
		return m.ListSetsFunc(ctx)
	}
	return []*dto.OptionSetResponse{}, nil
}

func (m *MockOptionSetService) GetSet(ctx context.Context, setID uuid.UUID) (*dto.OptionSetResponse, error) {
	if m.GetSetFunc != nil {
		return m.GetSetFunc(ctx, setID)
	}
	return &dto.OptionSetResponse{SetID: setID}, nil
}

func (m *MockOptionSetService) CreateSet(ctx context.Context, req *dto.CreateOptionSetRequest) (*dto.OptionSetResponse, error) {
	if m.CreateSetFunc != nil {
		return m.CreateSetFunc(ctx, req)
	}
	return &dto.OptionSetResponse{SetID: uuid.New(), Name: req.Name}, nil
}

func (m *MockOptionSetService) UpdateSet(ctx context.Context, setID uuid.UUID, req *dto.UpdateOptionSetRequest) (*dto.OptionSetResponse, error) {
	if m.UpdateSetFunc != nil {
		return m.UpdateSetFunc(ctx, setID, req)
	}
	return &dto.OptionSetResponse{SetID: setID}, nil
}

func (m *MockOptionSetService) AddOption(ctx context.Context, setID uuid.UUID, req *dto.AddOptionRequest) (*dto.OptionResponse, error) {
	if m.AddOptionFunc != nil {
		return m.AddOptionFunc(ctx, setID, req)
	}
	return &dto.OptionResponse{OptionID: uuid.New(), Name: req.Name}, nil
}

func (m *MockOptionSetService) UpdateOption(ctx context.Context, setID, optionID uuid.UUID, req *dto.UpdateOptionRequest) (*dto.OptionResponse, error) {
	if m.UpdateOptionFunc != nil {
		return m.UpdateOptionFunc(ctx, setID, optionID, req)
	}
	return &dto.OptionResponse{OptionID: optionID}, nil
}

func (m *MockOptionSetService) BulkAddOptions(ctx context.Context, setID uuid.UUID, req *dto.BulkAddOptionsRequest) ([]*dto.OptionResponse, error) {
	if m.BulkAddOptionsFunc != nil {
		return m.BulkAddOptionsFunc(ctx, setID, req)
	}
	return []*dto.OptionResponse{}, nil
}

func (m *MockOptionSetService) ArchiveSet(ctx context.Context, setID uuid.UUID, reason string, actor domain.Actor) (*dto.ArchivedSetResponse, error) {
	if m.ArchiveSetFunc != nil {
		return m.ArchiveSetFunc(ctx, setID, reason, actor)
	}
	return &dto.ArchivedSetResponse{ArchiveID: uuid.New(), OriginalID: setID}, nil
}

func (m *MockOptionSetService) ArchiveOption(ctx context.Context, setID, optionID uuid.UUID, reason string, actor domain.Actor) error {
	if m.ArchiveOptionFunc != nil {
		return m.ArchiveOptionFunc(ctx, setID, optionID, reason, actor)
	}
	return nil
}

func (m *MockOptionSetService) RestoreArchivedSet(ctx context.Context, archiveID uuid.UUID, newName string) (*dto.OptionSetResponse, error) {
	if m.RestoreArchivedSetFunc != nil {
		return m.RestoreArchivedSetFunc(ctx, archiveID, newName)
	}
	return &dto.OptionSetResponse{SetID: uuid.New()}, nil
}

func (m *MockOptionSetService) PermanentlyDelete(ctx context.Context, archiveID uuid.UUID) error {
	if m.PermanentlyDeleteFunc != nil {
		return m.PermanentlyDeleteFunc(ctx, archiveID)
	}
	return nil
}

func (m *MockOptionSetService) BindField(ctx context.Context, setID uuid.UUID, fieldID string) (*dto.BindFieldResponse, error) {
	if m.BindFieldFunc != nil {
		return m.BindFieldFunc(ctx, setID, fieldID)
	}
	return &dto.BindFieldResponse{SetID: setID, FieldID: fieldID, PreviousOwners: []uuid.UUID{}}, nil
}

func (m *MockOptionSetService) ListArchives(ctx context.Context, limit, skip int, sortBy string) (*dto.ArchivePageResponse, error) {
	if m.ListArchivesFunc != nil {
		return m.ListArchivesFunc(ctx, limit, skip, sortBy)
	}
	return &dto.ArchivePageResponse{Items: []*dto.ArchivedSetResponse{}, Limit: limit, Skip: skip}, nil
}

func (m *MockOptionSetService) GetArchive(ctx context.Context, archiveID uuid.UUID) (*dto.ArchivedSetResponse, error) {
	if m.GetArchiveFunc != nil {
		return m.GetArchiveFunc(ctx, archiveID)
	}
	return &dto.ArchivedSetResponse{ArchiveID: archiveID}, nil
}

func (m *MockOptionSetService) ListArchivedOptions(ctx context.Context, setID uuid.UUID) ([]*dto.ArchivedOptionResponse, error) {
	if m.ListArchivedOptionsFunc != nil {
		return m.ListArchivedOptionsFunc(ctx, setID)
	}
	return []*dto.ArchivedOptionResponse{}, nil
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestOptionSetHandler_GetSet(t *testing.T) {
	setID := uuid.New()

	tests := []struct {
		name           string
		setID          string
		mockService    func(*MockOptionSetService)
		expectedStatus int
	}{
		{
			name:  "returns the set",
			setID: setID.String(),
			mockService: func(m *MockOptionSetService) {
				m.GetSetFunc = func(ctx context.Context, id uuid.UUID) (*dto.OptionSetResponse, error) {
					return &dto.OptionSetResponse{SetID: id, Name: "Priorities", UsedIn: []string{}}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid set id",
			setID:          "not-a-uuid",
			mockService:    func(m *MockOptionSetService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "set not found",
			setID: setID.String(),
			mockService: func(m *MockOptionSetService) {
				m.GetSetFunc = func(ctx context.Context, id uuid.UUID) (*dto.OptionSetResponse, error) {
					return nil, response.NewNotFoundError("Option set not found", id.String())
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			mockService := &MockOptionSetService{}
			tt.mockService(mockService)
			handler := NewOptionSetHandler(mockService)

			router := setupTestRouter()
			router.GET("/api/option-sets/:setId", handler.GetSet)

			req := httptest.NewRequest(http.MethodGet, "/api/option-sets/"+tt.setID, nil)
			w := httptest.NewRecorder()

			// When
			router.ServeHTTP(w, req)

			// Then
			if w.Code != tt.expectedStatus {
				t.Errorf("GetSet() status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestOptionSetHandler_CreateSet(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockService    func(*MockOptionSetService)
		expectedStatus int
	}{
		{
			name:           "creates set",
			requestBody:    dto.CreateOptionSetRequest{Name: "Priorities", Kind: "dropdown"},
			mockService:    func(m *MockOptionSetService) {},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name fails binding",
			requestBody:    map[string]string{"description": "no name"},
			mockService:    func(m *MockOptionSetService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid kind fails binding",
			requestBody:    map[string]string{"name": "Priorities", "kind": "checkbox"},
			mockService:    func(m *MockOptionSetService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "duplicate name maps to 409",
			requestBody: dto.CreateOptionSetRequest{Name: "Priorities"},
			mockService: func(m *MockOptionSetService) {
				m.CreateSetFunc = func(ctx context.Context, req *dto.CreateOptionSetRequest) (*dto.OptionSetResponse, error) {
					return nil, response.NewConflictError("An option set with this name already exists", req.Name)
				}
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			mockService := &MockOptionSetService{}
			tt.mockService(mockService)
			handler := NewOptionSetHandler(mockService)

			router := setupTestRouter()
			router.POST("/api/option-sets", handler.CreateSet)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/option-sets", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			// When
			router.ServeHTTP(w, req)

			// Then
			if w.Code != tt.expectedStatus {
				t.Errorf("CreateSet() status = %v, want %v", w.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp response.SuccessResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("Failed to unmarshal response: %v", err)
				}
				if !resp.Success {
					t.Error("CreateSet() success = false, want true")
				}
			}
		})
	}
}

func TestOptionSetHandler_AddOption(t *testing.T) {
	setID := uuid.New()

	t.Run("returns the created option", func(t *testing.T) {
		// Given
		mockService := &MockOptionSetService{
			AddOptionFunc: func(ctx context.Context, id uuid.UUID, req *dto.AddOptionRequest) (*dto.OptionResponse, error) {
				return &dto.OptionResponse{OptionID: uuid.New(), IncrementalID: 7, Name: req.Name, Position: 3}, nil
			},
		}
		handler := NewOptionSetHandler(mockService)
		router := setupTestRouter()
		router.POST("/api/option-sets/:setId/options", handler.AddOption)

		body, _ := json.Marshal(dto.AddOptionRequest{Name: "High"})
		req := httptest.NewRequest(http.MethodPost, "/api/option-sets/"+setID.String()+"/options", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// When
		router.ServeHTTP(w, req)

		// Then
		if w.Code != http.StatusCreated {
			t.Fatalf("AddOption() status = %v, want %v", w.Code, http.StatusCreated)
		}
		var resp response.SuccessResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		dataBytes, _ := json.Marshal(resp.Data)
		var option dto.OptionResponse
		if err := json.Unmarshal(dataBytes, &option); err != nil {
			t.Fatalf("Failed to unmarshal data: %v", err)
		}
		if option.IncrementalID != 7 {
			t.Errorf("AddOption() IncrementalID = %d, want 7", option.IncrementalID)
		}
	})

	t.Run("missing name fails binding", func(t *testing.T) {
		// Given
		handler := NewOptionSetHandler(&MockOptionSetService{})
		router := setupTestRouter()
		router.POST("/api/option-sets/:setId/options", handler.AddOption)

		req := httptest.NewRequest(http.MethodPost, "/api/option-sets/"+setID.String()+"/options", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// When
		router.ServeHTTP(w, req)

		// Then
		if w.Code != http.StatusBadRequest {
			t.Errorf("AddOption() status = %v, want %v", w.Code, http.StatusBadRequest)
		}
	})
}

func TestOptionSetHandler_BulkAddOptions(t *testing.T) {
	setID := uuid.New()

	t.Run("no valid options maps to 400", func(t *testing.T) {
		// Given
		mockService := &MockOptionSetService{
			BulkAddOptionsFunc: func(ctx context.Context, id uuid.UUID, req *dto.BulkAddOptionsRequest) ([]*dto.OptionResponse, error) {
				return nil, response.NewValidationError("No valid options to add", "")
			},
		}
		handler := NewOptionSetHandler(mockService)
		router := setupTestRouter()
		router.POST("/api/option-sets/:setId/options/bulk", handler.BulkAddOptions)

		body, _ := json.Marshal(dto.BulkAddOptionsRequest{Options: []dto.BulkOptionCandidate{{Name: " "}}})
		req := httptest.NewRequest(http.MethodPost, "/api/option-sets/"+setID.String()+"/options/bulk", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// When
		router.ServeHTTP(w, req)

		// Then
		if w.Code != http.StatusBadRequest {
			t.Errorf("BulkAddOptions() status = %v, want %v", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns all created options", func(t *testing.T) {
		// Given
		mockService := &MockOptionSetService{
			BulkAddOptionsFunc: func(ctx context.Context, id uuid.UUID, req *dto.BulkAddOptionsRequest) ([]*dto.OptionResponse, error) {
				return []*dto.OptionResponse{
					{OptionID: uuid.New(), IncrementalID: 1, Name: "Low"},
					{OptionID: uuid.New(), IncrementalID: 2, Name: "High"},
				}, nil
			},
		}
		handler := NewOptionSetHandler(mockService)
		router := setupTestRouter()
		router.POST("/api/option-sets/:setId/options/bulk", handler.BulkAddOptions)

		body, _ := json.Marshal(dto.BulkAddOptionsRequest{Options: []dto.BulkOptionCandidate{{Name: "Low"}, {Name: "High"}}})
		req := httptest.NewRequest(http.MethodPost, "/api/option-sets/"+setID.String()+"/options/bulk", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// When
		router.ServeHTTP(w, req)

		// Then
		if w.Code != http.StatusCreated {
			t.Fatalf("BulkAddOptions() status = %v, want %v", w.Code, http.StatusCreated)
		}
		var resp response.SuccessResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		dataBytes, _ := json.Marshal(resp.Data)
		var options []*dto.OptionResponse
		if err := json.Unmarshal(dataBytes, &options); err != nil {
			t.Fatalf("Failed to unmarshal data: %v", err)
		}
		if len(options) != 2 {
			t.Errorf("BulkAddOptions() returned %d options, want 2", len(options))
		}
	})
}

func TestOptionSetHandler_BindField(t *testing.T) {
	setID := uuid.New()

	t.Run("passes the field id through", func(t *testing.T) {
		// Given
		var gotFieldID string
		mockService := &MockOptionSetService{
			BindFieldFunc: func(ctx context.Context, id uuid.UUID, fieldID string) (*dto.BindFieldResponse, error) {
				gotFieldID = fieldID
				return &dto.BindFieldResponse{SetID: id, FieldID: fieldID, PreviousOwners: []uuid.UUID{}}, nil
			},
		}
		handler := NewOptionSetHandler(mockService)
		router := setupTestRouter()
		router.PUT("/api/option-sets/:setId/field", handler.BindField)

		body, _ := json.Marshal(dto.BindFieldRequest{FieldID: "field-123"})
		req := httptest.NewRequest(http.MethodPut, "/api/option-sets/"+setID.String()+"/field", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// When
		router.ServeHTTP(w, req)

		// Then
		if w.Code != http.StatusOK {
			t.Fatalf("BindField() status = %v, want %v", w.Code, http.StatusOK)
		}
		if gotFieldID != "field-123" {
			t.Errorf("BindField() passed fieldId = %q, want field-123", gotFieldID)
		}
	})

	t.Run("empty field id releases the binding", func(t *testing.T) {
		// Given
		called := false
		mockService := &MockOptionSetService{
			BindFieldFunc: func(ctx context.Context, id uuid.UUID, fieldID string) (*dto.BindFieldResponse, error) {
				called = true
				if fieldID != "" {
					t.Errorf("BindField() fieldId = %q, want empty", fieldID)
				}
				return &dto.BindFieldResponse{SetID: id, PreviousOwners: []uuid.UUID{}}, nil
			},
		}
		handler := NewOptionSetHandler(mockService)
		router := setupTestRouter()
		router.PUT("/api/option-sets/:setId/field", handler.BindField)

		req := httptest.NewRequest(http.MethodPut, "/api/option-sets/"+setID.String()+"/field", bytes.NewBufferString(`{"fieldId":""}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// When
		router.ServeHTTP(w, req)

		// Then
		if w.Code != http.StatusOK {
			t.Fatalf("BindField() status = %v, want %v", w.Code, http.StatusOK)
		}
		if !called {
			t.Error("BindField() service was not called")
		}
	})
}

func TestOptionSetHandler_UpdateOption(t *testing.T) {
	setID := uuid.New()
	optionID := uuid.New()

	t.Run("option not found maps to 404", func(t *testing.T) {
		// Given
		mockService := &MockOptionSetService{
			UpdateOptionFunc: func(ctx context.Context, sID, oID uuid.UUID, req *dto.UpdateOptionRequest) (*dto.OptionResponse, error) {
				return nil, response.NewNotFoundError("Option not found", oID.String())
			},
		}
		handler := NewOptionSetHandler(mockService)
		router := setupTestRouter()
		router.PATCH("/api/option-sets/:setId/options/:optionId", handler.UpdateOption)

		body, _ := json.Marshal(dto.UpdateOptionRequest{})
		req := httptest.NewRequest(http.MethodPatch, "/api/option-sets/"+setID.String()+"/options/"+optionID.String(), bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// When
		router.ServeHTTP(w, req)

		// Then
		if w.Code != http.StatusNotFound {
			t.Errorf("UpdateOption() status = %v, want %v", w.Code, http.StatusNotFound)
		}
	})
}
