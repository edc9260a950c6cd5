package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"catalog-service/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockItemService is a mock implementation of ItemService.
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) Search(ctx context.Context, filter model.SearchFilter) (*model.SearchResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SearchResult), args.Error(1)
}

func (m *MockItemService) Create(ctx context.Context, req *model.ItemRequest) (*model.Item, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) GetByID(ctx context.Context, id string) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) Update(ctx context.Context, id string, req *model.ItemRequest) (*model.Item, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func testItem() *model.Item {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &model.Item{
		ID:        "item-1",
		Name:      "Gaming Laptop",
		Category:  "Electronics",
		Price:     2499.99,
		InStock:   true,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestItemHandler_Search(t *testing.T) {
	logger := zerolog.Nop()

	result := &model.SearchResult{Items: []model.Item{*testItem()}, Total: 1, Page: 1, PageSize: 20}

	tests := []struct {
		name           string
		queryParams    string
		expectedFilter model.SearchFilter
		mockReturn     *model.SearchResult
		mockError      error
		expectedStatus int
	}{
		{
			name:           "No parameters",
			queryParams:    "",
			expectedFilter: model.SearchFilter{},
			mockReturn:     result,
			expectedStatus: http.StatusOK,
		},
		{
			name:        "All parameters",
			queryParams: "?query=laptop&category=Electronics&minPrice=100&maxPrice=3000.5&inStock=true&page=2&pageSize=5",
			expectedFilter: model.SearchFilter{
				Query:    strPtr("laptop"),
				Category: strPtr("Electronics"),
				MinPrice: floatPtr(100),
				MaxPrice: floatPtr(3000.5),
				InStock:  boolPtr(true),
				Page:     2,
				PageSize: 5,
			},
			mockReturn:     result,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Any inStock value other than true means false",
			queryParams:    "?inStock=yes",
			expectedFilter: model.SearchFilter{InStock: boolPtr(false)},
			mockReturn:     result,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unparseable numbers are ignored",
			queryParams:    "?minPrice=cheap&maxPrice=&page=first&pageSize=many",
			expectedFilter: model.SearchFilter{},
			mockReturn:     result,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Non-finite price bounds are ignored",
			queryParams:    "?minPrice=NaN&maxPrice=Inf",
			expectedFilter: model.SearchFilter{},
			mockReturn:     result,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Negative infinity is ignored",
			queryParams:    "?minPrice=-Infinity&maxPrice=800",
			expectedFilter: model.SearchFilter{MaxPrice: floatPtr(800)},
			mockReturn:     result,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Service error",
			queryParams:    "",
			expectedFilter: model.SearchFilter{},
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockItemService)
			handler := NewItemHandler(mockService, logger)

			mockService.On("Search", mock.Anything, tt.expectedFilter).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/catalog/search"+tt.queryParams, nil)
			w := httptest.NewRecorder()

			handler.Search(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var body model.SearchResult
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.mockReturn.Total, body.Total)
				assert.Len(t, body.Items, len(tt.mockReturn.Items))
			} else {
				body := decodeError(t, w)
				assert.Equal(t, http.StatusInternalServerError, body.Code)
				assert.Equal(t, MessageInternalError, body.Message)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestItemHandler_Search_EmptyItemsEncodeAsArray(t *testing.T) {
	mockService := new(MockItemService)
	handler := NewItemHandler(mockService, zerolog.Nop())

	mockService.On("Search", mock.Anything, mock.Anything).
		Return(&model.SearchResult{Items: []model.Item{}, Total: 0, Page: 1, PageSize: 20}, nil)

	req := httptest.NewRequest(http.MethodGet, "/catalog/search?query=nothing", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"total":0,"page":1,"pageSize":20}`, w.Body.String())
}

func TestItemHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name            string
		body            string
		expectedRequest *model.ItemRequest
		mockReturn      *model.Item
		mockError       error
		expectedStatus  int
		expectedMessage string
		expectService   bool
	}{
		{
			name: "Success",
			body: `{"name":"Gaming Laptop","category":"Electronics","price":2499.99,"inStock":true}`,
			expectedRequest: &model.ItemRequest{
				Name: strPtr("Gaming Laptop"), Category: strPtr("Electronics"),
				Price: floatPtr(2499.99), InStock: boolPtr(true),
			},
			mockReturn:     testItem(),
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:            "Missing fields",
			body:            `{"name":"Test"}`,
			expectedRequest: &model.ItemRequest{Name: strPtr("Test")},
			mockError:       model.ErrMissingField,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Missing required fields",
			expectService:   true,
		},
		{
			name: "Negative price",
			body: `{"name":"Test","category":"Test","price":-10,"inStock":true}`,
			expectedRequest: &model.ItemRequest{
				Name: strPtr("Test"), Category: strPtr("Test"), Price: floatPtr(-10), InStock: boolPtr(true),
			},
			mockError:       model.ErrInvalidPrice,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid price value",
			expectService:   true,
		},
		{
			name:            "Empty body is an empty payload",
			body:            ``,
			expectedRequest: &model.ItemRequest{},
			mockError:       model.ErrMissingField,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Missing required fields",
			expectService:   true,
		},
		{
			name:            "Non-numeric price",
			body:            `{"name":"Test","category":"Test","price":"abc","inStock":true}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid price value",
		},
		{
			name:            "Malformed JSON",
			body:            `{"name":`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
		{
			name:            "Wrong type for another field",
			body:            `{"name":42,"category":"Test","price":1,"inStock":true}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
		{
			name: "Service error",
			body: `{"name":"Test","category":"Test","price":1,"inStock":false}`,
			expectedRequest: &model.ItemRequest{
				Name: strPtr("Test"), Category: strPtr("Test"), Price: floatPtr(1), InStock: boolPtr(false),
			},
			mockError:       errors.New("disk full"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Internal server error",
			expectService:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockItemService)
			handler := NewItemHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Create", mock.Anything, tt.expectedRequest).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/catalog/items", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMessage != "" {
				body := decodeError(t, w)
				assert.Equal(t, tt.expectedStatus, body.Code)
				assert.Equal(t, tt.expectedMessage, body.Message)
			}
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
				assert.JSONEq(t, `{
					"id":"item-1","name":"Gaming Laptop","description":null,"category":"Electronics",
					"price":2499.99,"inStock":true,
					"createdAt":"2024-05-01T12:00:00Z","updatedAt":"2024-05-01T12:00:00Z"
				}`, w.Body.String())
			}

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestItemHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name            string
		id              string
		mockReturn      *model.Item
		mockError       error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "Success",
			id:             "item-1",
			mockReturn:     testItem(),
			expectedStatus: http.StatusOK,
		},
		{
			name:            "Not found",
			id:              "nonexistent-id",
			mockError:       model.ErrItemNotFound,
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Item not found",
		},
		{
			name:            "Service error",
			id:              "item-1",
			mockError:       errors.New("database error"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockItemService)
			handler := NewItemHandler(mockService, logger)

			mockService.On("GetByID", mock.Anything, tt.id).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/catalog/items/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMessage != "" {
				body := decodeError(t, w)
				assert.Equal(t, tt.expectedStatus, body.Code)
				assert.Equal(t, tt.expectedMessage, body.Message)
			} else {
				var item model.Item
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
				assert.Equal(t, tt.id, item.ID)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestItemHandler_Update(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name            string
		body            string
		expectedRequest *model.ItemRequest
		mockReturn      *model.Item
		mockError       error
		expectedStatus  int
		expectedMessage string
		expectService   bool
	}{
		{
			name:            "Partial update",
			body:            `{"price":149.99}`,
			expectedRequest: &model.ItemRequest{Price: floatPtr(149.99)},
			mockReturn:      testItem(),
			expectedStatus:  http.StatusOK,
			expectService:   true,
		},
		{
			name:            "No fields",
			body:            `{}`,
			expectedRequest: &model.ItemRequest{},
			mockError:       model.ErrNoFields,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "No fields to update",
			expectService:   true,
		},
		{
			name:            "Not found",
			body:            `{"name":"New"}`,
			expectedRequest: &model.ItemRequest{Name: strPtr("New")},
			mockError:       model.ErrItemNotFound,
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Item not found",
			expectService:   true,
		},
		{
			name:            "Non-numeric price",
			body:            `{"price":"free"}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid price value",
		},
		{
			name:            "Malformed JSON",
			body:            `not json`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockItemService)
			handler := NewItemHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Update", mock.Anything, "item-1", tt.expectedRequest).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPut, "/catalog/items/item-1", bytes.NewBufferString(tt.body))
			req.SetPathValue("id", "item-1")
			w := httptest.NewRecorder()

			handler.Update(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMessage != "" {
				body := decodeError(t, w)
				assert.Equal(t, tt.expectedStatus, body.Code)
				assert.Equal(t, tt.expectedMessage, body.Message)
			}

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestItemHandler_Delete(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name            string
		mockError       error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "Success",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:            "Not found",
			mockError:       model.ErrItemNotFound,
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Item not found",
		},
		{
			name:            "Service error",
			mockError:       errors.New("database error"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockItemService)
			handler := NewItemHandler(mockService, logger)

			mockService.On("Delete", mock.Anything, "item-1").Return(tt.mockError)

			req := httptest.NewRequest(http.MethodDelete, "/catalog/items/item-1", nil)
			req.SetPathValue("id", "item-1")
			w := httptest.NewRecorder()

			handler.Delete(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMessage != "" {
				body := decodeError(t, w)
				assert.Equal(t, tt.expectedMessage, body.Message)
			} else {
				assert.Empty(t, w.Body.String())
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	Health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}
