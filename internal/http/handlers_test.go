package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"

	"github.com/jareyesmx/personas-web/internal/inference"
	"github.com/jareyesmx/personas-web/internal/relay"
	"github.com/jareyesmx/personas-web/internal/site"
	"github.com/jareyesmx/personas-web/internal/types"
)

func TestHandler_QueryHandler(t *testing.T) {
	tests := []struct {
		name         string
		requestBody  interface{}
		setupMocks   func(*MockQueryClient)
		wantStatus   int
		wantContains string
		wantField    string
	}{
		{
			name: "successful query",
			requestBody: QueryReq{
				Question: "¿Qué opina de X?",
				Profile:  "cdmx_c-d+_18-25",
			},
			setupMocks: func(client *MockQueryClient) {
				client.EXPECT().
					Submit(gomock.Any(), "¿Qué opina de X?", inference.ProfileCDMXJoven).
					Return(&inference.QueryResult{
						RawText:         "contexto ### Respuesta: Respuesta simulada.",
						ExtractedAnswer: "Respuesta simulada.",
					}, nil)
			},
			wantStatus:   http.StatusOK,
			wantContains: "Respuesta simulada.",
		},
		{
			name:        "invalid JSON",
			requestBody: "invalid json",
			setupMocks:  func(*MockQueryClient) {},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name: "missing question",
			requestBody: QueryReq{
				Question: "",
				Profile:  "cdmx_c-d+_18-25",
			},
			setupMocks: func(client *MockQueryClient) {
				client.EXPECT().
					Submit(gomock.Any(), "", inference.ProfileCDMXJoven).
					Return(nil, &inference.ValidationError{Field: "question"})
			},
			wantStatus: http.StatusBadRequest,
			wantField:  "question",
		},
		{
			name: "missing profile",
			requestBody: QueryReq{
				Question: "¿Qué opina de X?",
				Profile:  "",
			},
			setupMocks: func(client *MockQueryClient) {
				client.EXPECT().
					Submit(gomock.Any(), "¿Qué opina de X?", inference.Profile("")).
					Return(nil, &inference.ValidationError{Field: "profile"})
			},
			wantStatus: http.StatusBadRequest,
			wantField:  "profile",
		},
		{
			name: "inference service down",
			requestBody: QueryReq{
				Question: "¿Qué opina de X?",
				Profile:  "mty_c+b_46-60",
			},
			setupMocks: func(client *MockQueryClient) {
				client.EXPECT().
					Submit(gomock.Any(), "¿Qué opina de X?", inference.ProfileMTYAdulto).
					Return(nil, &inference.TransportError{StatusCode: 500})
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "unexpected failure",
			requestBody: QueryReq{
				Question: "¿Qué opina de X?",
				Profile:  "mty_c+b_46-60",
			},
			setupMocks: func(client *MockQueryClient) {
				client.EXPECT().
					Submit(gomock.Any(), "¿Qué opina de X?", inference.ProfileMTYAdulto).
					Return(nil, errors.New("malformed response body"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := NewMockQueryClient(ctrl)
			if tt.setupMocks != nil {
				tt.setupMocks(mockClient)
			}

			handler := NewHandlers(mockClient, nil, nil)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatalf("Failed to marshal request body: %v", err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.QueryHandler(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("QueryHandler() status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantContains != "" {
				if !bytes.Contains(w.Body.Bytes(), []byte(tt.wantContains)) {
					t.Errorf("QueryHandler() body = %s, want containing %q", w.Body.String(), tt.wantContains)
				}
			}

			if tt.wantField != "" {
				var response types.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
					t.Fatalf("QueryHandler() invalid JSON response: %v", err)
				}
				if response.Field != tt.wantField {
					t.Errorf("QueryHandler() field = %q, want %q", response.Field, tt.wantField)
				}
			}
		})
	}
}

func TestHandler_ScheduleHandler(t *testing.T) {
	validMessage := relay.Message{
		Name:  "Ana Torres",
		Email: "ana.torres@example.com",
		Date:  "2026-03-12",
		Topic: "Presentación",
	}

	// A real validator error, as the relay client would return it.
	validationErr := validator.New().Struct(relay.Message{Name: "Ana Torres"})

	tests := []struct {
		name        string
		requestBody interface{}
		setupMocks  func(*MockScheduler)
		noScheduler bool
		wantStatus  int
	}{
		{
			name: "successful scheduling",
			requestBody: ScheduleReq{
				Name:  validMessage.Name,
				Email: validMessage.Email,
				Date:  validMessage.Date,
				Topic: validMessage.Topic,
			},
			setupMocks: func(scheduler *MockScheduler) {
				scheduler.EXPECT().
					Send(gomock.Any(), validMessage).
					Return(nil)
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name:        "invalid JSON",
			requestBody: "invalid json",
			setupMocks:  func(*MockScheduler) {},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name: "invalid message",
			requestBody: ScheduleReq{
				Name: "Ana Torres",
			},
			setupMocks: func(scheduler *MockScheduler) {
				scheduler.EXPECT().
					Send(gomock.Any(), gomock.Any()).
					Return(validationErr)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "relay failure",
			requestBody: ScheduleReq{
				Name:  validMessage.Name,
				Email: validMessage.Email,
				Date:  validMessage.Date,
				Topic: validMessage.Topic,
			},
			setupMocks: func(scheduler *MockScheduler) {
				scheduler.EXPECT().
					Send(gomock.Any(), validMessage).
					Return(errors.New("relay returned status 502"))
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:        "relay not configured",
			requestBody: ScheduleReq{},
			noScheduler: true,
			wantStatus:  http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockScheduler := NewMockScheduler(ctrl)
			if tt.setupMocks != nil {
				tt.setupMocks(mockScheduler)
			}

			var handler *Handler
			if tt.noScheduler {
				handler = NewHandlers(NewMockQueryClient(ctrl), nil, nil)
			} else {
				handler = NewHandlers(NewMockQueryClient(ctrl), mockScheduler, nil)
			}

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatalf("Failed to marshal request body: %v", err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ScheduleHandler(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ScheduleHandler() status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandler_ResetHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := NewMockQueryClient(ctrl)
	mockClient.EXPECT().Reset()

	handler := NewHandlers(mockClient, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/query/reset", nil)
	w := httptest.NewRecorder()

	handler.ResetHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("ResetHandler() status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("ResetHandler() invalid JSON response: %v", err)
	}
	if response["status"] != "ok" {
		t.Errorf("ResetHandler() status = %q, want %q", response["status"], "ok")
	}
}

func TestHandler_StateHandler(t *testing.T) {
	tests := []struct {
		name     string
		snapshot inference.Snapshot
		want     types.StateResponse
	}{
		{
			name:     "idle",
			snapshot: inference.Snapshot{State: inference.StateIdle},
			want:     types.StateResponse{State: "idle"},
		},
		{
			name: "has result",
			snapshot: inference.Snapshot{
				State:  inference.StateHasResult,
				Result: &inference.QueryResult{ExtractedAnswer: "Respuesta simulada."},
			},
			want: types.StateResponse{State: "result", Answer: "Respuesta simulada."},
		},
		{
			name: "has error",
			snapshot: inference.Snapshot{
				State: inference.StateHasError,
				Err:   &inference.TransportError{StatusCode: 500},
			},
			want: types.StateResponse{State: "error", Error: "inference service returned status 500"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := NewMockQueryClient(ctrl)
			mockClient.EXPECT().Snapshot().Return(tt.snapshot)

			handler := NewHandlers(mockClient, nil, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/query/state", nil)
			w := httptest.NewRecorder()

			handler.StateHandler(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("StateHandler() status = %d, want %d", w.Code, http.StatusOK)
			}

			var response types.StateResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("StateHandler() invalid JSON response: %v", err)
			}
			if response != tt.want {
				t.Errorf("StateHandler() response = %+v, want %+v", response, tt.want)
			}
		})
	}
}

func TestViewRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer, err := site.NewRenderer([]string{"cdmx_c-d+_18-25", "mty_c+b_46-60"})
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	handler := NewHandlers(NewMockQueryClient(ctrl), nil, renderer)
	router := NewRouter(handler)

	tests := []struct {
		name         string
		path         string
		wantContains string
	}{
		{
			name:         "root renders default view",
			path:         "/",
			wantContains: site.DefaultView.Title(),
		},
		{
			name:         "named view",
			path:         "/v/metodologia",
			wantContains: "Metodología",
		},
		{
			name:         "unknown view falls back to default",
			path:         "/v/no-existe",
			wantContains: site.DefaultView.Title(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("GET %s status = %d, want %d", tt.path, w.Code, http.StatusOK)
			}
			if !bytes.Contains(w.Body.Bytes(), []byte(tt.wantContains)) {
				t.Errorf("GET %s body missing %q", tt.path, tt.wantContains)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	HealthHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("HealthHandler() status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("HealthHandler() invalid JSON: %v", err)
	}

	if response["status"] != "ok" {
		t.Errorf("HealthHandler() status = %q, want %q", response["status"], "ok")
	}
}
