package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/bankcore/payment-processor/internal/handlers"
	"github.com/bankcore/payment-processor/internal/models"
	"github.com/bankcore/payment-processor/internal/repository/memory"
	"github.com/bankcore/payment-processor/internal/service"
)

func setupRouter(t *testing.T) (*gin.Engine, *memory.AccountRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := memory.NewAccountRepo(map[int64]int64{1: 500, 2: 200})
	processor := service.NewPaymentProcessor(repo, memory.NewPaymentRepo(), nil, service.Config{
		PoolSize:       4,
		MaxAttempts:    3,
		AttemptTimeout: 2 * time.Second,
		MinAmount:      1,
		MaxAmount:      10_000_000,
		RetryBaseDelay: time.Millisecond,
	}, logger)
	t.Cleanup(processor.Close)

	h := handlers.NewPaymentHandler(processor)

	router := gin.New()
	payments := router.Group("/payments")
	payments.POST("", h.CreatePayment)
	payments.POST("/process", h.ProcessBatch)
	payments.GET("/metrics", h.GetMetrics)
	payments.POST("/metrics/reset", h.ResetMetrics)
	payments.GET("/:id", h.GetPayment)
	router.GET("/health", h.Health)
	return router, repo
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProcessBatchEndpoint(t *testing.T) {
	router, repo := setupRouter(t)

	body := map[string]interface{}{
		"transfers": []map[string]interface{}{
			{"from_account_id": 1, "to_account_id": 2, "amount": 100},
			{"from_account_id": 2, "to_account_id": 1, "amount": 1_000_000},
		},
	}

	w := doJSON(router, http.MethodPost, "/payments/process", body)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summary  models.BatchSummary     `json:"summary"`
		Requests []models.PaymentRequest `json:"requests"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Summary.TotalRequests)
	assert.Equal(t, int64(2), resp.Summary.Processed)
	assert.Equal(t, int64(1), resp.Summary.Successful)
	assert.Equal(t, int64(1), resp.Summary.Failed)
	assert.Len(t, resp.Requests, 2)

	assert.Equal(t, int64(400), repo.Balance(1))
	assert.Equal(t, int64(300), repo.Balance(2))
}

func TestProcessBatchEndpointRejectsEmptyBody(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/payments/process", map[string]interface{}{"transfers": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/payments/process", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaymentAndLookup(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/payments", map[string]interface{}{
		"from_account_id": 1, "to_account_id": 2, "amount": 50,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var created models.PaymentRequest
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.StatusSuccess, created.Status)
	assert.NotEmpty(t, created.RequestID)

	w = doJSON(router, http.MethodGet, "/payments/"+created.RequestID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched models.PaymentRequest
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.RequestID, fetched.RequestID)
	assert.Equal(t, models.StatusSuccess, fetched.Status)
}

func TestGetPaymentNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/payments/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpointAndReset(t *testing.T) {
	router, _ := setupRouter(t)

	doJSON(router, http.MethodPost, "/payments", map[string]interface{}{
		"from_account_id": 1, "to_account_id": 2, "amount": 50,
	})

	w := doJSON(router, http.MethodGet, "/payments/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var snapshot models.MetricsSnapshot
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, int64(1), snapshot.Processed)
	assert.Equal(t, int64(1), snapshot.Successful)
	assert.Equal(t, 4, snapshot.ThreadPoolSize)

	w = doJSON(router, http.MethodPost, "/payments/metrics/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/payments/metrics", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Zero(t, snapshot.Processed)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestHandleEventsProcessesTransferRequested(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := memory.NewAccountRepo(map[int64]int64{1: 500, 2: 200})
	processor := service.NewPaymentProcessor(repo, nil, nil, service.Config{
		PoolSize:       4,
		MaxAttempts:    3,
		AttemptTimeout: 2 * time.Second,
		MinAmount:      1,
		MaxAmount:      10_000_000,
		RetryBaseDelay: time.Millisecond,
	}, logger)
	t.Cleanup(processor.Close)

	h := handlers.NewPaymentHandler(processor)

	event := models.TransferRequestedEvent{FromAccountID: 1, ToAccountID: 2, Amount: 100}
	raw, err := json.Marshal(event)
	assert.NoError(t, err)

	err = h.HandleEvents(context.Background(), models.TransferRequestedTopic, raw)
	assert.NoError(t, err)
	assert.Equal(t, int64(400), repo.Balance(1))
	assert.Equal(t, int64(300), repo.Balance(2))
}

func TestHandleEventsRejectsMalformedPayload(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := memory.NewAccountRepo(map[int64]int64{1: 500, 2: 200})
	processor := service.NewPaymentProcessor(repo, nil, nil, service.Config{RetryBaseDelay: time.Millisecond}, logger)
	t.Cleanup(processor.Close)
	h := handlers.NewPaymentHandler(processor)

	err := h.HandleEvents(context.Background(), models.TransferRequestedTopic, []byte(`{"invalid json`))
	assert.Error(t, err)
	assert.Equal(t, int64(500), repo.Balance(1))
}
