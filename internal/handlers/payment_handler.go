package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/payment-processor/internal/models"
	"github.com/bankcore/payment-processor/internal/models/dto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payment_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "endpoint"})
)

// PaymentService is the handler's view of the transfer engine.
type PaymentService interface {
	ProcessBatch(ctx context.Context, requests []*models.PaymentRequest) models.BatchSummary
	Process(ctx context.Context, req *models.PaymentRequest) *models.PaymentRequest
	Request(ctx context.Context, id string) (*models.PaymentRequest, error)
	Metrics() models.MetricsSnapshot
	ResetMetrics()
}

type PaymentHandler struct {
	Service PaymentService
}

func NewPaymentHandler(s PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: s}
}

// POST /payments/process
func (h *PaymentHandler) ProcessBatch(c *gin.Context) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/payments/process"))
	defer timer.ObserveDuration()

	var req dto.Batch
	if err := c.ShouldBindJSON(&req); err != nil {
		httpRequestsTotal.WithLabelValues("POST", "/payments/process", "400").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Transfers) == 0 {
		httpRequestsTotal.WithLabelValues("POST", "/payments/process", "400").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "transfers must not be empty"})
		return
	}

	requests := req.ToEntities()
	summary := h.Service.ProcessBatch(c.Request.Context(), requests)

	httpRequestsTotal.WithLabelValues("POST", "/payments/process", "200").Inc()
	c.JSON(http.StatusOK, gin.H{
		"summary":  summary,
		"requests": requests,
	})
}

// POST /payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/payments"))
	defer timer.ObserveDuration()

	var req dto.Transfer
	if err := c.ShouldBindJSON(&req); err != nil {
		httpRequestsTotal.WithLabelValues("POST", "/payments", "400").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := h.Service.Process(c.Request.Context(), req.ToEntity())

	httpRequestsTotal.WithLabelValues("POST", "/payments", "200").Inc()
	c.JSON(http.StatusOK, result)
}

// GET /payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	req, err := h.Service.Request(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpRequestsTotal.WithLabelValues("GET", "/payments/:id", "404").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "payment request not found"})
		return
	}
	httpRequestsTotal.WithLabelValues("GET", "/payments/:id", "200").Inc()
	c.JSON(http.StatusOK, req)
}

// GET /payments/metrics
func (h *PaymentHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Metrics())
}

// POST /payments/metrics/reset
func (h *PaymentHandler) ResetMetrics(c *gin.Context) {
	h.Service.ResetMetrics()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// GET /health
func (h *PaymentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleEvents processes inbound Kafka messages. transfers.requested
// instructions are run through the engine; the outcome event is published by
// the engine itself.
func (h *PaymentHandler) HandleEvents(ctx context.Context, topic string, value []byte) error {
	switch topic {
	case models.TransferRequestedTopic:
		var event models.TransferRequestedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			logrus.Errorf("Error parsing transfer requested event %s", err.Error())
			return err
		}

		req := models.NewPaymentRequest(event.FromAccountID, event.ToAccountID, event.Amount)
		result := h.Service.Process(ctx, req)
		logrus.Infof("transfer %s from event settled as %s", result.RequestID, result.Status)
	}

	return nil
}
