package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/geotk/marketplace/internal/review/domain"
	"github.com/geotk/marketplace/internal/review/usecase/command"
	"github.com/geotk/marketplace/internal/review/usecase/query"
	userhttp "github.com/geotk/marketplace/internal/user/delivery/http"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/kafka"
	"github.com/geotk/marketplace/pkg/apperror"
	"github.com/geotk/marketplace/pkg/logger"
)

// ReviewHandler handles HTTP requests for reviews using CQRS pattern
type ReviewHandler struct {
	// Command handlers
	createHandler *command.CreateReviewHandler
	updateHandler *command.UpdateReviewHandler
	deleteHandler *command.DeleteReviewHandler

	// Query handlers
	getReviewHandler   *query.GetReviewHandler
	listHandler        *query.ListReviewsHandler
	userReviewsHandler *query.ListUserReviewsHandler

	repo           domain.ReviewRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalReviews   prometheus.Gauge
}

// NewReviewHandler creates a new review handler with CQRS pattern (manual DI)
func NewReviewHandler(reviews domain.ReviewRepository, users userdomain.UserRepository, publisher *kafka.Publisher) *ReviewHandler {
	return NewReviewHandlerWithDI(
		command.NewCreateReviewHandler(reviews, users, publisher),
		command.NewUpdateReviewHandler(reviews),
		command.NewDeleteReviewHandler(reviews),
		query.NewGetReviewHandler(reviews),
		query.NewListReviewsHandler(reviews),
		query.NewListUserReviewsHandler(reviews, users),
		reviews,
	)
}

// NewReviewHandlerWithDI creates a new review handler using dependency injection
func NewReviewHandlerWithDI(
	createHandler *command.CreateReviewHandler,
	updateHandler *command.UpdateReviewHandler,
	deleteHandler *command.DeleteReviewHandler,
	getReviewHandler *query.GetReviewHandler,
	listHandler *query.ListReviewsHandler,
	userReviewsHandler *query.ListUserReviewsHandler,
	repo domain.ReviewRepository,
) *ReviewHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_service_requests_total",
			Help: "Total number of requests to review endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "review_service_request_duration_seconds",
			Help:    "Duration of review endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalReviews := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "review_service_total_reviews",
			Help: "Total number of reviews",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalReviews)

	return &ReviewHandler{
		createHandler:      createHandler,
		updateHandler:      updateHandler,
		deleteHandler:      deleteHandler,
		getReviewHandler:   getReviewHandler,
		listHandler:        listHandler,
		userReviewsHandler: userReviewsHandler,
		repo:               repo,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		totalReviews:       totalReviews,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *ReviewHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *ReviewHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/reviews", h.metricsMiddleware("/reviews", h.ListReviews)).Methods("GET")
	router.HandleFunc("/reviews/{review_id}", h.metricsMiddleware("/reviews/{review_id}", h.GetReview)).Methods("GET")
	router.HandleFunc("/users/{user_id}/reviews/written", h.metricsMiddleware("/users/{user_id}/reviews/written", h.ListWrittenReviews)).Methods("GET")
	router.HandleFunc("/users/{user_id}/reviews/received", h.metricsMiddleware("/users/{user_id}/reviews/received", h.ListReceivedReviews)).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/reviews", h.metricsMiddleware("/reviews", userhttp.AuthMiddleware(h.CreateReview))).Methods("POST")
	router.HandleFunc("/reviews/{review_id}", h.metricsMiddleware("/reviews/{review_id}", userhttp.AuthMiddleware(h.UpdateReview))).Methods("PUT")
	router.HandleFunc("/reviews/{review_id}", h.metricsMiddleware("/reviews/{review_id}", userhttp.AuthMiddleware(h.DeleteReview))).Methods("DELETE")
}

type reviewPayload struct {
	ReviewerID *uint      `json:"reviewer_id"`
	RevieweeID *uint      `json:"reviewee_id"`
	Rating     *int       `json:"rating"`
	Comment    *string    `json:"comment"`
	Date       *time.Time `json:"date"`
}

// CreateReview handles POST /reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperror.Invalidf("invalid request body"))
		return
	}

	cmd := command.CreateReviewCommand{}
	if req.ReviewerID != nil {
		cmd.ReviewerID = *req.ReviewerID
	}
	if req.RevieweeID != nil {
		cmd.RevieweeID = *req.RevieweeID
	}
	if req.Rating != nil {
		cmd.Rating = *req.Rating
	}
	if req.Comment != nil {
		cmd.Comment = *req.Comment
	}
	if req.Date != nil {
		cmd.Date = *req.Date
	}

	review, err := h.createHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create review")
		respondError(w, err)
		return
	}

	h.updateReviewsMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Review created successfully",
		Data:    review,
	})
}

// GetReview handles GET /reviews/{review_id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "review_id")
	if err != nil {
		respondError(w, err)
		return
	}

	review, err := h.getReviewHandler.Handle(query.GetReviewQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    review,
	})
}

// ListReviews handles GET /reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	reviews, err := h.listHandler.Handle(query.ListReviewsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list reviews")
		respondError(w, err)
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"reviews": reviews,
			"total":   count,
			"offset":  offset,
		},
	})
}

// UpdateReview handles PUT /reviews/{review_id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "review_id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req reviewPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperror.Invalidf("invalid request body"))
		return
	}

	review, err := h.updateHandler.Handle(command.UpdateReviewCommand{
		ReviewID:   id,
		ReviewerID: req.ReviewerID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Date:       req.Date,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("review_id", id).Msg("Failed to update review")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Review updated successfully",
		Data:    review,
	})
}

// DeleteReview handles DELETE /reviews/{review_id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "review_id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteReviewCommand{ReviewID: id}); err != nil {
		logger.Logger.Error().Err(err).Uint("review_id", id).Msg("Failed to delete review")
		respondError(w, err)
		return
	}

	h.updateReviewsMetric()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Review deleted successfully",
	})
}

// ListWrittenReviews handles GET /users/{user_id}/reviews/written
func (h *ReviewHandler) ListWrittenReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, err)
		return
	}

	reviews, err := h.userReviewsHandler.HandleWritten(query.ListWrittenReviewsQuery{UserID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    reviews,
	})
}

// ListReceivedReviews handles GET /users/{user_id}/reviews/received
func (h *ReviewHandler) ListReceivedReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, err)
		return
	}

	reviews, err := h.userReviewsHandler.HandleReceived(query.ListReceivedReviewsQuery{UserID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    reviews,
	})
}

// updateReviewsMetric updates the total reviews gauge
func (h *ReviewHandler) updateReviewsMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.totalReviews.Set(float64(count))
	}
}
