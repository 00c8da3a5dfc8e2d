package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/internal/user/usecase/command"
	"github.com/geotk/marketplace/internal/user/usecase/query"
	"github.com/geotk/marketplace/pkg/apperror"
	"github.com/geotk/marketplace/pkg/logger"
)

// UserHandler handles HTTP requests for users using CQRS pattern
type UserHandler struct {
	// Command handlers
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	updateHandler   *command.UpdateUserHandler
	deleteHandler   *command.DeleteUserHandler

	// Query handlers
	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler

	repo           domain.UserRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalUsers     prometheus.Gauge
}

// NewUserHandler creates a new user handler with CQRS pattern (manual DI)
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	return NewUserHandlerWithDI(
		command.NewRegisterUserHandler(repo),
		command.NewLoginUserHandler(repo),
		command.NewUpdateUserHandler(repo),
		command.NewDeleteUserHandler(repo),
		query.NewGetUserHandler(repo),
		query.NewListUsersHandler(repo),
		repo,
	)
}

// NewUserHandlerWithDI creates a new user handler using dependency injection
func NewUserHandlerWithDI(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	updateHandler *command.UpdateUserHandler,
	deleteHandler *command.DeleteUserHandler,
	getUserHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
	repo domain.UserRepository,
) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_service_requests_total",
			Help: "Total number of requests to user endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_service_request_duration_seconds",
			Help:    "Duration of user endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalUsers := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_service_total_users",
			Help: "Total number of registered users",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalUsers)

	return &UserHandler{
		registerHandler: registerHandler,
		loginHandler:    loginHandler,
		updateHandler:   updateHandler,
		deleteHandler:   deleteHandler,
		getUserHandler:  getUserHandler,
		listHandler:     listHandler,
		repo:            repo,
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		totalUsers:      totalUsers,
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
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/auth/register", h.metricsMiddleware("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.metricsMiddleware("/auth/login", h.Login)).Methods("POST")
	router.HandleFunc("/users", h.metricsMiddleware("/users", h.ListUsers)).Methods("GET")
	router.HandleFunc("/users/{user_id}", h.metricsMiddleware("/users/{user_id}", h.GetUser)).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/users/{user_id}", h.metricsMiddleware("/users/{user_id}", AuthMiddleware(h.UpdateUser))).Methods("PUT")
	router.HandleFunc("/users/{user_id}", h.metricsMiddleware("/users/{user_id}", AuthMiddleware(h.DeleteUser))).Methods("DELETE")
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		FullName    string `json:"full_name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		Bio         string `json:"bio"`
		Country     string `json:"country"`
		City        string `json:"city"`
		PhoneNumber string `json:"phone_number"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperror.Invalidf("invalid request body"))
		return
	}

	cmd := command.RegisterUserCommand{
		Username:    req.Username,
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		Bio:         req.Bio,
		Country:     req.Country,
		City:        req.City,
		PhoneNumber: req.PhoneNumber,
	}

	user, err := h.registerHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to register user")
		respondError(w, err)
		return
	}

	h.updateUsersMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperror.Invalidf("invalid request body"))
		return
	}

	resp, err := h.loginHandler.Handle(command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Str("username", req.Username).Msg("Login failed")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    resp,
	})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.listHandler.Handle(query.ListUsersQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list users")
		respondError(w, err)
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"users":  users,
			"total":  count,
			"offset": offset,
		},
	})
}

// GetUser handles GET /users/{user_id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    user,
	})
}

// UpdateUser handles PUT /users/{user_id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, err)
		return
	}

	if authID, ok := AuthenticatedUserID(r); !ok || authID != id {
		respondAuthError(w, http.StatusForbidden, "Cannot modify another user's profile")
		return
	}

	var req struct {
		FullName    *string `json:"full_name"`
		Email       *string `json:"email"`
		Bio         *string `json:"bio"`
		Country     *string `json:"country"`
		City        *string `json:"city"`
		PhoneNumber *string `json:"phone_number"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperror.Invalidf("invalid request body"))
		return
	}

	user, err := h.updateHandler.Handle(command.UpdateUserCommand{
		ID:          id,
		FullName:    req.FullName,
		Email:       req.Email,
		Bio:         req.Bio,
		Country:     req.Country,
		City:        req.City,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("user_id", id).Msg("Failed to update user")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}

// DeleteUser handles DELETE /users/{user_id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, err)
		return
	}

	if authID, ok := AuthenticatedUserID(r); !ok || authID != id {
		respondAuthError(w, http.StatusForbidden, "Cannot delete another user's account")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteUserCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Uint("user_id", id).Msg("Failed to delete user")
		respondError(w, err)
		return
	}

	h.updateUsersMetric()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "User deleted successfully",
	})
}

// updateUsersMetric updates the total users gauge
func (h *UserHandler) updateUsersMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.totalUsers.Set(float64(count))
	}
}

// pathID parses a numeric id path variable
func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, apperror.Invalidf("invalid %s", name)
	}
	return uint(id), nil
}
