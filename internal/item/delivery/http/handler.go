package http

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/geotk/marketplace/internal/item/domain"
	"github.com/geotk/marketplace/internal/item/usecase/command"
	"github.com/geotk/marketplace/internal/item/usecase/query"
	userhttp "github.com/geotk/marketplace/internal/user/delivery/http"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/kafka"
	"github.com/geotk/marketplace/pkg/apperror"
	"github.com/geotk/marketplace/pkg/cache"
	"github.com/geotk/marketplace/pkg/logger"
	"github.com/geotk/marketplace/pkg/storage"
)

const maxUploadBytes = 10 << 20

// ItemHandler handles HTTP requests for the catalog using CQRS pattern
type ItemHandler struct {
	// Command handlers
	createHandler         *command.CreateItemHandler
	updateHandler         *command.UpdateItemHandler
	deleteHandler         *command.DeleteItemHandler
	uploadImageHandler    *command.UploadImageHandler
	addFavoriteHandler    *command.AddFavoriteHandler
	removeFavoriteHandler *command.RemoveFavoriteHandler
	createCategoryHandler *command.CreateCategoryHandler

	// Query handlers
	getItemHandler        *query.GetItemHandler
	listItemsHandler      *query.ListItemsHandler
	listUserItemsHandler  *query.ListUserItemsHandler
	listFavoritesHandler  *query.ListFavoritesHandler
	listCategoriesHandler *query.ListCategoriesHandler
	getImageHandler       *query.GetImageHandler
	getStatsHandler       *query.GetStatsHandler

	repo        domain.ItemRepository
	redisClient *redis.Client

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalItems     prometheus.Gauge
	soldItems      prometheus.Gauge
}

// NewItemHandler creates a new item handler with CQRS pattern (manual DI)
func NewItemHandler(
	items domain.ItemRepository,
	categories domain.CategoryRepository,
	images domain.ImageRepository,
	users userdomain.UserRepository,
	blobs *storage.LocalStorage,
	publisher *kafka.Publisher,
	redisClient *redis.Client,
) *ItemHandler {
	return NewItemHandlerWithDI(
		command.NewCreateItemHandler(items, categories, users),
		command.NewUpdateItemHandler(items, categories, publisher),
		command.NewDeleteItemHandler(items, images, blobs),
		command.NewUploadImageHandler(items, images, blobs),
		command.NewAddFavoriteHandler(items, users),
		command.NewRemoveFavoriteHandler(items, users),
		command.NewCreateCategoryHandler(categories),
		query.NewGetItemHandler(items),
		query.NewListItemsHandler(items),
		query.NewListUserItemsHandler(items, users),
		query.NewListFavoritesHandler(items, users),
		query.NewListCategoriesHandler(categories),
		query.NewGetImageHandler(images, blobs),
		query.NewGetStatsHandler(items),
		items,
		redisClient,
	)
}

// NewItemHandlerWithDI creates a new item handler using dependency injection
func NewItemHandlerWithDI(
	createHandler *command.CreateItemHandler,
	updateHandler *command.UpdateItemHandler,
	deleteHandler *command.DeleteItemHandler,
	uploadImageHandler *command.UploadImageHandler,
	addFavoriteHandler *command.AddFavoriteHandler,
	removeFavoriteHandler *command.RemoveFavoriteHandler,
	createCategoryHandler *command.CreateCategoryHandler,
	getItemHandler *query.GetItemHandler,
	listItemsHandler *query.ListItemsHandler,
	listUserItemsHandler *query.ListUserItemsHandler,
	listFavoritesHandler *query.ListFavoritesHandler,
	listCategoriesHandler *query.ListCategoriesHandler,
	getImageHandler *query.GetImageHandler,
	getStatsHandler *query.GetStatsHandler,
	repo domain.ItemRepository,
	redisClient *redis.Client,
) *ItemHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_service_requests_total",
			Help: "Total number of requests to item endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "item_service_request_duration_seconds",
			Help:    "Duration of item endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalItems := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "item_service_total_items",
			Help: "Total number of listed items",
		},
	)

	soldItems := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "item_service_sold_items",
			Help: "Number of items marked as sold",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalItems)
	prometheus.MustRegister(soldItems)

	return &ItemHandler{
		createHandler:         createHandler,
		updateHandler:         updateHandler,
		deleteHandler:         deleteHandler,
		uploadImageHandler:    uploadImageHandler,
		addFavoriteHandler:    addFavoriteHandler,
		removeFavoriteHandler: removeFavoriteHandler,
		createCategoryHandler: createCategoryHandler,
		getItemHandler:        getItemHandler,
		listItemsHandler:      listItemsHandler,
		listUserItemsHandler:  listUserItemsHandler,
		listFavoritesHandler:  listFavoritesHandler,
		listCategoriesHandler: listCategoriesHandler,
		getImageHandler:       getImageHandler,
		getStatsHandler:       getStatsHandler,
		repo:                  repo,
		redisClient:           redisClient,
		requestCounter:        requestCounter,
		requestLatency:        requestLatency,
		totalItems:            totalItems,
		soldItems:             soldItems,
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
func (h *ItemHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// cached wraps read endpoints with the Redis response cache when available
func (h *ItemHandler) cached(next http.HandlerFunc) http.HandlerFunc {
	if h.redisClient == nil {
		return next
	}
	return cache.Middleware(h.redisClient, cache.DefaultConfig(), next)
}

func (h *ItemHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/items", h.metricsMiddleware("/items", h.cached(h.ListItems))).Methods("GET")
	router.HandleFunc("/items/{item_id}", h.metricsMiddleware("/items/{item_id}", h.GetItem)).Methods("GET")
	router.HandleFunc("/categories", h.metricsMiddleware("/categories", h.cached(h.ListCategories))).Methods("GET")
	router.HandleFunc("/images/{image_id}", h.metricsMiddleware("/images/{image_id}", h.GetImage)).Methods("GET")
	router.HandleFunc("/users/{user_id}/items", h.metricsMiddleware("/users/{user_id}/items", h.ListUserItems)).Methods("GET")
	router.HandleFunc("/users/{user_id}/favorites", h.metricsMiddleware("/users/{user_id}/favorites", h.ListFavorites)).Methods("GET")
	router.HandleFunc("/stats", h.metricsMiddleware("/stats", h.GetStats)).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/items", h.metricsMiddleware("/items", userhttp.AuthMiddleware(h.CreateItem))).Methods("POST")
	router.HandleFunc("/items/{item_id}", h.metricsMiddleware("/items/{item_id}", userhttp.AuthMiddleware(h.UpdateItem))).Methods("PUT")
	router.HandleFunc("/items/{item_id}", h.metricsMiddleware("/items/{item_id}", userhttp.AuthMiddleware(h.DeleteItem))).Methods("DELETE")
	router.HandleFunc("/items/{item_id}/images", h.metricsMiddleware("/items/{item_id}/images", userhttp.AuthMiddleware(h.UploadImage))).Methods("POST")
	router.HandleFunc("/categories", h.metricsMiddleware("/categories", userhttp.AuthMiddleware(h.CreateCategory))).Methods("POST")
	router.HandleFunc("/users/{user_id}/favorites/{item_id}", h.metricsMiddleware("/users/{user_id}/favorites/{item_id}", userhttp.AuthMiddleware(h.AddFavorite))).Methods("POST")
	router.HandleFunc("/users/{user_id}/favorites/{item_id}", h.metricsMiddleware("/users/{user_id}/favorites/{item_id}", userhttp.AuthMiddleware(h.RemoveFavorite))).Methods("DELETE")
}

// RegisterHealthCheck registers a database-aware health endpoint
func RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods("GET")
}

type itemPayload struct {
	ID          *uint    `json:"id"`
	Title       *string  `json:"title"`
	CategoryID  *uint    `json:"category_id"`
	SellerID    *uint    `json:"seller_id"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Condition   *string  `json:"condition"`
	Sold        *bool    `json:"sold"`
}

// CreateItem handles POST /items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperror.Invalidf("invalid request body"))
		return
	}

	cmd := command.CreateItemCommand{Description: req.Description}
	if req.Title != nil {
		cmd.Title = *req.Title
	}
	if req.CategoryID != nil {
		cmd.CategoryID = *req.CategoryID
	}
	if req.SellerID != nil {
		cmd.SellerID = *req.SellerID
	}
	if req.Price != nil {
		cmd.Price = *req.Price
	}
	if req.Condition != nil {
		cmd.Condition = *req.Condition
	}
	if req.Sold != nil {
		cmd.Sold = *req.Sold
	}

	item, err := h.createHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create item")
		respondError(w, err)
		return
	}

	h.updateItemsMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Item created successfully",
		Data:    item,
	})
}

// GetItem handles GET /items/{item_id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item_id")
	if err != nil {
		respondError(w, err)
		return
	}

	item, err := h.getItemHandler.Handle(query.GetItemQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    item,
	})
}

// ListItems handles GET /items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	categoryID, _ := strconv.ParseUint(r.URL.Query().Get("category_id"), 10, 32)

	items, err := h.listItemsHandler.Handle(query.ListItemsQuery{
		Limit:      limit,
		Offset:     offset,
		CategoryID: uint(categoryID),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list items")
		respondError(w, err)
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"items":  items,
			"total":  count,
			"offset": offset,
		},
	})
}

// UpdateItem handles PUT /items/{item_id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item_id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req itemPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperror.Invalidf("invalid request body"))
		return
	}

	item, err := h.updateHandler.Handle(command.UpdateItemCommand{
		ItemID:      id,
		ID:          req.ID,
		Title:       req.Title,
		CategoryID:  req.CategoryID,
		SellerID:    req.SellerID,
		Price:       req.Price,
		Description: req.Description,
		Condition:   req.Condition,
		Sold:        req.Sold,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("item_id", id).Msg("Failed to update item")
		respondError(w, err)
		return
	}

	h.updateItemsMetric()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item updated successfully",
		Data:    item,
	})
}

// DeleteItem handles DELETE /items/{item_id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item_id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteItemCommand{ItemID: id}); err != nil {
		logger.Logger.Error().Err(err).Uint("item_id", id).Msg("Failed to delete item")
		respondError(w, err)
		return
	}

	h.updateItemsMetric()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item deleted successfully",
	})
}

// UploadImage handles POST /items/{item_id}/images
func (h *ItemHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item_id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, apperror.Invalidf("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("image_file")
	if err != nil {
		respondError(w, apperror.Invalidf("image_file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, apperror.Invalidf("could not read uploaded file"))
		return
	}

	item, err := h.uploadImageHandler.Handle(command.UploadImageCommand{
		ItemID:   id,
		FileName: header.Filename,
		Data:     data,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("item_id", id).Msg("Failed to upload image")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Image uploaded successfully",
		Data:    item,
	})
}

// GetImage handles GET /images/{image_id}
func (h *ItemHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "image_id")
	if err != nil {
		respondError(w, err)
		return
	}

	img, err := h.getImageHandler.Handle(query.GetImageQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}

// ListCategories handles GET /categories
func (h *ItemHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategoriesHandler.Handle(query.ListCategoriesQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list categories")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    categories,
	})
}

// CreateCategory handles POST /categories
func (h *ItemHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperror.Invalidf("invalid request body"))
		return
	}

	category, err := h.createCategoryHandler.Handle(command.CreateCategoryCommand{Name: req.Name})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create category")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// ListUserItems handles GET /users/{user_id}/items
func (h *ItemHandler) ListUserItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := h.listUserItemsHandler.Handle(query.ListUserItemsQuery{UserID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// ListFavorites handles GET /users/{user_id}/favorites
func (h *ItemHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := h.listFavoritesHandler.Handle(query.ListFavoritesQuery{UserID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// AddFavorite handles POST /users/{user_id}/favorites/{item_id}
func (h *ItemHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "item_id")
	if err != nil {
		respondError(w, err)
		return
	}

	if authID, ok := userhttp.AuthenticatedUserID(r); !ok || authID != userID {
		respondJSON(w, http.StatusForbidden, Response{
			Success: false,
			Error:   "Cannot modify another user's favorites",
		})
		return
	}

	if err := h.addFavoriteHandler.Handle(command.AddFavoriteCommand{UserID: userID, ItemID: itemID}); err != nil {
		logger.Logger.Error().Err(err).Uint("user_id", userID).Uint("item_id", itemID).Msg("Failed to add favorite")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item added to favorites",
	})
}

// RemoveFavorite handles DELETE /users/{user_id}/favorites/{item_id}
func (h *ItemHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "item_id")
	if err != nil {
		respondError(w, err)
		return
	}

	if authID, ok := userhttp.AuthenticatedUserID(r); !ok || authID != userID {
		respondJSON(w, http.StatusForbidden, Response{
			Success: false,
			Error:   "Cannot modify another user's favorites",
		})
		return
	}

	if err := h.removeFavoriteHandler.Handle(command.RemoveFavoriteCommand{UserID: userID, ItemID: itemID}); err != nil {
		logger.Logger.Error().Err(err).Uint("user_id", userID).Uint("item_id", itemID).Msg("Failed to remove favorite")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item removed from favorites",
	})
}

// GetStats handles GET /stats
func (h *ItemHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.getStatsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute catalog stats")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}

// updateItemsMetric refreshes the catalog gauges
func (h *ItemHandler) updateItemsMetric() {
	if count, err := h.repo.Count(); err == nil {
		h.totalItems.Set(float64(count))
	}
	if sold, err := h.repo.CountSold(); err == nil {
		h.soldItems.Set(float64(sold))
	}
}
