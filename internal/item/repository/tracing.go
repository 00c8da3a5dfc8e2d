package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/geotk/marketplace/internal/item/domain"
)

var tracer = otel.Tracer("item-repository")

// GormItemRepositoryWithTracing wraps GormItemRepository with tracing
type GormItemRepositoryWithTracing struct {
	*GormItemRepository
}

// NewGormItemRepositoryWithTracing creates a new repository with tracing
func NewGormItemRepositoryWithTracing(db *gorm.DB) *GormItemRepositoryWithTracing {
	return &GormItemRepositoryWithTracing{
		GormItemRepository: NewGormItemRepository(db),
	}
}

// CreateWithContext creates an item inside a span
func (r *GormItemRepositoryWithTracing) CreateWithContext(ctx context.Context, item *domain.Item) error {
	_, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("item.title", item.Title),
			attribute.Int("item.category_id", int(item.CategoryID)),
			attribute.Int("item.seller_id", int(item.SellerID)),
			attribute.Float64("item.price", item.Price),
		),
	)
	defer span.End()

	err := r.GormItemRepository.Create(item)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("item.id", int(item.ID)))
	return nil
}

// FindByIDWithContext loads an item inside a span
func (r *GormItemRepositoryWithTracing) FindByIDWithContext(ctx context.Context, id uint) (*domain.Item, error) {
	_, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("item.id", int(id)),
		),
	)
	defer span.End()

	item, err := r.GormItemRepository.FindByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("item.title", item.Title),
		attribute.Bool("item.sold", item.Sold),
		attribute.Int("item.favorite_count", item.FavoriteCount),
	)
	return item, nil
}

// AddFavoriteWithContext records the favorite mutation inside a span
func (r *GormItemRepositoryWithTracing) AddFavoriteWithContext(ctx context.Context, userID, itemID uint) error {
	_, span := tracer.Start(ctx, "repository.AddFavorite",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("item.id", int(itemID)),
		),
	)
	defer span.End()

	err := r.GormItemRepository.AddFavorite(userID, itemID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// RemoveFavoriteWithContext records the unfavorite mutation inside a span
func (r *GormItemRepositoryWithTracing) RemoveFavoriteWithContext(ctx context.Context, userID, itemID uint) error {
	_, span := tracer.Start(ctx, "repository.RemoveFavorite",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("item.id", int(itemID)),
		),
	)
	defer span.End()

	err := r.GormItemRepository.RemoveFavorite(userID, itemID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// DeleteWithContext deletes an item inside a span
func (r *GormItemRepositoryWithTracing) DeleteWithContext(ctx context.Context, id uint) error {
	_, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(
			attribute.Int("item.id", int(id)),
		),
	)
	defer span.End()

	err := r.GormItemRepository.Delete(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
