package repository

import (
	"context"
	"fmt"

	"marketplace-booking/internal/data/entity"
	"marketplace-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
}

type listingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewListingRepository(db database.PgxIface, log *zap.Logger) ListingRepository {
	return &listingRepository{
		db:  db,
		log: log.With(zap.String("repository", "listing")),
	}
}

func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	query := `
		INSERT INTO listings (id, vendor_id, title, description, category, catalog, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.VendorID,
		listing.Title,
		listing.Description,
		listing.Category,
		listing.Catalog,
		listing.IsPublished,
		listing.CreatedAt,
		listing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create listing",
			zap.Error(err),
			zap.String("vendor_id", listing.VendorID.String()),
			zap.String("title", listing.Title),
		)
		return fmt.Errorf("create listing %s: %w", listing.Title, err)
	}

	return nil
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	query := `
		SELECT id, vendor_id, title, description, category, catalog, is_published, created_at, updated_at
		FROM listings
		WHERE id = $1
	`

	var listing entity.Listing
	err := r.db.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.VendorID,
		&listing.Title,
		&listing.Description,
		&listing.Category,
		&listing.Catalog,
		&listing.IsPublished,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find listing by ID",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return nil, fmt.Errorf("find listing by ID %s: %w", id.String(), err)
	}

	return &listing, nil
}

func (r *listingRepository) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*entity.Listing, error) {
	query := `
		SELECT id, vendor_id, title, description, category, catalog, is_published, created_at, updated_at
		FROM listings
		WHERE vendor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, vendorID)
	if err != nil {
		r.log.Error("Failed to find listings by vendor ID",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
		)
		return nil, fmt.Errorf("find listings by vendor ID %s: %w", vendorID.String(), err)
	}
	defer rows.Close()

	var listings []*entity.Listing
	for rows.Next() {
		var listing entity.Listing
		err := rows.Scan(
			&listing.ID,
			&listing.VendorID,
			&listing.Title,
			&listing.Description,
			&listing.Category,
			&listing.Catalog,
			&listing.IsPublished,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan listing row", zap.Error(err))
			return nil, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, &listing)
	}

	return listings, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	query := `
		UPDATE listings
		SET title = $2, description = $3, category = $4, catalog = $5, is_published = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.Category,
		listing.Catalog,
		listing.IsPublished,
		listing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update listing",
			zap.Error(err),
			zap.String("listing_id", listing.ID.String()),
		)
		return fmt.Errorf("update listing %s: %w", listing.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("listing %s not found", listing.ID.String())
	}

	return nil
}
