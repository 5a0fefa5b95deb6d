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

type VendorRepository interface {
	Upsert(ctx context.Context, vendor *entity.Vendor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)
}

type vendorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVendorRepository(db database.PgxIface, log *zap.Logger) VendorRepository {
	return &vendorRepository{
		db:  db,
		log: log.With(zap.String("repository", "vendor")),
	}
}

func (r *vendorRepository) Upsert(ctx context.Context, vendor *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, email, phone, about, city, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone,
			about = EXCLUDED.about, city = EXCLUDED.city, is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		vendor.ID,
		vendor.Name,
		vendor.Email,
		vendor.Phone,
		vendor.About,
		vendor.City,
		vendor.IsActive,
		vendor.CreatedAt,
		vendor.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert vendor",
			zap.Error(err),
			zap.String("vendor_id", vendor.ID.String()),
		)
		return fmt.Errorf("upsert vendor %s: %w", vendor.ID.String(), err)
	}

	return nil
}

func (r *vendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	query := `
		SELECT id, name, email, phone, about, city, is_active, created_at, updated_at
		FROM vendors
		WHERE id = $1
	`

	var vendor entity.Vendor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&vendor.ID,
		&vendor.Name,
		&vendor.Email,
		&vendor.Phone,
		&vendor.About,
		&vendor.City,
		&vendor.IsActive,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vendor by ID",
			zap.Error(err),
			zap.String("vendor_id", id.String()),
		)
		return nil, fmt.Errorf("find vendor by ID %s: %w", id.String(), err)
	}

	return &vendor, nil
}
