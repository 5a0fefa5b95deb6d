package repository

import (
	"context"
	"fmt"

	"marketplace-booking/internal/data/entity"
	"marketplace-booking/pkg/cache"
	"marketplace-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AvailabilityRepository interface {
	FindDay(ctx context.Context, vendorID uuid.UUID, date string) (*entity.DayAvailability, error)
	FindRange(ctx context.Context, vendorID uuid.UUID, fromDate, toDate string) ([]*entity.DayAvailability, error)

	// ReplaceDay upserts the full slot set for one vendor day and invalidates the
	// cached copy.
	ReplaceDay(ctx context.Context, day *entity.DayAvailability) error
}

type availabilityRepository struct {
	db    database.PgxIface
	cache *cache.Client
	log   *zap.Logger
}

func NewAvailabilityRepository(db database.PgxIface, cache *cache.Client, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		db:    db,
		cache: cache,
		log:   log.With(zap.String("repository", "availability")),
	}
}

func dayCacheKey(vendorID uuid.UUID, date string) string {
	return fmt.Sprintf("availability:%s:%s", vendorID.String(), date)
}

func (r *availabilityRepository) FindDay(ctx context.Context, vendorID uuid.UUID, date string) (*entity.DayAvailability, error) {
	key := dayCacheKey(vendorID, date)

	var cached entity.DayAvailability
	hit, err := r.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		// A broken cache degrades to a DB read.
		r.log.Warn("Availability cache read failed", zap.Error(err), zap.String("key", key))
	}
	if hit {
		return &cached, nil
	}

	query := `
		SELECT vendor_id, date, slots, updated_at
		FROM vendor_availability
		WHERE vendor_id = $1 AND date = $2
	`

	var day entity.DayAvailability
	err = r.db.QueryRow(ctx, query, vendorID, date).Scan(
		&day.VendorID,
		&day.Date,
		&day.Slots,
		&day.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find availability day",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find availability for vendor %s on %s: %w", vendorID.String(), date, err)
	}

	if err := r.cache.SetJSON(ctx, key, &day); err != nil {
		r.log.Warn("Availability cache write failed", zap.Error(err), zap.String("key", key))
	}

	return &day, nil
}

func (r *availabilityRepository) FindRange(ctx context.Context, vendorID uuid.UUID, fromDate, toDate string) ([]*entity.DayAvailability, error) {
	query := `
		SELECT vendor_id, date, slots, updated_at
		FROM vendor_availability
		WHERE vendor_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, vendorID, fromDate, toDate)
	if err != nil {
		r.log.Error("Failed to find availability range",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
		)
		return nil, fmt.Errorf("find availability range for vendor %s: %w", vendorID.String(), err)
	}
	defer rows.Close()

	var days []*entity.DayAvailability
	for rows.Next() {
		var day entity.DayAvailability
		if err := rows.Scan(&day.VendorID, &day.Date, &day.Slots, &day.UpdatedAt); err != nil {
			r.log.Error("Failed to scan availability row", zap.Error(err))
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		days = append(days, &day)
	}

	return days, nil
}

func (r *availabilityRepository) ReplaceDay(ctx context.Context, day *entity.DayAvailability) error {
	query := `
		INSERT INTO vendor_availability (vendor_id, date, slots, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (vendor_id, date)
		DO UPDATE SET slots = EXCLUDED.slots, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query, day.VendorID, day.Date, day.Slots, day.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to replace availability day",
			zap.Error(err),
			zap.String("vendor_id", day.VendorID.String()),
			zap.String("date", day.Date),
		)
		return fmt.Errorf("replace availability for vendor %s on %s: %w", day.VendorID.String(), day.Date, err)
	}

	if err := r.cache.Delete(ctx, dayCacheKey(day.VendorID, day.Date)); err != nil {
		r.log.Warn("Availability cache invalidation failed",
			zap.Error(err),
			zap.String("vendor_id", day.VendorID.String()),
			zap.String("date", day.Date),
		)
	}

	return nil
}
