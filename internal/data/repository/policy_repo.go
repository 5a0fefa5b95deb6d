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

type PolicyRepository interface {
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) (*entity.CancellationPolicy, error)
	Replace(ctx context.Context, policy *entity.CancellationPolicy) error
}

type policyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPolicyRepository(db database.PgxIface, log *zap.Logger) PolicyRepository {
	return &policyRepository{
		db:  db,
		log: log.With(zap.String("repository", "policy")),
	}
}

func (r *policyRepository) FindByVendorID(ctx context.Context, vendorID uuid.UUID) (*entity.CancellationPolicy, error) {
	query := `
		SELECT vendor_id, terms, updated_at
		FROM cancellation_policies
		WHERE vendor_id = $1
	`

	var policy entity.CancellationPolicy
	err := r.db.QueryRow(ctx, query, vendorID).Scan(
		&policy.VendorID,
		&policy.Terms,
		&policy.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cancellation policy",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
		)
		return nil, fmt.Errorf("find cancellation policy for vendor %s: %w", vendorID.String(), err)
	}

	return &policy, nil
}

func (r *policyRepository) Replace(ctx context.Context, policy *entity.CancellationPolicy) error {
	query := `
		INSERT INTO cancellation_policies (vendor_id, terms, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (vendor_id)
		DO UPDATE SET terms = EXCLUDED.terms, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query, policy.VendorID, policy.Terms, policy.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to replace cancellation policy",
			zap.Error(err),
			zap.String("vendor_id", policy.VendorID.String()),
		)
		return fmt.Errorf("replace cancellation policy for vendor %s: %w", policy.VendorID.String(), err)
	}

	return nil
}
