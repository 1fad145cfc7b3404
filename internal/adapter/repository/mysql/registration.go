package mysql

import (
	"context"
	"errors"
	"time"

	regdomain "auction-registration/internal/domain/registration"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ regdomain.Repository = (*RegistrationRepository)(nil)

type RegistrationRepository struct{ db *gorm.DB }

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *regdomain.Registration) error {
	err := r.db.WithContext(ctx).Create(reg).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The (auction_id, user_id) unique index is the authority on
		// concurrent creates; surface the loser as a conflict.
		return regdomain.ErrConflict
	}
	return err
}

func (r *RegistrationRepository) Save(ctx context.Context, reg *regdomain.Registration) error {
	return r.db.WithContext(ctx).Save(reg).Error
}

func (r *RegistrationRepository) GetByPair(ctx context.Context, auctionID, userID string) (*regdomain.Registration, error) {
	return r.first(r.db.WithContext(ctx), "auction_id = ? AND user_id = ?", auctionID, userID)
}

func (r *RegistrationRepository) GetByPairForUpdate(ctx context.Context, auctionID, userID string) (*regdomain.Registration, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		"auction_id = ? AND user_id = ?", auctionID, userID)
}

func (r *RegistrationRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*regdomain.Registration, error) {
	return r.first(r.db.WithContext(ctx), "registration_id = ?", registrationID)
}

func (r *RegistrationRepository) GetByRegistrationIDForUpdate(ctx context.Context, registrationID string) (*regdomain.Registration, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		"registration_id = ?", registrationID)
}

func (r *RegistrationRepository) first(tx *gorm.DB, query string, args ...any) (*regdomain.Registration, error) {
	var out regdomain.Registration
	res := tx.Where(query, args...).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, regdomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

// bucketScope translates a status bucket into direct predicates over the
// timestamp columns so the list query stays index-friendly. The predicates
// must classify exactly like ProjectState; registration_bucket_test.go
// enumerates timestamp combinations against the projector to prove it.
func bucketScope(b regdomain.StatusBucket) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch b {
		case regdomain.BucketPendingReview:
			return db.Where("submitted_at IS NOT NULL").
				Where("documents_verified_at IS NULL").
				Where("documents_rejected_at IS NULL").
				Where("rejected_at IS NULL").
				Where("deposit_paid_at IS NULL").
				Where("confirmed_at IS NULL").
				Where("withdrawn_at IS NULL").
				Where("checked_in_at IS NULL")
		case regdomain.BucketConfirmed:
			return db.Where("confirmed_at IS NOT NULL").
				Where("withdrawn_at IS NULL").
				Where("checked_in_at IS NULL")
		case regdomain.BucketRejected:
			return db.Where("(documents_rejected_at IS NOT NULL OR rejected_at IS NOT NULL)").
				Where("documents_verified_at IS NULL").
				Where("deposit_paid_at IS NULL").
				Where("confirmed_at IS NULL").
				Where("withdrawn_at IS NULL").
				Where("checked_in_at IS NULL")
		case regdomain.BucketWithdrawn:
			return db.Where("withdrawn_at IS NOT NULL").
				Where("checked_in_at IS NULL")
		default: // BucketAll
			return db
		}
	}
}

func (r *RegistrationRepository) List(ctx context.Context, f regdomain.ListFilter) ([]regdomain.Registration, int64, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	q := r.db.WithContext(ctx).Model(&regdomain.Registration{}).Scopes(bucketScope(f.Bucket))
	if f.AuctionID != "" {
		q = q.Where("auction_id = ?", f.AuctionID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []regdomain.Registration
	err := q.Order("registered_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *RegistrationRepository) ListDepositOverdue(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	if limit < 1 {
		limit = 100
	}
	var ids []string
	err := r.db.WithContext(ctx).Model(&regdomain.Registration{}).
		Where("documents_verified_at IS NOT NULL").
		Where("documents_verified_at < ?", cutoff).
		Where("deposit_paid_at IS NULL").
		Where("withdrawn_at IS NULL").
		Where("confirmed_at IS NULL").
		Where("checked_in_at IS NULL").
		Order("documents_verified_at ASC").
		Limit(limit).
		Pluck("registration_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
