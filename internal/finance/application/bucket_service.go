package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type BucketService struct {
	repo domain.BucketRepository
	now  func() time.Time
}

func NewBucketService(repo domain.BucketRepository) *BucketService {
	return &BucketService{repo: repo, now: time.Now}
}

type BucketShare struct {
	Bucket  domain.Bucket
	Percent float64
}

type TypeTotal struct {
	Type   domain.BucketType
	Amount decimal.Decimal
}

// BucketsSummary is the distribution of money across a user's buckets.
type BucketsSummary struct {
	Total   decimal.Decimal
	Buckets []BucketShare
	ByType  []TypeTotal
}

func (s *BucketService) CreateBucket(ctx context.Context, bucket *domain.Bucket) error {
	bucket.ID = uuid.New()
	bucket.Name = strings.TrimSpace(bucket.Name)
	bucket.CreatedAt = s.now().UTC()
	bucket.Amount = bucket.Amount.Round(2)
	if err := bucket.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, bucket)
}

func (s *BucketService) GetBuckets(ctx context.Context, userID string) ([]domain.Bucket, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *BucketService) GetBucket(ctx context.Context, bucketID uuid.UUID, userID string) (*domain.Bucket, error) {
	return s.repo.FindByID(ctx, bucketID, userID)
}

// UpdateBucketAmount overwrites the amount. A bucket that does not exist or
// belongs to someone else yields ErrBucketNotFound.
func (s *BucketService) UpdateBucketAmount(ctx context.Context, bucketID uuid.UUID, userID string, amount decimal.Decimal) error {
	if err := domain.CheckAmount(amount); err != nil {
		return err
	}
	affected, err := s.repo.UpdateAmount(ctx, bucketID, userID, amount.Round(2))
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrBucketNotFound
	}
	return nil
}

// UpdateBucket renames the bucket and changes its type. The amount is left as is.
func (s *BucketService) UpdateBucket(ctx context.Context, bucket *domain.Bucket) error {
	bucket.Name = strings.TrimSpace(bucket.Name)
	check := *bucket
	check.Amount = decimal.Zero
	if err := check.Validate(); err != nil {
		return err
	}
	affected, err := s.repo.Update(ctx, bucket)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrBucketNotFound
	}
	return nil
}

func (s *BucketService) DeleteBucket(ctx context.Context, bucketID uuid.UUID, userID string) error {
	affected, err := s.repo.Delete(ctx, bucketID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrBucketNotFound
	}
	return nil
}

func (s *BucketService) GetSummary(ctx context.Context, userID string) (*BucketsSummary, error) {
	buckets, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := SummarizeBuckets(buckets)
	return &summary, nil
}

// SummarizeBuckets computes the total, each bucket's share of it rounded to
// two decimals (0 when the total is 0) and the totals per bucket type.
func SummarizeBuckets(buckets []domain.Bucket) BucketsSummary {
	total := decimal.Zero
	byType := make(map[domain.BucketType]decimal.Decimal)
	for _, b := range buckets {
		total = total.Add(b.Amount)
		byType[b.Type] = byType[b.Type].Add(b.Amount)
	}

	summary := BucketsSummary{
		Total:   total,
		Buckets: make([]BucketShare, 0, len(buckets)),
		ByType:  []TypeTotal{},
	}
	for _, b := range buckets {
		share := BucketShare{Bucket: b}
		if total.IsPositive() {
			share.Percent = b.Amount.Div(total).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		summary.Buckets = append(summary.Buckets, share)
	}
	for _, t := range domain.BucketTypes {
		if amount, ok := byType[t]; ok {
			summary.ByType = append(summary.ByType, TypeTotal{Type: t, Amount: amount})
		}
	}
	return summary
}
