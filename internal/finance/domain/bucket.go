package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type BucketType string

const (
	BucketTypeRRSP          BucketType = "RRSP"
	BucketTypeTFSA          BucketType = "TFSA"
	BucketTypeCash          BucketType = "Cash"
	BucketTypeCrypto        BucketType = "Crypto"
	BucketTypeNonRegistered BucketType = "Non-Registered"
)

// BucketTypes lists the supported account types in display order.
var BucketTypes = []BucketType{
	BucketTypeRRSP,
	BucketTypeTFSA,
	BucketTypeCash,
	BucketTypeCrypto,
	BucketTypeNonRegistered,
}

func IsValidBucketType(t BucketType) bool {
	for _, bt := range BucketTypes {
		if bt == t {
			return true
		}
	}
	return false
}

// IsTaxAdvantaged reports whether the account type counts towards the savings score.
func (t BucketType) IsTaxAdvantaged() bool {
	return t == BucketTypeRRSP || t == BucketTypeTFSA
}

const maxBucketNameLength = 100

// maxAmount is the exclusive upper bound of a NUMERIC(14,2) column.
var maxAmount = decimal.New(1, 12)

// CheckAmount rejects amounts that are negative or do not fit the storage column.
func CheckAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return financeErrors.ErrNegativeAmount
	}
	if amount.Round(2).GreaterThanOrEqual(maxAmount) {
		return financeErrors.ErrAmountTooLarge
	}
	return nil
}

type Bucket struct {
	ID        uuid.UUID
	UserID    string
	Name      string
	Amount    decimal.Decimal
	Type      BucketType
	CreatedAt time.Time
}

func (b *Bucket) Validate() error {
	ve := &financeErrors.ValidationErrors{}
	name := strings.TrimSpace(b.Name)
	if name == "" {
		ve.Add(financeErrors.NewFieldValidationError("name", "must not be empty"))
	} else if len(name) > maxBucketNameLength {
		ve.Add(financeErrors.NewFieldValidationError("name", "must be at most 100 characters"))
	}
	if err := CheckAmount(b.Amount); err != nil {
		ve.Add(err)
	}
	if !IsValidBucketType(b.Type) {
		ve.Add(financeErrors.ErrInvalidBucketType)
	}
	return ve.ErrOrNil()
}

type BucketRepository interface {
	Create(ctx context.Context, bucket *Bucket) error
	FindByUser(ctx context.Context, userID string) ([]Bucket, error)
	FindByID(ctx context.Context, bucketID uuid.UUID, userID string) (*Bucket, error)
	// UpdateAmount overwrites the amount and returns the number of rows affected.
	UpdateAmount(ctx context.Context, bucketID uuid.UUID, userID string, amount decimal.Decimal) (int64, error)
	Update(ctx context.Context, bucket *Bucket) (int64, error)
	Delete(ctx context.Context, bucketID uuid.UUID, userID string) (int64, error)
}
