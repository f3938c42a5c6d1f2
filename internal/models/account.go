package models

import (
	"context"
	"time"

	apperrors "github.com/cgultunca/moneybox-withdrawal/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	payInLimit                 = 4000
	fundsLowThreshold          = 500
	payInLimitWarningThreshold = 500
)

// PayInLimit caps the cumulative amount paid into an account.
func PayInLimit() decimal.Decimal { return decimal.NewFromInt(payInLimit) }

// FundsLowThreshold is the balance below which the owner is told funds are low.
func FundsLowThreshold() decimal.Decimal { return decimal.NewFromInt(fundsLowThreshold) }

// PayInLimitWarningThreshold is the remaining pay-in headroom below which
// the owner is told the limit is close.
func PayInLimitWarningThreshold() decimal.Decimal {
	return decimal.NewFromInt(payInLimitWarningThreshold)
}

// Notifier receives account limit signals keyed by the owner's address.
// Implementations are fire-and-forget.
type Notifier interface {
	NotifyFundsLow(ctx context.Context, email string)
	NotifyApproachingPayInLimit(ctx context.Context, email string)
}

// Account holds a balance and two running totals: Withdrawn (negative,
// decreasing) and PaidIn (positive, capped at PayInLimit).
type Account struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner     *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Balance   decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0" json:"balance"`
	Withdrawn decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0" json:"withdrawn"`
	PaidIn    decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0" json:"paid_in"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// OwnerEmail returns the owner's contact address, or "" when the owner
// was not loaded.
func (a *Account) OwnerEmail() string {
	if a.Owner == nil {
		return ""
	}
	return a.Owner.Email
}

// CheckWithdrawalAvailability reports whether amount can be withdrawn
// without the balance going negative. It never returns false with a nil
// error: a rejection is always ErrInsufficientFunds.
func (a *Account) CheckWithdrawalAvailability(amount decimal.Decimal) (bool, error) {
	if a.Balance.Sub(amount).IsNegative() {
		return false, apperrors.ErrInsufficientFunds
	}
	return true, nil
}

// CheckPayInAvailability reports whether amount can be paid in without
// exceeding PayInLimit. A rejection is always ErrPayInLimitExceeded.
func (a *Account) CheckPayInAvailability(amount decimal.Decimal) (bool, error) {
	if a.PaidIn.Add(amount).GreaterThan(PayInLimit()) {
		return false, apperrors.ErrPayInLimitExceeded
	}
	return true, nil
}

// ApplyWithdrawal debits amount without re-validating it; callers must
// run CheckWithdrawalAvailability first.
func (a *Account) ApplyWithdrawal(ctx context.Context, amount decimal.Decimal, notifier Notifier) {
	a.Balance = a.Balance.Sub(amount)
	a.Withdrawn = a.Withdrawn.Sub(amount)

	if a.Balance.LessThan(FundsLowThreshold()) {
		notifier.NotifyFundsLow(ctx, a.OwnerEmail())
	}
}

// ApplyPayIn credits amount without re-validating it; callers must run
// CheckPayInAvailability first.
func (a *Account) ApplyPayIn(ctx context.Context, amount decimal.Decimal, notifier Notifier) {
	a.Balance = a.Balance.Add(amount)
	a.PaidIn = a.PaidIn.Add(amount)

	if PayInLimit().Sub(a.PaidIn).LessThan(PayInLimitWarningThreshold()) {
		notifier.NotifyApproachingPayInLimit(ctx, a.OwnerEmail())
	}
}
