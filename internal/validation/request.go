// Package validation checks request input before it reaches the account
// operations, which do not validate sign or identity themselves.
package validation

import (
	"github.com/cgultunca/moneybox-withdrawal/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &errors.DomainError{
			Code:    errors.ErrInvalidAmount.Code,
			Message: "amount must be positive",
		}
	}
	return nil
}

// ValidateTransferRequest rejects transfers from an account to itself, since
// the destination update would overwrite the source debit.
func ValidateTransferRequest(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal) error {
	if fromAccountID == toAccountID {
		return errors.ErrSameAccount
	}
	return ValidateAmount(amount)
}
