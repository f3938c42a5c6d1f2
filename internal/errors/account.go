package errors

var (
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient funds to make transfer",
	}
	ErrPayInLimitExceeded = &DomainError{
		Code:    "PAY_IN_LIMIT_EXCEEDED",
		Message: "account pay in limit reached",
	}
	ErrAccountNotFound = &DomainError{
		Code:    "ACCOUNT_NOT_FOUND",
		Message: "account not found",
	}
	ErrPersistence = &DomainError{
		Code:    "PERSISTENCE_ERROR",
		Message: "failed to persist account",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
	ErrSameAccount = &DomainError{
		Code:    "SAME_ACCOUNT",
		Message: "source and destination accounts must differ",
	}
)
