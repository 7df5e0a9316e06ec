package annuity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DomainError reports an observation-period/interest-factor pair for
// which a discount factor is mathematically undefined.
type DomainError struct {
	Years int
	Q     decimal.Decimal
}

func (e *DomainError) Error() string {
	return fmt.Sprintf(
		"cannot calculate annuity factor for observation period T=%d years and interest factor q=%s",
		e.Years, e.Q)
}

// InputError reports a missing or invalid input value.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}
