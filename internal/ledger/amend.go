package ledger

import (
	"errors"
	"fmt"
)

// ErrNoValidChange is returned when a payment amendment carries a zero or
// negative delta: there is nothing to apply.
var ErrNoValidChange = errors.New("no valid change")

// OverpaymentError rejects an amendment that would push the paid total past
// the net total of the record. The caller must surface it before attempting
// any write.
type OverpaymentError struct {
	ExistingPaid float64
	Delta        float64
	NetTotal     float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds remaining amount (paid %s of %s)",
		FormatAmount(e.Delta), FormatAmount(e.ExistingPaid), FormatAmount(e.NetTotal))
}

// Amendment is the preview of an accepted incremental payment.
type Amendment struct {
	NewPaid      float64 `json:"newPaid"`
	NewRemaining float64 `json:"newRemaining"`
}

// AmendPayment applies an incremental payment to an already-persisted
// record. The delta is added to the existing paid total; the result must
// not exceed the record's net total.
func AmendPayment(existingPaid, netTotal, delta float64) (Amendment, error) {
	if delta <= 0 {
		return Amendment{}, ErrNoValidChange
	}

	newPaid := existingPaid + delta
	if newPaid > netTotal {
		return Amendment{}, &OverpaymentError{
			ExistingPaid: existingPaid,
			Delta:        delta,
			NetTotal:     netTotal,
		}
	}

	remaining := netTotal - newPaid
	if remaining < 0 {
		remaining = 0
	}
	return Amendment{
		NewPaid:      Round2(newPaid),
		NewRemaining: Round2(remaining),
	}, nil
}
