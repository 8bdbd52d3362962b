package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmendPayment(t *testing.T) {
	tests := []struct {
		name          string
		existing      float64
		net           float64
		delta         float64
		wantPaid      float64
		wantRemaining float64
		wantErr       error
	}{
		{"partial payment", 1000, 4800, 800, 1800, 3000, nil},
		{"settles in full", 80, 100, 20, 100, 0, nil},
		{"overpayment rejected", 80, 100, 30, 0, 0, &OverpaymentError{}},
		{"zero delta rejected", 80, 100, 0, 0, 0, ErrNoValidChange},
		{"negative delta rejected", 80, 100, -5, 0, 0, ErrNoValidChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AmendPayment(tt.existing, tt.net, tt.delta)

			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.Equal(t, tt.wantPaid, got.NewPaid)
				assert.Equal(t, tt.wantRemaining, got.NewRemaining)
			case *OverpaymentError:
				var overpay *OverpaymentError
				require.ErrorAs(t, err, &overpay)
				assert.Equal(t, tt.existing, overpay.ExistingPaid)
				assert.Equal(t, tt.delta, overpay.Delta)
				assert.Equal(t, tt.net, overpay.NetTotal)
				_ = want
			default:
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestOverpaymentErrorMessage(t *testing.T) {
	_, err := AmendPayment(80, 100, 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "30.00")
	assert.Contains(t, err.Error(), "100.00")
}
