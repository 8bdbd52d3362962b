package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "ALI TRADERS", NormalizeText("  ali traders "))
	assert.Equal(t, "LHR-1234", NormalizeText("lhr-1234"))
	assert.Equal(t, "", NormalizeText("   "))
}

func TestTextChanged(t *testing.T) {
	tests := []struct {
		name        string
		stored      string
		submitted   string
		wantValue   string
		wantChanged bool
	}{
		{"case and whitespace only", "Ali Traders", "  ali traders ", "ALI TRADERS", false},
		{"actually changed", "Ali Traders", "ali brothers", "ALI BROTHERS", true},
		{"empty submission is not a change", "Ali Traders", "   ", "", false},
		{"stored empty, submitted set", "", "new name", "NEW NAME", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := TextChanged(tt.stored, tt.submitted)
			assert.Equal(t, tt.wantValue, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "4800.00", FormatAmount(4800))
	assert.Equal(t, "12.50", FormatAmount(12.5))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.01, Round2(10.0096))
	assert.Equal(t, 12.5, Round2(12.5))
	assert.Equal(t, 0.0, Round2(0))
}
