package ledger

import (
	"strconv"
	"strings"
)

// FieldErrors maps a form field name to a human-readable message. An empty
// map means the draft is eligible for submission.
type FieldErrors map[string]string

// OK reports whether the draft passed validation.
func (e FieldErrors) OK() bool { return len(e) == 0 }

// Derived holds the monetary values computed from a draft. The float values
// are normalized to two decimal places; the Display fields carry the same
// values formatted for the form's read-only inputs.
type Derived struct {
	GrossTotal      float64 `json:"grossTotal"`
	NetTotal        float64 `json:"netTotal"`
	RemainingAmount float64 `json:"remainingAmount"`

	// Discount and AmountPaid are the clamped values actually used in the
	// computation, which may differ from the raw inputs.
	Discount   float64 `json:"discount"`
	AmountPaid float64 `json:"amountPaid"`

	GrossTotalDisplay      string `json:"grossTotalDisplay"`
	NetTotalDisplay        string `json:"netTotalDisplay"`
	RemainingAmountDisplay string `json:"remainingAmountDisplay"`
	DiscountDisplay        string `json:"discountDisplay"`
	AmountPaidDisplay      string `json:"amountPaidDisplay"`
}

// Recompute derives the monetary totals for a draft and validates it
// against the rule set of its kind. It is run after every field change on
// the client and again on every write request on the server.
//
// Validation never blocks derivation: out-of-range discount and paid
// amounts are flagged as errors but the totals are computed from the
// clamped values, so the derived figures are always internally consistent.
func Recompute(kind Kind, fields Fields) (Derived, FieldErrors) {
	spec, ok := kindSpecs[kind]
	if !ok {
		return Derived{}, FieldErrors{"kind": "unknown transaction kind"}
	}

	errs := FieldErrors{}

	for _, f := range spec.required {
		if strings.TrimSpace(fields[f]) == "" {
			errs[f] = labelFor(f) + " is required"
		}
	}
	if spec.categories != nil {
		validateCategory(fields["category"], spec.categories, errs)
	}
	if spec.dateField != "" && strings.TrimSpace(fields[spec.dateField]) == "" {
		errs[spec.dateField] = "Date is required"
	}

	// Raw numeric inputs. Unset or unparsable values read as zero.
	qty := parseAmount(fields[spec.quantityField])
	price := parseAmount(fields[spec.priceField])
	amount := parseAmount(fields[spec.amountField])
	discount := parseAmount(fields[spec.discountField])
	paid := parseAmount(fields[spec.paidField])

	flagNegative(spec.quantityField, qty, errs)
	flagNegative(spec.priceField, price, errs)
	flagNegative(spec.amountField, amount, errs)
	flagNegative(spec.discountField, discount, errs)
	flagNegative(spec.paidField, paid, errs)

	if spec.quantityPositive {
		if strings.TrimSpace(fields[spec.quantityField]) == "" {
			errs[spec.quantityField] = labelFor(spec.quantityField) + " is required"
		} else if qty <= 0 {
			errs[spec.quantityField] = labelFor(spec.quantityField) + " must be greater than 0"
		}
	}

	var gross float64
	if spec.amountField != "" {
		gross = max0(amount)
	} else {
		gross = max0(qty) * max0(price)
	}

	if spec.discountField != "" && discount > gross {
		errs[spec.discountField] = "Discount cannot exceed gross total"
	}
	clampedDiscount := clamp(discount, gross)
	net := gross - clampedDiscount

	if spec.paidField != "" && paid > net {
		errs[spec.paidField] = "Amount paid cannot exceed net total"
	}
	clampedPaid := clamp(paid, net)
	remaining := net - clampedPaid

	d := Derived{
		GrossTotal:      Round2(gross),
		NetTotal:        Round2(net),
		RemainingAmount: Round2(remaining),
		Discount:        Round2(clampedDiscount),
		AmountPaid:      Round2(clampedPaid),
	}
	d.GrossTotalDisplay = FormatAmount(d.GrossTotal)
	d.NetTotalDisplay = FormatAmount(d.NetTotal)
	d.RemainingAmountDisplay = FormatAmount(d.RemainingAmount)
	d.DiscountDisplay = FormatAmount(d.Discount)
	d.AmountPaidDisplay = FormatAmount(d.AmountPaid)

	return d, errs
}

func validateCategory(value string, allowed []string, errs FieldErrors) {
	if value == "" {
		errs["category"] = "Category is required"
		return
	}
	for _, c := range allowed {
		if value == c {
			return
		}
	}
	errs["category"] = "Category is invalid"
}

func flagNegative(field string, v float64, errs FieldErrors) {
	if field != "" && v < 0 {
		errs[field] = labelFor(field) + " cannot be negative"
	}
}

// parseAmount converts a raw form value to a number. The forms restrict
// keystrokes to digits and a decimal point, so anything else that slips
// through reads as zero rather than failing the whole draft.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// clamp limits v to the range [0, ceiling].
func clamp(v, ceiling float64) float64 {
	if v < 0 {
		return 0
	}
	if v > ceiling {
		return ceiling
	}
	return v
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
