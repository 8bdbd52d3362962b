// Package ledger implements the derivation and validation rules shared by
// every transaction form in the dashboard: stock in/out, bunker purchases,
// sales and expenses, client sales, spare parts and general expenses.
//
// The engine is pure. It takes the raw field values of an in-progress draft
// and returns the derived monetary totals plus a field-keyed error map. The
// same code runs on every create/update request so stored totals always
// match what the form previewed.
package ledger

// Kind identifies one transaction form and selects its rule set.
type Kind int

const (
	StockIn Kind = iota
	StockOut
	BunkerPurchase
	BunkerSale
	BunkerExpense
	ClientSale
	SparePart
	Expense
)

func (k Kind) String() string {
	switch k {
	case StockIn:
		return "stock_in"
	case StockOut:
		return "stock_out"
	case BunkerPurchase:
		return "bunker_purchase"
	case BunkerSale:
		return "bunker_sale"
	case BunkerExpense:
		return "bunker_expense"
	case ClientSale:
		return "client_sale"
	case SparePart:
		return "spare_part"
	case Expense:
		return "expense"
	}
	return "unknown"
}

// Fields holds the raw values of a draft keyed by form field name.
// Empty string means the field is unset. Numeric fields are parsed by the
// engine; anything that does not parse is treated as zero, matching the
// input filtering the forms apply.
type Fields map[string]string

// Stock categories accepted by the stock-in form. Stock-out excludes raw
// silage, which only leaves the yard through bunker sales and client sales.
var (
	StockInCategories  = []string{"silage", "silageFilm", "stretch", "giftoNaturalRoll"}
	StockOutCategories = []string{"silageFilm", "stretch", "giftoNaturalRoll"}
)

// kindSpec describes the rule subset one transaction kind uses.
type kindSpec struct {
	// text fields that must be non-empty
	required []string
	// allowed values for the "category" field; nil means no category field
	categories []string
	// name of the date field that must be present; "" means no date field
	dateField string

	// numeric field names; "" means the kind has no such field.
	// When amountField is set the gross total is that amount directly,
	// otherwise gross = quantityField x priceField.
	quantityField string
	priceField    string
	amountField   string
	discountField string
	paidField     string

	// stock-out style: quantity must be strictly positive
	quantityPositive bool
}

var kindSpecs = map[Kind]kindSpec{
	StockIn: {
		required:      []string{"clientName"},
		categories:    StockInCategories,
		dateField:     "scheduledDate",
		quantityField: "weightPerKg",
		priceField:    "pricePerKg",
		discountField: "discount",
		paidField:     "amountPaid",
	},
	StockOut: {
		required:         []string{"personName"},
		categories:       StockOutCategories,
		dateField:        "date",
		quantityField:    "quantity",
		quantityPositive: true,
	},
	BunkerPurchase: {
		quantityField: "quantity",
		priceField:    "price",
		discountField: "discount",
		paidField:     "amountPaid",
	},
	BunkerSale: {
		required:      []string{"customerName"},
		quantityField: "kgsSold",
		priceField:    "price",
		discountField: "discount",
		paidField:     "amountPaid",
	},
	BunkerExpense: {
		required:    []string{"name"},
		amountField: "amount",
		paidField:   "amountPaid",
	},
	ClientSale: {
		required:      []string{"clientName"},
		quantityField: "weightinKgs",
		priceField:    "pricePerKg",
		discountField: "discount",
		paidField:     "amountPaid",
	},
	SparePart: {
		required:         []string{"name"},
		quantityField:    "quantity",
		quantityPositive: true,
	},
	Expense: {
		required:      []string{"description", "expenseCategory"},
		amountField:   "amount",
		discountField: "discount",
		paidField:     "amountPaid",
	},
}

// fieldLabels maps form field names to the labels used in error messages.
var fieldLabels = map[string]string{
	"clientName":      "Client name",
	"personName":      "Name",
	"customerName":    "Customer name",
	"name":            "Name",
	"description":     "Description",
	"expenseCategory": "Category",
	"category":        "Category",
	"scheduledDate":   "Date",
	"date":            "Date",
	"weightPerKg":     "Weight",
	"weightinKgs":     "Weight",
	"quantity":        "Quantity",
	"kgsSold":         "Quantity",
	"pricePerKg":      "Price",
	"price":           "Price",
	"amount":          "Amount",
	"discount":        "Discount",
	"amountPaid":      "Amount paid",
}

func labelFor(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}
