package models

// PaymentType enumerates how much the customer pays upfront.
type PaymentType string

const (
	PaymentTypeFull    PaymentType = "full"
	PaymentTypeAdvance PaymentType = "advance"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	return t == PaymentTypeFull || t == PaymentTypeAdvance
}

// Order is an immutable record of a checkout. Orders are never edited or
// deleted once created. RemainingBalance = FullPrice - PaidAmount; it is
// zero for full payments and collected on delivery for advance payments.
type Order struct {
	ID                string      `json:"id"`
	CustomerName      string      `json:"customerName"`
	Phone             string      `json:"phone"`
	Address           string      `json:"address"`
	PinCode           string      `json:"pinCode"`
	ProductID         string      `json:"productId"`
	ProductName       string      `json:"productName"`
	Storage           string      `json:"storage"`
	Color             string      `json:"color,omitempty"`
	FullPrice         int64       `json:"fullPrice"`
	PaidAmount        int64       `json:"paidAmount"`
	RemainingBalance  int64       `json:"remainingBalance"`
	PaymentType       PaymentType `json:"paymentType"`
	PaymentScreenshot string      `json:"paymentScreenshot"`
	CreatedAt         string      `json:"createdAt"`
}

// OrderDraft carries the fields of an order before the store stamps
// ID and CreatedAt.
type OrderDraft struct {
	CustomerName      string
	Phone             string
	Address           string
	PinCode           string
	ProductID         string
	ProductName       string
	Storage           string
	Color             string
	FullPrice         int64
	PaidAmount        int64
	RemainingBalance  int64
	PaymentType       PaymentType
	PaymentScreenshot string
}
