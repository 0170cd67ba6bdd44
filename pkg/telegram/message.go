package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EscapeHTML escapes the characters Telegram's HTML parse mode treats as
// markup. Every customer-supplied field must pass through here before
// interpolation.
func EscapeHTML(text string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return r.Replace(text)
}

// FormatINR renders a whole-rupee amount with Indian digit grouping,
// e.g. 50000 -> "₹50,000" and 1250000 -> "₹12,50,000".
func FormatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		s = strings.Join(parts, ",") + "," + tail
	}
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}

// OrderMessage is the order data the formatter needs; kept local so the
// package has no dependency on the service layer.
type OrderMessage struct {
	ID               string
	CustomerName     string
	Phone            string
	Address          string
	PinCode          string
	ProductName      string
	Storage          string
	Color            string
	FullPrice        int64
	PaidAmount       int64
	RemainingBalance int64
	PaymentType      string
	Screenshot       string
	CreatedAt        string
}

var istZone = time.FixedZone("IST", 5*3600+1800)

func formatOrderDate(createdAt string) string {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return createdAt
	}
	return t.In(istZone).Format("2 Jan 2006, 3:04 PM")
}

func paymentTypeLabel(t string) string {
	if t == "full" {
		return "Full Payment"
	}
	return "Advance Payment"
}

// FormatOrder renders the notification text for a single order.
func FormatOrder(o OrderMessage) string {
	colorInfo := ""
	if o.Color != "" {
		colorInfo = "\n<b>Color:</b> " + EscapeHTML(o.Color)
	}
	balanceInfo := ""
	if o.RemainingBalance > 0 {
		balanceInfo = "\n<b>Remaining Balance:</b> " + FormatINR(o.RemainingBalance)
	}

	var b strings.Builder
	b.WriteString("<b>NEW ORDER RECEIVED</b>\n\n")
	b.WriteString("<b>Product Details:</b>\n")
	fmt.Fprintf(&b, "• %s\n", EscapeHTML(o.ProductName))
	fmt.Fprintf(&b, "• Storage: %s%s\n\n", EscapeHTML(o.Storage), colorInfo)
	b.WriteString("<b>Customer Information:</b>\n")
	fmt.Fprintf(&b, "• Name: %s\n", EscapeHTML(o.CustomerName))
	fmt.Fprintf(&b, "• Phone: %s\n\n", EscapeHTML(o.Phone))
	b.WriteString("<b>Delivery Address:</b>\n")
	fmt.Fprintf(&b, "%s\nPIN Code: %s\n\n", EscapeHTML(o.Address), EscapeHTML(o.PinCode))
	b.WriteString("<b>Payment Details:</b>\n")
	fmt.Fprintf(&b, "• Full Price: %s\n", FormatINR(o.FullPrice))
	fmt.Fprintf(&b, "• Paid Amount: %s%s\n", FormatINR(o.PaidAmount), balanceInfo)
	fmt.Fprintf(&b, "• Payment Type: %s\n", paymentTypeLabel(o.PaymentType))
	fmt.Fprintf(&b, "• Screenshot: %s\n\n", EscapeHTML(o.Screenshot))
	fmt.Fprintf(&b, "<b>Order Date:</b> %s\n\n", formatOrderDate(o.CreatedAt))
	fmt.Fprintf(&b, "<b>Order ID:</b> %s\n\n", EscapeHTML(o.ID))
	b.WriteString("---\nPlease verify the payment screenshot and process the order.")
	return b.String()
}

// FormatBatch renders the notification text for a multi-item checkout.
// Customer fields are shared across the batch, so they are taken from the
// first order.
func FormatBatch(orders []OrderMessage) string {
	if len(orders) == 0 {
		return ""
	}
	first := orders[0]
	var totalPaid, totalBalance int64
	for _, o := range orders {
		totalPaid += o.PaidAmount
		totalBalance += o.RemainingBalance
	}

	var items strings.Builder
	for i, o := range orders {
		colorInfo := ""
		if o.Color != "" {
			colorInfo = fmt.Sprintf(" (%s)", EscapeHTML(o.Color))
		}
		fmt.Fprintf(&items, "%d. %s - %s%s\n", i+1, EscapeHTML(o.ProductName), EscapeHTML(o.Storage), colorInfo)
	}

	balanceInfo := ""
	if totalBalance > 0 {
		balanceInfo = "\n<b>Total Remaining Balance:</b> " + FormatINR(totalBalance)
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = EscapeHTML(o.ID)
	}

	var b strings.Builder
	b.WriteString("<b>NEW BULK ORDER RECEIVED</b>\n\n")
	b.WriteString("<b>Order Summary:</b>\n")
	fmt.Fprintf(&b, "• Total Items: %d\n%s\n", len(orders), items.String())
	b.WriteString("<b>Customer Information:</b>\n")
	fmt.Fprintf(&b, "• Name: %s\n", EscapeHTML(first.CustomerName))
	fmt.Fprintf(&b, "• Phone: %s\n\n", EscapeHTML(first.Phone))
	b.WriteString("<b>Delivery Address:</b>\n")
	fmt.Fprintf(&b, "%s\nPIN Code: %s\n\n", EscapeHTML(first.Address), EscapeHTML(first.PinCode))
	b.WriteString("<b>Payment Details:</b>\n")
	fmt.Fprintf(&b, "• Total Paid: %s%s\n", FormatINR(totalPaid), balanceInfo)
	fmt.Fprintf(&b, "• Payment Type: %s\n", paymentTypeLabel(first.PaymentType))
	fmt.Fprintf(&b, "• Screenshot: %s\n\n", EscapeHTML(first.Screenshot))
	fmt.Fprintf(&b, "<b>Order Date:</b> %s\n\n", formatOrderDate(first.CreatedAt))
	fmt.Fprintf(&b, "<b>Order IDs:</b>\n%s\n\n", strings.Join(ids, ", "))
	b.WriteString("---\nPlease verify the payment screenshot and process the orders.")
	return b.String()
}
