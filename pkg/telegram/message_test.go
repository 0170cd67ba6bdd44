package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeHTML(t *testing.T) {
	require.Equal(t, "Tom &amp; Jerry", EscapeHTML("Tom & Jerry"))
	require.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", EscapeHTML("<b>bold</b>"))
	require.Equal(t, "&quot;quoted&quot; &#39;single&#39;", EscapeHTML(`"quoted" 'single'`))
	require.Equal(t, "plain text", EscapeHTML("plain text"))
}

func TestFormatINR(t *testing.T) {
	require.Equal(t, "₹0", FormatINR(0))
	require.Equal(t, "₹550", FormatINR(550))
	require.Equal(t, "₹9,999", FormatINR(9999))
	require.Equal(t, "₹50,000", FormatINR(50000))
	require.Equal(t, "₹1,00,000", FormatINR(100000))
	require.Equal(t, "₹12,50,000", FormatINR(1250000))
	require.Equal(t, "₹1,23,45,678", FormatINR(12345678))
	require.Equal(t, "-₹49,450", FormatINR(-49450))
}

func sampleOrder() OrderMessage {
	return OrderMessage{
		ID:               "ord-1",
		CustomerName:     "Asha <Verma>",
		Phone:            "9876543210",
		Address:          "14 MG Road, Bengaluru",
		PinCode:          "560038",
		ProductName:      "iPhone 15",
		Storage:          "128GB",
		Color:            "Black",
		FullPrice:        50000,
		PaidAmount:       550,
		RemainingBalance: 49450,
		PaymentType:      "advance",
		Screenshot:       "payment-1.jpg",
		CreatedAt:        "2026-08-30T18:30:00Z",
	}
}

func TestFormatOrder(t *testing.T) {
	msg := FormatOrder(sampleOrder())

	require.Contains(t, msg, "<b>NEW ORDER RECEIVED</b>")
	require.Contains(t, msg, "Asha &lt;Verma&gt;")
	require.Contains(t, msg, "• Full Price: ₹50,000")
	require.Contains(t, msg, "• Paid Amount: ₹550")
	require.Contains(t, msg, "<b>Remaining Balance:</b> ₹49,450")
	require.Contains(t, msg, "• Payment Type: Advance Payment")
	require.Contains(t, msg, "<b>Color:</b> Black")
	require.Contains(t, msg, "<b>Order ID:</b> ord-1")
	// 18:30 UTC is midnight IST the next day
	require.Contains(t, msg, "<b>Order Date:</b> 31 Aug 2026, 12:00 AM")
}

func TestFormatOrderFullPaymentOmitsBalance(t *testing.T) {
	o := sampleOrder()
	o.PaymentType = "full"
	o.PaidAmount = 50000
	o.RemainingBalance = 0

	msg := FormatOrder(o)
	require.NotContains(t, msg, "Remaining Balance")
	require.Contains(t, msg, "• Payment Type: Full Payment")
}

func TestFormatBatch(t *testing.T) {
	second := sampleOrder()
	second.ID = "ord-2"
	second.ProductName = "iPhone 14"
	second.Storage = "256GB"
	second.Color = ""
	second.FullPrice = 42000

	msg := FormatBatch([]OrderMessage{sampleOrder(), second})

	require.Contains(t, msg, "<b>NEW BULK ORDER RECEIVED</b>")
	require.Contains(t, msg, "• Total Items: 2")
	require.Contains(t, msg, "1. iPhone 15 - 128GB (Black)")
	require.Contains(t, msg, "2. iPhone 14 - 256GB\n")
	require.Contains(t, msg, "• Total Paid: ₹1,100")
	require.Contains(t, msg, "<b>Total Remaining Balance:</b> ₹98,900")
	require.Contains(t, msg, "<b>Order IDs:</b>\nord-1, ord-2")
	require.Equal(t, 1, strings.Count(msg, "Customer Information"))
}

func TestFormatBatchEmpty(t *testing.T) {
	require.Equal(t, "", FormatBatch(nil))
}
