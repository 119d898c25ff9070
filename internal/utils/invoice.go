package utils

import (
	"fmt"
	"time"
)

// CustomerInvoiceID builds INV_{customerId}-{orderCount+1}-{last 4 digits of unix ms}.
func CustomerInvoiceID(customerID int64, orderCount int, now time.Time) string {
	return fmt.Sprintf("INV_%d-%d-%04d", customerID, orderCount+1, now.UnixMilli()%10000)
}

// AdminInvoiceID is used for orders entered by an operator.
func AdminInvoiceID(now time.Time) string {
	return fmt.Sprintf("INV_%d", now.UnixMilli())
}

func Receipt(now time.Time) string {
	return fmt.Sprintf("receipt_%d", now.UnixMilli())
}

// AdminProviderOrderID stands in for a provider order id on operator-entered orders.
func AdminProviderOrderID(now time.Time) string {
	return fmt.Sprintf("order_cus_%d", now.UnixMilli())
}
