package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

var statusLines = map[string][2]string{
	"Pending":   {"Your order is currently pending.", "We are processing your order and will update you soon."},
	"created":   {"Your payment is pending.", "Please complete the payment to confirm your order."},
	"paid":      {"Your payment has been received.", "We are preparing your order for dispatch."},
	"crafting":  {"Your order is being crafted.", "We will notify you once your order is ready for shipment."},
	"Shipped":   {"Your order has been shipped.", "You can track your shipment using the tracking ID below."},
	"Delivered": {"Your order has been delivered.", "Thank you for shopping with us. We hope you are satisfied with your purchase."},
	"Delayed":   {"Your order has been delayed.", "We are working to resolve the issue and will update you with new information soon."},
}

const layout = `<table style="max-width:680px;margin:0 auto;padding:45px 30px 60px;background:#f8e7eb;font-family:'Poppins',sans-serif;font-size:14px;color:#434343;">
<tr><td>
<h1 style="font-size:24px;color:#1f1f1f;">{{.Heading}}</h1>
<p>Hey {{.Mail.Name}},</p>
<p>Your order ID is <strong>{{.Mail.OrderRef}}</strong>{{if .Mail.PaymentID}} and Payment ID is <strong>{{.Mail.PaymentID}}</strong>{{end}}.</p>
<p>{{.Lead}}</p>
<p>{{.Detail}}</p>
{{if .Mail.TrackingID}}<p>Tracking ID: <strong>{{.Mail.TrackingID}}</strong></p>{{end}}
{{if .Mail.Items}}<table style="width:100%;border-collapse:collapse;">
<tr><th align="left">Product</th><th>Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
{{range .Mail.Items}}<tr><td>{{.Name}}</td><td align="center">{{.Quantity}}</td><td align="right">{{$.Mail.Currency}} {{.UnitPrice}}</td><td align="right">{{$.Mail.Currency}} {{.LineTotal}}</td></tr>
{{end}}</table>
<p>Subtotal: {{.Mail.Currency}} {{.Mail.Subtotal}}<br>Delivery: {{.Mail.Currency}} {{.Mail.DeliveryFee}}<br><strong>Total: {{.Mail.Currency}} {{.Mail.Total}}</strong></p>{{end}}
{{if .Mail.Address}}<p>Shipping to: {{.Mail.Address}}</p>{{end}}
{{if .Mail.InvoiceID}}<p>Invoice: {{.Mail.InvoiceID}}</p>{{end}}
</td></tr>
</table>`

var mailTemplate = template.Must(template.New("order").Parse(layout))

type view struct {
	Heading string
	Lead    string
	Detail  string
	Mail    Mail
}

func renderConfirmation(m Mail) (string, error) {
	return render(view{
		Heading: "Thank you for your order!",
		Lead:    "Your payment has been received.",
		Detail:  "We will email you again when your order ships.",
		Mail:    m,
	})
}

func renderStatus(m Mail) (string, error) {
	lines, ok := statusLines[m.Status]
	if !ok {
		lines = [2]string{
			fmt.Sprintf("Your order status is %s.", m.Status),
			"We will provide more details about your order status shortly.",
		}
	}
	return render(view{Heading: "Your order status was updated", Lead: lines[0], Detail: lines[1], Mail: m})
}

func render(v view) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderTemplate, err)
	}
	return buf.String(), nil
}
