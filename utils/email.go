// utils/email.go
package utils

import (
	"fmt"
	"os"
	"strings"
	"stylehive/models"

	"github.com/keighl/postmark"
	"github.com/rs/zerolog/log"
)

// EmailService handles sending emails using Postmark. All order notifications
// are best-effort: callers fire them from a goroutine and only log failures,
// so a notifier outage never fails the primary mutation.
type EmailService struct {
	client *postmark.Client
}

// NewEmailService initializes and returns a new EmailService instance. With no
// API token configured the service is created anyway and every send fails,
// which the fire-and-forget callers just log.
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		log.Warn().Msg("POSTMARK_API_TOKEN is not set; email notifications will fail")
		return &EmailService{}
	}
	return &EmailService{client: postmark.NewClient(apiToken, "")}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		return fmt.Errorf("email service is not configured")
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     os.Getenv("EMAIL_SENDER"),
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// ReviewLink returns the storefront review page for an order.
func ReviewLink(orderID string) string {
	return fmt.Sprintf("%s/review?orderId=%s", os.Getenv("FRONTEND_URL"), orderID)
}

// OrderConfirmationEmail builds the checkout confirmation message.
func OrderConfirmationEmail(order *models.Order) (subject, body string) {
	subject = fmt.Sprintf("Order Confirmation - %s", order.ID.Hex())
	body = fmt.Sprintf(
		"<h3>Hi %s,</h3>"+
			"<p>Thank you for your order!</p>"+
			"<p>Your order <strong>#%s</strong> has been <strong>placed</strong> successfully.</p>"+
			"<p><strong>Total Amount:</strong> ₹%.2f</p>"+
			"<p><strong>Payment Method:</strong> %s</p>"+
			"<p>We'll update you when the order is processed.</p>"+
			"<br/><p>Shipping Address:</p><p>%s, %s, %s - %s</p>"+
			"<br/><p>Thank you for shopping with us!</p>",
		order.ShippingInfo.Name, order.ID.Hex(), order.TotalAmount, order.PaymentInfo.Method,
		order.ShippingInfo.Address, order.ShippingInfo.City, order.ShippingInfo.State, order.ShippingInfo.Pincode,
	)
	return subject, body
}

// OrderCancelledEmail builds the user-cancellation message.
func OrderCancelledEmail(order *models.Order, userName string) (subject, body string) {
	subject = fmt.Sprintf("Order Cancelled - %s", order.ID.Hex())
	body = fmt.Sprintf(
		"<h3>Hi %s,</h3>"+
			"<p>Your order has been successfully <strong>cancelled.</strong></p>"+
			"<p>Order ID: %s</p>"+
			"<p>Total Amount: ₹%.2f</p>"+
			"<br/><p>We hope to see you again soon.</p>",
		userName, order.ID.Hex(), order.TotalAmount,
	)
	return subject, body
}

// OrderStatusEmail builds the status-change message sent after an admin
// updates the order status. Each status gets its own body; Delivered appends
// a review link.
func OrderStatusEmail(status string, order *models.Order, userName string) (subject, body string) {
	subject = fmt.Sprintf("Order Status Updated - %s", order.ID.Hex())
	switch status {
	case models.OrderStatusProcessing:
		body = fmt.Sprintf(
			"<h3>Hi %s,</h3>"+
				"<p>Your order is now being <strong>processed.</strong></p>"+
				"<p>Order ID: %s</p>"+
				"<p>We'll notify you when it ships.</p>"+
				"<p>Total Amount: ₹%.2f</p>"+
				"<br/><p>Thank you for shopping with us!</p>",
			userName, order.ID.Hex(), order.TotalAmount)
	case models.OrderStatusShipped:
		body = fmt.Sprintf(
			"<h3>Hi %s,</h3>"+
				"<p>Your order has been <strong>shipped.</strong></p>"+
				"<p>Order ID: %s</p>"+
				"<p>It's on the way and will reach you soon.</p>"+
				"<p>Total Amount: ₹%.2f</p>"+
				"<br/><p>Thank you for choosing us!</p>",
			userName, order.ID.Hex(), order.TotalAmount)
	case models.OrderStatusDelivered:
		body = fmt.Sprintf(
			"<h3>Hi %s,</h3>"+
				"<p>Your order has been <strong>delivered</strong> successfully.</p>"+
				"<p>Order ID: %s</p>"+
				"<p>We hope you enjoy your purchase!</p>"+
				"<p>Total Amount: ₹%.2f</p>"+
				"<br/><p>We'd love to hear your feedback.</p>"+
				"<a href=\"%s\">Leave a Review</a>"+
				"<br/><br/><p>Thank you for shopping with us!</p>",
			userName, order.ID.Hex(), order.TotalAmount, ReviewLink(order.ID.Hex()))
	case models.OrderStatusCancelled:
		body = fmt.Sprintf(
			"<h3>Hi %s,</h3>"+
				"<p>Your order has been cancelled.</p>"+
				"<p>Order ID: %s</p>"+
				"<p>If you didn't request this or have questions, please contact support.</p>"+
				"<p>Total Amount: ₹%.2f</p>"+
				"<br/><p>We hope to serve you again.</p>",
			userName, order.ID.Hex(), order.TotalAmount)
	default:
		body = fmt.Sprintf(
			"<h3>Hi %s,</h3>"+
				"<p>Your order <strong>#%s</strong> status has been updated to <strong>%s</strong>.</p>"+
				"<p>Total Amount: ₹%.2f</p>"+
				"<br/><p>Thank you for shopping with us!</p>",
			userName, order.ID.Hex(), status, order.TotalAmount)
	}
	return subject, body
}

// OrderUpdateEmail builds the single combined message sent after an admin
// updates any subset of order status and payment status. Only the fields that
// changed are mentioned; a Delivered order status appends a review link.
func OrderUpdateEmail(order *models.Order, userName, orderStatus, paymentStatus string) (subject, body string) {
	subject = fmt.Sprintf("Order Updated - %s", order.ID.Hex())

	var b strings.Builder
	fmt.Fprintf(&b, "<h3>Hi %s,</h3><p>Your order <strong>#%s</strong> has been updated.</p>", userName, order.ID.Hex())
	if orderStatus != "" {
		fmt.Fprintf(&b, "<p><strong>Order Status:</strong> %s</p>", orderStatus)
	}
	if paymentStatus != "" {
		fmt.Fprintf(&b, "<p><strong>Payment Status:</strong> %s</p>", paymentStatus)
	}
	fmt.Fprintf(&b, "<p>Total Amount: ₹%.2f</p><br/>", order.TotalAmount)
	if orderStatus == models.OrderStatusDelivered {
		fmt.Fprintf(&b,
			"<p>We hope you enjoy your purchase!</p>"+
				"<p>We'd love to hear your feedback.</p>"+
				"<a href=\"%s\">Leave a Review</a><br/><br/>",
			ReviewLink(order.ID.Hex()))
	}
	b.WriteString("<p>Thank you for shopping with us!</p>")
	return subject, b.String()
}
