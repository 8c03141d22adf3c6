package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/shopspring/decimal"

	"wahu-store/internal/config"
	"wahu-store/internal/models"
)

// Mailer sends transactional emails over SMTP. All sends are
// best-effort: failures are logged and never returned to callers on the
// checkout path.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) enabled() bool {
	return m.cfg.Host != "" && m.cfg.User != ""
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.enabled() {
		log.Printf("Mailer disabled, skipping email to %s (%s)", to, subject)
		return nil
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", m.cfg.From, m.cfg.User),
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.User, []string{to}, []byte(msg))
}

// SendOrderConfirmation emails the buyer an order summary.
// Fire-and-forget: errors are logged only.
func (m *Mailer) SendOrderConfirmation(to string, order *models.Order) {
	var lines strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&lines, "<li>%s × %d – ₹%s</li>", item.Name, item.Qty, item.Price.StringFixed(2))
	}

	body := fmt.Sprintf(
		"<h2>Thank you for your order!</h2>"+
			"<p>Order #%d</p><ul>%s</ul>"+
			"<p>Total: ₹%s (%s)</p><p>Shipping to: %s</p>",
		order.ID, lines.String(), order.FinalAmount.StringFixed(2),
		order.PaymentMethod, order.Address.FullAddress)

	if err := m.send(to, "Order Confirmed - Wahu Store", body); err != nil {
		log.Printf("Order confirmation email failed for order %d: %v", order.ID, err)
	}
}

// SendAdminOrderAlert notifies the store admin about a new order.
// Fire-and-forget: errors are logged only.
func (m *Mailer) SendAdminOrderAlert(adminEmail, buyerEmail string, orderID uint, amount decimal.Decimal, paymentMethod string) {
	body := fmt.Sprintf(
		"<h2>New order received</h2>"+
			"<p>Order #%d from %s</p><p>Amount: ₹%s (%s)</p>",
		orderID, buyerEmail, amount.StringFixed(2), paymentMethod)

	if err := m.send(adminEmail, "New Order - Wahu Store", body); err != nil {
		log.Printf("Admin order alert failed for order %d: %v", orderID, err)
	}
}

// SendOTP emails a password reset code
func (m *Mailer) SendOTP(to, otp string) error {
	body := fmt.Sprintf("<p>Your OTP is <b>%s</b>. It is valid for 5 minutes.</p>", otp)
	return m.send(to, "Wahu Password Reset OTP", body)
}
