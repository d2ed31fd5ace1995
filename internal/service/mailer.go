package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"gopkg.in/gomail.v2"

	"provideo-rentals/internal/config"
	"provideo-rentals/internal/dto"
	"provideo-rentals/internal/model"
)

type Mailer interface {
	SendOrderConfirmation(order *dto.OrderView) error
	SendAdminOrderNotice(order *dto.OrderView) error
	SendMagicLink(email, link string) error
	SendContactNotice(contact *model.Contact) error
}

type gomailMailer struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

// NewMailer returns the SMTP mailer, or a log-only mailer when no SMTP host
// is configured so local development does not need a mail server.
func NewMailer(cfg config.SMTP) Mailer {
	if cfg.Host == "" {
		return &logMailer{}
	}
	return &gomailMailer{
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:       cfg.From,
		adminEmail: cfg.AdminEmail,
	}
}

func (m *gomailMailer) SendOrderConfirmation(order *dto.OrderView) error {
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, confirmationData(order)); err != nil {
		return fmt.Errorf("render confirmation email: %w", err)
	}
	return m.send(order.EventDetails.ContactEmail,
		"Booking Confirmation "+order.ID, body.String())
}

func (m *gomailMailer) SendAdminOrderNotice(order *dto.OrderView) error {
	var body bytes.Buffer
	if err := adminNoticeTmpl.Execute(&body, confirmationData(order)); err != nil {
		return fmt.Errorf("render admin notice: %w", err)
	}
	return m.send(m.adminEmail, "New Order "+order.ID, body.String())
}

func (m *gomailMailer) SendMagicLink(email, link string) error {
	var body bytes.Buffer
	if err := magicLinkTmpl.Execute(&body, map[string]string{"Link": link}); err != nil {
		return fmt.Errorf("render magic link email: %w", err)
	}
	return m.send(email, "Your order access link", body.String())
}

func (m *gomailMailer) SendContactNotice(contact *model.Contact) error {
	var body bytes.Buffer
	if err := contactNoticeTmpl.Execute(&body, contact); err != nil {
		return fmt.Errorf("render contact notice: %w", err)
	}
	return m.send(m.adminEmail, "New contact message from "+contact.Name, body.String())
}

func (m *gomailMailer) send(to, subject, htmlBody string) error {
	if to == "" {
		return fmt.Errorf("no recipient address")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

type emailLine struct {
	Name     string
	Quantity int
	Price    string
	Subtotal string
}

type emailData struct {
	Order       *dto.OrderView
	Lines       []emailLine
	Total       string
	Deposit     string
	Balance     string
	DepositPaid bool
}

func confirmationData(order *dto.OrderView) *emailData {
	data := &emailData{
		Order:       order,
		Total:       fmt.Sprintf("$%.2f", order.Total),
		DepositPaid: order.Status == model.StatusDepositPaid,
	}
	if data.DepositPaid {
		// On the paid path Total is the collected deposit; the schedule shows
		// the full value when the metadata carried it through.
		full := order.EventDetails.FullTotal
		if full == 0 {
			full = order.Total * 2
		}
		data.Total = fmt.Sprintf("$%.2f", full)
		data.Deposit = fmt.Sprintf("$%.2f", order.Total)
		data.Balance = fmt.Sprintf("$%.2f", full-order.Total)
	} else {
		data.Deposit = fmt.Sprintf("$%.2f", order.Total/2)
		data.Balance = fmt.Sprintf("$%.2f", order.Total/2)
	}
	for _, item := range order.Items {
		data.Lines = append(data.Lines, emailLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    fmt.Sprintf("$%.2f", item.Price),
			Subtotal: fmt.Sprintf("$%.2f", item.Price*float64(item.Quantity)),
		})
	}
	return data
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Thank you for your booking</h2>
  <p>Your order <strong>{{.Order.ID}}</strong> is confirmed for {{.Order.EventDate}}.</p>
  <table cellpadding="6" cellspacing="0" border="0" style="border-collapse: collapse;">
    <tr style="border-bottom: 1px solid #ccc;">
      <th align="left">Item</th><th align="right">Qty</th>
      <th align="right">Price</th><th align="right">Subtotal</th>
    </tr>
    {{range .Lines}}
    <tr>
      <td>{{.Name}}</td><td align="right">{{.Quantity}}</td>
      <td align="right">{{.Price}}</td><td align="right">{{.Subtotal}}</td>
    </tr>
    {{end}}
    <tr style="border-top: 1px solid #ccc;">
      <td colspan="3"><strong>Total</strong></td>
      <td align="right"><strong>{{.Total}}</strong></td>
    </tr>
  </table>
  <h3>Payment schedule</h3>
  <p>
    50% deposit ({{.Deposit}}): {{if .DepositPaid}}paid{{else}}due at booking{{end}}<br>
    50% balance ({{.Balance}}): due on completion
  </p>
</body>
</html>
`))

var adminNoticeTmpl = template.Must(template.New("adminNotice").Parse(`
<html>
<body style="font-family: Arial, sans-serif;">
  <p>New order <strong>{{.Order.ID}}</strong> ({{.Order.Status}})</p>
  <p>
    Event: {{.Order.EventDate}} {{.Order.EventDetails.EventStartTime}}&ndash;{{.Order.EventDetails.EventEndTime}}<br>
    Contact: {{.Order.EventDetails.ContactName}} &lt;{{.Order.EventDetails.ContactEmail}}&gt;<br>
    Total: {{.Total}}
  </p>
</body>
</html>
`))

var magicLinkTmpl = template.Must(template.New("magicLink").Parse(`
<html>
<body style="font-family: Arial, sans-serif;">
  <p>Use the link below to view your orders. It expires in 15 minutes and can
  be used once.</p>
  <p><a href="{{.Link}}">View my orders</a></p>
</body>
</html>
`))

var contactNoticeTmpl = template.Must(template.New("contactNotice").Parse(`
<html>
<body style="font-family: Arial, sans-serif;">
  <p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt;{{if .Phone}} ({{.Phone}}){{end}} wrote:</p>
  <blockquote>{{.Message}}</blockquote>
</body>
</html>
`))

// logMailer stands in when SMTP is not configured.
type logMailer struct{}

func (l *logMailer) SendOrderConfirmation(order *dto.OrderView) error {
	log.Printf("mail (not configured): order confirmation %s to %s", order.ID, order.EventDetails.ContactEmail)
	return nil
}

func (l *logMailer) SendAdminOrderNotice(order *dto.OrderView) error {
	log.Printf("mail (not configured): admin notice for order %s", order.ID)
	return nil
}

func (l *logMailer) SendMagicLink(email, link string) error {
	log.Printf("mail (not configured): magic link for %s: %s", email, link)
	return nil
}

func (l *logMailer) SendContactNotice(contact *model.Contact) error {
	log.Printf("mail (not configured): contact notice from %s", contact.Email)
	return nil
}
