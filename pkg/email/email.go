// Package email delivers the export reports and operator notifications over
// SMTP.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	gomail "gopkg.in/gomail.v2"
)

// Config holds the SMTP settings and the standing recipient lists.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string

	// Recipients receive the scheduled export file.
	Recipients []string
	// OperatorRecipients receive failure notices; falls back to
	// Recipients when empty.
	OperatorRecipients []string
}

// Service sends mail through a single SMTP account.
type Service struct {
	cfg    Config
	dialer *gomail.Dialer
}

// NewService creates an email service from config.
func NewService(cfg Config) *Service {
	return &Service{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// CustomerSummary is one customer's slice of an export run, rendered into
// the report body.
type CustomerSummary struct {
	Name          string
	InvoiceNumber int
	TicketCount   int
	Total         float64
}

// ExportReport is the scheduled run's outgoing mail: the interchange file as
// an attachment plus a per-customer summary table in the body.
type ExportReport struct {
	Date        time.Time
	Filename    string
	File        []byte
	TicketCount int
	Customers   []CustomerSummary
	GrandTotal  float64
}

var reportTemplate = template.Must(template.New("report").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
<h2>Accounting Export &mdash; {{.Date.Format "January 2, 2006"}}</h2>
<p>{{.TicketCount}} ticket(s) exported. The interchange file is attached as <strong>{{.Filename}}</strong>.</p>
<table border="1" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
<tr style="background: #f0f0f0;"><th>Invoice</th><th>Customer</th><th>Tickets</th><th align="right">Total</th></tr>
{{- range .Customers}}
<tr><td>{{.InvoiceNumber}}</td><td>{{.Name}}</td><td align="center">{{.TicketCount}}</td><td align="right">${{printf "%.2f" .Total}}</td></tr>
{{- end}}
<tr><td colspan="3"><strong>Grand total</strong></td><td align="right"><strong>${{printf "%.2f" .GrandTotal}}</strong></td></tr>
</table>
</body>
</html>`))

// SendExportReport mails the export file and summary to the standing
// recipients.
func (s *Service) SendExportReport(r *ExportReport) error {
	if len(s.cfg.Recipients) == 0 {
		return fmt.Errorf("no export recipients configured")
	}

	var body bytes.Buffer
	if err := reportTemplate.Execute(&body, r); err != nil {
		return fmt.Errorf("failed to render export report: %w", err)
	}

	m := s.message(s.cfg.Recipients,
		fmt.Sprintf("Accounting Export - %s", r.Date.Format("2006-01-02")),
		body.String())
	m.Attach(r.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(r.File)
		return err
	}))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send export report: %w", err)
	}
	return nil
}

// SendFailureNotice tells the operators a scheduled run failed. The run does
// not retry, so this mail is the only signal.
func (s *Service) SendFailureNotice(ranAt time.Time, cause error) error {
	to := s.cfg.OperatorRecipients
	if len(to) == 0 {
		to = s.cfg.Recipients
	}
	if len(to) == 0 {
		return fmt.Errorf("no operator recipients configured")
	}

	body := fmt.Sprintf(
		`<html><body style="font-family: Arial, sans-serif; color: #222;">
<h2>Accounting Export Failed</h2>
<p>The scheduled export run at %s did not complete:</p>
<pre style="background: #f8f8f8; padding: 10px;">%s</pre>
<p>No tickets were flagged as exported. The run will not retry; trigger the export manually once the cause is fixed.</p>
</body></html>`,
		ranAt.Format(time.RFC1123), template.HTMLEscapeString(cause.Error()))

	m := s.message(to,
		fmt.Sprintf("Accounting Export FAILED - %s", ranAt.Format("2006-01-02")),
		body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send failure notice: %w", err)
	}
	return nil
}

// SendTicketCopy mails a plain ticket confirmation to a customer contact.
func (s *Service) SendTicketCopy(to, subject, htmlBody string) error {
	if to == "" {
		return fmt.Errorf("no recipient address")
	}
	m := s.message([]string{to}, subject, htmlBody)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send ticket copy: %w", err)
	}
	return nil
}

func (s *Service) message(to []string, subject, htmlBody string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return m
}
