package notify

import (
	"context"
	"fmt"
	"log/slog"

	"innkeeper/internal/documents"
	"innkeeper/internal/pkg/config"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/shared"

	"gopkg.in/gomail.v2"
)

// New picks the delivery channel from config: a real SMTP mailer when a host
// is configured, otherwise log-only. Dev and CI run without SMTP.
func New(cfg config.Config, invoices *documents.InvoiceRenderer, logger *slog.Logger) commands.Notifier {
	if cfg.SMTP.Host == "" {
		return &LogNotifier{logger: logger}
	}
	return &MailNotifier{
		smtp:     cfg.SMTP,
		hotel:    cfg.Hotel,
		invoices: invoices,
		logger:   logger,
	}
}

// LogNotifier records reservation events in the log instead of sending mail.
type LogNotifier struct {
	logger *slog.Logger
}

func (n *LogNotifier) ReservationCreated(ctx context.Context, res *shared.ReservationSnapshot) error {
	n.logger.InfoContext(ctx, "reservation created",
		slog.String("reference", res.Reference),
		slog.String("guest_email", res.GuestEmail),
	)
	return nil
}

func (n *LogNotifier) ReservationConfirmed(ctx context.Context, res *shared.ReservationSnapshot) error {
	n.logger.InfoContext(ctx, "reservation confirmed",
		slog.String("reference", res.Reference),
		slog.String("guest_email", res.GuestEmail),
	)
	return nil
}

func (n *LogNotifier) ReservationCancelled(ctx context.Context, res *shared.ReservationSnapshot) error {
	n.logger.InfoContext(ctx, "reservation cancelled",
		slog.String("reference", res.Reference),
		slog.String("guest_email", res.GuestEmail),
	)
	return nil
}

// MailNotifier sends guest-facing mail over SMTP. The confirmation mail
// carries the rendered invoice as its body.
type MailNotifier struct {
	smtp     config.SMTPConfig
	hotel    config.HotelConfig
	invoices *documents.InvoiceRenderer
	logger   *slog.Logger
}

func (n *MailNotifier) ReservationCreated(ctx context.Context, res *shared.ReservationSnapshot) error {
	subject := fmt.Sprintf("Reservation request %s received", res.Reference)
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>We received your reservation request <b>%s</b> for %s to %s. "+
			"We will confirm it shortly.</p><p>%s</p>",
		res.GuestName, res.Reference,
		res.Arrival.Format("2006-01-02"), res.Departure.Format("2006-01-02"),
		n.hotel.Name,
	)
	if err := n.send(res.GuestEmail, subject, body); err != nil {
		return err
	}

	// New bookings also get flagged to the front desk when an address is set.
	if n.hotel.AdminEmail != "" {
		adminSubject := fmt.Sprintf("New reservation %s", res.Reference)
		adminBody := fmt.Sprintf(
			"<p>New reservation <b>%s</b>: %s, %s to %s.</p>",
			res.Reference, res.GuestName,
			res.Arrival.Format("2006-01-02"), res.Departure.Format("2006-01-02"),
		)
		if err := n.send(n.hotel.AdminEmail, adminSubject, adminBody); err != nil {
			n.logger.WarnContext(ctx, "admin alert failed",
				slog.String("reference", res.Reference),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

func (n *MailNotifier) ReservationConfirmed(_ context.Context, res *shared.ReservationSnapshot) error {
	invoice, err := n.invoices.Render(res)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Reservation %s confirmed", res.Reference)
	return n.send(res.GuestEmail, subject, invoice)
}

func (n *MailNotifier) ReservationCancelled(_ context.Context, res *shared.ReservationSnapshot) error {
	subject := fmt.Sprintf("Reservation %s cancelled", res.Reference)
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your reservation <b>%s</b> has been cancelled.</p><p>%s</p>",
		res.GuestName, res.Reference, n.hotel.Name,
	)
	return n.send(res.GuestEmail, subject, body)
}

func (n *MailNotifier) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.smtp.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(n.smtp.Host, n.smtp.Port, n.smtp.User, n.smtp.Password)
	if err := d.DialAndSend(m); err != nil {
		return errs.Wrap(err, "failed to send mail")
	}
	return nil
}
