package notify

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/facuperezm/barberia-sub000/internal/config"
)

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSender mails the customer about their appointment.
type EmailSender struct {
	dialer mailDialer
	from   string
}

func NewEmailSender(cfg config.SMTPConfig) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *EmailSender) Name() string { return "email" }

func (s *EmailSender) Send(ctx context.Context, ev Event) error {
	if ev.CustomerEmail == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(s.compose(ev))
}

func (s *EmailSender) compose(ev Event) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", ev.CustomerEmail, ev.CustomerName)

	subject, body := render(ev)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}

func render(ev Event) (string, string) {
	when := fmt.Sprintf("%s a las %s", ev.Date, strings.TrimSuffix(ev.Time, ":00"))

	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", ev.CustomerName)

	var subject string
	switch {
	case ev.Kind == KindBookingCreated:
		subject = "Recibimos tu reserva"
		fmt.Fprintf(&b, "Tu turno de %s con %s quedó reservado para el %s.\n", ev.ServiceName, ev.BarberName, when)
		if ev.PaymentURL != "" {
			fmt.Fprintf(&b, "\nPara confirmarlo, completá el pago en:\n%s\n", ev.PaymentURL)
		}
	case ev.Status == "confirmed":
		subject = "Tu turno está confirmado"
		fmt.Fprintf(&b, "Confirmamos tu turno del %s.\n", when)
	case ev.Status == "cancelled":
		subject = "Tu turno fue cancelado"
		fmt.Fprintf(&b, "Tu turno del %s fue cancelado. Podés reservar otro horario cuando quieras.\n", when)
	default:
		subject = "Actualización de tu turno"
		fmt.Fprintf(&b, "Tu turno del %s ahora está: %s.\n", when, ev.Status)
	}

	b.WriteString("\nGracias por elegirnos.\n")
	return subject, b.String()
}
