package payment

import (
	"context"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	appconfig "github.com/facuperezm/barberia-sub000/internal/config"
	domain "github.com/facuperezm/barberia-sub000/internal/domain/appointment"
	"github.com/facuperezm/barberia-sub000/internal/errs"
)

type preferenceAPI interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentAPI interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoGateway creates checkout preferences for bookings and looks up
// payments announced by webhooks. ExternalReference carries the appointment
// id both ways.
type MercadoPagoGateway struct {
	preferences     preferenceAPI
	payments        paymentAPI
	notificationURL string
	currency        string
}

func NewMercadoPagoGateway(cfg appconfig.MercadoPagoConfig) (*MercadoPagoGateway, error) {
	mp, err := config.New(cfg.AccessToken)
	if err != nil {
		return nil, errs.Wrap(err, "mercadopago config")
	}

	return &MercadoPagoGateway{
		preferences:     preference.NewClient(mp),
		payments:        payment.NewClient(mp),
		notificationURL: cfg.NotificationURL,
		currency:        cfg.Currency,
	}, nil
}

func (g *MercadoPagoGateway) CreatePreference(
	ctx context.Context,
	in domain.PreferenceInput,
) (domain.Preference, error) {

	req := preference.Request{
		Items: []preference.ItemRequest{{
			ID:         strconv.FormatUint(uint64(in.AppointmentID), 10),
			Title:      in.Title,
			Quantity:   1,
			UnitPrice:  float64(in.PriceCents) / 100,
			CurrencyID: g.currency,
		}},
		ExternalReference: strconv.FormatUint(uint64(in.AppointmentID), 10),
		NotificationURL:   g.notificationURL,
	}
	if in.PayerEmail != "" {
		req.Payer = &preference.PayerRequest{Email: in.PayerEmail}
	}

	res, err := g.preferences.Create(ctx, req)
	if err != nil {
		return domain.Preference{}, errs.Wrap(err, "create preference")
	}

	return domain.Preference{ID: res.ID, CheckoutURL: res.InitPoint}, nil
}

func (g *MercadoPagoGateway) PaymentOutcome(
	ctx context.Context,
	paymentID string,
) (domain.PaymentOutcome, error) {

	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return domain.PaymentOutcome{}, errs.Wrapf(err, "payment id %q", paymentID)
	}

	res, err := g.payments.Get(ctx, id)
	if err != nil {
		return domain.PaymentOutcome{}, errs.Wrapf(err, "get payment %d", id)
	}

	appointmentID, err := strconv.ParseUint(res.ExternalReference, 10, 64)
	if err != nil {
		return domain.PaymentOutcome{}, errs.Wrapf(err, "payment %d external reference", id)
	}

	return domain.PaymentOutcome{
		AppointmentID: uint(appointmentID),
		State:         MapMercadoPagoStatus(res.Status),
	}, nil
}

// MapMercadoPagoStatus reduces Mercado Pago payment statuses to the three
// states bookings react to.
func MapMercadoPagoStatus(status string) domain.PaymentState {
	switch status {
	case "approved", "authorized":
		return domain.PaymentSucceeded
	case "rejected", "cancelled", "refunded", "charged_back":
		return domain.PaymentFailed
	default:
		return domain.PaymentPending
	}
}
