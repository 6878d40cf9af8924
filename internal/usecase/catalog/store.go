package catalog

import (
	"context"

	"github.com/facuperezm/barberia-sub000/internal/errs"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/models"
)

type Store interface {
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	ListBarbers(ctx context.Context, onlyActive bool) ([]models.Barber, error)
	CreateBarber(ctx context.Context, b *models.Barber) error
	UpdateBarberPhoto(ctx context.Context, barberID uint, url string) error

	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServices(ctx context.Context, onlyActive bool) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	SaveService(ctx context.Context, s *models.Service) error
}

// Uploader stores a public object and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

func storeErr(err error, notFoundCode string) error {
	if errs.Is(err, errs.ErrNotFound) {
		return httperr.ErrNotFound(notFoundCode)
	}
	return httperr.ErrTransient("store_unavailable", err)
}
