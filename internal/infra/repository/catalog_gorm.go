package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/facuperezm/barberia-sub000/internal/errs"
	"github.com/facuperezm/barberia-sub000/internal/models"
)

// CatalogGormRepository serves barbers and services to the public site and
// the dashboard.
type CatalogGormRepository struct {
	queries
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{queries: queries{db: db}}
}

func (r *CatalogGormRepository) ListBarbers(
	ctx context.Context,
	onlyActive bool,
) ([]models.Barber, error) {

	q := r.db.WithContext(ctx).Order("name ASC")
	if onlyActive {
		q = q.Where("active = ?", true)
	}

	var out []models.Barber
	if err := q.Find(&out).Error; err != nil {
		return nil, classify(err, "list barbers")
	}
	return out, nil
}

func (r *CatalogGormRepository) CreateBarber(
	ctx context.Context,
	b *models.Barber,
) error {
	return classify(r.db.WithContext(ctx).Create(b).Error, "create barber")
}

func (r *CatalogGormRepository) UpdateBarberPhoto(
	ctx context.Context,
	barberID uint,
	url string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ?", barberID).
		Update("photo_url", url)
	if res.Error != nil {
		return classify(res.Error, "update barber photo")
	}
	if res.RowsAffected == 0 {
		return errs.Mark(errs.New("barber not found"), errs.ErrNotFound)
	}
	return nil
}

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	onlyActive bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Order("name ASC")
	if onlyActive {
		q = q.Where("active = ?", true)
	}

	var out []models.Service
	if err := q.Find(&out).Error; err != nil {
		return nil, classify(err, "list services")
	}
	return out, nil
}

func (r *CatalogGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return classify(r.db.WithContext(ctx).Create(s).Error, "create service")
}

func (r *CatalogGormRepository) SaveService(
	ctx context.Context,
	s *models.Service,
) error {
	return classify(r.db.WithContext(ctx).Save(s).Error, "save service")
}
