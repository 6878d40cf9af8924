package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/errs"
	"github.com/facuperezm/barberia-sub000/internal/models"
	ucschedule "github.com/facuperezm/barberia-sub000/internal/usecase/schedule"
)

type ScheduleGormRepository struct {
	queries
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{queries: queries{db: db}}
}

// SaveOverride upserts on (barber_id, date). The row keeps its id when it is
// replaced.
func (r *ScheduleGormRepository) SaveOverride(
	ctx context.Context,
	o *models.ScheduleOverride,
) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "barber_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_working_day", "available_slots", "reason", "created_by", "created_at",
			}),
		}).
		Create(o).Error
	return classify(err, "save override")
}

func (r *ScheduleGormRepository) GetOverride(
	ctx context.Context,
	id uint,
) (*models.ScheduleOverride, error) {

	var o models.ScheduleOverride
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, classify(err, "get override")
	}
	return &o, nil
}

func (r *ScheduleGormRepository) ListOverrides(
	ctx context.Context,
	barberID uint,
	from string,
	to string,
) ([]models.ScheduleOverride, error) {

	q := r.db.WithContext(ctx).Where("barber_id = ?", barberID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var rows []models.ScheduleOverride
	if err := q.Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, classify(err, "list overrides")
	}
	return rows, nil
}

func (r *ScheduleGormRepository) DeleteOverride(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.ScheduleOverride{}, id)
	if res.Error != nil {
		return classify(res.Error, "delete override")
	}
	if res.RowsAffected == 0 {
		return errs.Mark(errs.New("override not found"), errs.ErrNotFound)
	}
	return nil
}

func (r *ScheduleGormRepository) UpdateWeeklySchedule(
	ctx context.Context,
	barberID uint,
	week schedule.WeeklySchedule,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ?", barberID).
		Update("weekly_schedule", datatypes.NewJSONType(week))
	if res.Error != nil {
		return classify(res.Error, "update weekly schedule")
	}
	if res.RowsAffected == 0 {
		return errs.Mark(errs.New("barber not found"), errs.ErrNotFound)
	}
	return nil
}

var _ ucschedule.Store = (*ScheduleGormRepository)(nil)
