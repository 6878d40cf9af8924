package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/facuperezm/barberia-sub000/internal/errs"
	"github.com/facuperezm/barberia-sub000/internal/models"
)

// Logger persists audit events into audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		Actor:    ev.Actor,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// Query filters the dashboard audit listing. Zero values mean "any".
type Query struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

// List returns one page of audit rows, newest first, and the total match
// count.
func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}

	tx := l.db.WithContext(ctx).Model(&models.AuditLog{})
	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if !q.From.IsZero() {
		tx = tx.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		tx = tx.Where("created_at < ?", q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errs.Wrap(err, "count audit logs")
	}

	var rows []models.AuditLog
	if err := tx.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, errs.Wrap(err, "list audit logs")
	}

	return rows, total, nil
}
