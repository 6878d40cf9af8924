package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/media"
)

type UploadBarberPhoto struct {
	store    Store
	uploader Uploader
	audit    audit.Auditor
}

// NewUploadBarberPhoto wires the photo pipeline. uploader may be nil when
// object storage is not configured.
func NewUploadBarberPhoto(store Store, uploader Uploader, audit audit.Auditor) *UploadBarberPhoto {
	return &UploadBarberPhoto{store: store, uploader: uploader, audit: audit}
}

// Execute converts the image to WebP, stores it under a fresh key and points
// the barber at the new URL.
func (uc *UploadBarberPhoto) Execute(
	ctx context.Context,
	barberID uint,
	photo io.Reader,
	actor string,
) (string, error) {

	if uc.uploader == nil {
		return "", httperr.ErrTransient("media_unavailable", nil)
	}

	if _, err := uc.store.GetBarber(ctx, barberID); err != nil {
		return "", storeErr(err, "barber_not_found")
	}

	body, err := media.ProcessPhoto(photo)
	if err != nil {
		return "", httperr.ErrValidation("invalid_photo", httperr.FieldError{Field: "photo", Message: "imagen inválida"})
	}

	key := fmt.Sprintf("barbers/%d/%s.webp", barberID, uuid.NewString())
	url, err := uc.uploader.Upload(ctx, key, "image/webp", body)
	if err != nil {
		return "", httperr.ErrTransient("media_unavailable", err)
	}

	if err := uc.store.UpdateBarberPhoto(ctx, barberID, url); err != nil {
		return "", storeErr(err, "barber_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "barber_photo_updated",
		Entity:   "barber",
		EntityID: &barberID,
		Metadata: map[string]any{"url": url},
	})
	return url, nil
}
