package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	"github.com/candraczapansky/software-sub012/internal/middleware"
	"github.com/candraczapansky/software-sub012/internal/models"
	"github.com/candraczapansky/software-sub012/internal/storage"
)

// maxPhotoBytes caps the multipart upload before decoding.
const maxPhotoBytes = 10 << 20

type PhotoHandler struct {
	db    *gorm.DB
	store *storage.PhotoStore
}

func NewPhotoHandler(db *gorm.DB, store *storage.PhotoStore) *PhotoHandler {
	return &PhotoHandler{db: db, store: store}
}

// Upload attaches a before/after photo to an appointment. The image is
// re-encoded and downscaled on the way to the bucket, so the original bytes
// never land anywhere.
func (h *PhotoHandler) Upload(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "multipart field 'photo' is required.")
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "")
		return
	}
	defer f.Close()

	key, url, err := h.store.Save(c.Request.Context(), ap.ID, f)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "")
		return
	}

	photo := models.AppointmentPhoto{
		AppointmentID: ap.ID,
		ObjectKey:     key,
		URL:           url,
		UploadedBy:    c.GetUint(middleware.ContextUserID),
	}

	if err := h.db.Create(&photo).Error; err != nil {
		httperr.Internal(c, "failed_to_save_photo", "")
		return
	}

	httpresp.Created(c, photo)
}

func (h *PhotoHandler) List(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var photos []models.AppointmentPhoto
	if err := h.db.
		Where("appointment_id = ?", id).
		Order("created_at ASC").
		Find(&photos).Error; err != nil {
		httperr.Internal(c, "failed_to_list_photos", "")
		return
	}

	httpresp.List(c, photos)
}
