package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"project_space/internal/service"

	"github.com/gin-gonic/gin"
)

const uploadField = "file"

// @Summary      Upload image
// @Description  Resized to 1600x900 and re-encoded as JPEG by the image host.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image"
// @Success      200   {object}  models.Image
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /files/upload [post]
// @Security     CookieAuth
func (h *Handler) uploadFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadSize)

	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.uploadFailed(c, fmt.Errorf("file exceeds %d bytes", tooLarge.Limit))
			return
		}
		h.uploadFailed(c, service.ErrNoImage, "reason", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.uploadFailed(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	img, err := h.services.Files.UploadImage(c.Request.Context(), service.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		h.uploadFailed(c, err, "filename", fh.Filename, "size", fh.Size)
		return
	}
	c.JSON(http.StatusOK, img)
}

// uploadFailed reports any upload error as 400 with the collaborator's message.
func (h *Handler) uploadFailed(c *gin.Context, err error, kv ...interface{}) {
	if h.log != nil {
		h.log.Infow("file_upload_failed", append([]interface{}{"err", err}, kv...)...)
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}
