package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/dto"
	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

type ImageHandler struct {
	imageService service.ImageService
	maxBytes     int64
}

func NewImageHandler(imageService service.ImageService, maxBytes int64) *ImageHandler {
	return &ImageHandler{imageService: imageService, maxBytes: maxBytes}
}

func (h *ImageHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	if h.maxBytes > 0 {
		// multipart framing needs headroom beyond the file itself
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, service.ErrImageTooLarge, "")
			return
		}
		badRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.ErrorContext(ctx, "failed to open upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	img, err := h.imageService.Upload(ctx, service.ImageUploadParams{
		UserID:      middleware.GetUser(ctx).ID,
		Type:        model.ImageType(c.PostForm("type")),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		respondError(c, err, "failed to upload image")
		return
	}

	c.JSON(http.StatusCreated, dto.ToImageResponse(img))
}

func (h *ImageHandler) Serve(c *gin.Context) {
	ctx := c.Request.Context()

	img, body, err := h.imageService.Open(ctx, c.Param("fileId"))
	if err != nil {
		respondError(c, err, "failed to load image")
		return
	}
	defer body.Close()

	c.Header("Content-Type", img.ContentType)
	filename := img.OriginalName
	if filename == "" {
		filename = img.Filename
	}
	disposition := mime.FormatMediaType("inline", map[string]string{"filename": filename})
	if disposition == "" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", disposition)
	c.Header("Cache-Control", "public, max-age=31536000")
	if img.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(img.Size, 10))
	}
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, body); err != nil {
		slog.WarnContext(ctx, "image stream interrupted", "error", err, "image_id", img.ID)
	}
}

func (h *ImageHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.imageService.Delete(ctx, middleware.GetUser(ctx).ID, c.Param("fileId")); err != nil {
		respondError(c, err, "failed to delete image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}

func (h *ImageHandler) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	images, err := h.imageService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list images")
		return
	}

	c.JSON(http.StatusOK, dto.ToImageResponses(images))
}
