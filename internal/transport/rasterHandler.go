package transport

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/ds124wfegd/georaster/internal/entity"
	"github.com/ds124wfegd/georaster/internal/pkg/render"
	"github.com/gin-gonic/gin"
)

const (
	formatJSON = "json"
	formatPNG  = "png"

	headerRasterMin = "X-Raster-Min"
	headerRasterMax = "X-Raster-Max"
)

var errUnknownFormat = errors.New("unknown output format")

func (h *RasterHandler) Arithmetic(c *gin.Context) {
	if err := h.parseForm(c); err != nil {
		h.writeError(c, err)
		return
	}
	op, err := entity.ParseOperation(formValue(c, "operation"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	format, err := h.outputFormat(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	first, err := openUpload(c, "first")
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer first.Close()

	second, err := openUpload(c, "second")
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer second.Close()

	result, err := h.service.Combine(c.Request.Context(), first, second, op)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.writeResult(c, result, format)
}

func (h *RasterHandler) Adjust(c *gin.Context) {
	if err := h.parseForm(c); err != nil {
		h.writeError(c, err)
		return
	}
	adj, err := h.adjustment(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	format, err := h.outputFormat(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	image, err := openUpload(c, "image")
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer image.Close()

	result, err := h.service.Adjust(c.Request.Context(), image, adj)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.writeResult(c, result, format)
}

func (h *RasterHandler) Info(c *gin.Context) {
	if err := h.parseForm(c); err != nil {
		h.writeError(c, err)
		return
	}
	image, err := openUpload(c, "image")
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer image.Close()

	info, err := h.service.Inspect(c.Request.Context(), image)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *RasterHandler) Operations(c *gin.Context) {
	ops := entity.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}

	c.JSON(http.StatusOK, entity.OperationsResponse{
		Operations:    names,
		Default:       entity.DefaultAdjustment(),
		MaxAdjustment: h.cfg.MaxAdjustment,
	})
}

// adjustment reads brightness and contrast, both defaulting to 1.0 and capped at MaxAdjustment.
func (h *RasterHandler) adjustment(c *gin.Context) (entity.Adjustment, error) {
	adj := entity.DefaultAdjustment()

	fields := []struct {
		name string
		dst  *float64
	}{
		{"brightness", &adj.Brightness},
		{"contrast", &adj.Contrast},
	}
	for _, f := range fields {
		raw := formValue(c, f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return adj, fmt.Errorf("%w: %s %q is not a number", entity.ErrInvalidAdjustment, f.name, raw)
		}
		if h.cfg.MaxAdjustment > 0 && v > h.cfg.MaxAdjustment {
			return adj, fmt.Errorf("%w: %s %v exceeds %v", entity.ErrInvalidAdjustment, f.name, v, h.cfg.MaxAdjustment)
		}
		*f.dst = v
	}

	return adj, adj.Validate()
}

func (h *RasterHandler) outputFormat(c *gin.Context) (string, error) {
	format := formValue(c, "format")
	if format == "" {
		format = h.cfg.DefaultFormat
	}
	switch format {
	case formatJSON, formatPNG:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

func (h *RasterHandler) writeResult(c *gin.Context, result *entity.Result, format string) {
	if format == formatJSON {
		c.JSON(http.StatusOK, result)
		return
	}

	var buf bytes.Buffer
	rng, err := render.EncodePNG(&buf, result.Raster, h.cfg.PreviewMaxDim)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header(headerRasterMin, strconv.FormatFloat(rng.Min, 'g', -1, 64))
	c.Header(headerRasterMax, strconv.FormatFloat(rng.Max, 'g', -1, 64))
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *RasterHandler) writeError(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entity.ErrUnsupportedOperation),
		errors.Is(err, entity.ErrInvalidAdjustment),
		errors.Is(err, entity.ErrMissingUpload),
		errors.Is(err, errUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrDecode),
		errors.Is(err, entity.ErrShapeMismatch),
		errors.Is(err, entity.ErrEmptyRaster):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseForm reads the multipart body once. Requests without one are left to fail on the missing upload.
func (h *RasterHandler) parseForm(c *gin.Context) error {
	err := c.Request.ParseMultipartForm(h.cfg.MultipartMemory)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("%w: %v", entity.ErrMissingUpload, err)
}

func openUpload(c *gin.Context, field string) (multipart.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", entity.ErrMissingUpload, field)
	}
	return header.Open()
}

// formValue prefers the multipart/urlencoded body and falls back to the query string.
func formValue(c *gin.Context, key string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return c.Query(key)
}
