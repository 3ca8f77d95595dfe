package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tanlab/labdaily-api/internal/dto"
	appErrors "github.com/tanlab/labdaily-api/pkg/errors"
	"github.com/tanlab/labdaily-api/pkg/response"
)

type digestService interface {
	Weekly(ctx context.Context, date string) (*dto.WeeklyDigestResponse, error)
	Export(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error)
	OpenExport(token string) (*os.File, string, error)
}

// DigestHandler exposes the weekly digest and export endpoints.
type DigestHandler struct {
	digest digestService
}

// NewDigestHandler constructs DigestHandler.
func NewDigestHandler(digest digestService) *DigestHandler {
	return &DigestHandler{digest: digest}
}

// Week godoc
// @Summary Weekly digest
// @Tags Digest
// @Produce json
// @Param date query string false "Any day of the target week, YYYY-MM-DD (default today)"
// @Success 200 {object} dto.WeeklyDigestResponse
// @Router /reports/week [get]
func (h *DigestHandler) Week(c *gin.Context) {
	digest, err := h.digest.Weekly(c.Request.Context(), strings.TrimSpace(c.Query("date")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, digest)
}

// Export godoc
// @Summary Render a weekly export file
// @Tags Digest
// @Accept json
// @Produce json
// @Param payload body dto.ExportRequest true "Export request"
// @Success 201 {object} dto.ExportResponse
// @Router /reports/export [post]
func (h *DigestHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format 必须为 csv 或 pdf"))
		return
	}

	resp, err := h.digest.Export(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, resp)
}

// Download godoc
// @Summary Download a rendered export
// @Tags Digest
// @Produce octet-stream
// @Param token path string true "Signed export token"
// @Success 200 {file} binary
// @Router /exports/{token} [get]
func (h *DigestHandler) Download(c *gin.Context) {
	file, name, err := h.digest.OpenExport(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(name, ".csv"):
		contentType = "text/csv; charset=utf-8"
	case strings.HasSuffix(name, ".pdf"):
		contentType = "application/pdf"
	}
	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)),
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, headers)
}
