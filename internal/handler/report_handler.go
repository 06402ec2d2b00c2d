package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ojtrack/ojtrack-api/internal/service"
	"github.com/ojtrack/ojtrack-api/pkg/response"
)

// ReportHandler serves rendered report downloads.
type ReportHandler struct {
	exports *service.ExportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(exports *service.ExportService) *ReportHandler {
	return &ReportHandler{exports: exports}
}

// System streams the system-wide counter report.
func (h *ReportHandler) System(c *gin.Context) {
	format := service.ReportFormat(c.DefaultQuery("format", "csv"))

	file, err := h.exports.SystemReport(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveReport(c, file)
}

// Student streams one student's progress report.
func (h *ReportHandler) Student(c *gin.Context) {
	format := service.ReportFormat(c.DefaultQuery("format", "csv"))

	file, err := h.exports.StudentReport(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveReport(c, file)
}

func serveReport(c *gin.Context, file *service.ReportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(200, file.ContentType, file.Data)
}
