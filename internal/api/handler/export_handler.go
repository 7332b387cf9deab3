package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/ramp-cyb/workhours/internal/service"
	"github.com/ramp-cyb/workhours/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportMonthlyXLSX 导出月报日历为 Excel
// GET /api/v1/export/monthly.xlsx?employee_id=&year=&month=
func (h *ExportHandler) ExportMonthlyXLSX(c *gin.Context) {
	h.exportMonthly(c, contentTypeXLSX, h.exportSvc.ExportMonthlyXLSX)
}

// ExportMonthlyCSV 导出月报为 CSV
// GET /api/v1/export/monthly.csv?employee_id=&year=&month=
func (h *ExportHandler) ExportMonthlyCSV(c *gin.Context) {
	h.exportMonthly(c, contentTypeCSV, h.exportSvc.ExportMonthlyCSV)
}

// ExportMonthlyICS 导出月报为 iCalendar
// GET /api/v1/export/monthly.ics?employee_id=&year=&month=
func (h *ExportHandler) ExportMonthlyICS(c *gin.Context) {
	h.exportMonthly(c, contentTypeICS, h.exportSvc.ExportMonthlyICS)
}

type exportFunc func(ctx context.Context, employeeID string, year, month int) (*bytes.Buffer, string, error)

func (h *ExportHandler) exportMonthly(c *gin.Context, contentType string, fn exportFunc) {
	employeeID := c.Query("employee_id")

	year, ok := queryInt(c, "year")
	if !ok {
		response.BadRequest(c, 16001, "year 参数必须为整数")
		return
	}
	month, ok := queryInt(c, "month")
	if !ok {
		response.BadRequest(c, 16002, "month 参数必须为整数")
		return
	}

	buf, filename, err := fn(c.Request.Context(), employeeID, year, month)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportEmployeeRequired):
		response.BadRequest(c, 16101, "缺少 employee_id 且未配置默认员工")
	case errors.Is(err, service.ErrReportBadMonth):
		response.BadRequest(c, 16102, "year/month 参数不合法")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
