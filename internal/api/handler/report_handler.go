package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ramp-cyb/workhours/internal/service"
	"github.com/ramp-cyb/workhours/pkg/response"
)

// ReportHandler 月报模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// GetMonthly 获取月度考勤日历
// GET /api/v1/reports/monthly?employee_id=&year=&month=
func (h *ReportHandler) GetMonthly(c *gin.Context) {
	employeeID := c.Query("employee_id")

	year, ok := queryInt(c, "year")
	if !ok {
		response.BadRequest(c, 15001, "year 参数必须为整数")
		return
	}
	month, ok := queryInt(c, "month")
	if !ok {
		response.BadRequest(c, 15002, "month 参数必须为整数")
		return
	}

	resp, err := h.reportSvc.GetMonthlyReport(c.Request.Context(), employeeID, year, month)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, resp)
}

// queryInt 读取整数查询参数，缺省为 0
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportEmployeeRequired):
		response.BadRequest(c, 15101, "缺少 employee_id 且未配置默认员工")
	case errors.Is(err, service.ErrReportBadMonth):
		response.BadRequest(c, 15102, "year/month 参数不合法")
	default:
		response.InternalError(c)
	}
}
