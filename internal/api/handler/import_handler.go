package handler

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ramp-cyb/workhours/internal/service"
	"github.com/ramp-cyb/workhours/pkg/response"
)

// ImportHandler 月度导入模块 HTTP 处理器
type ImportHandler struct {
	importSvc service.ImportService
}

// NewImportHandler 创建 ImportHandler
func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// ImportMonthly 上传月度考勤导出（.xlsx 或 .csv，按扩展名分流）
// POST /api/v1/attendance/import
func (h *ImportHandler) ImportMonthly(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 14001, "缺少上传文件 file")
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	var resp interface{}
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		resp, err = h.importSvc.ImportMonthlyCSV(ctx, file, header.Filename)
	default:
		resp, err = h.importSvc.ImportMonthlyXLSX(ctx, file, header.Filename)
	}
	if err != nil {
		h.handleImportError(c, err)
		return
	}
	response.Created(c, resp)
}

func (h *ImportHandler) handleImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrImportBadWorkbook):
		response.BadRequest(c, 14101, "无法读取导入文件")
	case errors.Is(err, service.ErrImportEmptyFile):
		response.BadRequest(c, 14102, "导入文件为空")
	case errors.Is(err, service.ErrImportMissingColumns):
		response.BadRequest(c, 14103, "导入文件缺少必需列")
	case errors.Is(err, service.ErrImportNoValidRows):
		response.BadRequest(c, 14104, "导入文件中没有可用的数据行")
	default:
		response.InternalError(c)
	}
}
