package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ramp-cyb/workhours/config"
	"github.com/ramp-cyb/workhours/internal/attendance"
	"github.com/ramp-cyb/workhours/internal/dto"
	"github.com/ramp-cyb/workhours/internal/model"
	"github.com/ramp-cyb/workhours/internal/repository"
	"github.com/ramp-cyb/workhours/pkg/redis"
)

// ── 导入模块业务错误 ──

var (
	ErrImportBadWorkbook    = errors.New("无法读取 Excel 工作簿")
	ErrImportEmptyFile      = errors.New("导入文件为空")
	ErrImportMissingColumns = errors.New("导入文件缺少必需列（员工工号/日期）")
	ErrImportNoValidRows    = errors.New("导入文件中没有可用的数据行")
)

// ── ImportService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - HR 系统的月度考勤导出以 .xlsx 或 .csv 上传，表头名称
//     宽松匹配（大小写/空格/下划线不敏感）。
//   - 日期按 dd-MMM-yyyy、dd-MM-yyyy 等格式防御式解析，无法
//     解析的行跳过并计数，绝不中断整次导入。
//   - 按 员工+月份 分组后逐组全量替换（删旧插新，单事务），
//     重复导入同一月份是幂等的。
//   - 状态自由文本在入库时归一为封闭标签（StatusTag），聚合
//     阶段不再做子串匹配。
// ─────────────────────────────────────────────────────────────

// ImportService 月度考勤导入业务接口
type ImportService interface {
	// ImportMonthlyXLSX 导入月度考勤导出（Excel）
	ImportMonthlyXLSX(ctx context.Context, reader io.Reader, sourceName string) (*dto.ImportMonthlyResponse, error)
	// ImportMonthlyCSV 导入月度考勤导出（CSV）
	ImportMonthlyCSV(ctx context.Context, reader io.Reader, sourceName string) (*dto.ImportMonthlyResponse, error)
}

type importService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	loc    *time.Location
	logger *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	loc *time.Location,
	logger *zap.Logger,
) ImportService {
	return &importService{cfg: cfg, repo: repo, rdb: rdb, loc: loc, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ImportMonthlyXLSX — Excel 月度导入
// ════════════════════════════════════════════════════════════

func (s *importService) ImportMonthlyXLSX(ctx context.Context, reader io.Reader, sourceName string) (*dto.ImportMonthlyResponse, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		s.logger.Error("Excel 打开失败", zap.Error(err))
		return nil, ErrImportBadWorkbook
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrImportEmptyFile
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		s.logger.Error("Excel 读取失败", zap.Error(err))
		return nil, ErrImportBadWorkbook
	}

	return s.ingestRows(ctx, rows, sourceName)
}

// ════════════════════════════════════════════════════════════
// ImportMonthlyCSV — CSV 月度导入
// ════════════════════════════════════════════════════════════

func (s *importService) ImportMonthlyCSV(ctx context.Context, reader io.Reader, sourceName string) (*dto.ImportMonthlyResponse, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		s.logger.Error("CSV 解析失败", zap.Error(err))
		return nil, ErrImportBadWorkbook
	}
	return s.ingestRows(ctx, rows, sourceName)
}

// ── 共用导入管线 ──

// columnIndex 月度导出的表头列下标（-1 表示缺失）
type columnIndex struct {
	employee int
	date     int
	swipes   int
	inTime   int
	outTime  int
	actual   int
	total    int
	status   int
}

func (s *importService) ingestRows(ctx context.Context, rows [][]string, sourceName string) (*dto.ImportMonthlyResponse, error) {
	if len(rows) == 0 {
		return nil, ErrImportEmptyFile
	}

	cols := mapColumns(rows[0])
	if cols.date < 0 {
		return nil, ErrImportMissingColumns
	}
	if cols.employee < 0 && s.cfg.Attendance.DefaultEmployeeID == "" {
		return nil, ErrImportMissingColumns
	}

	batchID := uuid.New().String()

	type monthKey struct {
		employee string
		year     int
		month    time.Month
	}
	groups := make(map[monthKey][]model.MonthlyAttendanceEntry)
	skipped := 0

	for _, row := range rows[1:] {
		employeeID := cell(row, cols.employee)
		if employeeID == "" {
			employeeID = s.cfg.Attendance.DefaultEmployeeID
		}
		if employeeID == "" {
			skipped++
			continue
		}
		date, ok := attendance.ParseExportDate(cell(row, cols.date), s.loc)
		if !ok {
			skipped++
			continue
		}

		swipeCount, _ := strconv.Atoi(strings.TrimSpace(cell(row, cols.swipes)))
		status := strings.TrimSpace(cell(row, cols.status))

		key := monthKey{employee: employeeID, year: date.Year(), month: date.Month()}
		groups[key] = append(groups[key], model.MonthlyAttendanceEntry{
			EmployeeID:     employeeID,
			AttendanceDate: date,
			SwipeCount:     swipeCount,
			InTime:         cell(row, cols.inTime),
			OutTime:        cell(row, cols.outTime),
			ActualHours:    cell(row, cols.actual),
			TotalHours:     cell(row, cols.total),
			Status:         status,
			StatusTag:      string(attendance.TagStatus(status)),
			ImportBatchID:  &batchID,
		})
	}
	if len(groups) == 0 {
		return nil, ErrImportNoValidRows
	}

	imported := 0
	months := make([]string, 0, len(groups))
	for key, entries := range groups {
		if err := s.repo.Employee.Upsert(ctx, &model.Employee{EmployeeID: key.employee}); err != nil {
			return nil, fmt.Errorf("员工建档失败: %w", err)
		}
		if err := s.repo.MonthlyAttendance.ReplaceMonth(ctx, key.employee, key.year, key.month, entries); err != nil {
			s.logger.Error("月度导入事务失败", zap.Error(err),
				zap.String("employeeID", key.employee),
				zap.Int("year", key.year), zap.Int("month", int(key.month)))
			return nil, fmt.Errorf("月度导入失败: %w", err)
		}
		if s.rdb != nil {
			if err := s.rdb.InvalidateReport(ctx, key.employee, key.year, int(key.month)); err != nil {
				s.logger.Warn("月报缓存失效失败", zap.Error(err))
			}
		}
		imported += len(entries)
		months = append(months, fmt.Sprintf("%04d-%02d", key.year, key.month))
	}
	sort.Strings(months)

	batch := &model.ImportBatch{
		BatchID:      batchID,
		Kind:         "monthly",
		SourceName:   sourceName,
		RowCount:     imported,
		SkippedCount: skipped,
	}
	if err := s.repo.ImportBatch.Create(ctx, batch); err != nil {
		s.logger.Warn("批次记录写入失败", zap.Error(err), zap.String("batchID", batchID))
	}

	return &dto.ImportMonthlyResponse{
		BatchID:  batchID,
		Imported: imported,
		Skipped:  skipped,
		Months:   months,
	}, nil
}

// mapColumns 宽松匹配表头：大小写/空格/下划线不敏感
func mapColumns(header []string) columnIndex {
	cols := columnIndex{employee: -1, date: -1, swipes: -1, inTime: -1, outTime: -1, actual: -1, total: -1, status: -1}
	for i, h := range header {
		switch normalizeHeader(h) {
		case "employeeid", "empid", "employeecode", "employee":
			cols.employee = i
		case "date", "attendancedate", "swipedate":
			cols.date = i
		case "swipecount", "swipes", "noofswipes":
			cols.swipes = i
		case "intime", "firstin", "firstswipe":
			cols.inTime = i
		case "outtime", "lastout", "lastswipe":
			cols.outTime = i
		case "actualworkhours", "actualhours", "workhours":
			cols.actual = i
		case "totalhours", "shifthours", "totalworkhours":
			cols.total = i
		case "status", "attendancestatus", "daystatus":
			cols.status = i
		}
	}
	return cols
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

// cell 安全取列（下标为 -1 或越界时返回空串）
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
