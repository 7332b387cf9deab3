package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ramp-cyb/workhours/config"
	"github.com/ramp-cyb/workhours/internal/attendance"
	"github.com/ramp-cyb/workhours/internal/dto"
	"github.com/ramp-cyb/workhours/internal/model"
	"github.com/ramp-cyb/workhours/internal/repository"
)

// ── 测试辅助 ──

// 测试时钟固定在 2024-05-20 19:00 UTC
func fixedClock() time.Time {
	return time.Date(2024, 5, 20, 19, 0, 0, 0, time.UTC)
}

func testConfig(defaultEmployee string) *config.Config {
	return &config.Config{
		Attendance: config.AttendanceConfig{
			DefaultEmployeeID: defaultEmployee,
			Timezone:          "UTC",
			Taxonomy:          attendance.DefaultTaxonomy(),
		},
	}
}

func setupTestSwipeService(defaultEmployee string) (SwipeService, *mockSwipeRepo, *mockImportBatchRepo) {
	swipeRepo := newMockSwipeRepo()
	batchRepo := newMockImportBatchRepo()
	repo := &repository.Repository{
		Employee:          newMockEmployeeRepo(),
		Swipe:             swipeRepo,
		MonthlyAttendance: newMockMonthlyAttendanceRepo(),
		ImportBatch:       batchRepo,
	}
	cfg := testConfig(defaultEmployee)
	classifier := attendance.NewClassifier(cfg.Attendance.Taxonomy)
	svc := NewSwipeService(cfg, repo, nil, classifier, time.UTC, fixedClock, zap.NewNop())
	return svc, swipeRepo, batchRepo
}

// ── IngestSwipes 测试 ──

func TestSwipeService_IngestSwipes_Success(t *testing.T) {
	svc, swipeRepo, batchRepo := setupTestSwipeService("")

	req := &dto.IngestSwipesRequest{
		EmployeeID:   "E1001",
		EmployeeName: "测试员工",
		Date:         "2024-05-20",
		Swipes: []dto.SwipeRow{
			{Gate: "Main Gate", Direction: "Entry", Time: "08:55:00"},
			{Gate: "Floor 3", Direction: "Entry", Time: "09:00:00"},
			{Gate: "Floor 3", Direction: "Exit", Time: "13:02:00"},
		},
	}

	resp, err := svc.IngestSwipes(context.Background(), req)
	if err != nil {
		t.Fatalf("IngestSwipes 应成功: %v", err)
	}
	if resp.Imported != 3 {
		t.Errorf("期望导入3条，实际=%d", resp.Imported)
	}
	if resp.BatchID == "" {
		t.Error("应生成批次ID")
	}

	day := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	stored, _ := swipeRepo.ListByEmployeeAndDate(context.Background(), "E1001", day)
	if len(stored) != 3 {
		t.Fatalf("期望入库3条刷卡，实际=%d", len(stored))
	}
	if stored[0].Direction != "in" {
		t.Errorf("Entry 应归一为 in，实际=%s", stored[0].Direction)
	}
	if len(batchRepo.batches) != 1 {
		t.Errorf("期望1条批次记录，实际=%d", len(batchRepo.batches))
	}
	if batchRepo.batches[0].Kind != "swipe" {
		t.Errorf("批次类型应为 swipe，实际=%s", batchRepo.batches[0].Kind)
	}
}

func TestSwipeService_IngestSwipes_ReplaceIsIdempotent(t *testing.T) {
	svc, swipeRepo, _ := setupTestSwipeService("")

	first := &dto.IngestSwipesRequest{
		EmployeeID: "E1001",
		Date:       "2024-05-20",
		Swipes: []dto.SwipeRow{
			{Gate: "Main Gate", Direction: "in", Time: "08:00:00"},
			{Gate: "Floor 3", Direction: "in", Time: "08:10:00"},
			{Gate: "Floor 3", Direction: "out", Time: "12:00:00"},
		},
	}
	if _, err := svc.IngestSwipes(context.Background(), first); err != nil {
		t.Fatalf("首次采集应成功: %v", err)
	}

	// 同一天重新采集：全量替换，不追加
	second := &dto.IngestSwipesRequest{
		EmployeeID: "E1001",
		Date:       "2024-05-20",
		Swipes: []dto.SwipeRow{
			{Gate: "Main Gate", Direction: "in", Time: "09:00:00"},
			{Gate: "Main Gate", Direction: "out", Time: "18:00:00"},
		},
	}
	if _, err := svc.IngestSwipes(context.Background(), second); err != nil {
		t.Fatalf("重复采集应成功: %v", err)
	}

	day := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	stored, _ := swipeRepo.ListByEmployeeAndDate(context.Background(), "E1001", day)
	if len(stored) != 2 {
		t.Errorf("重复采集后应只剩2条，实际=%d", len(stored))
	}
}

func TestSwipeService_IngestSwipes_DefaultEmployeeFallback(t *testing.T) {
	svc, _, _ := setupTestSwipeService("E9999")

	req := &dto.IngestSwipesRequest{
		Date:   "2024-05-20",
		Swipes: []dto.SwipeRow{{Gate: "Main Gate", Direction: "in", Time: "08:00:00"}},
	}
	resp, err := svc.IngestSwipes(context.Background(), req)
	if err != nil {
		t.Fatalf("IngestSwipes 应成功: %v", err)
	}
	if resp.EmployeeID != "E9999" {
		t.Errorf("未指定工号时应退回默认员工，实际=%s", resp.EmployeeID)
	}
}

func TestSwipeService_IngestSwipes_EmployeeRequired(t *testing.T) {
	svc, _, _ := setupTestSwipeService("")

	req := &dto.IngestSwipesRequest{
		Date:   "2024-05-20",
		Swipes: []dto.SwipeRow{{Gate: "Main Gate", Direction: "in", Time: "08:00:00"}},
	}
	_, err := svc.IngestSwipes(context.Background(), req)
	if !errors.Is(err, ErrSwipeEmployeeRequired) {
		t.Errorf("期望 ErrSwipeEmployeeRequired，实际: %v", err)
	}
}

func TestSwipeService_IngestSwipes_BadDate(t *testing.T) {
	svc, _, _ := setupTestSwipeService("")

	req := &dto.IngestSwipesRequest{
		EmployeeID: "E1001",
		Date:       "20/05/2024",
		Swipes:     []dto.SwipeRow{{Gate: "Main Gate", Direction: "in", Time: "08:00:00"}},
	}
	_, err := svc.IngestSwipes(context.Background(), req)
	if !errors.Is(err, ErrSwipeBadDate) {
		t.Errorf("期望 ErrSwipeBadDate，实际: %v", err)
	}
}

func TestSwipeService_IngestSwipes_NoRows(t *testing.T) {
	svc, _, _ := setupTestSwipeService("")

	req := &dto.IngestSwipesRequest{EmployeeID: "E1001", Date: "2024-05-20"}
	_, err := svc.IngestSwipes(context.Background(), req)
	if !errors.Is(err, ErrSwipeNoRows) {
		t.Errorf("期望 ErrSwipeNoRows，实际: %v", err)
	}
}

func TestSwipeService_IngestSwipes_BadTimestampStillImported(t *testing.T) {
	svc, swipeRepo, _ := setupTestSwipeService("")

	req := &dto.IngestSwipesRequest{
		EmployeeID: "E1001",
		Date:       "2024-05-20",
		Swipes: []dto.SwipeRow{
			{Gate: "Main Gate", Direction: "in", Time: "瞎写的时间"},
			{Gate: "Floor 3", Direction: "in", Time: "09:00:00"},
		},
	}
	resp, err := svc.IngestSwipes(context.Background(), req)
	if err != nil {
		t.Fatalf("坏时间戳不应中断采集: %v", err)
	}
	if resp.Imported != 2 {
		t.Errorf("坏时间戳的行也应入库，期望2条，实际=%d", resp.Imported)
	}

	day := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	stored, _ := swipeRepo.ListByEmployeeAndDate(context.Background(), "E1001", day)
	if !stored[0].SwipeTime.IsZero() {
		t.Error("坏时间戳应以最小时刻入库并排序最前")
	}
}

// ── ImportCSV 测试 ──

func TestSwipeService_ImportCSV_GroupsByDay(t *testing.T) {
	svc, swipeRepo, _ := setupTestSwipeService("")

	csvData := strings.Join([]string{
		"employee_id,date,gate,direction,time",
		"E1001,2024-05-20,Main Gate,in,08:55:00",
		"E1001,2024-05-20,Floor 3,in,09:00:00",
		"E1001,2024-05-21,Main Gate,in,09:10:00",
		"E1001,瞎写的日期,Main Gate,in,09:10:00",
	}, "\n")

	resp, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData), "swipes.csv")
	if err != nil {
		t.Fatalf("ImportCSV 应成功: %v", err)
	}
	if resp.Imported != 3 {
		t.Errorf("期望导入3条，实际=%d", resp.Imported)
	}
	if resp.Skipped != 1 {
		t.Errorf("坏日期行应跳过计数，期望1，实际=%d", resp.Skipped)
	}
	if len(resp.Days) != 2 {
		t.Errorf("期望覆盖2天，实际=%v", resp.Days)
	}

	day21 := time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC)
	stored, _ := swipeRepo.ListByEmployeeAndDate(context.Background(), "E1001", day21)
	if len(stored) != 1 {
		t.Errorf("5月21日应有1条刷卡，实际=%d", len(stored))
	}
}

func TestSwipeService_ImportCSV_HeaderOnly(t *testing.T) {
	svc, _, _ := setupTestSwipeService("")

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("employee_id,date,gate,direction,time"), "swipes.csv")
	if !errors.Is(err, ErrSwipeNoRows) {
		t.Errorf("期望 ErrSwipeNoRows，实际: %v", err)
	}
}

func TestSwipeService_ImportCSV_Malformed(t *testing.T) {
	svc, _, _ := setupTestSwipeService("")

	// 引号未闭合
	_, err := svc.ImportCSV(context.Background(), strings.NewReader("a,b\n\"broken,row\nc,d"), "bad.csv")
	if !errors.Is(err, ErrSwipeCSVParse) {
		t.Errorf("期望 ErrSwipeCSVParse，实际: %v", err)
	}
}

// ── GetDayLog 测试 ──

func TestSwipeService_GetDayLog_SessionsAndHours(t *testing.T) {
	svc, swipeRepo, _ := setupTestSwipeService("")

	day := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	seed := []model.Swipe{
		{EmployeeID: "E1001", SwipeDate: day, SwipeTime: day.Add(8*time.Hour + 55*time.Minute), GateName: "Main Gate", Direction: "in"},
		{EmployeeID: "E1001", SwipeDate: day, SwipeTime: day.Add(9 * time.Hour), GateName: "Floor 3", Direction: "in"},
		{EmployeeID: "E1001", SwipeDate: day, SwipeTime: day.Add(13*time.Hour + 7*time.Minute), GateName: "Floor 3", Direction: "out"},
		{EmployeeID: "E1001", SwipeDate: day, SwipeTime: day.Add(13*time.Hour + 10*time.Minute), GateName: "Cafeteria", Direction: "out"},
	}
	if err := swipeRepo.ReplaceDay(context.Background(), "E1001", day, seed); err != nil {
		t.Fatalf("种子数据入库失败: %v", err)
	}

	resp, err := svc.GetDayLog(context.Background(), "E1001", "2024-05-20")
	if err != nil {
		t.Fatalf("GetDayLog 应成功: %v", err)
	}
	if len(resp.Swipes) != 4 {
		t.Fatalf("期望4条轨迹，实际=%d", len(resp.Swipes))
	}
	// Floor 3 进门后处于工作区
	if resp.Swipes[1].Area != string(attendance.AreaWork) {
		t.Errorf("Floor 3 进门后应处于工作区，实际=%s", resp.Swipes[1].Area)
	}
	// 工作会话 09:00-13:07 = 4:07；休闲会话 13:07-13:10 = 0:03
	if len(resp.Sessions) != 2 {
		t.Fatalf("期望2段会话，实际=%d", len(resp.Sessions))
	}
	if resp.WorkHours != "4:07" {
		t.Errorf("期望工作工时 4:07，实际=%s", resp.WorkHours)
	}
	if resp.PlayHours != "0:03" {
		t.Errorf("期望休闲工时 0:03，实际=%s", resp.PlayHours)
	}
}

func TestSwipeService_GetDayLog_EmptyDay(t *testing.T) {
	svc, _, _ := setupTestSwipeService("")

	resp, err := svc.GetDayLog(context.Background(), "E1001", "2024-05-20")
	if err != nil {
		t.Fatalf("零刷卡不是错误: %v", err)
	}
	if len(resp.Swipes) != 0 || len(resp.Sessions) != 0 {
		t.Error("零刷卡应返回空轨迹与空会话")
	}
	if resp.WorkHours != "0:00" {
		t.Errorf("期望工作工时 0:00，实际=%s", resp.WorkHours)
	}
}

func TestSwipeService_GetDayLog_BadDate(t *testing.T) {
	svc, _, _ := setupTestSwipeService("")

	_, err := svc.GetDayLog(context.Background(), "E1001", "not-a-date")
	if !errors.Is(err, ErrSwipeBadDate) {
		t.Errorf("期望 ErrSwipeBadDate，实际: %v", err)
	}
}
