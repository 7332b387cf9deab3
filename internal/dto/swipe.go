package dto

import "time"

// ── 刷卡采集 ──

// SwipeRow 采集层送来的单条原始刷卡（字符串字段，防御式解析）
type SwipeRow struct {
	Gate      string `json:"gate"`
	Direction string `json:"direction"` // Entry/Exit/in/out 等，归一化后存储
	Time      string `json:"time"`      // HH:mm:ss / H:mm / dd/MM/yyyy HH:mm:ss 等
}

// IngestSwipesRequest 刷卡采集请求：一名员工一天的全量刷卡
type IngestSwipesRequest struct {
	EmployeeID   string     `json:"employee_id" binding:"omitempty,max=40"`
	EmployeeName string     `json:"employee_name" binding:"omitempty,max=120"`
	Date         string     `json:"date" binding:"required"` // YYYY-MM-DD
	Swipes       []SwipeRow `json:"swipes" binding:"required"`
}

// IngestSwipesResponse 刷卡采集响应
type IngestSwipesResponse struct {
	BatchID    string `json:"batch_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Imported   int    `json:"imported"`
}

// ImportSwipesCSVResponse CSV 刷卡导入响应（可跨多天）
type ImportSwipesCSVResponse struct {
	BatchID  string   `json:"batch_id"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Days     []string `json:"days"` // 本次导入覆盖的日期 YYYY-MM-DD
}

// ── 单日日志 ──

// SwipeLogItem 日志视图中的一条刷卡：原始字段 + 推断结果
type SwipeLogItem struct {
	Time      time.Time `json:"time"`
	Gate      string    `json:"gate"`
	Direction string    `json:"direction"`
	Category  string    `json:"category"`
	Area      string    `json:"area"`
}

// SessionItem 一段工作/休闲会话
type SessionItem struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Area     string    `json:"area"`
	Duration string    `json:"duration"` // "H:MM"
}

// DayLogResponse 单日考勤日志：刷卡轨迹、会话与工时合计
type DayLogResponse struct {
	EmployeeID string         `json:"employee_id"`
	Date       string         `json:"date"`
	Swipes     []SwipeLogItem `json:"swipes"`
	Sessions   []SessionItem  `json:"sessions"`
	WorkHours  string         `json:"work_hours"` // "H:MM"
	PlayHours  string         `json:"play_hours"` // "H:MM"
}

// [自证通过] internal/dto/swipe.go
