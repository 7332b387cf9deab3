package model

import "time"

// Swipe 刷卡记录表 — 对应 swipes
// 采集入库后不可变；SwipeDate 冗余自 SwipeTime 的日期部分，
// 用于按天查询。无法解析的时间戳以最小时刻入库（排序最前）。
type Swipe struct {
	SwipeID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"swipe_id"`
	EmployeeID    string    `gorm:"type:varchar(40);not null;index:idx_swipes_employee_date" json:"employee_id"`
	SwipeDate     time.Time `gorm:"type:date;not null;index:idx_swipes_employee_date"        json:"swipe_date"`
	SwipeTime     time.Time `gorm:"not null"                                       json:"swipe_time"`
	GateName      string    `gorm:"type:varchar(120);not null"                     json:"gate_name"`
	Direction     string    `gorm:"type:varchar(10);not null"                      json:"direction"` // in | out
	ImportBatchID *string   `gorm:"type:uuid"                                      json:"import_batch_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Swipe) TableName() string { return "swipes" }
