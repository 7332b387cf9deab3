package model

// ImportBatch 导入批次表 — 对应 import_batches
// 每次刷卡采集或月度导出导入生成一条批次记录，用于追溯数据来源
type ImportBatch struct {
	BatchID      string `gorm:"type:uuid;primaryKey"       json:"batch_id"`
	Kind         string `gorm:"type:varchar(20);not null"  json:"kind"` // swipe | monthly
	SourceName   string `gorm:"type:varchar(200)"          json:"source_name"`
	RowCount     int    `gorm:"not null;default:0"         json:"row_count"`
	SkippedCount int    `gorm:"not null;default:0"         json:"skipped_count"`
	BaseModel
}

// TableName 指定表名
func (ImportBatch) TableName() string { return "import_batches" }
