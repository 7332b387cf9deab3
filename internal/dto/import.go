package dto

// ── 月度导出导入 ──

// ImportMonthlyResponse 月度考勤导入响应
type ImportMonthlyResponse struct {
	BatchID  string   `json:"batch_id"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"` // 日期无法解析等被跳过的行数
	Months   []string `json:"months"`  // 本次导入覆盖的月份 YYYY-MM
}
