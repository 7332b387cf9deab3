package model

// Employee 员工表 — 对应 employees
// 工号来自门禁系统，作为自然主键；本系统单员工使用，
// 但数据模型不排斥多员工数据共存。
type Employee struct {
	EmployeeID string `gorm:"type:varchar(40);primaryKey" json:"employee_id"`
	Name       string `gorm:"type:varchar(120)"           json:"name"`
	BaseModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
