package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Employee          EmployeeRepository
	Swipe             SwipeRepository
	MonthlyAttendance MonthlyAttendanceRepository
	ImportBatch       ImportBatchRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Employee:          NewEmployeeRepo(db),
		Swipe:             NewSwipeRepo(db),
		MonthlyAttendance: NewMonthlyAttendanceRepo(db),
		ImportBatch:       NewImportBatchRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
