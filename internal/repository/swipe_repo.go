package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ramp-cyb/workhours/internal/model"
)

// SwipeRepository 刷卡记录数据访问接口
type SwipeRepository interface {
	// ReplaceDay 全量替换某员工某天的刷卡记录（删旧插新，单事务）
	ReplaceDay(ctx context.Context, employeeID string, day time.Time, swipes []model.Swipe) error
	ListByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) ([]model.Swipe, error)
	CountByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (int64, error)
}

// swipeRepo SwipeRepository 的 GORM 实现
type swipeRepo struct {
	db *gorm.DB
}

// NewSwipeRepo 创建 SwipeRepository 实例
func NewSwipeRepo(db *gorm.DB) SwipeRepository {
	return &swipeRepo{db: db}
}

func (r *swipeRepo) ReplaceDay(ctx context.Context, employeeID string, day time.Time, swipes []model.Swipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("employee_id = ? AND swipe_date = ?", employeeID, day.Format("2006-01-02")).
			Delete(&model.Swipe{}).Error; err != nil {
			return err
		}
		if len(swipes) == 0 {
			return nil
		}
		return tx.CreateInBatches(swipes, 200).Error
	})
}

func (r *swipeRepo) ListByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) ([]model.Swipe, error) {
	var swipes []model.Swipe
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND swipe_date = ?", employeeID, day.Format("2006-01-02")).
		Order("swipe_time ASC, created_at ASC").
		Find(&swipes).Error
	if err != nil {
		return nil, err
	}
	return swipes, nil
}

func (r *swipeRepo) CountByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Swipe{}).
		Where("employee_id = ? AND swipe_date = ?", employeeID, day.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}
