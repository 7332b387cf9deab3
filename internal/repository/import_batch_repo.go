package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ramp-cyb/workhours/internal/model"
)

// ImportBatchRepository 导入批次数据访问接口
type ImportBatchRepository interface {
	Create(ctx context.Context, batch *model.ImportBatch) error
}

// importBatchRepo ImportBatchRepository 的 GORM 实现
type importBatchRepo struct {
	db *gorm.DB
}

// NewImportBatchRepo 创建 ImportBatchRepository 实例
func NewImportBatchRepo(db *gorm.DB) ImportBatchRepository {
	return &importBatchRepo{db: db}
}

func (r *importBatchRepo) Create(ctx context.Context, batch *model.ImportBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}
