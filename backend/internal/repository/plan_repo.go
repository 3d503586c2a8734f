package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/model"
)

// PlanRepository 培养方案数据访问接口
type PlanRepository interface {
	Get(ctx context.Context, userID string) (*model.Plan, error)
	Put(ctx context.Context, plan *model.Plan) error
	Delete(ctx context.Context, userID string) error
}

type planRepo struct {
	db *gorm.DB
}

// NewPlanRepo 创建 PlanRepository 实例
func NewPlanRepo(db *gorm.DB) PlanRepository {
	return &planRepo{db: db}
}

func (r *planRepo) Get(ctx context.Context, userID string) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Put 整行 upsert：按 user_id 冲突时覆盖方案内容
func (r *planRepo) Put(ctx context.Context, plan *model.Plan) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"faculty", "program", "period", "semesters", "updated_at"}),
		}).
		Create(plan).Error
}

func (r *planRepo) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Plan{}).Error
}
