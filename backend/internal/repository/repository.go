package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Transcript TranscriptRepository
	Plan       PlanRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Transcript: NewTranscriptRepo(db),
		Plan:       NewPlanRepo(db),
	}
}
