package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/model"
)

// TranscriptRepository 成绩单数据访问接口
type TranscriptRepository interface {
	Get(ctx context.Context, userID string) (*model.Transcript, error)
	Put(ctx context.Context, transcript *model.Transcript) error
	Delete(ctx context.Context, userID string) error
}

type transcriptRepo struct {
	db *gorm.DB
}

// NewTranscriptRepo 创建 TranscriptRepository 实例
func NewTranscriptRepo(db *gorm.DB) TranscriptRepository {
	return &transcriptRepo{db: db}
}

func (r *transcriptRepo) Get(ctx context.Context, userID string) (*model.Transcript, error) {
	var transcript model.Transcript
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&transcript).Error
	if err != nil {
		return nil, err
	}
	return &transcript, nil
}

// Put 整行 upsert：按 user_id 冲突时覆盖记录与版本号
func (r *transcriptRepo) Put(ctx context.Context, transcript *model.Transcript) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rows", "version", "updated_at"}),
		}).
		Create(transcript).Error
}

func (r *transcriptRepo) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Transcript{}).Error
}
