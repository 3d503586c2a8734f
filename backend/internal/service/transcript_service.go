package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/catalog"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/dto"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/model"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/planning"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/repository"
	apperrors "github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/errors"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/redis"
)

// ── 成绩单模块业务错误 ──

var (
	ErrTranscriptNotFound = errors.New("成绩单不存在")
	ErrAttemptNotFound    = errors.New("选课记录不存在")
	ErrAttemptFinalized   = errors.New("成绩已确定的记录不允许删除")
	ErrInvalidGrade       = errors.New("无法识别的成绩值")
	ErrInvalidSemester    = errors.New("无法识别的学期标签")
	ErrLessonNotFound     = errors.New("开课场次不存在")
	ErrLessonMismatch     = errors.New("场次与课程代码不匹配")
)

// Parser 成绩单解析服务抽象
// 生产实现为 parser.Client，测试中以内存桩替代
type Parser interface {
	Parse(ctx context.Context, fileBytes []byte) ([]planning.Attempt, error)
}

// TranscriptService 成绩单业务接口
//
// 设计说明：
//   - 每用户一份成绩单，全部记录整体读写（单行 JSONB）
//   - 记录永不去重：同一课程的重修在不同学期各占一行
//   - 版本号随每次写入自增，作为评估缓存键的组成部分
//   - 持久化失败不丢弃本次修改的语义由前端承担，服务端以
//     ErrStoreFailure 告知"请稍后重试保存"
type TranscriptService interface {
	// Upload 上传成绩单 PDF 并用解析结果整体替换现有记录
	Upload(ctx context.Context, userID string, fileBytes []byte) (*dto.UploadTranscriptResponse, error)

	// Get 读取成绩单；不存在时 found=false 而非报错
	Get(ctx context.Context, userID string) (*dto.TranscriptResponse, error)

	// AddAttempt 手动添加选课记录，成绩固定为计划中哨兵值
	AddAttempt(ctx context.Context, userID string, req *dto.AddAttemptRequest) (*planning.Attempt, error)

	// DeleteAttempt 删除一条记录；成绩已确定的记录拒绝删除
	DeleteAttempt(ctx context.Context, userID, attemptID string) error

	// SetGrade 修改一条记录的成绩（含推测标记与哨兵值）
	SetGrade(ctx context.Context, userID, attemptID, grade string) error

	// SetSession 为一条记录选定上课场次
	SetSession(ctx context.Context, userID, attemptID, lessonID string) error

	// CheckDirty 比较客户端工作副本与持久化快照是否一致
	CheckDirty(ctx context.Context, userID string, workingRows []planning.Attempt) (bool, error)

	// Delete 删除整份成绩单
	Delete(ctx context.Context, userID string) error
}

type transcriptService struct {
	repo   *repository.Repository
	cat    *catalog.Catalog
	parser Parser
	rdb    *redis.Client
	logger *zap.Logger
}

// NewTranscriptService 创建 TranscriptService 实例
func NewTranscriptService(repo *repository.Repository, cat *catalog.Catalog, p Parser, rdb *redis.Client, logger *zap.Logger) TranscriptService {
	return &transcriptService{repo: repo, cat: cat, parser: p, rdb: rdb, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Upload — 上传 PDF 并整体替换成绩单
// ═══════════════════════════════════════════════════════════
//
// 解析由外部服务完成，三种结果：
//   - 有数据成功：整体替换现有记录
//   - 空结果成功：同样整体替换（清空），这是"未发现内容"而非失败
//   - 失败：解析服务的错误消息原样透传，现有记录不动

func (s *transcriptService) Upload(ctx context.Context, userID string, fileBytes []byte) (*dto.UploadTranscriptResponse, error) {
	parsed, err := s.parser.Parse(ctx, fileBytes)
	if err != nil {
		return nil, err
	}

	rows := make([]planning.Attempt, 0, len(parsed))
	for _, att := range parsed {
		if att.ID == "" {
			att.ID = uuid.NewString()
		}
		s.fillFromCatalog(&att)
		rows = append(rows, att)
	}

	if err := s.put(ctx, userID, rows); err != nil {
		return nil, err
	}

	s.logger.Info("成绩单上传完成",
		zap.String("user_id", userID),
		zap.Int("imported", len(rows)),
	)

	return &dto.UploadTranscriptResponse{ImportedCount: len(rows), Rows: rows}, nil
}

// ═══════════════════════════════════════════════════════════
// Get — 读取成绩单
// ═══════════════════════════════════════════════════════════

func (s *transcriptService) Get(ctx context.Context, userID string) (*dto.TranscriptResponse, error) {
	t, err := s.repo.Transcript.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.TranscriptResponse{Rows: []planning.Attempt{}, Found: false}, nil
		}
		s.logger.Error("查询成绩单失败", zap.Error(err))
		return nil, err
	}

	return &dto.TranscriptResponse{
		Rows:    t.Rows,
		Version: t.Version,
		Found:   true,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// AddAttempt — 手动添加选课记录
// ═══════════════════════════════════════════════════════════
//
// 成绩固定为 "--"（计划中）；课程名与学分从课程目录补全，
// 目录未收录的代码也允许添加（名称与学分留空）。

func (s *transcriptService) AddAttempt(ctx context.Context, userID string, req *dto.AddAttemptRequest) (*planning.Attempt, error) {
	if planning.Order(req.Semester) == 0 && !planning.IsTemplateLabel(req.Semester) {
		return nil, ErrInvalidSemester
	}

	rows, _, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	att := planning.Attempt{
		ID:       uuid.NewString(),
		Semester: req.Semester,
		Code:     req.Code,
		Grade:    planning.GradePlanned,
	}
	s.fillFromCatalog(&att)
	rows = append(rows, att)

	if err := s.put(ctx, userID, rows); err != nil {
		return nil, err
	}
	return &att, nil
}

// ═══════════════════════════════════════════════════════════
// DeleteAttempt — 删除一条记录
// ═══════════════════════════════════════════════════════════
//
// 成绩已最终确定（非 "--" 且不带推测标记）的记录拒绝删除：
// 成绩单是既成事实的日志，只有计划类记录可以撤回。

func (s *transcriptService) DeleteAttempt(ctx context.Context, userID, attemptID string) error {
	rows, found, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrTranscriptNotFound
	}

	idx := indexOfAttempt(rows, attemptID)
	if idx < 0 {
		return ErrAttemptNotFound
	}
	grade := rows[idx].Grade
	if grade != planning.GradePlanned && !planning.HasMarker(grade) {
		return ErrAttemptFinalized
	}

	rows = append(rows[:idx], rows[idx+1:]...)
	return s.put(ctx, userID, rows)
}

// ═══════════════════════════════════════════════════════════
// SetGrade — 修改成绩
// ═══════════════════════════════════════════════════════════

func (s *transcriptService) SetGrade(ctx context.Context, userID, attemptID, grade string) error {
	if grade != planning.GradePlanned && planning.Rank(grade) < 0 {
		return ErrInvalidGrade
	}

	rows, found, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrTranscriptNotFound
	}

	idx := indexOfAttempt(rows, attemptID)
	if idx < 0 {
		return ErrAttemptNotFound
	}
	rows[idx].Grade = grade

	return s.put(ctx, userID, rows)
}

// ═══════════════════════════════════════════════════════════
// SetSession — 选定上课场次
// ═══════════════════════════════════════════════════════════

func (s *transcriptService) SetSession(ctx context.Context, userID, attemptID, lessonID string) error {
	lesson := s.cat.Lesson(lessonID)
	if lesson == nil {
		return ErrLessonNotFound
	}

	rows, found, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrTranscriptNotFound
	}

	idx := indexOfAttempt(rows, attemptID)
	if idx < 0 {
		return ErrAttemptNotFound
	}
	if lesson.CourseCode != rows[idx].Code {
		return ErrLessonMismatch
	}
	rows[idx].SessionID = lessonID

	return s.put(ctx, userID, rows)
}

// ═══════════════════════════════════════════════════════════
// CheckDirty — 脏状态派生
// ═══════════════════════════════════════════════════════════
//
// 脏状态不落库：客户端提交其工作副本，与持久化快照做结构
// 比较（JSON 规范化后逐字节比对）。无持久化快照时，非空
// 工作副本即为脏。

func (s *transcriptService) CheckDirty(ctx context.Context, userID string, workingRows []planning.Attempt) (bool, error) {
	rows, found, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}
	if !found {
		return len(workingRows) > 0, nil
	}

	persisted, err := json.Marshal(rows)
	if err != nil {
		return false, err
	}
	working, err := json.Marshal(workingRows)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(persisted, working), nil
}

// ═══════════════════════════════════════════════════════════
// Delete — 删除整份成绩单
// ═══════════════════════════════════════════════════════════

func (s *transcriptService) Delete(ctx context.Context, userID string) error {
	if err := s.repo.Transcript.Delete(ctx, userID); err != nil {
		s.logger.Error("删除成绩单失败", zap.Error(err))
		return apperrors.ErrStoreFailure
	}
	s.invalidate(ctx, userID)
	return nil
}

// ── 内部辅助 ──

// load 读取现有记录；不存在返回空切片与 found=false
func (s *transcriptService) load(ctx context.Context, userID string) ([]planning.Attempt, bool, error) {
	t, err := s.repo.Transcript.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []planning.Attempt{}, false, nil
		}
		s.logger.Error("查询成绩单失败", zap.Error(err))
		return nil, false, err
	}
	return t.Rows, true, nil
}

// put 整体写回并自增版本号，随后失效评估缓存
func (s *transcriptService) put(ctx context.Context, userID string, rows []planning.Attempt) error {
	version := 1
	if existing, err := s.repo.Transcript.Get(ctx, userID); err == nil {
		version = existing.Version + 1
	}

	t := &model.Transcript{
		UserID:  userID,
		Rows:    model.AttemptRows(rows),
		Version: version,
	}
	if err := s.repo.Transcript.Put(ctx, t); err != nil {
		s.logger.Error("写入成绩单失败", zap.Error(err))
		return apperrors.ErrStoreFailure
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *transcriptService) invalidate(ctx context.Context, userID string) {
	if s.rdb != nil {
		s.rdb.InvalidateEval(ctx, userID)
	}
}

// fillFromCatalog 从课程目录补全名称与学分（仅补空字段）
func (s *transcriptService) fillFromCatalog(att *planning.Attempt) {
	course := s.cat.Course(att.Code)
	if course == nil {
		return
	}
	if att.Name == "" {
		att.Name = course.Name
	}
	if att.Credits == "" {
		att.Credits = course.Credits
	}
}

func indexOfAttempt(rows []planning.Attempt, attemptID string) int {
	for i := range rows {
		if rows[i].ID == attemptID {
			return i
		}
	}
	return -1
}
