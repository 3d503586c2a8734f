package dto

import "github.com/selimdilsadercan/foritu-web-sub000/backend/internal/planning"

// ── 成绩单模块 ──

// TranscriptResponse 成绩单响应
// Dirty 为派生值：工作副本与最近一次持久化快照的结构比较结果，
// 每次读取时重新计算，不落库。
type TranscriptResponse struct {
	Rows    []planning.Attempt `json:"rows"`
	Version int                `json:"version"`
	Found   bool               `json:"found"`
	Dirty   bool               `json:"dirty"`
}

// UploadTranscriptResponse 成绩单上传（PDF 解析）响应
type UploadTranscriptResponse struct {
	ImportedCount int                `json:"imported_count"`
	Rows          []planning.Attempt `json:"rows"`
}

// AddAttemptRequest 手动添加选课记录请求（成绩固定为 "--"）
type AddAttemptRequest struct {
	Semester string `json:"semester" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// SetGradeRequest 修改成绩请求
type SetGradeRequest struct {
	Grade string `json:"grade" binding:"required"`
}

// SetSessionRequest 选择上课场次请求
type SetSessionRequest struct {
	LessonID string `json:"lesson_id" binding:"required"`
}

// DirtyRequest 脏状态查询请求：客户端提交其工作副本
type DirtyRequest struct {
	Rows []planning.Attempt `json:"rows"`
}

// DirtyResponse 脏状态查询响应
type DirtyResponse struct {
	Dirty bool `json:"dirty"`
}
