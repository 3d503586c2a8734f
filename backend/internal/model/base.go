package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/planning"
)

// ── PostgreSQL JSONB 自定义类型 ──

// AttemptRows 成绩单记录数组，对应 JSONB 列，实现 GORM Scanner/Valuer 接口。
type AttemptRows []planning.Attempt

// Scan 将 JSONB 文本解析为记录数组
func (r *AttemptRows) Scan(src interface{}) error {
	if src == nil {
		*r = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("AttemptRows.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, r)
}

// Value 将记录数组序列化为 JSONB 文本
func (r AttemptRows) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	return json.Marshal(r)
}

// PlanSemesters 培养方案的学期×槽位矩阵，对应 JSONB 列。
type PlanSemesters [][]planning.PlanSlot

// Scan 将 JSONB 文本解析为学期矩阵
func (s *PlanSemesters) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("PlanSemesters.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, s)
}

// Value 将学期矩阵序列化为 JSONB 文本
func (s PlanSemesters) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
