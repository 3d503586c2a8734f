package model

// Plan 培养方案表 — 对应 plans
// 用户选定模板后方案原样存储，学期顺序自此固定，作为"有效
// 成绩"与"截至选定学期进度"的时间轴。
type Plan struct {
	UserID    string        `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	Faculty   string        `gorm:"type:varchar(100);not null"  json:"faculty"`
	Program   string        `gorm:"type:varchar(100);not null"  json:"program"`
	Period    string        `gorm:"type:varchar(50);not null"   json:"period"`
	Semesters PlanSemesters `gorm:"type:jsonb;not null"         json:"semesters"`
	BaseModel
}

// TableName 指定表名
func (Plan) TableName() string { return "plans" }
