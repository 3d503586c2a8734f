package model

// Transcript 成绩单表 — 对应 transcripts
// 每用户一行，选课记录以 JSONB 数组整体存取；Version 在每次
// 持久化时递增，作为缓存键与脏状态比较的依据。
type Transcript struct {
	UserID  string      `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	Rows    AttemptRows `gorm:"type:jsonb;not null"         json:"rows"`
	Version int         `gorm:"not null;default:1"          json:"version"`
	BaseModel
}

// TableName 指定表名
func (Transcript) TableName() string { return "transcripts" }
