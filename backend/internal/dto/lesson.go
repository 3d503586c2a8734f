package dto

// ── 开课/场次模块 ──

// SessionInfo 上课场次信息
type SessionInfo struct {
	Location string `json:"location"`
	Day      string `json:"day"`
	Time     string `json:"time"`
	Room     string `json:"room"`
}

// LessonResponse 开课响应
type LessonResponse struct {
	LessonID     string      `json:"lesson_id"`
	CourseCode   string      `json:"course_code"`
	Session      SessionInfo `json:"session"`
	Instructor   string      `json:"instructor"`
	DeliveryMode string      `json:"delivery_mode"`
}

// SelectedLessonResponse 用户已选场次（成绩单行 × 开课目录联查）
type SelectedLessonResponse struct {
	CourseCode string      `json:"course_code"`
	LessonID   string      `json:"lesson_id"`
	Session    SessionInfo `json:"session"`
	Instructor string      `json:"instructor"`
	Delivery   string      `json:"delivery_mode"`
}
