package model

import "time"

// UserAnswer 用户答题记录，按 (user_id, quiz_id, attempt_number) 唯一。
// 尝试序号从 1 开始连续递增；并发提交时由数据库唯一索引裁决，先写入者胜出。
// swagger:model UserAnswer
type UserAnswer struct {
	BaseModel
	UserID        uint     `gorm:"uniqueIndex:idx_user_quiz_attempt;type:bigint unsigned;not null" json:"userId"`
	QuizID        uint     `gorm:"uniqueIndex:idx_user_quiz_attempt;type:bigint unsigned;not null" json:"quizId"`
	AttemptNumber int      `gorm:"uniqueIndex:idx_user_quiz_attempt;not null" json:"attemptNumber"`
	Type          QuizType `gorm:"type:varchar(20);not null" json:"type"`

	// 按题型存储的提交值，仅与 Type 匹配的一列有值
	SelectedIndex *int    `json:"selectedIndex,omitempty"`
	AnswerText    *string `gorm:"size:2000" json:"answerText,omitempty"`
	AnswerBool    *bool   `json:"answerBool,omitempty"`

	IsCorrect   bool      `gorm:"not null" json:"isCorrect"`
	SubmittedAt time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"submittedAt"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
