package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// QuizType 题目类型，封闭集合，创建后不可变更
type QuizType string

const (
	QuizTypeMultipleChoice QuizType = "MULTIPLE_CHOICE"
	QuizTypeSubjective     QuizType = "SUBJECTIVE"
	QuizTypeTrueFalse      QuizType = "TRUE_FALSE"
)

// IsValid 判断是否属于封闭集合
func (t QuizType) IsValid() bool {
	switch t {
	case QuizTypeMultipleChoice, QuizTypeSubjective, QuizTypeTrueFalse:
		return true
	}
	return false
}

// StringList JSON 存储的字符串列表（选择题选项、主观题备选答案）
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for StringList")
}

// Quiz 题目实体：单表 + type 判别列，各题型字段为可空列
// swagger:model Quiz
type Quiz struct {
	BaseModel
	BookID      uint     `gorm:"index;type:bigint unsigned;not null" json:"bookId"`
	Type        QuizType `gorm:"type:varchar(20);index;not null" json:"type"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Explanation string   `gorm:"type:text" json:"explanation,omitempty"`
	Hint        string   `gorm:"size:255" json:"hint,omitempty"`

	// 选择题
	Options            StringList `gorm:"type:json" json:"options,omitempty"`
	CorrectAnswerIndex *int       `json:"correctAnswerIndex,omitempty"`

	// 主观题
	CorrectAnswerText string     `gorm:"size:500" json:"correctAnswerText,omitempty"`
	AlternateAnswers  StringList `gorm:"type:json" json:"alternateAnswers,omitempty"`
	CaseSensitive     bool       `gorm:"default:false" json:"caseSensitive"`
	MaxWords          int        `gorm:"default:0" json:"maxWords"` // 0 表示不限

	// 判断题
	CorrectAnswerBool *bool `json:"correctAnswerBool,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// PossibleAnswers 主观题的全部参考答案（存储答案 + 备选答案）
func (q *Quiz) PossibleAnswers() []string {
	answers := make([]string, 0, 1+len(q.AlternateAnswers))
	if strings.TrimSpace(q.CorrectAnswerText) != "" {
		answers = append(answers, q.CorrectAnswerText)
	}
	answers = append(answers, q.AlternateAnswers...)
	return answers
}

// QuizResponse 按题型仅携带该题型字段的响应结构
// swagger:model QuizResponse
type QuizResponse struct {
	ID          uint     `json:"id"`
	BookID      uint     `json:"bookId"`
	Type        QuizType `json:"type"`
	Title       string   `json:"title"`
	Explanation string   `json:"explanation,omitempty"`
	Hint        string   `json:"hint,omitempty"`

	Options            []string `json:"options,omitempty"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex,omitempty"`

	CorrectAnswerText string   `json:"correctAnswerText,omitempty"`
	AlternateAnswers  []string `json:"alternateAnswers,omitempty"`
	CaseSensitive     *bool    `json:"caseSensitive,omitempty"`
	MaxWords          *int     `json:"maxWords,omitempty"`

	CorrectAnswerBool *bool `json:"correctAnswerBool,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// Response 序列化为仅包含本题型字段的形状
func (q *Quiz) Response() QuizResponse {
	resp := QuizResponse{
		ID:          q.ID,
		BookID:      q.BookID,
		Type:        q.Type,
		Title:       q.Title,
		Explanation: q.Explanation,
		Hint:        q.Hint,
		CreatedAt:   q.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	switch q.Type {
	case QuizTypeMultipleChoice:
		resp.Options = q.Options
		resp.CorrectAnswerIndex = q.CorrectAnswerIndex
	case QuizTypeSubjective:
		resp.CorrectAnswerText = q.CorrectAnswerText
		resp.AlternateAnswers = q.AlternateAnswers
		cs := q.CaseSensitive
		mw := q.MaxWords
		resp.CaseSensitive = &cs
		resp.MaxWords = &mw
	case QuizTypeTrueFalse:
		resp.CorrectAnswerBool = q.CorrectAnswerBool
	}

	return resp
}
