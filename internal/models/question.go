package models

import (
	"gorm.io/gorm"
)

// Question 表示一道題目，回合以題目的 ID 作為識別
type Question struct {
	gorm.Model
	Text     string   `json:"text"`
	ImageURL string   `json:"image_url,omitempty"`
	Options  []Option `gorm:"foreignKey:QuestionID" json:"options"`
}

// Option 表示題目的一個選項
type Option struct {
	gorm.Model
	QuestionID uint   `json:"question_id"`
	Text       string `json:"text"`
	ImageURL   string `json:"image_url,omitempty"`
	IsCorrect  bool   `json:"is_correct"`
	// 回答過這個選項的學生，每個學生最多出現一次
	AnsweredBy []Student `gorm:"many2many:option_answers" json:"answered_by,omitempty"`
}
