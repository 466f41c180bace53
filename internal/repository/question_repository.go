package repository

import (
	"gorm.io/gorm"

	"quiz_web/internal/models"
	"quiz_web/internal/storage"
)

type QuestionRepository interface {
	FindByID(id uint) (*models.Question, error)
	FindWithAnswers(id uint) (*models.Question, error)
	AddRespondent(optionID, studentID uint) error
}

type questionRepository struct {
	db *storage.PostgresDB
}

func NewQuestionRepository(db *storage.PostgresDB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.Preload("Options").First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindWithAnswers 載入題目、選項以及每個選項的回答者
func (r *questionRepository) FindWithAnswers(id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.Preload("Options.AnsweredBy").First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// AddRespondent 把學生記錄為選項的回答者
// 關聯是集合語意，重複送出不會增加第二筆
func (r *questionRepository) AddRespondent(optionID, studentID uint) error {
	option := models.Option{Model: gorm.Model{ID: optionID}}
	student := models.Student{Model: gorm.Model{ID: studentID}}
	return r.db.Model(&option).Association("AnsweredBy").Append(&student)
}
