package service

import (
	"errors"

	"quiz_web/internal/repository"
)

var (
	ErrQuestionNotFound = errors.New("找不到對應的題目")
	ErrStudentNotFound  = errors.New("找不到對應的學生")
)

// AnswerService 處理學生的答題，把學生記錄為所選選項的回答者
type AnswerService struct {
	questionRepo repository.QuestionRepository
	studentRepo  repository.StudentRepository
}

func NewAnswerService(questionRepo repository.QuestionRepository, studentRepo repository.StudentRepository) *AnswerService {
	return &AnswerService{
		questionRepo: questionRepo,
		studentRepo:  studentRepo,
	}
}

// SubmitAnswer 記錄學生對一道題目的作答
// 只有屬於這道題目的選項會被處理，不屬於的選項 ID 直接忽略
// 回答者是集合語意，重複作答同一個選項不會被記錄兩次
func (s *AnswerService) SubmitAnswer(studentID, questionID uint, optionIDs []uint) error {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return ErrQuestionNotFound
	}

	if _, err := s.studentRepo.FindByID(studentID); err != nil {
		return ErrStudentNotFound
	}

	chosen := make(map[uint]bool, len(optionIDs))
	for _, id := range optionIDs {
		chosen[id] = true
	}

	for _, option := range question.Options {
		if !chosen[option.ID] {
			continue
		}
		if err := s.questionRepo.AddRespondent(option.ID, studentID); err != nil {
			return err
		}
	}
	return nil
}
