package service

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"quiz_web/internal/models"
)

func newAnswerFixture() (*AnswerService, *fakeQuestionRepo) {
	question := &models.Question{
		Model: gorm.Model{ID: 1},
		Options: []models.Option{
			{Model: gorm.Model{ID: 11}, QuestionID: 1},
			{Model: gorm.Model{ID: 12}, QuestionID: 1},
			{Model: gorm.Model{ID: 13}, QuestionID: 1, IsCorrect: true},
		},
	}
	questionRepo := newFakeQuestionRepo(question)
	studentRepo := newFakeStudentRepo(&models.Student{Model: gorm.Model{ID: 5}, ClassID: 1})
	return NewAnswerService(questionRepo, studentRepo), questionRepo
}

func TestSubmitAnswerRecordsRespondents(t *testing.T) {
	svc, questionRepo := newAnswerFixture()

	// 99 不屬於這道題目，直接被忽略
	if err := svc.SubmitAnswer(5, 1, []uint{11, 13, 99}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	if got := questionRepo.respondents(11); got != 1 {
		t.Fatalf("option 11: expected 1 respondent, got %d", got)
	}
	if got := questionRepo.respondents(13); got != 1 {
		t.Fatalf("option 13: expected 1 respondent, got %d", got)
	}
	if got := questionRepo.respondents(12); got != 0 {
		t.Fatalf("option 12: expected no respondents, got %d", got)
	}
	if got := questionRepo.respondents(99); got != 0 {
		t.Fatalf("foreign option should be ignored, got %d", got)
	}
}

func TestSubmitAnswerIsSetSemantics(t *testing.T) {
	svc, questionRepo := newAnswerFixture()

	for i := 0; i < 3; i++ {
		if err := svc.SubmitAnswer(5, 1, []uint{13}); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}
	if got := questionRepo.respondents(13); got != 1 {
		t.Fatalf("repeated answers must not duplicate membership, got %d", got)
	}
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	svc, _ := newAnswerFixture()

	err := svc.SubmitAnswer(5, 99, []uint{11})
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestSubmitAnswerUnknownStudent(t *testing.T) {
	svc, questionRepo := newAnswerFixture()

	err := svc.SubmitAnswer(999, 1, []uint{11})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
	if got := questionRepo.respondents(11); got != 0 {
		t.Fatalf("no answer should be recorded, got %d", got)
	}
}
