package service

import (
	"log"

	"quiz_web/internal/models"
	"quiz_web/internal/repository"
)

// ScorePerCorrectAnswer 是每位答對的學生為班級帶來的分數，固定不變
const ScorePerCorrectAnswer = 10

// ScoreService 在回合結束時統計答題結果並更新班級分數
type ScoreService struct {
	questionRepo repository.QuestionRepository
	classRepo    repository.ClassRepository
	broadcaster  Broadcaster
}

func NewScoreService(
	questionRepo repository.QuestionRepository,
	classRepo repository.ClassRepository,
	broadcaster Broadcaster,
) *ScoreService {
	return &ScoreService{
		questionRepo: questionRepo,
		classRepo:    classRepo,
		broadcaster:  broadcaster,
	}
}

// NotifyQuestionResult 統計剛結束回合的答題結果並廣播給所有連線
//
// 沒有任何學生在線時整個計算跳過，不會廣播也不會改分數。
// 先更新各班分數，再取排行榜，讓排行榜反映這一回合的結果。
func (s *ScoreService) NotifyQuestionResult(round uint) error {
	question, err := s.questionRepo.FindWithAnswers(round)
	if err != nil {
		return err
	}

	totalStudents := s.broadcaster.CountInRoom(RoomStudent)
	if totalStudents == 0 {
		log.Printf("no students connected, skipping result for round %d", round)
		return nil
	}

	percentages := make(map[uint]float64, len(question.Options))
	for _, option := range question.Options {
		percentages[option.ID] = float64(len(option.AnsweredBy)) / float64(totalStudents)
	}

	s.applyScores(question)

	topClasses, err := s.classRepo.TopByScore(3)
	if err != nil {
		return err
	}

	s.broadcaster.PushToAll(models.EventQuestionResult, models.QuestionResult{
		Round:             round,
		OptionPercentages: percentages,
		TopClasses:        topClasses,
	})
	return nil
}

// applyScores 為每個班級加上這回合的得分
// 班級只因為自己的學生答對而得分；單一班級更新失敗只記錄下來，
// 不影響其他班級，也不影響結果廣播
func (s *ScoreService) applyScores(question *models.Question) {
	classes, err := s.classRepo.FindAll()
	if err != nil {
		log.Printf("failed to load classes for scoring: %v", err)
		return
	}

	for _, class := range classes {
		credit := 0
		for _, option := range question.Options {
			if !option.IsCorrect {
				continue
			}
			for _, student := range option.AnsweredBy {
				if student.ClassID == class.ID {
					credit++
				}
			}
		}
		if credit == 0 {
			continue
		}

		newScore := class.Score + credit*ScorePerCorrectAnswer
		if err := s.classRepo.UpdateScore(class.ID, newScore); err != nil {
			log.Printf("failed to update score for class %d: %v", class.ID, err)
		}
	}
}
