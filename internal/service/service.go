package service

import (
	"github.com/jonboulle/clockwork"

	"quiz_web/internal/repository"
)

type Services struct {
	Quiz             *QuizService
	Score            *ScoreService
	Answer           *AnswerService
	WebSocketManager *WebSocketManager
}

func NewServices(repos *repository.Repositories) *Services {
	clock := clockwork.NewRealClock()

	wsManager := NewWebSocketManager(clock)
	scoreService := NewScoreService(repos.Question, repos.Class, wsManager)
	quizService := NewQuizService(repos.Quiz, repos.Question, scoreService, wsManager, clock)
	answerService := NewAnswerService(repos.Question, repos.Student)

	// 主持人的回合控制命令交給 QuizService 處理
	wsManager.OnStatusChange(quizService.ApplyStatusChange)

	return &Services{
		Quiz:             quizService,
		Score:            scoreService,
		Answer:           answerService,
		WebSocketManager: wsManager,
	}
}
