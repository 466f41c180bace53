package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"quiz_web/internal/models"
	"quiz_web/internal/repository"
)

var ErrUnknownRound = errors.New("指定的回合沒有對應的題目")

// QuizService 是回合狀態機，負責回合的開始、倒數與結束
// 它是唯一會修改 QuizStatus 的元件，也是唯一持有倒數計時器的元件
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	scoreService *ScoreService
	broadcaster  Broadcaster
	clock        clockwork.Clock

	// 倒數計時器的停止通道，整個系統同時最多只有一個倒數在跑
	countdownMux  sync.Mutex
	countdownStop chan struct{}
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	scoreService *ScoreService,
	broadcaster Broadcaster,
	clock clockwork.Clock,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		scoreService: scoreService,
		broadcaster:  broadcaster,
		clock:        clock,
	}
}

// NotifyStatus 把目前的測驗狀態推送給單一連線，用於連線剛被接受時
func (s *QuizService) NotifyStatus(manager *WebSocketManager, client *Client) error {
	status, err := s.quizRepo.GetStatus()
	if err != nil {
		return err
	}
	manager.PushToClient(client, models.EventQuizStatus, status)
	return nil
}

// ApplyStatusChange 套用主持人發出的回合控制命令
//
// 有指定回合時，該回合必須有對應的題目，否則整個命令被拒絕、狀態不變。
// 換到不同回合，或同回合從非進行中變成進行中，視為開始新回合：
// 取消既有的倒數、必要時從設定補上預設秒數、強制進入進行中狀態，
// 寫入成功後廣播新狀態並啟動倒數。其他變更只照原樣寫入並廣播，
// 不會碰倒數計時器。
func (s *QuizService) ApplyStatusChange(change *models.StatusChange) error {
	if change.Round != nil {
		if _, err := s.questionRepo.FindByID(*change.Round); err != nil {
			return ErrUnknownRound
		}
	}

	current, err := s.quizRepo.GetStatus()
	if err != nil {
		return err
	}

	newRound := isNewRoundStart(current, change)
	if newRound {
		// 先同步取消舊的倒數，才能開新的
		s.stopCountdown()

		active := true
		change.IsActive = &active
		if change.RemainingTime == nil {
			settings, err := s.quizRepo.GetSettings()
			if err != nil {
				return err
			}
			seed := settings.RoundTimeInterval
			change.RemainingTime = &seed
		}
	}

	updated, err := s.quizRepo.UpdateStatus(change)
	if err != nil {
		return err
	}

	// 廣播一定在寫入成功之後，保證廣播出去的狀態都已經持久化
	s.broadcaster.PushToAll(models.EventQuizStatus, updated)

	if newRound {
		s.startCountdown(*change.Round)
	}
	return nil
}

// isNewRoundStart 判斷命令是否代表開始新回合：
// 回合和目前不同，或回合相同但測驗從非進行中被要求進行
func isNewRoundStart(current *models.QuizStatus, change *models.StatusChange) bool {
	if change.Round == nil {
		return false
	}
	if current.Round == nil || *current.Round != *change.Round {
		return true
	}
	return !current.IsActive && change.IsActive != nil && *change.IsActive
}

// startCountdown 啟動新的倒數，會先取代掉任何還在跑的倒數
func (s *QuizService) startCountdown(round uint) {
	s.countdownMux.Lock()
	if s.countdownStop != nil {
		close(s.countdownStop)
	}
	stop := make(chan struct{})
	s.countdownStop = stop
	s.countdownMux.Unlock()

	go s.runCountdown(round, stop)
}

// stopCountdown 取消還在跑的倒數，沒有倒數時不做任何事
func (s *QuizService) stopCountdown() {
	s.countdownMux.Lock()
	if s.countdownStop != nil {
		close(s.countdownStop)
		s.countdownStop = nil
	}
	s.countdownMux.Unlock()
}

// finishCountdown 是倒數自然結束時的清理，只清掉還屬於自己的那個停止通道
func (s *QuizService) finishCountdown(stop chan struct{}) {
	s.countdownMux.Lock()
	if s.countdownStop == stop {
		s.countdownStop = nil
	}
	s.countdownMux.Unlock()
}

func (s *QuizService) runCountdown(round uint, stop chan struct{}) {
	ticker := s.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			// 取消和這一秒的 tick 同時發生時，取消優先
			select {
			case <-stop:
				return
			default:
			}
			if done := s.tick(round); done {
				s.finishCountdown(stop)
				return
			}
		}
	}
}

// tick 處理一次倒數，回傳 true 表示倒數應該結束
// 每次都重新讀取狀態，測驗被外部停用時倒數自行結束
func (s *QuizService) tick(round uint) bool {
	status, err := s.quizRepo.GetStatus()
	if err != nil {
		// 讀取失敗不是致命的，下一秒再試
		log.Printf("countdown: failed to read quiz status: %v", err)
		return false
	}

	if !status.IsActive || status.RemainingTime == nil {
		return true
	}

	newTime := *status.RemainingTime - 1
	if newTime <= 0 {
		zero := 0
		updated, err := s.quizRepo.UpdateStatus(&models.StatusChange{RemainingTime: &zero})
		if err != nil {
			log.Printf("countdown: failed to update quiz status: %v", err)
			return false
		}
		s.broadcaster.PushToAll(models.EventQuizStatus, updated)

		if err := s.scoreService.NotifyQuestionResult(round); err != nil {
			log.Printf("countdown: failed to notify question result: %v", err)
		}
		return true
	}

	updated, err := s.quizRepo.UpdateStatus(&models.StatusChange{RemainingTime: &newTime})
	if err != nil {
		log.Printf("countdown: failed to update quiz status: %v", err)
		return false
	}
	s.broadcaster.PushToAll(models.EventQuizStatus, updated)
	return false
}
