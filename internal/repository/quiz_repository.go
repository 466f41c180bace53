package repository

import (
	"quiz_web/internal/models"
	"quiz_web/internal/storage"
)

// 狀態和設定都是單例資料列
const (
	statusID   = 1
	settingsID = 1

	defaultRoundTimeInterval = 10
)

type QuizRepository interface {
	GetStatus() (*models.QuizStatus, error)
	UpdateStatus(change *models.StatusChange) (*models.QuizStatus, error)
	GetSettings() (*models.QuizSettings, error)
	EnsureDefaults() error
}

type quizRepository struct {
	db *storage.PostgresDB
}

func NewQuizRepository(db *storage.PostgresDB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) GetStatus() (*models.QuizStatus, error) {
	var status models.QuizStatus
	if err := r.db.First(&status, statusID).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// UpdateStatus 只更新有給的欄位，並回傳更新後的完整狀態
// 整列讀出再寫回，以最後寫入者為準
// 不變量：只要測驗不在進行中，remaining_time 一律清空
func (r *quizRepository) UpdateStatus(change *models.StatusChange) (*models.QuizStatus, error) {
	status, err := r.GetStatus()
	if err != nil {
		return nil, err
	}

	if change.Round != nil {
		round := *change.Round
		status.Round = &round
	}
	if change.RemainingTime != nil {
		remaining := *change.RemainingTime
		status.RemainingTime = &remaining
	}
	if change.IsActive != nil {
		status.IsActive = *change.IsActive
	}
	if !status.IsActive {
		status.RemainingTime = nil
	}

	if err := r.db.Save(status).Error; err != nil {
		return nil, err
	}
	return status, nil
}

func (r *quizRepository) GetSettings() (*models.QuizSettings, error) {
	var settings models.QuizSettings
	if err := r.db.First(&settings, settingsID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// EnsureDefaults 確保兩筆單例資料列存在，已存在時不做任何更動
func (r *quizRepository) EnsureDefaults() error {
	var status models.QuizStatus
	err := r.db.Where(models.QuizStatus{ID: statusID}).
		FirstOrCreate(&status).Error
	if err != nil {
		return err
	}

	var settings models.QuizSettings
	return r.db.Where(models.QuizSettings{ID: settingsID}).
		Attrs(models.QuizSettings{RoundTimeInterval: defaultRoundTimeInterval}).
		FirstOrCreate(&settings).Error
}
