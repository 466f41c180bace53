package repository

import (
	"quiz_web/internal/models"
	"quiz_web/internal/storage"
)

type ClassRepository interface {
	FindAll() ([]models.SchoolClass, error)
	TopByScore(limit int) ([]models.SchoolClass, error)
	UpdateScore(id uint, score int) error
}

type classRepository struct {
	db *storage.PostgresDB
}

func NewClassRepository(db *storage.PostgresDB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) FindAll() ([]models.SchoolClass, error) {
	var classes []models.SchoolClass
	err := r.db.Find(&classes).Error
	return classes, err
}

// TopByScore 查詢分數最高的前幾個班級
// 同分時以 id 小的優先，排序必須是確定性的
func (r *classRepository) TopByScore(limit int) ([]models.SchoolClass, error) {
	var classes []models.SchoolClass
	err := r.db.Order("score DESC, id ASC").Limit(limit).Find(&classes).Error
	return classes, err
}

func (r *classRepository) UpdateScore(id uint, score int) error {
	return r.db.Model(&models.SchoolClass{}).Where("id = ?", id).Update("score", score).Error
}
