package repository

import (
	"quiz_web/internal/models"
	"quiz_web/internal/storage"
)

type StudentRepository interface {
	FindByID(id uint) (*models.Student, error)
}

type studentRepository struct {
	db *storage.PostgresDB
}

func NewStudentRepository(db *storage.PostgresDB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindByID(id uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}
