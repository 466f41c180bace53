package repository

import "quiz_web/internal/storage"

type Repositories struct {
	Quiz     QuizRepository
	Question QuestionRepository
	Class    ClassRepository
	Student  StudentRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		Quiz:     NewQuizRepository(db),
		Question: NewQuestionRepository(db),
		Class:    NewClassRepository(db),
		Student:  NewStudentRepository(db),
	}
}
