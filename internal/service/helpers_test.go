package service

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"quiz_web/internal/models"
)

// fakeQuizRepo 是 QuizRepository 的記憶體版本，更新語意和真正的 repository 一致
type fakeQuizRepo struct {
	mu          sync.Mutex
	status      models.QuizStatus
	settings    models.QuizSettings
	failUpdates int // 接下來幾次 UpdateStatus 會失敗
	updates     int
}

func newFakeQuizRepo(roundTimeInterval int) *fakeQuizRepo {
	return &fakeQuizRepo{
		status:   models.QuizStatus{ID: 1},
		settings: models.QuizSettings{ID: 1, RoundTimeInterval: roundTimeInterval},
	}
}

func (r *fakeQuizRepo) GetStatus() (*models.QuizStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	status := r.status
	return &status, nil
}

func (r *fakeQuizRepo) UpdateStatus(change *models.StatusChange) (*models.QuizStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failUpdates > 0 {
		r.failUpdates--
		return nil, errors.New("store unavailable")
	}
	r.updates++

	if change.Round != nil {
		round := *change.Round
		r.status.Round = &round
	}
	if change.RemainingTime != nil {
		remaining := *change.RemainingTime
		r.status.RemainingTime = &remaining
	}
	if change.IsActive != nil {
		r.status.IsActive = *change.IsActive
	}
	if !r.status.IsActive {
		r.status.RemainingTime = nil
	}

	status := r.status
	return &status, nil
}

func (r *fakeQuizRepo) GetSettings() (*models.QuizSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	settings := r.settings
	return &settings, nil
}

func (r *fakeQuizRepo) EnsureDefaults() error { return nil }

func (r *fakeQuizRepo) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates
}

func (r *fakeQuizRepo) pendingFailures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failUpdates
}

// fakeQuestionRepo 以記憶體 map 保存題目與作答紀錄
type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[uint]*models.Question
	answers   map[uint]map[uint]bool // optionID -> studentID 集合
}

func newFakeQuestionRepo(questions ...*models.Question) *fakeQuestionRepo {
	repo := &fakeQuestionRepo{
		questions: make(map[uint]*models.Question),
		answers:   make(map[uint]map[uint]bool),
	}
	for _, q := range questions {
		repo.questions[q.ID] = q
	}
	return repo
}

func (r *fakeQuestionRepo) FindByID(id uint) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	question, ok := r.questions[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return question, nil
}

func (r *fakeQuestionRepo) FindWithAnswers(id uint) (*models.Question, error) {
	return r.FindByID(id)
}

func (r *fakeQuestionRepo) AddRespondent(optionID, studentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.answers[optionID] == nil {
		r.answers[optionID] = make(map[uint]bool)
	}
	r.answers[optionID][studentID] = true
	return nil
}

func (r *fakeQuestionRepo) respondents(optionID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.answers[optionID])
}

// fakeClassRepo 以記憶體 slice 保存班級，排序語意和 SQL 版本一致
type fakeClassRepo struct {
	mu      sync.Mutex
	classes []models.SchoolClass
	failIDs map[uint]bool // 這些班級的 UpdateScore 會失敗
}

func newFakeClassRepo(classes ...models.SchoolClass) *fakeClassRepo {
	return &fakeClassRepo{classes: classes, failIDs: make(map[uint]bool)}
}

func (r *fakeClassRepo) FindAll() ([]models.SchoolClass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.SchoolClass, len(r.classes))
	copy(out, r.classes)
	return out, nil
}

func (r *fakeClassRepo) TopByScore(limit int) ([]models.SchoolClass, error) {
	all, _ := r.FindAll()
	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].ID < all[j].ID
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeClassRepo) UpdateScore(id uint, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failIDs[id] {
		return errors.New("store unavailable")
	}
	for i := range r.classes {
		if r.classes[i].ID == id {
			r.classes[i].Score = score
			return nil
		}
	}
	return errors.New("record not found")
}

func (r *fakeClassRepo) scoreOf(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, class := range r.classes {
		if class.ID == id {
			return class.Score
		}
	}
	return -1
}

// fakeStudentRepo 以記憶體 map 保存學生
type fakeStudentRepo struct {
	students map[uint]*models.Student
}

func newFakeStudentRepo(students ...*models.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{students: make(map[uint]*models.Student)}
	for _, s := range students {
		repo.students[s.ID] = s
	}
	return repo
}

func (r *fakeStudentRepo) FindByID(id uint) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return student, nil
}

// pushedEvent 記錄一次廣播，room 為空字串表示推送給全體
type pushedEvent struct {
	room  string
	event string
	data  interface{}
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	events   []pushedEvent
	students int // CountInRoom(RoomStudent) 的回傳值
}

func (b *fakeBroadcaster) PushToAll(event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, pushedEvent{event: event, data: data})
}

func (b *fakeBroadcaster) PushToRoom(room string, event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, pushedEvent{room: room, event: event, data: data})
}

func (b *fakeBroadcaster) CountInRoom(room string) int {
	if room == RoomStudent {
		return b.students
	}
	return 0
}

func (b *fakeBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func (b *fakeBroadcaster) byEvent(name string) []pushedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []pushedEvent
	for _, e := range b.events {
		if e.event == name {
			out = append(out, e)
		}
	}
	return out
}

// remainingTimes 回傳所有 quiz-status 廣播裡的 remaining_time，null 以 -1 表示
func (b *fakeBroadcaster) remainingTimes() []int {
	var out []int
	for _, e := range b.byEvent(models.EventQuizStatus) {
		status := e.data.(*models.QuizStatus)
		if status.RemainingTime == nil {
			out = append(out, -1)
		} else {
			out = append(out, *status.RemainingTime)
		}
	}
	return out
}

// waitForEvents 等待廣播事件數量達到 n，逾時就讓測試失敗
func waitForEvents(t *testing.T, b *fakeBroadcaster, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if b.count() >= n {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, got %d", n, b.count())
}

// simpleQuestion 建一道只有一個選項的題目，方便回合測試使用
func simpleQuestion(id uint) *models.Question {
	return &models.Question{
		Model: gorm.Model{ID: id},
		Text:  "測試題目",
		Options: []models.Option{
			{Model: gorm.Model{ID: id*10 + 1}, QuestionID: id, Text: "選項A", IsCorrect: true},
		},
	}
}
