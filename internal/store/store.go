package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/campus-hub/schedule-agent/internal/model"
	"github.com/campus-hub/schedule-agent/internal/schedule"
	"go.uber.org/zap"
)

// State полное состояние наложения пользователя поверх расписания:
// само расписание с сервера плюс пользовательский выбор.
// Снимки состояния неизменяемы: подписчики и адаптер персистентности
// читают их, но никогда не модифицируют.
type State struct {
	Schedule          *model.Schedule      `json:"schedule"`
	ActivePlanningIDs []string             `json:"activePlanningIds"`
	HiddenCourseList  []model.HiddenCourse `json:"hiddenCourseList"`
}

// Snapshotter сохраняет и восстанавливает состояние целиком.
// Механизм хранения (Postgres, файл) store не интересует.
type Snapshotter interface {
	Save(ctx context.Context, state State) error
	// Load возвращает nil без ошибки, если снапшота ещё нет
	Load(ctx context.Context) (*State, error)
}

// Store хранилище состояния расписания. Единственный владелец State:
// все мутации проходят через Set*-методы, каждая мутация синхронно
// пересчитывает производные ленты и рассылает их подписчикам одним
// каскадом, после чего состояние уходит в персистентность.
type Store struct {
	mu    sync.RWMutex
	state State

	// производные значения, пересчитываются при каждой мутации
	merged  []model.Event
	visible []model.Event

	scheduleStream *stream[*model.Schedule]
	activeStream   *stream[[]string]
	hiddenStream   *stream[[]model.HiddenCourse]
	mergedStream   *stream[[]model.Event]
	visibleStream  *stream[[]model.Event]

	snapshots Snapshotter
	logger    *zap.Logger
}

// New создаёт пустое хранилище. Перед первым использованием обычно
// вызывается Hydrate для восстановления сохранённого состояния.
func New(snapshots Snapshotter, logger *zap.Logger) *Store {
	return &Store{
		state: State{
			ActivePlanningIDs: []string{},
			HiddenCourseList:  []model.HiddenCourse{},
		},
		merged:         []model.Event{},
		visible:        []model.Event{},
		scheduleStream: newStream[*model.Schedule](),
		activeStream:   newStream[[]string](),
		hiddenStream:   newStream[[]model.HiddenCourse](),
		mergedStream:   newStream[[]model.Event](),
		visibleStream:  newStream[[]model.Event](),
		snapshots:      snapshots,
		logger:         logger,
	}
}

// Hydrate восстанавливает состояние из персистентности. Отсутствие
// снапшота не ошибка — store остаётся пустым. Ошибка возвращается
// только если снапшот есть, но прочитать его не удалось; вызывающий
// сам решает, продолжать ли с пустым состоянием.
func (s *Store) Hydrate(ctx context.Context) error {
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load overlay snapshot: %w", err)
	}
	if snap == nil {
		s.logger.Info("No persisted schedule state, starting empty")
		return nil
	}

	if snap.ActivePlanningIDs == nil {
		snap.ActivePlanningIDs = []string{}
	}
	if snap.HiddenCourseList == nil {
		snap.HiddenCourseList = []model.HiddenCourse{}
	}

	s.mu.Lock()
	s.state = *snap
	s.recomputeLocked()
	s.publishAllLocked()
	s.mu.Unlock()

	s.logger.Info("Schedule state restored",
		zap.Int("active_plannings", len(snap.ActivePlanningIDs)),
		zap.Int("hidden_courses", len(snap.HiddenCourseList)))
	return nil
}

// SetSchedule принимает свежее расписание с сервера. Идентификаторы
// нормализуются один раз на входе, затем пересчитывается активный
// набор planning'ов (выбор пользователя сохраняется, насколько это
// возможно) и производные ленты.
func (s *Store) SetSchedule(sched *model.Schedule) {
	for _, problem := range model.Normalize(sched) {
		s.logger.Warn("Schedule entry without identifier", zap.String("entry", problem))
	}

	s.mu.Lock()
	s.state.Schedule = sched
	s.state.ActivePlanningIDs = schedule.SelectActivePlannings(sched, s.state.ActivePlanningIDs)
	s.recomputeLocked()
	s.publishAllLocked()
	snapshot := s.state
	s.mu.Unlock()

	s.persist(snapshot)
}

// SetActivePlanningIDs заменяет набор активных planning'ов выбором
// пользователя. Список принимается как есть: за валидность
// идентификаторов отвечает слой представления.
func (s *Store) SetActivePlanningIDs(ids []string) {
	if ids == nil {
		ids = []string{}
	}

	s.mu.Lock()
	s.state.ActivePlanningIDs = ids
	s.recomputeLocked()
	s.activeStream.publish(s.state.ActivePlanningIDs)
	s.mergedStream.publish(s.merged)
	s.visibleStream.publish(s.visible)
	snapshot := s.state
	s.mu.Unlock()

	s.persist(snapshot)
}

// SetHiddenCourseList заменяет список скрытых курсов
func (s *Store) SetHiddenCourseList(list []model.HiddenCourse) {
	if list == nil {
		list = []model.HiddenCourse{}
	}

	s.mu.Lock()
	s.state.HiddenCourseList = list
	s.recomputeLocked()
	s.hiddenStream.publish(s.state.HiddenCourseList)
	s.mergedStream.publish(s.merged)
	s.visibleStream.publish(s.visible)
	snapshot := s.state
	s.mu.Unlock()

	s.persist(snapshot)
}

// recomputeLocked пересчитывает производные ленты из текущего
// состояния. Вызывается под локом.
func (s *Store) recomputeLocked() {
	s.merged = schedule.MergeActiveEvents(s.state.Schedule, s.state.ActivePlanningIDs)
	s.visible = schedule.FilterHiddenCourses(s.merged, s.state.HiddenCourseList)
}

// publishAllLocked рассылает все пять лент одним каскадом, чтобы
// подписчики никогда не видели разорванное промежуточное состояние
func (s *Store) publishAllLocked() {
	s.scheduleStream.publish(s.state.Schedule)
	s.activeStream.publish(s.state.ActivePlanningIDs)
	s.hiddenStream.publish(s.state.HiddenCourseList)
	s.mergedStream.publish(s.merged)
	s.visibleStream.publish(s.visible)
}

// persist отправляет снимок состояния в персистентность.
// Ошибка записи не мешает работе store — только пишем в лог.
func (s *Store) persist(snapshot State) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(context.Background(), snapshot); err != nil {
		s.logger.Error("Failed to persist schedule state", zap.Error(err))
	}
}

// Snapshot возвращает копию текущего состояния
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Schedule возвращает текущее расписание (может быть nil)
func (s *Store) Schedule() *model.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Schedule
}

// ActivePlanningIDs возвращает текущий набор активных planning'ов
func (s *Store) ActivePlanningIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ActivePlanningIDs
}

// HiddenCourseList возвращает текущий список скрытых курсов
func (s *Store) HiddenCourseList() []model.HiddenCourse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HiddenCourseList
}

// MergedEvents возвращает объединённую ленту событий активных planning'ов
func (s *Store) MergedEvents() []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.merged
}

// VisibleEvents возвращает ленту событий после фильтра скрытых курсов.
// Это итоговое представление для слоя отображения.
func (s *Store) VisibleEvents() []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible
}

// SubscribeSchedule подписка на расписание. Текущее значение приходит
// сразу, дальше — при каждом изменении. Отписка через cancel.
func (s *Store) SubscribeSchedule() (<-chan *model.Schedule, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduleStream.subscribe(s.state.Schedule)
}

// SubscribeActivePlanningIDs подписка на набор активных planning'ов
func (s *Store) SubscribeActivePlanningIDs() (<-chan []string, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeStream.subscribe(s.state.ActivePlanningIDs)
}

// SubscribeHiddenCourseList подписка на список скрытых курсов
func (s *Store) SubscribeHiddenCourseList() (<-chan []model.HiddenCourse, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hiddenStream.subscribe(s.state.HiddenCourseList)
}

// SubscribeMergedEvents подписка на объединённую ленту событий
func (s *Store) SubscribeMergedEvents() (<-chan []model.Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mergedStream.subscribe(s.merged)
}

// SubscribeVisibleEvents подписка на итоговую видимую ленту событий
func (s *Store) SubscribeVisibleEvents() (<-chan []model.Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleStream.subscribe(s.visible)
}
