package store

import (
	"sync"

	"github.com/google/uuid"
)

// stream канал рассылки с семантикой replay-latest: новый подписчик
// сразу получает текущее значение, дальше — последнее опубликованное.
// Медленный подписчик не блокирует рассылку: непрочитанное значение
// вытесняется более свежим.
type stream[T any] struct {
	mu   sync.Mutex
	subs map[uuid.UUID]chan T
}

func newStream[T any]() *stream[T] {
	return &stream[T]{
		subs: make(map[uuid.UUID]chan T),
	}
}

// subscribe регистрирует подписчика и сразу кладёт ему текущее
// значение. Возвращённая функция отменяет подписку и закрывает канал.
func (st *stream[T]) subscribe(current T) (<-chan T, func()) {
	ch := make(chan T, 1)
	ch <- current

	id := uuid.New()

	st.mu.Lock()
	st.subs[id] = ch
	st.mu.Unlock()

	cancel := func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		if existing, ok := st.subs[id]; ok {
			delete(st.subs, id)
			close(existing)
		}
	}
	return ch, cancel
}

// publish рассылает значение всем подписчикам. Если подписчик ещё
// не прочитал предыдущее значение, оно заменяется новым.
func (st *stream[T]) publish(value T) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, ch := range st.subs {
		select {
		case <-ch:
		default:
		}
		ch <- value
	}
}
