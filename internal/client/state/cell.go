// Package state provides a minimal observable state container.
// Каждая операция держит собственную ячейку статуса, поэтому параллельные
// операции (например login и register) не затирают статусы друг друга.
package state

import "sync"

// Phase перечисляет фазы жизненного цикла одной операции
type Phase int

const (
	// Idle — операция ещё не запускалась (или была сброшена)
	Idle Phase = iota
	// Loading — операция выполняется
	Loading
	// Success — операция завершилась успешно, Value заполнен
	Success
	// Failed — операция завершилась ошибкой, Message заполнен
	Failed
)

// String возвращает человекочитаемое имя фазы
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status представляет tagged union {Idle, Loading, Success(payload), Error(message)}
type Status[T any] struct {
	Value   T      // payload, заполнен только в Success
	Message string // текст ошибки, заполнен только в Failed
	Phase   Phase
}

// Cell — ячейка с текущим статусом и подписчиками
// Уведомления доставляются синхронно, в порядке подписки, под внутренним
// мьютексом: подписчики видят переходы сериализованными.
type Cell[T any] struct {
	mu     sync.Mutex
	status Status[T]
	subs   []subscriber[T]
	nextID int
}

type subscriber[T any] struct {
	fn func(Status[T])
	id int
}

// NewCell создает ячейку в фазе Idle
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{}
}

// Get возвращает текущий статус (снимок)
func (c *Cell[T]) Get() Status[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Set заменяет статус и уведомляет подписчиков
func (c *Cell[T]) Set(s Status[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = s
	for _, sub := range c.subs {
		sub.fn(s)
	}
}

// SetLoading переводит ячейку в фазу Loading
func (c *Cell[T]) SetLoading() {
	c.Set(Status[T]{Phase: Loading})
}

// SetSuccess переводит ячейку в фазу Success с payload
func (c *Cell[T]) SetSuccess(value T) {
	c.Set(Status[T]{Phase: Success, Value: value})
}

// SetError переводит ячейку в фазу Failed с сообщением
func (c *Cell[T]) SetError(message string) {
	c.Set(Status[T]{Phase: Failed, Message: message})
}

// Reset возвращает ячейку в фазу Idle
func (c *Cell[T]) Reset() {
	c.Set(Status[T]{})
}

// Subscribe регистрирует подписчика и возвращает функцию отписки
// Подписчик НЕ вызывается с текущим значением — только с последующими.
func (c *Cell[T]) Subscribe(fn func(Status[T])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, sub := range c.subs {
			if sub.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}
