package notes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/simplenote/simplenote-cli/internal/client/api"
	"github.com/simplenote/simplenote-cli/internal/client/state"
	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

//go:generate moq -out saver_mock.go . NoteSaver

// NoteSaver — срез API клиента, нужный для автосохранения
type NoteSaver interface {
	PatchNote(ctx context.Context, id int, req pkgapi.PatchedNoteRequest) (*pkgapi.Note, error)
}

// DefaultDebounce — окно тишины перед автосохранением
const DefaultDebounce = 600 * time.Millisecond

// EditSession — сессия редактирования одной заметки с автосохранением
// Каждое изменение перезапускает таймер; сохранение уходит только после
// DefaultDebounce тишины. PATCH всегда несёт оба поля целиком, даже если
// менялось одно. Улетевший запрос не отменяется: изменения во время
// in-flight сохранения планируют следующее по обычному окну.
type EditSession struct {
	saver   NoteSaver
	logger  *slog.Logger
	onSaved func(pkgapi.Note)
	window  time.Duration
	status  *state.Cell[pkgapi.Note]

	// baseCtx живёт в структуре: отложенные сохранения стартуют из
	// таймера, где вызывающего контекста уже нет.
	baseCtx context.Context

	mu          sync.Mutex
	id          int
	title       string
	description string
	timer       *time.Timer
	dirty       bool
	closed      bool
}

// EditOption настраивает EditSession
type EditOption func(*EditSession)

// WithDebounce заменяет окно автосохранения (для тестов)
func WithDebounce(d time.Duration) EditOption {
	return func(e *EditSession) { e.window = d }
}

// WithOnSaved регистрирует callback на успешное сохранение
// Обычно это Reconciler.ApplyWrite, чтобы список увидел новую версию.
func WithOnSaved(fn func(pkgapi.Note)) EditOption {
	return func(e *EditSession) { e.onSaved = fn }
}

// NewEditSession открывает сессию редактирования поверх заметки
func NewEditSession(ctx context.Context, saver NoteSaver, note pkgapi.Note, logger *slog.Logger, opts ...EditOption) *EditSession {
	if logger == nil {
		logger = slog.Default()
	}

	e := &EditSession{
		saver:       saver,
		logger:      logger,
		window:      DefaultDebounce,
		status:      state.NewCell[pkgapi.Note](),
		baseCtx:     ctx,
		id:          note.ID,
		title:       note.Title,
		description: note.Description,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State возвращает observable статус сохранения
func (e *EditSession) State() *state.Cell[pkgapi.Note] { return e.status }

// Title возвращает текущее локальное значение заголовка
func (e *EditSession) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title
}

// Description возвращает текущее локальное значение текста
func (e *EditSession) Description() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.description
}

// SetTitle меняет заголовок и перезапускает окно автосохранения
func (e *EditSession) SetTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.title = title
	e.scheduleLocked()
}

// SetDescription меняет текст и перезапускает окно автосохранения
func (e *EditSession) SetDescription(description string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.description = description
	e.scheduleLocked()
}

// Flush немедленно сохраняет несохранённые изменения и отменяет таймер
// Без грязных изменений — no-op.
func (e *EditSession) Flush(ctx context.Context) error {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if !e.dirty || e.closed {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	return e.save(ctx)
}

// Close завершает сессию: таймер отменяется, отложенное сохранение
// не уходит. Для гарантированной записи перед Close нужен Flush.
func (e *EditSession) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// scheduleLocked перезапускает таймер автосохранения; вызывается под e.mu
func (e *EditSession) scheduleLocked() {
	if e.closed {
		return
	}
	e.dirty = true
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.window, func() {
		if err := e.save(e.baseCtx); err != nil {
			e.logger.Warn("autosave failed", "note_id", e.id, "error", err)
		}
	})
}

// save отправляет PATCH с полным снимком обоих полей
func (e *EditSession) save(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	title := e.title
	description := e.description
	e.dirty = false
	e.mu.Unlock()

	e.status.SetLoading()

	note, err := e.saver.PatchNote(ctx, e.id, pkgapi.PatchedNoteRequest{
		Title:       &title,
		Description: &description,
	})
	if err != nil {
		e.status.SetError(api.ErrorMessage(err))
		return fmt.Errorf("failed to save note %d: %w", e.id, err)
	}

	e.status.SetSuccess(*note)
	e.logger.Debug("note autosaved", "note_id", note.ID)

	if e.onSaved != nil {
		e.onSaved(*note)
	}
	return nil
}
