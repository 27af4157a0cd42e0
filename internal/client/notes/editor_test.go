package notes

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplenote/simplenote-cli/internal/client/state"
	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

// noteSaverMock — ручной мок NoteSaver, запоминает все PATCH запросы
type noteSaverMock struct {
	mu       sync.Mutex
	requests []pkgapi.PatchedNoteRequest
	err      error
}

func (m *noteSaverMock) PatchNote(ctx context.Context, id int, req pkgapi.PatchedNoteRequest) (*pkgapi.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}

	note := pkgapi.Note{ID: id}
	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Description != nil {
		note.Description = *req.Description
	}
	return &note, nil
}

func (m *noteSaverMock) calls() []pkgapi.PatchedNoteRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]pkgapi.PatchedNoteRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

var _ NoteSaver = (*noteSaverMock)(nil)

const testDebounce = 30 * time.Millisecond

func newTestSession(t *testing.T, saver NoteSaver, opts ...EditOption) *EditSession {
	t.Helper()

	base := pkgapi.Note{ID: 42, Title: "initial title", Description: "initial text"}
	opts = append([]EditOption{WithDebounce(testDebounce)}, opts...)

	session := NewEditSession(context.Background(), saver, base, nil, opts...)
	t.Cleanup(session.Close)
	return session
}

// Несколько правок внутри окна тишины схлопываются в один PATCH
// с финальными значениями обоих полей
func TestEditSession_DebouncedSingleSave(t *testing.T) {
	saver := &noteSaverMock{}
	session := newTestSession(t, saver)

	session.SetTitle("draft 1")
	session.SetTitle("draft 2")
	session.SetDescription("final text")

	require.Eventually(t, func() bool {
		return len(saver.calls()) > 0
	}, time.Second, 5*time.Millisecond)

	// Окно ожидания с запасом: убеждаемся, что второго PATCH не было
	time.Sleep(3 * testDebounce)

	calls := saver.calls()
	require.Len(t, calls, 1)

	// PATCH всегда несёт оба поля, даже если менялись не все
	require.NotNil(t, calls[0].Title)
	require.NotNil(t, calls[0].Description)
	assert.Equal(t, "draft 2", *calls[0].Title)
	assert.Equal(t, "final text", *calls[0].Description)

	status := session.State().Get()
	assert.Equal(t, state.Success, status.Phase)
	assert.Equal(t, "draft 2", status.Value.Title)
}

// Правка только title всё равно отправляет description целиком
func TestEditSession_PatchCarriesBothFields(t *testing.T) {
	saver := &noteSaverMock{}
	session := newTestSession(t, saver)

	session.SetTitle("only title changed")

	require.Eventually(t, func() bool {
		return len(saver.calls()) == 1
	}, time.Second, 5*time.Millisecond)

	call := saver.calls()[0]
	require.NotNil(t, call.Description)
	assert.Equal(t, "initial text", *call.Description)
}

// Правка после тишины открывает новое окно и даёт второй PATCH
func TestEditSession_SeparateWindows(t *testing.T) {
	saver := &noteSaverMock{}
	session := newTestSession(t, saver)

	session.SetDescription("first save")
	require.Eventually(t, func() bool {
		return len(saver.calls()) == 1
	}, time.Second, 5*time.Millisecond)

	session.SetDescription("second save")
	require.Eventually(t, func() bool {
		return len(saver.calls()) == 2
	}, time.Second, 5*time.Millisecond)

	calls := saver.calls()
	assert.Equal(t, "first save", *calls[0].Description)
	assert.Equal(t, "second save", *calls[1].Description)
}

// Flush дожимает отложенное сохранение немедленно
func TestEditSession_Flush(t *testing.T) {
	saver := &noteSaverMock{}
	session := newTestSession(t, saver, WithDebounce(time.Hour))

	session.SetTitle("unsaved")

	require.NoError(t, session.Flush(context.Background()))

	calls := saver.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "unsaved", *calls[0].Title)

	// Без грязных изменений Flush — no-op
	require.NoError(t, session.Flush(context.Background()))
	assert.Len(t, saver.calls(), 1)
}

// Close отменяет отложенное сохранение
func TestEditSession_CloseCancelsPending(t *testing.T) {
	saver := &noteSaverMock{}
	session := newTestSession(t, saver)

	session.SetTitle("never saved")
	session.Close()

	time.Sleep(3 * testDebounce)
	assert.Empty(t, saver.calls())
}

// Ошибка сохранения переводит статус в Failed, значения остаются локально
func TestEditSession_SaveError(t *testing.T) {
	saver := &noteSaverMock{err: assert.AnError}
	session := newTestSession(t, saver)

	session.SetTitle("doomed")

	require.Eventually(t, func() bool {
		return session.State().Get().Phase == state.Failed
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "doomed", session.Title())
}

// Успешное сохранение прокидывается в onSaved (обновление коллекции)
func TestEditSession_OnSaved(t *testing.T) {
	saver := &noteSaverMock{}

	var mu sync.Mutex
	var saved []pkgapi.Note

	session := newTestSession(t, saver, WithOnSaved(func(n pkgapi.Note) {
		mu.Lock()
		defer mu.Unlock()
		saved = append(saved, n)
	}))

	session.SetTitle("propagated")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(saved) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "propagated", saved[0].Title)
	assert.Equal(t, 42, saved[0].ID)
}
