package notes

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplenote/simplenote-cli/internal/client/state"
	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

// pageFetcherMock — ручной мок PageFetcher в стиле moq
type pageFetcherMock struct {
	ListNotesFunc   func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error)
	FilterNotesFunc func(ctx context.Context, filter pkgapi.NoteFilter) (*pkgapi.NotePage, error)
}

func (m *pageFetcherMock) ListNotes(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
	return m.ListNotesFunc(ctx, page, pageSize)
}

func (m *pageFetcherMock) FilterNotes(ctx context.Context, filter pkgapi.NoteFilter) (*pkgapi.NotePage, error) {
	return m.FilterNotesFunc(ctx, filter)
}

var _ PageFetcher = (*pageFetcherMock)(nil)

func note(id int, title string) pkgapi.Note {
	return pkgapi.Note{ID: id, Title: title}
}

func ids(collection []pkgapi.Note) []int {
	out := make([]int, len(collection))
	for i, n := range collection {
		out[i] = n.ID
	}
	return out
}

// pageOf упаковывает заметки в NotePage, hasNext управляет полем next
func pageOf(hasNext bool, items ...pkgapi.Note) *pkgapi.NotePage {
	page := &pkgapi.NotePage{
		Count:   len(items),
		Results: items,
	}
	if hasNext {
		next := "http://example.com/api/notes/?page=2"
		page.Next = &next
	}
	return page
}

func TestReconciler_FirstPage_EmptyCollection(t *testing.T) {
	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			assert.Equal(t, 1, page)
			return pageOf(false, note(3, "c"), note(2, "b"), note(1, "a")), nil
		},
	}

	r := NewReconciler(fetcher, 20, nil)
	require.NoError(t, r.Refresh(context.Background()))

	// Порядок страницы сохранён
	assert.Equal(t, []int{3, 2, 1}, ids(r.Notes()))
	assert.False(t, r.HasNext())
	assert.True(t, r.Loaded())
	assert.Equal(t, state.Success, r.State().Get().Phase)
}

// Свежая страница 1 поверх непустой коллекции: новые элементы встают
// в начало в порядке страницы, известные обновляются на месте
func TestReconciler_FirstPage_MergeIntoExisting(t *testing.T) {
	calls := 0
	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			calls++
			if calls == 1 {
				return pageOf(false, note(1, "a"), note(2, "b")), nil
			}
			return pageOf(false, note(3, "c"), note(2, "b-updated")), nil
		},
	}

	r := NewReconciler(fetcher, 20, nil)
	ctx := context.Background()

	require.NoError(t, r.Refresh(ctx))
	require.Equal(t, []int{1, 2}, ids(r.Notes()))

	require.NoError(t, r.Refresh(ctx))

	// [A,B] + страница [C,B'] => [C, B', A]: C новый — в начало,
	// B обновлён на месте, A остался
	collection := r.Notes()
	assert.Equal(t, []int{3, 1, 2}, ids(collection))
	assert.Equal(t, "b-updated", collection[2].Title)
}

// Страница 2+ дописывается в конец, дубликаты обновляются на месте
func TestReconciler_SubsequentPage_Append(t *testing.T) {
	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			switch page {
			case 1:
				return pageOf(true, note(1, "a"), note(2, "b")), nil
			default:
				return pageOf(false, note(3, "c"), note(1, "a-updated")), nil
			}
		},
	}

	r := NewReconciler(fetcher, 20, nil)
	ctx := context.Background()

	require.NoError(t, r.Refresh(ctx))
	require.True(t, r.HasNext())

	require.NoError(t, r.NextPage(ctx))

	// [A,B] + страница [C,A'] => [A', B, C]
	collection := r.Notes()
	assert.Equal(t, []int{1, 2, 3}, ids(collection))
	assert.Equal(t, "a-updated", collection[0].Title)
	assert.False(t, r.HasNext())
}

func TestReconciler_NextPage_WithoutNext_NoOp(t *testing.T) {
	calls := 0
	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			calls++
			return pageOf(false, note(1, "a")), nil
		},
	}

	r := NewReconciler(fetcher, 20, nil)
	ctx := context.Background()

	require.NoError(t, r.Refresh(ctx))
	require.NoError(t, r.NextPage(ctx))

	// Сервер не обещал следующей страницы — запроса не было
	assert.Equal(t, 1, calls)
}

// Пока запрос в полёте, повторные вызовы отбрасываются, не ставятся в очередь
func TestReconciler_InFlightRequestsDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	var calls int
	var mu sync.Mutex

	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()

			if first {
				close(started)
				<-release
			}
			return pageOf(false, note(1, "a")), nil
		},
	}

	r := NewReconciler(fetcher, 20, nil)
	ctx := context.Background()

	done := make(chan error)
	go func() {
		done <- r.RequestPage(ctx, 1)
	}()

	<-started

	// Дубликаты на ту же и другую страницу — no-op
	require.NoError(t, r.RequestPage(ctx, 1))
	require.NoError(t, r.RequestPage(ctx, 2))

	close(release)
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestReconciler_FetchError(t *testing.T) {
	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			return nil, assert.AnError
		},
	}

	r := NewReconciler(fetcher, 20, nil)

	err := r.RequestPage(context.Background(), 1)
	require.Error(t, err)

	assert.Equal(t, state.Failed, r.State().Get().Phase)
	assert.False(t, r.Loaded())
	assert.Empty(t, r.Notes())

	// После ошибки guard снят: следующий запрос возможен
	fetcher.ListNotesFunc = func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
		return pageOf(false, note(1, "a")), nil
	}
	require.NoError(t, r.RequestPage(context.Background(), 1))
	assert.True(t, r.Loaded())
}

func TestReconciler_ApplyWrite(t *testing.T) {
	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			return pageOf(false, note(1, "a"), note(2, "b")), nil
		},
	}

	r := NewReconciler(fetcher, 20, nil)
	require.NoError(t, r.Refresh(context.Background()))

	// Новая заметка — в начало
	r.ApplyWrite(note(3, "c"))
	assert.Equal(t, []int{3, 1, 2}, ids(r.Notes()))

	// Известная — на месте
	r.ApplyWrite(note(2, "b-updated"))
	collection := r.Notes()
	assert.Equal(t, []int{3, 1, 2}, ids(collection))
	assert.Equal(t, "b-updated", collection[2].Title)
}

func TestReconciler_ApplyDelete_Idempotent(t *testing.T) {
	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			return pageOf(false, note(1, "a"), note(2, "b")), nil
		},
	}

	r := NewReconciler(fetcher, 20, nil)
	require.NoError(t, r.Refresh(context.Background()))

	r.ApplyDelete(1)
	assert.Equal(t, []int{2}, ids(r.Notes()))

	// Повторное и постороннее удаление — no-op
	r.ApplyDelete(1)
	r.ApplyDelete(99)
	assert.Equal(t, []int{2}, ids(r.Notes()))
}

func TestReconciler_Reset(t *testing.T) {
	calls := 0
	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			calls++
			if calls == 1 {
				return pageOf(false, note(1, "a"), note(2, "b")), nil
			}
			// После удаления на сервере осталась одна заметка
			return pageOf(false, note(2, "b")), nil
		},
	}

	r := NewReconciler(fetcher, 20, nil)
	ctx := context.Background()

	require.NoError(t, r.Refresh(ctx))
	require.Len(t, r.Notes(), 2)

	// Reset — единственный способ избавиться от отсутствующих на сервере
	require.NoError(t, r.Reset(ctx))
	assert.Equal(t, []int{2}, ids(r.Notes()))
	assert.True(t, r.Loaded())
}

func TestReconciler_Filter(t *testing.T) {
	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			return pageOf(false, note(1, "a"), note(2, "b")), nil
		},
		FilterNotesFunc: func(ctx context.Context, filter pkgapi.NoteFilter) (*pkgapi.NotePage, error) {
			assert.Equal(t, "b", filter.Title)
			assert.Equal(t, 1, filter.Page)
			assert.Equal(t, 20, filter.PageSize)
			return pageOf(false, note(2, "b-fresh"), note(5, "b2")), nil
		},
	}

	r := NewReconciler(fetcher, 20, nil)
	ctx := context.Background()

	require.NoError(t, r.Refresh(ctx))
	require.NoError(t, r.Filter(ctx, pkgapi.NoteFilter{Title: "b"}))

	// Слияние той же политикой первой страницы: 5 новый — в начало,
	// 2 обновлён на месте
	collection := r.Notes()
	assert.Equal(t, []int{5, 1, 2}, ids(collection))
	assert.Equal(t, "b-fresh", collection[2].Title)
}

func TestReconciler_Search(t *testing.T) {
	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			return pageOf(false,
				pkgapi.Note{ID: 1, Title: "Shopping list", Description: "milk, eggs"},
				pkgapi.Note{ID: 2, Title: "Ideas", Description: "buy a boat"},
				pkgapi.Note{ID: 3, Title: "Diary", Description: "nothing happened"},
			), nil
		},
	}

	r := NewReconciler(fetcher, 20, nil)
	require.NoError(t, r.Refresh(context.Background()))

	// Регистронезависимый поиск по title и description
	assert.Equal(t, []int{1}, ids(r.Search("shopping")))
	assert.Equal(t, []int{2}, ids(r.Search("BOAT")))
	assert.Empty(t, r.Search("absent"))

	// Пустой запрос возвращает всё
	assert.Len(t, r.Search("  "), 3)
}

func TestReconciler_Get(t *testing.T) {
	fetcher := &pageFetcherMock{
		ListNotesFunc: func(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
			return pageOf(false, note(1, "a")), nil
		},
	}

	r := NewReconciler(fetcher, 20, nil)
	require.NoError(t, r.Refresh(context.Background()))

	got, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", got.Title)

	_, ok = r.Get(99)
	assert.False(t, ok)
}
