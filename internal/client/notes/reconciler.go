// Package notes maintains the client-side note collection and keeps it
// reconciled with the paginated server list.
package notes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/simplenote/simplenote-cli/internal/client/api"
	"github.com/simplenote/simplenote-cli/internal/client/state"
	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

//go:generate moq -out fetcher_mock.go . PageFetcher

// PageFetcher — срез API клиента, нужный для загрузки страниц списка
type PageFetcher interface {
	ListNotes(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error)
	FilterNotes(ctx context.Context, filter pkgapi.NoteFilter) (*pkgapi.NotePage, error)
}

// Provenance различает происхождение пришедшей страницы
// Политика слияния зависит от того, первая это страница или последующая.
type Provenance int

const (
	// FirstPage — страница 1: свежайшие элементы, вставляются в начало
	FirstPage Provenance = iota
	// SubsequentPage — страницы 2+: более старые элементы, добавляются в конец
	SubsequentPage
)

// PageResult — payload Success-состояния после слияния страницы
type PageResult struct {
	Page    int
	Total   int // server-side count across all pages
	Added   int
	Updated int
	HasNext bool
}

// DefaultPageSize — размер страницы по умолчанию
const DefaultPageSize = 20

// Reconciler держит объединённую коллекцию заметок и сливает в неё
// страницы сервера по identity-based правилам:
//
//   - элемент с известным id заменяется на месте (позиция сохраняется);
//   - новый элемент первой страницы вставляется в начало, причём страница
//     обходится в обратном порядке, чтобы её внутренний порядок сохранился;
//   - новый элемент последующей страницы добавляется в конец.
//
// Одновременно выполняется не более одного сетевого запроса: повторные
// вызовы во время in-flight запроса отбрасываются, не ставятся в очередь.
type Reconciler struct {
	fetcher  PageFetcher
	logger   *slog.Logger
	pageSize int
	status   *state.Cell[PageResult]

	mu           sync.Mutex
	collection   []pkgapi.Note
	isRequesting bool
	hasNext      bool
	page         int
	loaded       bool
}

// NewReconciler создает Reconciler с пустой коллекцией
func NewReconciler(fetcher PageFetcher, pageSize int, logger *slog.Logger) *Reconciler {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		fetcher:  fetcher,
		logger:   logger,
		pageSize: pageSize,
		status:   state.NewCell[PageResult](),
	}
}

// State возвращает observable статус загрузки страниц
func (r *Reconciler) State() *state.Cell[PageResult] { return r.status }

// Notes возвращает снимок текущей коллекции в её порядке
func (r *Reconciler) Notes() []pkgapi.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]pkgapi.Note, len(r.collection))
	copy(out, r.collection)
	return out
}

// Len возвращает размер коллекции
func (r *Reconciler) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.collection)
}

// HasNext reports whether the server advertised another page.
func (r *Reconciler) HasNext() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasNext
}

// Loaded reports whether at least one page has been merged.
// Защёлка: однажды став true, остаётся true до Reset.
func (r *Reconciler) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// Refresh запрашивает первую страницу и сливает её как FirstPage
func (r *Reconciler) Refresh(ctx context.Context) error {
	return r.RequestPage(ctx, 1)
}

// NextPage запрашивает следующую страницу, если сервер её обещал
// Без следующей страницы — no-op, как и при in-flight запросе.
func (r *Reconciler) NextPage(ctx context.Context) error {
	r.mu.Lock()
	if !r.hasNext {
		r.mu.Unlock()
		return nil
	}
	next := r.page + 1
	r.mu.Unlock()

	return r.RequestPage(ctx, next)
}

// RequestPage загружает страницу page и сливает её в коллекцию
// Пока запрос в полёте, повторные вызовы (на любую страницу) отбрасываются.
func (r *Reconciler) RequestPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	r.mu.Lock()
	if r.isRequesting {
		r.mu.Unlock()
		r.logger.Debug("page request dropped, fetch already in flight", "page", page)
		return nil
	}
	r.isRequesting = true
	r.mu.Unlock()

	r.status.SetLoading()

	// Мьютекс не держится через сетевой вызов: читатели коллекции
	// не блокируются на время запроса.
	result, err := r.fetcher.ListNotes(ctx, page, r.pageSize)

	r.mu.Lock()
	r.isRequesting = false
	if err != nil {
		r.mu.Unlock()
		r.status.SetError(api.ErrorMessage(err))
		return fmt.Errorf("failed to load page %d: %w", page, err)
	}

	res := r.mergeLocked(result, page)
	r.mu.Unlock()

	r.status.SetSuccess(res)
	r.logger.Debug("page merged",
		"page", page, "added", res.Added, "updated", res.Updated, "has_next", res.HasNext)

	return nil
}

// Filter выполняет серверную фильтрацию и сливает результат той же
// политикой: страница 1 фильтра считается FirstPage.
func (r *Reconciler) Filter(ctx context.Context, filter pkgapi.NoteFilter) error {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = r.pageSize
	}

	r.mu.Lock()
	if r.isRequesting {
		r.mu.Unlock()
		r.logger.Debug("filter request dropped, fetch already in flight", "page", filter.Page)
		return nil
	}
	r.isRequesting = true
	r.mu.Unlock()

	r.status.SetLoading()

	result, err := r.fetcher.FilterNotes(ctx, filter)

	r.mu.Lock()
	r.isRequesting = false
	if err != nil {
		r.mu.Unlock()
		r.status.SetError(api.ErrorMessage(err))
		return fmt.Errorf("failed to filter notes: %w", err)
	}

	res := r.mergeLocked(result, filter.Page)
	r.mu.Unlock()

	r.status.SetSuccess(res)
	return nil
}

// Reset очищает коллекцию и запрашивает первую страницу заново
// Единственный способ убрать элементы, которых больше нет на сервере.
func (r *Reconciler) Reset(ctx context.Context) error {
	r.mu.Lock()
	if r.isRequesting {
		r.mu.Unlock()
		r.logger.Debug("reset dropped, fetch already in flight")
		return nil
	}
	r.collection = nil
	r.hasNext = false
	r.page = 0
	r.loaded = false
	r.mu.Unlock()

	r.status.Reset()

	return r.RequestPage(ctx, 1)
}

// ApplyWrite вносит результат создания или сохранения заметки
// Известный id заменяется на месте, новый встаёт в начало коллекции.
func (r *Reconciler) ApplyWrite(note pkgapi.Note) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOfLocked(note.ID); i >= 0 {
		r.collection[i] = note
		return
	}
	r.collection = append([]pkgapi.Note{note}, r.collection...)
}

// ApplyDelete убирает заметку из коллекции после удаления на сервере
// Идемпотентен: отсутствующий id — no-op.
func (r *Reconciler) ApplyDelete(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOfLocked(id); i >= 0 {
		r.collection = append(r.collection[:i], r.collection[i+1:]...)
	}
}

// Get возвращает заметку из коллекции по id
func (r *Reconciler) Get(id int) (pkgapi.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOfLocked(id); i >= 0 {
		return r.collection[i], true
	}
	return pkgapi.Note{}, false
}

// Search возвращает элементы коллекции, содержащие query в заголовке
// или тексте (без учёта регистра). Ищет только по уже загруженному.
func (r *Reconciler) Search(query string) []pkgapi.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]pkgapi.Note, len(r.collection))
		copy(out, r.collection)
		return out
	}

	var out []pkgapi.Note
	for _, n := range r.collection {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Description), q) {
			out = append(out, n)
		}
	}
	return out
}

// mergeLocked сливает страницу в коллекцию; вызывается под r.mu
func (r *Reconciler) mergeLocked(page *pkgapi.NotePage, pageNum int) PageResult {
	res := PageResult{
		Page:    pageNum,
		Total:   page.Count,
		HasNext: page.Next != nil,
	}

	if pageNum == 1 {
		// Первая страница обходится с конца: каждый новый элемент
		// вставляется в начало, и порядок страницы сохраняется.
		for i := len(page.Results) - 1; i >= 0; i-- {
			n := page.Results[i]
			if j := r.indexOfLocked(n.ID); j >= 0 {
				r.collection[j] = n
				res.Updated++
				continue
			}
			r.collection = append([]pkgapi.Note{n}, r.collection...)
			res.Added++
		}
	} else {
		for _, n := range page.Results {
			if j := r.indexOfLocked(n.ID); j >= 0 {
				r.collection[j] = n
				res.Updated++
				continue
			}
			r.collection = append(r.collection, n)
			res.Added++
		}
	}

	r.hasNext = res.HasNext
	r.page = pageNum
	r.loaded = true

	return res
}

func (r *Reconciler) indexOfLocked(id int) int {
	for i, n := range r.collection {
		if n.ID == id {
			return i
		}
	}
	return -1
}
