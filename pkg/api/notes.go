package api

// Note представляет заметку, как её отдаёт сервер
// ID назначается сервером и служит ключом идентичности при любом слиянии.
type Note struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	CreatedAt       string `json:"created_at"` // ISO datetime, клиент не интерпретирует
	UpdatedAt       string `json:"updated_at"` // ISO datetime
	CreatorName     string `json:"creator_name"`
	CreatorUsername string `json:"creator_username"`
}

// NoteRequest представляет тело запроса создания/полного обновления заметки
type NoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PatchedNoteRequest представляет тело частичного обновления заметки
// Поля указатели: отсутствующее поле не отправляется на сервер.
type PatchedNoteRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// NotePage представляет одну страницу пагинированного списка заметок
type NotePage struct {
	Count    int     `json:"count"`    // общее количество заметок на сервере
	Next     *string `json:"next"`     // URL следующей страницы, nil если её нет
	Previous *string `json:"previous"` // URL предыдущей страницы
	Results  []Note  `json:"results"`
}

// NoteFilter задаёт параметры запроса GET /api/notes/filter
type NoteFilter struct {
	Title         string // подстрока в title
	Description   string // подстрока в description
	UpdatedAfter  string // ISO datetime, updated__gte
	UpdatedBefore string // ISO datetime, updated__lte
	Page          int    // 0 — параметр не передаётся
	PageSize      int    // 0 — параметр не передаётся
}
