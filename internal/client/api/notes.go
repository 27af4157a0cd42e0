package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

// ListNotes возвращает одну страницу списка заметок
// page и pageSize со значением 0 не передаются (сервер использует дефолты).
func (c *Client) ListNotes(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}

	var resp pkgapi.NotePage
	err := c.doRequest(ctx, "GET", "/api/notes/", query, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list notes request failed: %w", err)
	}
	return &resp, nil
}

// FilterNotes возвращает страницу списка, отфильтрованного на сервере
func (c *Client) FilterNotes(ctx context.Context, filter pkgapi.NoteFilter) (*pkgapi.NotePage, error) {
	query := url.Values{}
	if filter.Title != "" {
		query.Set("title", filter.Title)
	}
	if filter.Description != "" {
		query.Set("description", filter.Description)
	}
	if filter.UpdatedAfter != "" {
		query.Set("updated__gte", filter.UpdatedAfter)
	}
	if filter.UpdatedBefore != "" {
		query.Set("updated__lte", filter.UpdatedBefore)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(filter.PageSize))
	}

	var resp pkgapi.NotePage
	err := c.doRequest(ctx, "GET", "/api/notes/filter", query, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("filter notes request failed: %w", err)
	}
	return &resp, nil
}

// CreateNote создает новую заметку
func (c *Client) CreateNote(ctx context.Context, req pkgapi.NoteRequest) (*pkgapi.Note, error) {
	var resp pkgapi.Note
	err := c.doRequest(ctx, "POST", "/api/notes/", nil, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create note request failed: %w", err)
	}
	return &resp, nil
}

// GetNote возвращает одну заметку по id
func (c *Client) GetNote(ctx context.Context, id int) (*pkgapi.Note, error) {
	var resp pkgapi.Note
	err := c.doRequest(ctx, "GET", fmt.Sprintf("/api/notes/%d/", id), nil, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get note request failed: %w", err)
	}
	return &resp, nil
}

// UpdateNote полностью заменяет title и description заметки (PUT)
func (c *Client) UpdateNote(ctx context.Context, id int, req pkgapi.NoteRequest) (*pkgapi.Note, error) {
	var resp pkgapi.Note
	err := c.doRequest(ctx, "PUT", fmt.Sprintf("/api/notes/%d/", id), nil, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update note request failed: %w", err)
	}
	return &resp, nil
}

// PatchNote частично обновляет заметку (PATCH)
func (c *Client) PatchNote(ctx context.Context, id int, req pkgapi.PatchedNoteRequest) (*pkgapi.Note, error) {
	var resp pkgapi.Note
	err := c.doRequest(ctx, "PATCH", fmt.Sprintf("/api/notes/%d/", id), nil, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("patch note request failed: %w", err)
	}
	return &resp, nil
}

// DeleteNote удаляет заметку, сервер отвечает 204 без тела
func (c *Client) DeleteNote(ctx context.Context, id int) error {
	err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/api/notes/%d/", id), nil, nil, nil)
	if err != nil {
		return fmt.Errorf("delete note request failed: %w", err)
	}
	return nil
}

// BulkCreateNotes создает несколько заметок одним запросом
func (c *Client) BulkCreateNotes(ctx context.Context, reqs []pkgapi.NoteRequest) ([]pkgapi.Note, error) {
	var resp []pkgapi.Note
	err := c.doRequest(ctx, "POST", "/api/notes/bulk", nil, reqs, &resp)
	if err != nil {
		return nil, fmt.Errorf("bulk create request failed: %w", err)
	}
	return resp, nil
}
