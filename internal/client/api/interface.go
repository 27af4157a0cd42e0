package api

import (
	"context"

	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет полный интерфейс API клиента
// Сервисы зависят от него, а не от *Client, для подмены в тестах.
type ClientAPI interface {
	// Auth endpoints

	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	ObtainToken(ctx context.Context, req pkgapi.TokenObtainRequest) (*pkgapi.TokenObtainPair, error)
	UserInfo(ctx context.Context) (*pkgapi.UserInfo, error)
	ChangePassword(ctx context.Context, req pkgapi.ChangePasswordRequest) (*pkgapi.Message, error)

	// Notes endpoints

	ListNotes(ctx context.Context, page, pageSize int) (*pkgapi.NotePage, error)
	FilterNotes(ctx context.Context, filter pkgapi.NoteFilter) (*pkgapi.NotePage, error)
	CreateNote(ctx context.Context, req pkgapi.NoteRequest) (*pkgapi.Note, error)
	GetNote(ctx context.Context, id int) (*pkgapi.Note, error)
	UpdateNote(ctx context.Context, id int, req pkgapi.NoteRequest) (*pkgapi.Note, error)
	PatchNote(ctx context.Context, id int, req pkgapi.PatchedNoteRequest) (*pkgapi.Note, error)
	DeleteNote(ctx context.Context, id int) error
	BulkCreateNotes(ctx context.Context, reqs []pkgapi.NoteRequest) ([]pkgapi.Note, error)
}

// Compile-time check that Client implements ClientAPI
var _ ClientAPI = (*Client)(nil)
