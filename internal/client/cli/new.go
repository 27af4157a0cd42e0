package cli

import (
	"context"
	"fmt"

	"github.com/simplenote/simplenote-cli/internal/validation"
	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

func (c *Cli) runNew(ctx context.Context) error {
	if !c.authService.IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'simplenote login' first")
	}

	c.io.Println("=== New Note ===")
	c.io.Println()

	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}

	description, err := c.io.ReadMultiline("Text")
	if err != nil {
		return fmt.Errorf("failed to read text: %w", err)
	}

	if err := validation.ValidateNoteFields(title, description); err != nil {
		return err
	}

	note, err := c.apiClient.CreateNote(ctx, pkgapi.NoteRequest{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	// Новая заметка сразу попадает в локальную коллекцию
	c.reconciler.ApplyWrite(*note)

	c.io.Println()
	c.io.Printf("✓ Note created (id %d).\n", note.ID)

	return nil
}
