package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/simplenote/simplenote-cli/internal/validation"
	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

func (c *Cli) runBulkAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing file. Usage: simplenote bulk-add <file.json>")
	}
	if !c.authService.IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'simplenote login' first")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var reqs []pkgapi.NoteRequest
	if err := json.Unmarshal(content, &reqs); err != nil {
		return fmt.Errorf("failed to parse file: expected a JSON array of {title, description}: %w", err)
	}
	if len(reqs) == 0 {
		return fmt.Errorf("file contains no notes")
	}

	// Валидация до сетевого вызова: сервер отверг бы весь батч
	for i, req := range reqs {
		if err := validation.ValidateNoteFields(req.Title, req.Description); err != nil {
			return fmt.Errorf("note %d: %w", i+1, err)
		}
	}

	created, err := c.apiClient.BulkCreateNotes(ctx, reqs)
	if err != nil {
		return fmt.Errorf("failed to create notes: %w", err)
	}

	for _, note := range created {
		c.reconciler.ApplyWrite(note)
	}

	c.io.Printf("✓ Created %d note(s).\n", len(created))

	return nil
}
