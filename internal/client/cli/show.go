package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runShow(ctx context.Context, args []string) error {
	id, err := parseNoteID(args, "simplenote show <id>")
	if err != nil {
		return err
	}
	if !c.authService.IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'simplenote login' first")
	}

	note, err := c.apiClient.GetNote(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch note %d: %w", id, err)
	}

	// Свежая серверная версия обновляет и локальную коллекцию
	c.reconciler.ApplyWrite(*note)

	c.printNoteDetails(*note)

	return nil
}
