package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	id, err := parseNoteID(args, "simplenote delete <id>")
	if err != nil {
		return err
	}
	if !c.authService.IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'simplenote login' first")
	}

	ok, err := c.io.Confirm(fmt.Sprintf("Delete note %d?", id))
	if err != nil {
		return fmt.Errorf("failed to read answer: %w", err)
	}
	if !ok {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.apiClient.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}

	c.reconciler.ApplyDelete(id)

	c.io.Printf("✓ Note %d deleted.\n", id)

	return nil
}
