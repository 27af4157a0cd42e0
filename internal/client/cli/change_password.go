package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runChangePassword(ctx context.Context) error {
	if !c.authService.IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'simplenote login' first")
	}

	c.io.Println("=== Change Password ===")
	c.io.Println()

	oldPassword, err := c.io.ReadPassword("Current password: ")
	if err != nil {
		return fmt.Errorf("failed to read current password: %w", err)
	}

	newPassword, err := c.io.ReadPassword("New password: ")
	if err != nil {
		return fmt.Errorf("failed to read new password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm new password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if newPassword != confirm {
		return fmt.Errorf("passwords do not match")
	}

	detail, err := c.authService.ChangePassword(ctx, oldPassword, newPassword)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("✓ %s\n", detail)

	return nil
}
