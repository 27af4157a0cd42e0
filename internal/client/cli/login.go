package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	identifier, err := c.io.ReadInput("Username or email: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.readLoginPassword()
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	result, err := c.authService.Login(ctx, identifier, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", result.User.Username)
	if result.User.Email != "" {
		c.io.Printf("Email:    %s\n", result.User.Email)
	}
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}
