package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runWhoami(ctx context.Context) error {
	if !c.authService.IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'simplenote login' first")
	}

	user, err := c.authService.UserInfo(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("Username: %s\n", user.Username)
	c.io.Printf("Email:    %s\n", user.Email)

	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name != "" {
		c.io.Printf("Name:     %s\n", name)
	}

	return nil
}
