package cli

import (
	"context"
	"time"

	"github.com/simplenote/simplenote-cli/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	if !c.authService.IsAuthenticated() {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'simplenote login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")

	// Срок действия сессии определяет refresh token: access выменивается
	// автоматически, пока refresh жив.
	pair := c.authService.Tokens()
	if exp, err := auth.TokenExpiry(pair.Refresh); err == nil {
		remaining := time.Until(exp)
		c.io.Printf("Session expires: %s\n", exp.Format(time.RFC3339))
		if remaining > 0 {
			c.io.Printf("Time remaining:  %s\n", remaining.Round(time.Second))
		}
	}

	if pair.Access == "" {
		c.io.Println()
		c.io.Println("Access token will be obtained on the next request.")
	} else if exp, err := auth.TokenExpiry(pair.Access); err == nil && time.Now().After(exp) {
		c.io.Println()
		c.io.Println("Access token expired; it will be refreshed on the next request.")
	}

	return nil
}
