package cli

import (
	"context"
)

func (c *Cli) runLogout(ctx context.Context) error {
	// Logout идемпотентен: без сессии просто подтверждаем результат
	c.authService.Logout(ctx)

	c.io.Println("✓ Logged out.")
	c.io.Println("The saved session has been removed from this machine.")

	return nil
}
