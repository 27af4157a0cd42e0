package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду; неизвестная команда — ошибка с подсказкой
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "whoami":
		return c.runWhoami(ctx)
	case "change-password":
		return c.runChangePassword(ctx)
	case "list":
		return c.runList(ctx)
	case "search":
		return c.runSearch(ctx, args)
	case "filter":
		return c.runFilter(ctx, args)
	case "new":
		return c.runNew(ctx)
	case "show":
		return c.runShow(ctx, args)
	case "edit":
		return c.runEdit(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "bulk-add":
		return c.runBulkAdd(ctx, args)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}
