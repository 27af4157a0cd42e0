package cli

import (
	"context"
	"flag"
	"fmt"

	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

func (c *Cli) runFilter(ctx context.Context, args []string) error {
	if !c.authService.IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'simplenote login' first")
	}

	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	title := fs.String("title", "", "Substring to match in title")
	description := fs.String("description", "", "Substring to match in description")
	updatedAfter := fs.String("updated-after", "", "ISO datetime lower bound on update time")
	updatedBefore := fs.String("updated-before", "", "ISO datetime upper bound on update time")
	page := fs.Int("page", 1, "Page number")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid filter arguments: %w", err)
	}

	filter := pkgapi.NoteFilter{
		Title:         *title,
		Description:   *description,
		UpdatedAfter:  *updatedAfter,
		UpdatedBefore: *updatedBefore,
		Page:          *page,
	}

	c.io.Println("=== Filtered Notes ===")
	c.io.Println()

	if err := c.reconciler.Filter(ctx, filter); err != nil {
		return err
	}

	c.printCollection()

	if c.reconciler.HasNext() {
		c.io.Printf("More results available: rerun with --page %d\n", *page+1)
	}

	return nil
}
