package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runList(ctx context.Context) error {
	if !c.authService.IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'simplenote login' first")
	}

	c.io.Println("=== Notes ===")
	c.io.Println()

	if err := c.reconciler.Refresh(ctx); err != nil {
		return err
	}

	c.printCollection()

	// Интерактивная догрузка: каждая следующая страница дописывается
	// в конец уже показанной коллекции.
	for c.reconciler.HasNext() {
		more, err := c.io.Confirm("Load more?")
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		if !more {
			break
		}

		before := c.reconciler.Len()
		if err := c.reconciler.NextPage(ctx); err != nil {
			return err
		}

		c.io.Println()
		c.printCollectionFrom(before)
	}

	return nil
}

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing query. Usage: simplenote search <query>")
	}
	if !c.authService.IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'simplenote login' first")
	}

	query := args[0]

	// Поиск локальный, но по свежим данным: сначала первая страница
	if !c.reconciler.Loaded() {
		if err := c.reconciler.Refresh(ctx); err != nil {
			return err
		}
	}

	matches := c.reconciler.Search(query)
	if len(matches) == 0 {
		c.io.Printf("No notes matching %q.\n", query)
		return nil
	}

	c.io.Printf("Found %d note(s) matching %q:\n", len(matches), query)
	c.io.Println()
	for _, note := range matches {
		c.printNoteSummary(note)
	}

	return nil
}

// printCollection печатает всю загруженную коллекцию
func (c *Cli) printCollection() {
	c.printCollectionFrom(0)
}

// printCollectionFrom печатает коллекцию начиная с позиции from
func (c *Cli) printCollectionFrom(from int) {
	collection := c.reconciler.Notes()

	if len(collection) == 0 {
		c.io.Println("No notes found.")
		c.io.Println()
		c.io.Println("Use 'simplenote new' to create your first note.")
		return
	}

	for i := from; i < len(collection); i++ {
		c.printNoteSummary(collection[i])
	}
}
