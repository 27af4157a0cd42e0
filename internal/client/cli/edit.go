package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/simplenote/simplenote-cli/internal/client/notes"
	"github.com/simplenote/simplenote-cli/internal/client/state"
	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	id, err := parseNoteID(args, "simplenote edit <id>")
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

	session := notes.NewEditSession(ctx, c.apiClient, *note, c.logger,
		notes.WithOnSaved(c.reconciler.ApplyWrite))
	defer session.Close()

	// Статусы автосохранения показываются между промптами
	unsubscribe := session.State().Subscribe(func(s state.Status[pkgapi.Note]) {
		switch s.Phase {
		case state.Success:
			c.io.Println("  (saved)")
		case state.Failed:
			c.io.Printf("  (save failed: %s)\n", s.Message)
		}
	})
	defer unsubscribe()

	c.io.Printf("Editing note %d: %s\n", note.ID, note.Title)
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  t <text>   set title")
	c.io.Println("  a <text>   append a line to the text")
	c.io.Println("  d          rewrite the text from scratch")
	c.io.Println("  p          print the note")
	c.io.Println("  q          save and quit")
	c.io.Println()

	for {
		line, err := c.io.ReadInput("> ")
		if err != nil {
			// EOF трактуется как выход: несохранённое дожимается ниже
			break
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "t":
			session.SetTitle(rest)
		case "a":
			text := session.Description()
			if text == "" {
				session.SetDescription(rest)
			} else {
				session.SetDescription(text + "\n" + rest)
			}
		case "d":
			text, err := c.io.ReadMultiline("Text")
			if err != nil {
				return fmt.Errorf("failed to read text: %w", err)
			}
			session.SetDescription(text)
		case "p":
			c.io.Printf("Title: %s\n", session.Title())
			c.io.Println(session.Description())
		case "q":
			goto done
		case "":
			// пустая строка игнорируется
		default:
			c.io.Printf("Unknown command: %s\n", cmd)
		}
	}

done:
	// Выход не должен терять хвост: дожимаем отложенное сохранение
	if err := session.Flush(ctx); err != nil {
		return err
	}

	c.io.Println("✓ Done.")

	return nil
}
