package cli

import (
	"fmt"
	"strconv"

	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

const summaryPreviewLen = 60

// parseNoteID разбирает позиционный аргумент <id>
func parseNoteID(args []string, usage string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing note id. Usage: %s", usage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id: %s", args[0])
	}
	return id, nil
}

// printNoteSummary печатает однострочное summary с превью текста
func (c *Cli) printNoteSummary(note pkgapi.Note) {
	preview := note.Description
	if len(preview) > summaryPreviewLen {
		preview = preview[:summaryPreviewLen] + "..."
	}
	c.io.Printf("%4d  %s\n", note.ID, note.Title)
	if preview != "" {
		c.io.Printf("      %s\n", preview)
	}
	c.io.Printf("      updated %s\n", note.UpdatedAt)
	c.io.Println()
}

// printNoteDetails печатает заметку целиком
func (c *Cli) printNoteDetails(note pkgapi.Note) {
	c.io.Printf("ID:      %d\n", note.ID)
	c.io.Printf("Title:   %s\n", note.Title)
	c.io.Printf("Created: %s\n", note.CreatedAt)
	c.io.Printf("Updated: %s\n", note.UpdatedAt)
	if note.CreatorUsername != "" {
		c.io.Printf("Author:  %s\n", note.CreatorUsername)
	}
	c.io.Println()
	c.io.Println(note.Description)
}
