package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/simplenote/simplenote-cli/internal/client/api"
	"github.com/simplenote/simplenote-cli/internal/client/auth"
	"github.com/simplenote/simplenote-cli/internal/client/iocli"
	"github.com/simplenote/simplenote-cli/internal/client/notes"
)

// PasswordEnvVar — переменная окружения для неинтерактивного входа
const PasswordEnvVar = "SIMPLENOTE_PASSWORD"

type Cli struct {
	io          iocli.IO
	apiClient   api.ClientAPI
	authService *auth.Service
	reconciler  *notes.Reconciler
	logger      *slog.Logger
}

func New(io iocli.IO, apiClient api.ClientAPI, authService *auth.Service, reconciler *notes.Reconciler, logger *slog.Logger) *Cli {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cli{
		io:          io,
		apiClient:   apiClient,
		authService: authService,
		reconciler:  reconciler,
		logger:      logger,
	}
}

// readLoginPassword получает пароль для входа с приоритетом:
// 1. Переменная окружения SIMPLENOTE_PASSWORD (для автоматизации)
// 2. Интерактивный запрос
func (c *Cli) readLoginPassword() (string, error) {
	if envPassword := os.Getenv(PasswordEnvVar); envPassword != "" {
		return envPassword, nil
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return password, nil
}

func PrintUsage() {
	fmt.Println("SimpleNote Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  simplenote [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version          Show version information")
	fmt.Println("  --server URL       Server URL (default: http://localhost:8000)")
	fmt.Println("  --db PATH          Path to local session database (default: simplenote-client.db)")
	fmt.Println("  --page-size N      Notes per page (default: 20)")
	fmt.Println("  --debug            Enable debug logging")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                Register new user")
	fmt.Println("  login                   Login to server")
	fmt.Println("  logout                  Logout and forget the saved session")
	fmt.Println("  status                  Show authentication status")
	fmt.Println("  whoami                  Show current user profile")
	fmt.Println("  change-password         Change account password")
	fmt.Println("  list                    List notes (paged, interactive)")
	fmt.Println("  search <query>          Search loaded notes by title/text")
	fmt.Println("  filter [OPTIONS]        Server-side filtered listing")
	fmt.Println("  new                     Create a note")
	fmt.Println("  show <id>               Show full note details")
	fmt.Println("  edit <id>               Edit a note interactively (autosaves)")
	fmt.Println("  delete <id>             Delete a note")
	fmt.Println("  bulk-add <file.json>    Create notes from a JSON array")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  simplenote register")
	fmt.Println("  simplenote login")
	fmt.Println("  simplenote list")
	fmt.Println()
	fmt.Println("  # Scripted login (password from environment)")
	fmt.Println("  export SIMPLENOTE_PASSWORD='mySecretPassword123'")
	fmt.Println("  simplenote login")
	fmt.Println()
	fmt.Println("  simplenote filter --title shopping --updated-after 2025-01-01T00:00:00Z")
	fmt.Println("  simplenote edit 42")
	fmt.Println("  simplenote --server https://notes.example.com login")
}
