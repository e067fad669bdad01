package immich

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// AuthFlow prompts for a server URL and API key and verifies them against
// the server. Immich uses static API keys, so unlike a token exchange there
// is nothing to poll; a successful ping is the whole handshake.
type AuthFlow struct {
	logger *slog.Logger
}

// NewAuthFlow creates an API key authentication flow
func NewAuthFlow(logger *slog.Logger) *AuthFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthFlow{logger: logger}
}

// Run executes the prompt-and-verify flow and returns the validated
// server URL and API key.
func (f *AuthFlow) Run(ctx context.Context, serverURL string) (string, string, error) {
	fmt.Println()
	fmt.Println("Immich Authentication")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━")

	if serverURL == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Enter your Immich server URL (e.g., http://192.168.1.100:2283): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("failed to read server URL: %w", err)
		}
		serverURL = strings.TrimSpace(line)
	}
	serverURL = strings.TrimRight(serverURL, "/")

	// Hidden input; API keys grant full account access
	fmt.Print("API key: ")
	keyBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", "", fmt.Errorf("failed to read API key: %w", err)
	}
	apiKey := strings.TrimSpace(string(keyBytes))
	fmt.Println()

	fmt.Println()
	fmt.Println("Verifying...")

	client := NewClient(serverURL, apiKey, f.logger)
	if err := client.Ping(ctx); err != nil {
		return "", "", err
	}

	fmt.Println("Authentication successful!")
	return serverURL, apiKey, nil
}
