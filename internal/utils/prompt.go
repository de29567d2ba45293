package utils

import (
	"fmt"
	"os"
	"strings"
)

// LoadPromptFromFile reads a prompt or template file. An empty path yields an
// empty string so optional prompts can be passed straight through.
func LoadPromptFromFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load prompt %s: %w", path, err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
