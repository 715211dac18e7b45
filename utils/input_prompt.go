package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/organai/organai/constants/lipgloss"
)

// ConfirmPrompt asks the user to accept or reject an action, defaulting to no.
func ConfirmPrompt(message string, reader *bufio.Reader) (bool, error) {
	fmt.Print(lipgloss.BlueSky.Render(fmt.Sprintf("%s (y/N): ", message)))

	answer, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("error reading input: %w", err)
	}

	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
