package util

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var (
	stdin  *os.File
	reader *bufio.Reader
)

// readAnswer reads one line from stdin through a reader shared by all
// prompts.
func readAnswer() string {
	if reader == nil || stdin != os.Stdin {
		stdin = os.Stdin
		reader = bufio.NewReader(stdin)
	}
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		// stdin closed: take the default
		return ""
	}
	return strings.TrimSpace(response)
}

func PromptString(prompt string, def string) string {
	fmt.Printf("%s (%s): ", prompt, def)

	response := readAnswer()
	if response == "" {
		return def
	}
	return response
}

func PromptYN(prompt string, def bool) bool {
	if def {
		fmt.Printf("%s (Y/n): ", prompt)
	} else {
		fmt.Printf("%s (y/N): ", prompt)
	}

	response := readAnswer()
	if response == "" {
		return def
	}
	return strings.ToLower(response) == "y"
}
