package upload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ConfirmUpload asks whether to go ahead with the upload, defaulting to no.
// A read failure counts as a decline.
func ConfirmUpload(in io.Reader) bool {
	fmt.Print("Upload this recap? [y/N] ")
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// PromptAuthorEmail asks for the author email when neither a flag nor the
// ambient VCS configuration provided one.
func PromptAuthorEmail(in io.Reader) (string, error) {
	fmt.Print("Author email to recap: ")
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read author email: %w", err)
	}
	email := strings.TrimSpace(response)
	if email == "" {
		return "", errors.New("author email cannot be empty")
	}
	return email, nil
}

// PromptUploadKey asks for the upload key without echoing it to the terminal.
func PromptUploadKey() (string, error) {
	fmt.Print("Upload key: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read upload key: %w", err)
	}
	key := strings.TrimSpace(string(raw))
	if key == "" {
		return "", errors.New("upload key cannot be empty")
	}
	return key, nil
}
