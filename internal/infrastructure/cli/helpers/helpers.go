package helpers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	configapp "github.com/doeshing/actionguard/internal/application/config"
	"github.com/doeshing/actionguard/internal/domain"
	configinfra "github.com/doeshing/actionguard/internal/infrastructure/config"
)

// ====================================================================================
// Config Helpers
// ====================================================================================

// SaveConfigWithValidation validates and saves configuration, keeping a .bak
// copy of any file it replaces.
func SaveConfigWithValidation(loader *configinfra.FileLoader, cfg domain.Config) error {
	if loader == nil {
		return fmt.Errorf("config loader unavailable")
	}

	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := createBackupIfExists(loader.Path()); err != nil {
		return err
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	return nil
}

// createBackupIfExists copies path to path.bak when it exists
func createBackupIfExists(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read configuration for backup: %w", err)
	}
	if err := os.WriteFile(path+".bak", data, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("failed to create configuration backup: %w", err)
	}
	return nil
}

// ====================================================================================
// Prompt Helpers
// ====================================================================================

// PromptForConfirmation asks a yes/no question, defaulting to no
func PromptForConfirmation(out io.Writer, reader *bufio.Reader, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	response, _ := reader.ReadString('\n')
	return isAffirmativeResponse(response)
}

// isAffirmativeResponse checks if the response is affirmative
func isAffirmativeResponse(response string) bool {
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
