package confkit

import (
	"fmt"
	"os"
	"strings"
)

// CredentialError reports a provider credential that is missing at startup.
// Nothing downstream can work without it, so callers treat it as fatal.
type CredentialError struct {
	Provider string
	EnvVar   string
}

func (e *CredentialError) Error() string {
	if e.EnvVar == "" {
		return fmt.Sprintf("%s: api key is not configured", e.Provider)
	}
	return fmt.Sprintf("%s: api key not found, set %s", e.Provider, e.EnvVar)
}

// Credential returns the configured value when non-blank, falling back to the
// environment variable envVar. A blank result yields a *CredentialError.
func Credential(provider, configured, envVar string) (string, error) {
	if v := strings.TrimSpace(os.ExpandEnv(configured)); v != "" {
		return v, nil
	}
	if envVar != "" {
		if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
			return v, nil
		}
	}
	return "", &CredentialError{Provider: provider, EnvVar: envVar}
}
