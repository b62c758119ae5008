// Package environment loads configuration from environment variables, with
// optional .env files and namespaced keys.
package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory when one exists.
// A missing file is not an error; a malformed one is.
func LoadEnv() error {
	return LoadPath("")
}

// LoadPath loads variables from the file at p, or from .env when p is empty.
// Variables already present in the process environment win.
func LoadPath(p string) error {
	var err error
	if p != "" {
		err = godotenv.Load(p)
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// GetEnvOrDefault retrieves an environment variable value, returning fallback
// when the variable is not set.
func GetEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetNamespaceEnvKey joins namespace and key with an underscore.
//
//	GetNamespaceEnvKey("BOOKSHARE", "DATABASE_URL") // "BOOKSHARE_DATABASE_URL"
//	GetNamespaceEnvKey("", "DATABASE_URL")          // "DATABASE_URL"
func GetNamespaceEnvKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", namespace, key)
}

// GetNamespaceEnvOrDefault looks up a namespaced key, returning fallback when unset.
func GetNamespaceEnvOrDefault(namespace, key, fallback string) string {
	return GetEnvOrDefault(GetNamespaceEnvKey(namespace, key), fallback)
}
