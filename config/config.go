package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads .env files into the environment. A missing file is fine;
// anything else (a malformed file) is returned.
func Load(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}

	return b, nil
}

// GetString returns the variable or def when unset.
func GetString(v, def string) string {
	s, err := GetEnvVariable(v)
	if err != nil {
		return def
	}
	return s
}

// GetInt returns def when v is unset and an error when it is not an integer.
func GetInt(v string, def int) (int, error) {
	s, err := GetEnvVariable(v)
	if err != nil {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def, fmt.Errorf("%s: %w", v, err)
	}
	return n, nil
}

// GetDuration parses values like "100ms".
func GetDuration(v string, def time.Duration) (time.Duration, error) {
	s, err := GetEnvVariable(v)
	if err != nil {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def, fmt.Errorf("%s: %w", v, err)
	}
	return d, nil
}
