package gitcore

import (
	"bufio"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultBranch is the name of the branch created implicitly on init and
// used when HEAD is unborn.
const DefaultBranch = "main"

// Config is the simple key/value store spec.md section 1 scopes
// configuration down to: enough to stamp author identity on a commit, and
// nothing more (no remotes, no per-command settings).
type Config struct {
	values map[string]string
}

// ReadConfig parses ".ugit/config" (if present) into a Config. A missing
// file yields an empty Config, not an error.
func ReadConfig(gitDir string) (*Config, error) {
	path := filepath.Join(gitDir, "config")
	//nolint:gosec // G304: path is derived from the repository's own gitDir
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{values: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("ReadConfig: %w", err)
	}
	defer f.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ReadConfig: %w", err)
	}

	return &Config{values: values}, nil
}

// Get returns the value for key, or "" if unset.
func (c *Config) Get(key string) string { return c.values[key] }

// Set assigns key to value in memory; callers must call Write to persist.
func (c *Config) Set(key, value string) {
	if c.values == nil {
		c.values = make(map[string]string)
	}
	c.values[key] = value
}

// Write persists the config to ".ugit/config", one "key = value" line per
// entry, sorted for deterministic output.
func (c *Config) Write(gitDir string) error {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s = %s\n", k, c.values[k])
	}
	return atomicWriteFile(filepath.Join(gitDir, "config"), []byte(sb.String()))
}

// AuthorString returns the "Name <email>" signature commit uses when no
// --author flag overrides it. Falls back to the OS user name (or "unknown")
// when config has no user.name; user.email is still appended if set. The same
// graceful degradation git itself applies before refusing to commit.
func (c *Config) AuthorString() string {
	sig := Signature{
		Name:  c.Get("user.name"),
		Email: c.Get("user.email"),
	}
	if sig.Name == "" {
		if u, err := user.Current(); err == nil && u.Username != "" {
			sig.Name = u.Username
		} else {
			sig.Name = "unknown"
		}
	}
	return sig.String()
}
