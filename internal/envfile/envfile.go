// Package envfile loads KEY=VALUE environment files consumed by deployment
// commands.
package envfile

import (
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/go-playground/errors/v5"
	"github.com/joho/godotenv"
)

// Load reads the environment file at path into a map. Later lines override
// earlier duplicates. A missing file is a precondition failure for every
// caller, so it gets its own message.
func Load(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf("environment file %q not found", path)
		}

		return nil, errors.Wrapf(err, "os.Stat(): %s", path)
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "godotenv.Read(): %s", path)
	}

	return vars, nil
}

// Environ merges vars over base, where base holds KEY=VALUE entries as
// returned by os.Environ. Entries from vars win on conflict. The result is
// suitable for exec.Cmd.Env, keeping the parent process environment untouched.
func Environ(base []string, vars map[string]string) []string {
	merged := make([]string, 0, len(base)+len(vars))
	for _, kv := range base {
		key, _, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if _, overridden := vars[key]; overridden {
			continue
		}
		merged = append(merged, kv)
	}

	for _, key := range slices.Sorted(maps.Keys(vars)) {
		merged = append(merged, key+"="+vars[key])
	}

	return merged
}

// Get returns the value for key from vars, falling back to the process
// environment when the file did not set it.
func Get(vars map[string]string, key string) string {
	if v, ok := vars[key]; ok {
		return v
	}

	return os.Getenv(key)
}
