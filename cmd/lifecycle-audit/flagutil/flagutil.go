package flagutil

import (
	"errors"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/cache"
)

// Datasources is the name of the persistent flag of the datasources directory.
const Datasources = "datasources"

// DatasourcesDir returns the cleaned value of the --datasources flag.
func DatasourcesDir(flags *pflag.FlagSet) (string, error) {
	dir, err := flags.GetString(Datasources)
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", errors.New("--" + Datasources + " must not be empty")
	}
	return filepath.Clean(dir), nil
}

// NewCache returns the cache of the --datasources directory.
func NewCache(flags *pflag.FlagSet, o ...cache.Opt) (*cache.Cache, error) {
	dir, err := DatasourcesDir(flags)
	if err != nil {
		return nil, err
	}
	return cache.New(append([]cache.Opt{cache.WithDir(dir)}, o...)...)
}
