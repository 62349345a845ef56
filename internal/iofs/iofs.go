// Package iofs prepares the file system for gnfish and reads name lists.
package iofs

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/gnames/gnfish/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates configuration, cache, data and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.HTTPCacheDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

// EnsureConfigFile writes the default config file unless it exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return WriteConfigError(configPath, err)
	}
	return nil
}

// ReadNames reads one name per line from a file, or from stdin if path is
// "-". Empty lines and lines starting with "#" are skipped.
func ReadNames(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, ReadNamesError(path, err)
		}
		defer f.Close()
		r = f
	}

	var res []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res = append(res, line)
	}
	if err := sc.Err(); err != nil {
		return nil, ReadNamesError(path, err)
	}
	return res, nil
}
