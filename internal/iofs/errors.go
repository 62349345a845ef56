package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/pkg/errcode"
)

// CreateDirError is returned when a config, cache, data or log directory
// of gnfish cannot be created.
func CreateDirError(dir string, err error) error {
	msg := "Cannot create gnfish directory <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: mkdir %s: %w", fn, dir, err),
	}
}

// WriteConfigError is returned when the default config.yaml cannot be
// written.
func WriteConfigError(path string, err error) error {
	msg := "Cannot write default configuration to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: write config %s: %w", fn, path, err),
	}
}

// ReadConfigError is returned when config.yaml cannot be read or decoded.
func ReadConfigError(path string, err error) error {
	msg := "Cannot load configuration from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: read config %s: %w", fn, path, err),
	}
}

// ReadNamesError is returned when the file with common names cannot be
// read.
func ReadNamesError(path string, err error) error {
	msg := "Cannot read common names from <em>%s</em>"
	if path == "-" {
		path = "stdin"
	}
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: read names %s: %w", fn, path, err),
	}
}
