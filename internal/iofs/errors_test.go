package iofs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		text string
		vars []any
	}{
		{"dir", CreateDirError("/home/fish/.cache/gnfish", cause),
			errcode.CreateDirError, "Cannot create gnfish directory",
			[]any{"/home/fish/.cache/gnfish"}},
		{"config write", WriteConfigError("config.yaml", cause),
			errcode.CopyFileError, "Cannot write default configuration",
			[]any{"config.yaml"}},
		{"config read", ReadConfigError("config.yaml", cause),
			errcode.ReadFileError, "Cannot load configuration",
			[]any{"config.yaml"}},
		{"names", ReadNamesError("names.txt", cause),
			errcode.ReadFileError, "Cannot read common names",
			[]any{"names.txt"}},
		{"stdin", ReadNamesError("-", cause),
			errcode.ReadFileError, "Cannot read common names",
			[]any{"stdin"}},
	}

	for _, tt := range tests {
		var gnErr *gn.Error
		require.True(t, errors.As(tt.err, &gnErr), tt.msg)
		assert.Equal(t, tt.code, gnErr.Code, tt.msg)
		assert.Contains(t, gnErr.Msg, tt.text, tt.msg)
		assert.Equal(t, tt.vars, gnErr.Vars, tt.msg)
		assert.ErrorIs(t, gnErr.Err, cause, tt.msg)
	}
}

func TestReadNamesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.txt")
	_, err := ReadNames(path)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
	assert.Equal(t, []any{path}, gnErr.Vars)
}

func TestEnsureConfigFileNoDir(t *testing.T) {
	// config directory is not created
	home := t.TempDir()

	err := EnsureConfigFile(home)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CopyFileError, gnErr.Code)
}
