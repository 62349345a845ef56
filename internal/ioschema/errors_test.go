package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	origErr := errors.New("disk full")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"open", OpenError("sqlite", "/tmp/x.db", origErr), errcode.StoreOpenError},
		{"migrate", MigrateSchemaError(origErr), errcode.StoreMigrateError},
		{"driver", UnknownDriverError("oracle"), errcode.StoreUnknownDriverError},
	}

	for _, v := range tests {
		var gnErr *gn.Error
		require.True(t, errors.As(v.err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
	}
	assert.ErrorIs(t, OpenError("sqlite", "x", origErr).(*gn.Error).Err, origErr)
}
