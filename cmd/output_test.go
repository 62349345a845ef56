package cmd

import (
	"bytes"
	"testing"

	"github.com/gnames/gnfish/pkg/errcode"
	"github.com/gnames/gnfish/pkg/species"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Code  string `json:"code"`
}

func TestWriteOutput(t *testing.T) {
	v := sample{Name: "cod", Count: 3, Code: "123"}

	tests := []struct {
		msg, format string
		contains    []string
		missing     []string
	}{
		{"compact", formatCompact,
			[]string{`{"name":"cod","count":3,"code":"123"}`}, []string{"\n  "}},
		{"pretty", formatPretty,
			[]string{"\n", `"name": "cod"`}, nil},
		{"yaml", formatYAML,
			[]string{"name: cod\n", "count: 3\n", "code: "},
			[]string{"{", `"name"`, "code: 123\n"}},
	}

	for _, tt := range tests {
		buf := new(bytes.Buffer)
		err := writeOutput(buf, tt.format, v)
		require.NoError(t, err, tt.msg)
		for _, s := range tt.contains {
			assert.Contains(t, buf.String(), s, tt.msg)
		}
		for _, s := range tt.missing {
			assert.NotContains(t, buf.String(), s, tt.msg)
		}
	}
}

func TestWriteOutputYAMLKeepsOrder(t *testing.T) {
	rec := species.Record{
		CommonName:     "Atlantic cod",
		ScientificName: "Gadus morhua",
		CategoryCode:   "VU",
	}
	buf := new(bytes.Buffer)
	require.NoError(t, writeOutput(buf, formatYAML, rec))

	out := buf.String()
	i := bytes.Index(buf.Bytes(), []byte("commonName:"))
	j := bytes.Index(buf.Bytes(), []byte("scientificName:"))
	assert.True(t, i >= 0 && j > i, out)
	assert.Contains(t, out, "categoryCode: VU")
}

func TestGetFormat(t *testing.T) {
	tests := []struct {
		flag, want string
		err        bool
	}{
		{"", formatPretty, false},
		{"pretty", formatPretty, false},
		{" YAML ", formatYAML, false},
		{"compact", formatCompact, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		cmd := getListCmd()
		require.NoError(t, cmd.Flags().Set("format", tt.flag))
		res, err := getFormat(cmd)
		if tt.err {
			assert.Equal(t, errcode.OutputFormatError, species.ErrCode(err))
			continue
		}
		assert.NoError(t, err, tt.flag)
		assert.Equal(t, tt.want, res, tt.flag)
	}
}
