package turboterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/turboterm/pkg/errors"
)

func TestRowsFormat(t *testing.T) {
	tests := []struct {
		path     string
		explicit string
		want     string
		wantErr  bool
	}{
		{"", "", FormatCSV, false},
		{"rows.yaml", "", FormatYAML, false},
		{"ROWS.YML", "", FormatYAML, false},
		{"rows.toml", "", FormatTOML, false},
		{"rows.txt", "", FormatCSV, false},
		{"rows.txt", "TOML", FormatTOML, false},
		{"rows.csv", "yml", FormatYAML, false},
		{"rows.csv", "json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.explicit, func(t *testing.T) {
			got, err := rowsFormat(tt.path, tt.explicit)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRows(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		want   [][]string
	}{
		{
			name:   "csv ragged",
			format: FormatCSV,
			input:  "a,b,c\nd\n",
			want:   [][]string{{"a", "b", "c"}, {"d"}},
		},
		{
			name:   "csv quoted comma",
			format: FormatCSV,
			input:  "\"x, y\",z\n",
			want:   [][]string{{"x, y", "z"}},
		},
		{
			name:   "yaml list",
			format: FormatYAML,
			input:  "- [name, 3, true]\n- [~]\n",
			want:   [][]string{{"name", "3", "true"}, {""}},
		},
		{
			name:   "yaml rows key",
			format: FormatYAML,
			input:  "rows:\n  - [a]\n",
			want:   [][]string{{"a"}},
		},
		{
			name:   "yaml empty",
			format: FormatYAML,
			input:  "",
			want:   nil,
		},
		{
			name:   "toml mixed cells",
			format: FormatTOML,
			input:  "rows = [[\"a\", 1], [2.5]]\n",
			want:   [][]string{{"a", "1"}, {"2.5"}},
		},
		{
			name:   "toml empty",
			format: FormatTOML,
			input:  "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRows([]byte(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRowsErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
	}{
		{"yaml scalar document", FormatYAML, "hello\n"},
		{"yaml row not a list", FormatYAML, "- [a]\n- b\n"},
		{"yaml map without rows", FormatYAML, "cells: []\n"},
		{"yaml syntax", FormatYAML, "- [a\n"},
		{"toml without rows", FormatTOML, "title = \"x\"\n"},
		{"toml syntax", FormatTOML, "rows = [[\n"},
		{"csv bare quote", FormatCSV, "a\"b,c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRows([]byte(tt.input), tt.format)
			assert.True(t, errors.IsErrorCode(err, errors.ErrRowsParse), "got %v", err)
			assert.Equal(t, tt.format, errors.GetErrorDetails(err)["format"])
		})
	}

	missing := map[string]string{
		FormatYAML: "title: x\n",
		FormatTOML: "title = \"x\"\n",
	}
	for format, input := range missing {
		_, err := parseRows([]byte(input), format)
		assert.ErrorIs(t, err, errRowsMissing, format)
	}

	_, err := parseRows(nil, "xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
