package turboterm

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/turboterm/pkg/errors"
)

// Row input formats
const (
	FormatCSV  = "csv"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// errRowsMissing marks a mapping document without a rows key
var errRowsMissing = stderrors.New(MsgErrRowsMissing)

// rowsFormat picks the input format: the explicit one when given, else the
// file extension, else CSV.
func rowsFormat(path, explicit string) (string, error) {
	format := strings.ToLower(explicit)
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = FormatYAML
		case ".toml":
			format = FormatTOML
		default:
			format = FormatCSV
		}
	}
	switch format {
	case FormatCSV, FormatYAML, FormatTOML:
		return format, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, MsgErrRowsFormat, explicit).
		WithDetail("format", explicit)
}

// parseRows decodes table rows. Non-string cells are formatted with
// fmt.Sprint and null cells become empty strings.
func parseRows(data []byte, format string) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatYAML:
		rows, err = parseYAMLRows(data)
	case FormatTOML:
		rows, err = parseTOMLRows(data)
	case FormatCSV:
		rows, err = parseCSVRows(data)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, MsgErrRowsFormat, format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRowsParse, MsgErrParseRows, format).
			WithDetail("format", format)
	}
	return rows, nil
}

func parseYAMLRows(data []byte) ([][]string, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if m, ok := doc.(map[string]any); ok {
		list, found := m["rows"]
		if !found {
			return nil, errRowsMissing
		}
		doc = list
	}
	return toRows(doc)
}

func parseTOMLRows(data []byte) ([][]string, error) {
	var doc map[string]any
	if err := gotoml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	list, found := doc["rows"]
	if !found {
		if len(doc) == 0 {
			return nil, nil
		}
		return nil, errRowsMissing
	}
	return toRows(list)
}

func parseCSVRows(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func toRows(v any) ([][]string, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf(MsgErrRowsShape, v)
	}
	rows := make([][]string, 0, len(list))
	for i, item := range list {
		cells, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf(MsgErrRowShape, i+1, item)
		}
		row := make([]string, len(cells))
		for j, cell := range cells {
			row[j] = cellString(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}
