package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Write marshals v to JSON and writes it in the requested format.
//
// Supported formats:
// - json (default)
// - edn
func Write(w io.Writer, v any, format string, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return WriteRaw(w, b, format, pretty)
}

// WriteRaw writes an already-encoded JSON document in the requested format.
func WriteRaw(w io.Writer, raw []byte, format string, pretty bool) error {
	if err := CheckFormat(format); err != nil {
		return err
	}
	if format == "edn" {
		return WriteEDN(w, raw, pretty)
	}
	return WriteJSON(w, raw, pretty)
}

// CheckFormat reports whether format is one WriteRaw accepts.
func CheckFormat(format string) error {
	switch format {
	case "", "json", "edn":
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON echoes raw unchanged (one line terminated by a newline) unless
// pretty is set.
func WriteJSON(w io.Writer, raw []byte, indent bool) error {
	if !gjson.ValidBytes(raw) {
		return errors.New("response is not valid JSON")
	}
	var out []byte
	if indent {
		out = pretty.Pretty(raw)
	} else {
		out = append(bytes.TrimRight(raw, " \t\r\n"), '\n')
	}
	_, err := w.Write(out)
	return err
}
