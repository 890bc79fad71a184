package format

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// WriteEDN writes a strict EDN representation of a JSON document.
//
// Only the JSON subset is covered (maps, vectors, strings, numbers, booleans,
// nil). Numbers keep their JSON spelling.
func WriteEDN(w io.Writer, raw []byte, pretty bool) error {
	if !gjson.ValidBytes(raw) {
		return errors.New("response is not valid JSON")
	}
	var buf bytes.Buffer
	enc := ednEncoder{pretty: pretty, indent: 2}
	enc.writeAny(&buf, gjson.ParseBytes(raw), 0)
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

type ednEncoder struct {
	pretty bool
	indent int
}

func (e ednEncoder) writeAny(buf *bytes.Buffer, v gjson.Result, level int) {
	switch {
	case v.IsArray():
		e.writeVec(buf, v.Array(), level)
	case v.IsObject():
		e.writeMap(buf, v, level)
	default:
		switch v.Type {
		case gjson.Null:
			buf.WriteString("nil")
		case gjson.True:
			buf.WriteString("true")
		case gjson.False:
			buf.WriteString("false")
		case gjson.Number:
			buf.WriteString(strings.TrimSpace(v.Raw))
		default:
			buf.WriteString(strconv.Quote(v.String()))
		}
	}
}

func (e ednEncoder) writeVec(buf *bytes.Buffer, xs []gjson.Result, level int) {
	buf.WriteByte('[')
	if len(xs) == 0 {
		buf.WriteByte(']')
		return
	}
	e.open(buf)
	for i, it := range xs {
		e.pad(buf, level+1)
		e.writeAny(buf, it, level+1)
		if i != len(xs)-1 {
			e.sep(buf)
		}
	}
	e.close(buf, level)
	buf.WriteByte(']')
}

func (e ednEncoder) writeMap(buf *bytes.Buffer, obj gjson.Result, level int) {
	m := obj.Map()
	buf.WriteByte('{')
	if len(m) == 0 {
		buf.WriteByte('}')
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e.open(buf)
	for i, k := range keys {
		e.pad(buf, level+1)
		// JSON keys become EDN keywords.
		buf.WriteByte(':')
		buf.WriteString(ednKeyword(k))
		buf.WriteByte(' ')
		e.writeAny(buf, m[k], level+1)
		if i != len(keys)-1 {
			e.sep(buf)
		}
	}
	e.close(buf, level)
	buf.WriteByte('}')
}

func (e ednEncoder) open(buf *bytes.Buffer) {
	if e.pretty {
		buf.WriteByte('\n')
	}
}

func (e ednEncoder) pad(buf *bytes.Buffer, level int) {
	if e.pretty {
		buf.WriteString(strings.Repeat(" ", level*e.indent))
	}
}

func (e ednEncoder) sep(buf *bytes.Buffer) {
	if e.pretty {
		buf.WriteByte('\n')
	} else {
		buf.WriteByte(' ')
	}
}

func (e ednEncoder) close(buf *bytes.Buffer, level int) {
	if e.pretty {
		buf.WriteByte('\n')
		e.pad(buf, level)
	}
}

func ednKeyword(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "-")
	return strings.ReplaceAll(s, "_", "-")
}
