package format

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// hintPaths are probed in order; the first non-empty match wins.
var hintPaths = []string{"id", "data.id", "task.id", "message", "data.message"}

// ResponseHint returns a short human summary of a creation response such as
// "id 123", or "" when nothing recognisable is present.
func ResponseHint(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return ""
	}
	for _, p := range hintPaths {
		r := gjson.GetBytes(raw, p)
		if !r.Exists() || r.Type == gjson.Null || r.IsObject() || r.IsArray() {
			continue
		}
		v := strings.TrimSpace(r.String())
		if v == "" {
			continue
		}
		if strings.HasSuffix(p, "id") {
			return fmt.Sprintf("id %s", v)
		}
		return v
	}
	return ""
}
