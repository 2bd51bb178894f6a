package cache

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Key joins trimmed parts with ':'. Parts are kept case-sensitive because puuids are.
func Key(parts ...string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, part := range parts {
		if i > 0 {
			_ = buf.WriteByte(':')
		}
		_, _ = buf.WriteString(strings.TrimSpace(part))
	}
	return buf.String()
}
