// Package sanitize neutralizes markup in untrusted chat fields.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy strips every element and attribute. Content of script and style
// elements is dropped, remaining text is HTML-escaped.
var policy = bluemonday.StrictPolicy()

// plain undoes the escaping policy applies to characters that cannot open
// markup. Angle brackets stay escaped.
var plain = strings.NewReplacer("&#39;", "'", "&#34;", `"`, "&amp;", "&")

// Text returns s with all markup removed. Quotes and ampersands in plain text
// are kept as typed. Applying it twice yields the same result as applying it
// once.
func Text(s string) string {
	escaped := policy.Sanitize(s)
	out := plain.Replace(escaped)
	// Keep the unescaped form only if it reads back as the same text;
	// otherwise a literal like "&amp;lt;" would turn into an entity.
	if policy.Sanitize(out) != escaped {
		return escaped
	}
	return out
}
