package telegram

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML escapes user text for parse_mode=HTML. Only the four entities
// the Bot API HTML parser supports are produced; apostrophes pass through.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
