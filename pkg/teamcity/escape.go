package teamcity

import "strings"

// escaper applies the service-message value escaping. All replacements
// happen in a single pass, so an inserted '|' is never re-escaped by a
// later rule.
var escaper = strings.NewReplacer(
	"|", "||",
	"'", "|'",
	"\n", "|n",
	"\r", "|r",
	"[", "|[",
	"]", "|]",
)

// escape prepares a value for substitution into a service-message
// template.
func escape(source string) string {
	return escaper.Replace(source)
}
