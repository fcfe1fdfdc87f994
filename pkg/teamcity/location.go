package teamcity

import (
	"fmt"
	"regexp"
	"strings"
)

// The two code-location shapes hook steps arrive with. Both must match
// the whole string; they are kept separate because whether the argument
// list contains a colon decides which output template applies.
var (
	// method reference: declaring type, member, colon-free arguments.
	annotationCodeLocation = regexp.MustCompile(`^(.*)\.(.*)\([^:]*\)$`)
	// closure reference: the parentheses embed a file:line position.
	lambdaCodeLocation = regexp.MustCompile(`^(.*)\.(.*)\(.*:.*\)$`)
)

// resolveCodeLocation turns a raw hook code-location string into a
// test:// address the IDE can navigate to. Unrecognized strings pass
// through unchanged.
func resolveCodeLocation(codeLocation string) string {
	if m := annotationCodeLocation.FindStringSubmatch(codeLocation); m != nil {
		return fmt.Sprintf("test://%s/%s", m[1], m[2])
	}
	if m := lambdaCodeLocation.FindStringSubmatch(codeLocation); m != nil {
		declaringType := m[1]
		simpleName := declaringType
		if i := strings.LastIndex(declaringType, "."); i >= 0 {
			simpleName = declaringType[i+1:]
		}
		return fmt.Sprintf("test://%s/%s", declaringType, simpleName)
	}
	return codeLocation
}
