// Package snippets generates Go step-definition stubs for steps that
// have no matching definition. The stub carries the step pattern in an
// annotation comment so a definition generator can pick it up later.
package snippets

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
)

// Snippet describes one generated step-definition stub.
type Snippet struct {
	// Pattern is the anchored regular expression matching the step text,
	// with quoted strings and numbers turned into capture groups.
	Pattern string

	// FuncName is the generated Go function name, derived from the step
	// text.
	FuncName string

	// Args holds the Go parameter types for the capture groups, in
	// order.
	Args []string
}

// For derives a snippet from the literal text of an undefined step.
func For(stepText string) Snippet {
	pattern, args := derivePattern(stepText)
	return Snippet{
		Pattern:  pattern,
		FuncName: funcName(stepText),
		Args:     args,
	}
}

// derivePattern builds the step pattern: quoted strings become string
// captures, free-standing numbers become int or float64 captures, and
// everything else is matched literally.
func derivePattern(stepText string) (string, []string) {
	var pattern strings.Builder
	var literal strings.Builder
	args := make([]string, 0)

	flush := func() {
		pattern.WriteString(regexp.QuoteMeta(literal.String()))
		literal.Reset()
	}

	pattern.WriteString("^")
	i := 0
	for i < len(stepText) {
		if stepText[i] == '"' {
			if end := strings.IndexByte(stepText[i+1:], '"'); end >= 0 {
				flush()
				pattern.WriteString(`"([^"]*)"`)
				args = append(args, "string")
				i += end + 2
				continue
			}
		}
		if isDigit(stepText[i]) && !followsWord(stepText, i) {
			j := i
			for j < len(stepText) && isDigit(stepText[j]) {
				j++
			}
			isFloat := false
			if j+1 < len(stepText) && stepText[j] == '.' && isDigit(stepText[j+1]) {
				isFloat = true
				j++
				for j < len(stepText) && isDigit(stepText[j]) {
					j++
				}
			}
			flush()
			if isFloat {
				pattern.WriteString(`(\d+\.\d+)`)
				args = append(args, "float64")
			} else {
				pattern.WriteString(`(\d+)`)
				args = append(args, "int")
			}
			i = j
			continue
		}
		literal.WriteByte(stepText[i])
		i++
	}
	flush()
	pattern.WriteString("$")
	return pattern.String(), args
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// followsWord reports whether the byte at i continues an identifier-like
// word, e.g. the "2" in "step2". Such digits stay literal.
func followsWord(s string, i int) bool {
	if i == 0 {
		return false
	}
	prev := rune(s[i-1])
	return unicode.IsLetter(prev) || unicode.IsDigit(prev)
}

// funcName turns the step text into an exported CamelCase identifier.
func funcName(stepText string) string {
	var sb strings.Builder
	upperNext := true
	for _, r := range stepText {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if upperNext {
				sb.WriteRune(unicode.ToUpper(r))
				upperNext = false
			} else {
				sb.WriteRune(r)
			}
			continue
		}
		upperNext = true
	}
	name := sb.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "Step" + name
	}
	return name
}

// Render returns the stub as a standalone Go fragment: the annotation
// comment followed by a function body that reports the step as not yet
// implemented.
func (s Snippet) Render() string {
	code := jen.Statement{
		jen.Comment(s.FuncName), jen.Line(),
		jen.Comment(annotation(s.Pattern)), jen.Line(),
		s.function(),
	}
	return fmt.Sprintf("%#v", &code)
}

func (s Snippet) function() *jen.Statement {
	return jen.Func().Id(s.FuncName).ParamsFunc(func(g *jen.Group) {
		g.Id("ctx").Qual("context", "Context")
		for i, argType := range s.Args {
			g.Id(fmt.Sprintf("arg%d", i+1)).Id(argType)
		}
	}).Error().Block(
		jen.Return(jen.Qual("errors", "New").Call(jen.Lit("step not yet implemented"))),
	)
}

func annotation(pattern string) string {
	return "@teacup `" + pattern + "`"
}

// File renders a complete Go source file containing one stub per step
// text, in the given package.
func File(packageName string, stepTexts []string) string {
	f := jen.NewFile(packageName)
	for _, text := range stepTexts {
		s := For(text)
		f.Comment(s.FuncName)
		f.Comment(annotation(s.Pattern))
		f.Add(s.function())
	}
	return fmt.Sprintf("%#v", f)
}
