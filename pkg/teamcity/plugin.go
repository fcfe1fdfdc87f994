// Package teamcity renders a test-execution event stream as TeamCity
// service messages, one line per reporting fact.
//
// See https://www.jetbrains.com/help/teamcity/service-messages.html.
package teamcity

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/isabella232/teacup/pkg/events"
	"github.com/isabella232/teacup/pkg/gherkintree"
)

// Plugin translates events into service messages while keeping the
// emitted suite markers well formed. It tracks the stack of currently
// open suites and, on each case start, closes and opens exactly the
// suites on which the old and new root-to-case paths differ. IDE
// consumers render suite markers as tree expand/collapse, so redundant
// close/open churn between sibling cases is avoided, not just wasteful.
//
// Plugin is not safe for concurrent use: events must be handled by a
// single goroutine, in the order they occurred. Output line order
// mirrors event order.
type Plugin struct {
	out           io.Writer
	suggestions   []events.SnippetsSuggested
	parsedSources map[string][]*gherkintree.Node
	currentStack  []*gherkintree.Node
	currentCase   *events.TestCase
}

// NewPlugin creates a plugin writing service messages to out. Mixing
// the messages with other output on the same writer is fine; consumers
// only react to ##teamcity lines.
func NewPlugin(out io.Writer) *Plugin {
	return &Plugin{
		out:           out,
		parsedSources: make(map[string][]*gherkintree.Node),
	}
}

// HandleEvent consumes one event and writes the corresponding service
// messages, if any.
func (p *Plugin) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case events.TestSourceParsed:
		p.parsedSources[e.URI] = e.Roots
	case events.TestRunStarted:
		p.runStarted(e)
	case events.TestCaseStarted:
		p.caseStarted(e)
	case events.TestStepStarted:
		p.stepStarted(e)
	case events.TestStepFinished:
		p.stepFinished(e)
	case events.TestCaseFinished:
		p.caseFinished(e)
	case events.TestRunFinished:
		p.runFinished(e)
	case events.SnippetsSuggested:
		p.suggestions = append(p.suggestions, e)
	case events.Embed:
		p.embed(e)
	case events.Write:
		p.writeText(e)
	}
}

func (p *Plugin) runStarted(e events.TestRunStarted) {
	timestamp := formatTimestamp(e.Time)
	p.print(templateEnterTheMatrix, timestamp)
	p.print(templateTestRunStarted, timestamp)
	p.print(templateProgressCountingStarted, timestamp)
}

func (p *Plugin) caseStarted(e events.TestCaseStarted) {
	timestamp := formatTimestamp(e.Time)

	// A case whose location is not found in the parsed tree reports
	// flat, without suite nesting. This is deliberate and silent.
	location := e.Case.Location
	newStack, _ := gherkintree.FindPath(p.parsedSources[e.Case.URI], func(node *gherkintree.Node) bool {
		return node.Location == location
	})

	keep := commonPrefixLen(p.currentStack, newStack)
	for i := len(p.currentStack) - 1; i >= keep; i-- {
		p.finishNode(timestamp, p.currentStack[i])
	}
	for _, node := range newStack[keep:] {
		p.startNode(e.Case.URI, timestamp, node)
	}
	p.currentStack = newStack
	testCase := e.Case
	p.currentCase = &testCase

	p.print(templateProgressTestStarted, timestamp)
}

func (p *Plugin) caseFinished(e events.TestCaseFinished) {
	timestamp := formatTimestamp(e.Time)
	p.print(templateProgressTestFinished, timestamp)
	// Only the leaf closes here; the ancestors stay open so a sibling
	// case can reuse them.
	if last := len(p.currentStack) - 1; last >= 0 {
		p.finishNode(timestamp, p.currentStack[last])
		p.currentStack = p.currentStack[:last]
	}
	p.currentCase = nil
}

func (p *Plugin) runFinished(e events.TestRunFinished) {
	timestamp := formatTimestamp(e.Time)
	p.print(templateProgressCountingFinished, timestamp)

	for i := len(p.currentStack) - 1; i >= 0; i-- {
		p.finishNode(timestamp, p.currentStack[i])
	}
	p.currentStack = nil

	p.beforeAfterAllResult(e, timestamp)
	p.print(templateTestRunFinished, timestamp)
}

// beforeAfterAllResult reports a run-level failure as a dummy test.
// The protocol has no first-class notion of a fixture failure outside
// a test.
func (p *Plugin) beforeAfterAllResult(e events.TestRunFinished, timestamp string) {
	err := e.Result.Error
	if err == nil {
		return
	}
	const name = "Before All/After All"
	p.print(templateBeforeAfterAllStarted, timestamp, name)
	p.print(templateBeforeAfterAllFailed, timestamp, "Before All/After All failed", err.Description(), name)
	p.print(templateBeforeAfterAllFinished, timestamp, name)
}

// commonPrefixLen returns the length of the longest prefix the two
// stacks share, compared element-wise from the root.
func commonPrefixLen(currentStack, newStack []*gherkintree.Node) int {
	limit := min(len(currentStack), len(newStack))
	for i := 0; i < limit; i++ {
		if !currentStack[i].Equal(newStack[i]) {
			return i
		}
	}
	return limit
}

func (p *Plugin) startNode(uri string, timestamp string, node *gherkintree.Node) {
	location := fmt.Sprintf("%s:%d", uri, node.Location.Line)
	p.print(templateTestSuiteStarted, timestamp, location, nodeName(node))
}

func (p *Plugin) finishNode(timestamp string, node *gherkintree.Node) {
	p.print(templateTestSuiteFinished, timestamp, nodeName(node))
}

func nodeName(node *gherkintree.Node) string {
	if node.Name != "" {
		return node.Name
	}
	if node.Keyword != "" {
		return node.Keyword
	}
	return "Unknown"
}

func (p *Plugin) stepStarted(e events.TestStepStarted) {
	timestamp := formatTimestamp(e.Time)
	p.print(templateTestStarted, timestamp, stepLocation(e.Step), stepName(e.Step))
}

func (p *Plugin) stepFinished(e events.TestStepFinished) {
	timestamp := formatTimestamp(e.Time)
	duration := strconv.FormatInt(e.Result.Duration.Milliseconds(), 10)
	name := stepName(e.Step)
	stepError := e.Result.Error

	switch e.Result.Status {
	case events.Skipped:
		message := "Step skipped"
		if stepError != nil {
			message = stepError.Message
		}
		p.print(templateTestIgnored, timestamp, duration, message, name)
	case events.Pending:
		details := ""
		if stepError != nil {
			details = stepError.Message
		}
		p.print(templateTestFailed, timestamp, duration, "Step pending", details, name)
	case events.Undefined:
		p.print(templateTestFailed, timestamp, duration, "Step undefined", p.snippetAdvice(), name)
	case events.Ambiguous, events.Failed:
		details := ""
		if stepError != nil {
			details = stepError.Description()
		}
		p.print(templateTestFailed, timestamp, duration, "Step failed", details, name)
	}
	p.print(templateTestFinished, timestamp, duration, name)
}

// stepLocation resolves the navigation hint for a started step. Pickle
// steps point at their feature-file line; hook steps resolve through
// their code location.
func stepLocation(step events.Step) string {
	switch s := step.(type) {
	case events.PickleStep:
		return fmt.Sprintf("%s:%d", s.URI, s.Line)
	case events.HookStep:
		return resolveCodeLocation(s.CodeLocation)
	default:
		return ""
	}
}

func stepName(step events.Step) string {
	switch s := step.(type) {
	case events.PickleStep:
		return s.Text
	case events.HookStep:
		switch s.Type {
		case events.BeforeHook:
			return "Before"
		case events.AfterHook:
			return "After"
		case events.BeforeStepHook:
			return "BeforeStep"
		case events.AfterStepHook:
			return "AfterStep"
		default:
			return strings.ToLower(s.Type.String())
		}
	default:
		return "Unknown step"
	}
}

// snippetAdvice collects the snippets suggested for the current test
// case into the details text of an undefined step.
func (p *Plugin) snippetAdvice() string {
	if p.currentCase == nil {
		return ""
	}
	matched := make([]events.SnippetsSuggested, 0)
	for _, suggestion := range p.suggestions {
		if suggestion.URI == p.currentCase.URI && suggestion.CaseLocation == p.currentCase.Location {
			matched = append(matched, suggestion)
		}
	}
	return undefinedStepAdvice(matched)
}

func undefinedStepAdvice(suggestions []events.SnippetsSuggested) string {
	if len(suggestions) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("You can implement this step")
	if len(suggestions) > 1 {
		fmt.Fprintf(&sb, " and %d other step(s)", len(suggestions)-1)
	}
	sb.WriteString(" using the snippet(s) below:\n\n")
	seen := make(map[string]bool)
	for _, suggestion := range suggestions {
		for _, snippet := range suggestion.Snippets {
			if seen[snippet] {
				continue
			}
			seen[snippet] = true
			sb.WriteString(snippet)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (p *Plugin) embed(e events.Embed) {
	name := ""
	if e.Name != "" {
		name = e.Name + " "
	}
	p.print(templateAttachWriteEvent,
		fmt.Sprintf("Embed event: %s[%s %d bytes]\n", name, e.MediaType, len(e.Data)))
}

func (p *Plugin) writeText(e events.Write) {
	p.print(templateAttachWriteEvent, "Write event:\n"+e.Text+"\n")
}

// print escapes every value and substitutes it into the template,
// writing one line.
func (p *Plugin) print(template string, values ...string) {
	escaped := make([]any, len(values))
	for i, value := range values {
		escaped[i] = escape(value)
	}
	fmt.Fprintf(p.out, template+"\n", escaped...)
}
