// Package events defines the ordered test-execution event stream
// consumed by reporters. Events are delivered one at a time, in the
// order they logically occurred; reporters switch over the concrete
// variant types.
package events

import (
	"time"

	"github.com/isabella232/teacup/pkg/gherkintree"
)

// Event is the sealed union of all test-execution events.
type Event interface {
	// When returns the instant the event occurred.
	When() time.Time

	event()
}

// TestCase identifies one executable test case (a scenario or an
// expanded example row).
type TestCase struct {
	// URI identifies the feature file the case was compiled from.
	URI string

	// Location is where the case is defined in the feature file.
	Location gherkintree.Location

	// Name is the case name as written in the .feature file.
	Name string
}

// TestSourceParsed announces the structural tree of one parsed feature
// file. Emitted once per file, before any case from that file starts.
type TestSourceParsed struct {
	Time  time.Time
	URI   string
	Roots []*gherkintree.Node
}

// TestRunStarted marks the beginning of the whole run.
type TestRunStarted struct {
	Time time.Time
}

// TestCaseStarted marks the beginning of one test case.
type TestCaseStarted struct {
	Time time.Time
	Case TestCase
}

// TestStepStarted marks the beginning of one step or hook.
type TestStepStarted struct {
	Time time.Time
	Step Step
}

// TestStepFinished carries the outcome of one step or hook.
type TestStepFinished struct {
	Time   time.Time
	Step   Step
	Result Result
}

// TestCaseFinished marks the end of one test case.
type TestCaseFinished struct {
	Time   time.Time
	Case   TestCase
	Result Result
}

// TestRunFinished marks the end of the whole run. A non-nil result
// error reports a failure outside any test case (global setup or
// teardown).
type TestRunFinished struct {
	Time   time.Time
	Result Result
}

// SnippetsSuggested records candidate step-definition snippets for an
// undefined step of one test case. Not rendered directly; reporters
// look the snippets up when the step finishes undefined.
type SnippetsSuggested struct {
	Time         time.Time
	URI          string
	CaseLocation gherkintree.Location
	Snippets     []string
}

// Embed carries a binary attachment produced during the run.
type Embed struct {
	Time      time.Time
	Name      string
	MediaType string
	Data      []byte
}

// Write carries free-form text produced during the run.
type Write struct {
	Time time.Time
	Text string
}

func (e TestSourceParsed) When() time.Time  { return e.Time }
func (e TestRunStarted) When() time.Time    { return e.Time }
func (e TestCaseStarted) When() time.Time   { return e.Time }
func (e TestStepStarted) When() time.Time   { return e.Time }
func (e TestStepFinished) When() time.Time  { return e.Time }
func (e TestCaseFinished) When() time.Time  { return e.Time }
func (e TestRunFinished) When() time.Time   { return e.Time }
func (e SnippetsSuggested) When() time.Time { return e.Time }
func (e Embed) When() time.Time             { return e.Time }
func (e Write) When() time.Time             { return e.Time }

func (TestSourceParsed) event()  {}
func (TestRunStarted) event()    {}
func (TestCaseStarted) event()   {}
func (TestStepStarted) event()   {}
func (TestStepFinished) event()  {}
func (TestCaseFinished) event()  {}
func (TestRunFinished) event()   {}
func (SnippetsSuggested) event() {}
func (Embed) event()             {}
func (Write) event()             {}
