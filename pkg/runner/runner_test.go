package runner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	messages "github.com/cucumber/messages/go/v21"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/isabella232/teacup/pkg/events"
	"github.com/isabella232/teacup/pkg/gherkintree"
)

var fixedTime = time.Date(2024, 3, 7, 9, 30, 15, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// captureHandler records every event it receives, in order.
type captureHandler struct {
	events []events.Event
}

func (c *captureHandler) HandleEvent(event events.Event) {
	c.events = append(c.events, event)
}

// writeFeature drops a feature file into a fresh directory and returns both.
func writeFeature(t *testing.T, name, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(path, []byte(content), 0o644))

	return dir, path
}

const shopFeature = `Feature: Shopping

  Scenario: Add items
    Given I have 3 teapots
    When I add a teapot
`

const taggedFeature = `Feature: Tagged

  @smoke
  Scenario: Fast one
    Given a step

  @slow
  Scenario: Slow one
    Given a step
`

func TestReportRunner_Run(t *testing.T) {
	t.Run("should emit the full event sequence for one scenario", func(t *testing.T) {
		dir, path := writeFeature(t, "shop.feature", shopFeature)
		handler := &captureHandler{}

		err := NewReportRunner(handler).
			WithFeaturesDirectories(dir).
			WithLogger(NoopLogger{}).
			WithClock(fixedClock).
			Run()

		require.Nil(t, err)

		kinds := make([]string, 0, len(handler.events))
		for _, event := range handler.events {
			switch event.(type) {
			case events.TestSourceParsed:
				kinds = append(kinds, "sourceParsed")
			case events.TestRunStarted:
				kinds = append(kinds, "runStarted")
			case events.TestCaseStarted:
				kinds = append(kinds, "caseStarted")
			case events.SnippetsSuggested:
				kinds = append(kinds, "snippets")
			case events.TestStepStarted:
				kinds = append(kinds, "stepStarted")
			case events.TestStepFinished:
				kinds = append(kinds, "stepFinished")
			case events.TestCaseFinished:
				kinds = append(kinds, "caseFinished")
			case events.TestRunFinished:
				kinds = append(kinds, "runFinished")
			}
		}
		require.Equal(t, []string{
			"sourceParsed",
			"runStarted",
			"caseStarted",
			"snippets", "stepStarted", "stepFinished",
			"snippets", "stepStarted", "stepFinished",
			"caseFinished",
			"runFinished",
		}, kinds)

		sourceParsed := handler.events[0].(events.TestSourceParsed)
		require.Equal(t, path, sourceParsed.URI)
		require.Len(t, sourceParsed.Roots, 1)
		require.Equal(t, "Shopping", sourceParsed.Roots[0].Name)

		caseStarted := handler.events[2].(events.TestCaseStarted)
		require.Equal(t, "Add items", caseStarted.Case.Name)
		require.Equal(t, path, caseStarted.Case.URI)
		require.Equal(t, int64(3), caseStarted.Case.Location.Line)
		require.Equal(t, fixedTime, caseStarted.When())

		// The case location must match a node of the announced tree, so a
		// reporter can nest the case under its suites.
		location := caseStarted.Case.Location
		_, found := gherkintree.FindPath(sourceParsed.Roots, func(n *gherkintree.Node) bool {
			return n.Location == location
		})
		require.True(t, found)

		snippets := handler.events[3].(events.SnippetsSuggested)
		require.Equal(t, location, snippets.CaseLocation)
		require.Len(t, snippets.Snippets, 1)
		require.Contains(t, snippets.Snippets[0], "@teacup")

		stepStarted := handler.events[4].(events.TestStepStarted)
		step := stepStarted.Step.(events.PickleStep)
		require.Equal(t, "I have 3 teapots", step.Text)
		require.Equal(t, int64(4), step.Line)

		stepFinished := handler.events[5].(events.TestStepFinished)
		require.Equal(t, events.Undefined, stepFinished.Result.Status)

		caseFinished := handler.events[9].(events.TestCaseFinished)
		require.Equal(t, events.Undefined, caseFinished.Result.Status)

		runFinished := handler.events[10].(events.TestRunFinished)
		require.Equal(t, events.Passed, runFinished.Result.Status)
	})

	t.Run("should only report pickles matching the tag expression", func(t *testing.T) {
		dir, _ := writeFeature(t, "tagged.feature", taggedFeature)
		handler := &captureHandler{}

		err := NewReportRunner(handler).
			WithFeaturesDirectories(dir).
			WithLogger(NoopLogger{}).
			WithTagExpression("@smoke").
			Run()

		require.Nil(t, err)

		var caseNames []string
		for _, event := range handler.events {
			if caseStarted, ok := event.(events.TestCaseStarted); ok {
				caseNames = append(caseNames, caseStarted.Case.Name)
			}
		}
		require.Equal(t, []string{"Fast one"}, caseNames)
	})

	t.Run("should reject an invalid tag expression before emitting events", func(t *testing.T) {
		dir, _ := writeFeature(t, "shop.feature", shopFeature)
		controller := gomock.NewController(t)
		handler := NewMockEventHandler(controller)

		err := NewReportRunner(handler).
			WithFeaturesDirectories(dir).
			WithLogger(NoopLogger{}).
			WithTagExpression("@smoke and (").
			Run()

		require.NotNil(t, err)
		require.Contains(t, err.Error(), "invalid tag expression")
	})

	t.Run("should fail on malformed feature files", func(t *testing.T) {
		dir, _ := writeFeature(t, "broken.feature", "Feature: broken\n  Examples:\n")
		handler := &captureHandler{}

		err := NewReportRunner(handler).
			WithFeaturesDirectories(dir).
			WithLogger(NoopLogger{}).
			Run()

		require.NotNil(t, err)
	})

	t.Run("should apply config settings", func(t *testing.T) {
		dir, _ := writeFeature(t, "tagged.feature", taggedFeature)
		handler := &captureHandler{}

		err := NewReportRunner(handler).
			WithConfig(MergeConfigs(
				&Config{FeatureDirectories: []string{dir}, Logger: NoopLogger{}},
				&Config{TagExpression: "@slow"},
			)).
			Run()

		require.Nil(t, err)

		var caseNames []string
		for _, event := range handler.events {
			if caseStarted, ok := event.(events.TestCaseStarted); ok {
				caseNames = append(caseNames, caseStarted.Case.Name)
			}
		}
		require.Equal(t, []string{"Slow one"}, caseNames)
	})
}

func Test_pickleLocation(t *testing.T) {
	t.Run("should prefer the last known ast node", func(t *testing.T) {
		pickle := &messages.Pickle{AstNodeIds: []string{"scenario", "row"}}
		locations := map[string]gherkintree.Location{
			"scenario": {Line: 3, Column: 3},
			"row":      {Line: 10, Column: 7},
		}

		require.Equal(t, gherkintree.Location{Line: 10, Column: 7}, pickleLocation(pickle, locations))
	})

	t.Run("should fall back to earlier nodes", func(t *testing.T) {
		pickle := &messages.Pickle{AstNodeIds: []string{"scenario", "row"}}
		locations := map[string]gherkintree.Location{"scenario": {Line: 3, Column: 3}}

		require.Equal(t, gherkintree.Location{Line: 3, Column: 3}, pickleLocation(pickle, locations))
	})

	t.Run("should return the zero location for unknown nodes", func(t *testing.T) {
		pickle := &messages.Pickle{AstNodeIds: []string{"missing"}}

		require.Equal(t, gherkintree.Location{}, pickleLocation(pickle, nil))
	})
}

func Test_tagNames(t *testing.T) {
	t.Run("should keep the @ prefix", func(t *testing.T) {
		tags := []*messages.PickleTag{{Name: "@smoke"}, {Name: "@fast"}}

		require.Equal(t, []string{"@smoke", "@fast"}, tagNames(tags))
	})

	t.Run("should return an empty slice for no tags", func(t *testing.T) {
		require.Empty(t, tagNames(nil))
	})
}
