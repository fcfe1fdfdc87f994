package runner

import (
	"bytes"
	"fmt"
	"os"
	"time"

	messages "github.com/cucumber/messages/go/v21"
	tagexpressions "github.com/cucumber/tag-expressions/go/v6"

	"github.com/isabella232/teacup/pkg/events"
	"github.com/isabella232/teacup/pkg/gherkin_parser"
	"github.com/isabella232/teacup/pkg/gherkintree"
	"github.com/isabella232/teacup/pkg/snippets"
)

type (
	// ReportRunner walks feature files and emits the ordered
	// test-execution event stream into an EventHandler without running
	// any step code: every step finishes undefined, with a generated
	// snippet suggested for it. Events are delivered synchronously, one
	// at a time, from the goroutine calling Run.
	ReportRunner struct {
		featureDirectories []string
		tagExpression      string
		handler            EventHandler
		logger             Logger
		now                func() time.Time
	}

	parsedFeature struct {
		uri       string
		pickles   []*messages.Pickle
		locations map[string]gherkintree.Location
	}
)

func NewReportRunner(handler EventHandler) *ReportRunner {
	return &ReportRunner{
		handler: handler,
		logger:  defaultLogger(),
		now:     time.Now,
	}
}

func (r *ReportRunner) WithFeaturesDirectories(directories ...string) *ReportRunner {
	r.featureDirectories = directories

	return r
}

// WithTagExpression restricts the run to pickles matching the given
// Cucumber tag expression, e.g. "@smoke and not @wip". Empty means no
// filtering.
func (r *ReportRunner) WithTagExpression(expression string) *ReportRunner {
	r.tagExpression = expression

	return r
}

func (r *ReportRunner) WithLogger(logger Logger) *ReportRunner {
	if logger != nil {
		r.logger = logger
	}

	return r
}

// WithClock replaces the timestamp source. Tests use this to make the
// emitted event times deterministic.
func (r *ReportRunner) WithClock(now func() time.Time) *ReportRunner {
	if now != nil {
		r.now = now
	}

	return r
}

// WithConfig applies the non-zero settings of config.
func (r *ReportRunner) WithConfig(config *Config) *ReportRunner {
	if config == nil {
		return r
	}
	if len(config.FeatureDirectories) > 0 {
		r.featureDirectories = config.FeatureDirectories
	}
	if config.TagExpression != "" {
		r.tagExpression = config.TagExpression
	}
	if config.Logger != nil {
		r.logger = config.Logger
	}

	return r
}

// Run parses every feature file, announces the parsed sources, then
// emits run/case/step events for each selected pickle in document
// order.
func (r *ReportRunner) Run() error {
	if len(r.featureDirectories) == 0 {
		r.featureDirectories = append(r.featureDirectories, ".")
	}

	featureFiles, err := gherkin_parser.SearchFeatureFilesIn(r.featureDirectories)
	if err != nil {
		return err
	}

	var evaluator tagexpressions.Evaluatable
	if r.tagExpression != "" {
		evaluator, err = tagexpressions.Parse(r.tagExpression)
		if err != nil {
			return fmt.Errorf("invalid tag expression %q, error=%w", r.tagExpression, err)
		}
	}

	parsed := make([]parsedFeature, 0, len(featureFiles))
	for _, file := range featureFiles {
		readFile, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read file %s, error=%w", file, err)
		}
		document, err := gherkin_parser.ParseGherkinFile(bytes.NewReader(readFile))
		if err != nil {
			return fmt.Errorf("gherkin parse error in file %s, error=%w", file, err)
		}

		r.handler.HandleEvent(events.TestSourceParsed{
			Time:  r.now(),
			URI:   file,
			Roots: gherkintree.FromDocument(document),
		})
		parsed = append(parsed, parsedFeature{
			uri:       file,
			pickles:   gherkin_parser.CompilePickles(document, file),
			locations: gherkin_parser.AstLocations(document),
		})
	}

	r.handler.HandleEvent(events.TestRunStarted{Time: r.now()})

	reported := 0
	for _, feature := range parsed {
		for _, pickle := range feature.pickles {
			if evaluator != nil && !evaluator.Evaluate(tagNames(pickle.Tags)) {
				continue
			}
			r.runPickle(feature.uri, pickle, feature.locations)
			reported++
		}
	}
	r.logger.Info("reported all cases", "features", len(parsed), "cases", reported)

	r.handler.HandleEvent(events.TestRunFinished{
		Time:   r.now(),
		Result: events.Result{Status: events.Passed},
	})
	return nil
}

func (r *ReportRunner) runPickle(uri string, pickle *messages.Pickle, locations map[string]gherkintree.Location) {
	caseLocation := pickleLocation(pickle, locations)
	testCase := events.TestCase{URI: uri, Location: caseLocation, Name: pickle.Name}
	r.handler.HandleEvent(events.TestCaseStarted{Time: r.now(), Case: testCase})

	for _, pickleStep := range pickle.Steps {
		step := events.PickleStep{
			URI:  uri,
			Line: stepLine(pickleStep, locations),
			Text: pickleStep.Text,
		}
		// Suggest the snippet before the step finishes so the reporter
		// can include it in the undefined-step details.
		r.handler.HandleEvent(events.SnippetsSuggested{
			Time:         r.now(),
			URI:          uri,
			CaseLocation: caseLocation,
			Snippets:     []string{snippets.For(pickleStep.Text).Render()},
		})
		r.handler.HandleEvent(events.TestStepStarted{Time: r.now(), Step: step})
		r.handler.HandleEvent(events.TestStepFinished{
			Time:   r.now(),
			Step:   step,
			Result: events.Result{Status: events.Undefined},
		})
	}

	r.handler.HandleEvent(events.TestCaseFinished{
		Time:   r.now(),
		Case:   testCase,
		Result: events.Result{Status: events.Undefined},
	})
}

// pickleLocation resolves the source position of a pickle: the last AST
// node it was compiled from, which for an outline is the example row.
func pickleLocation(pickle *messages.Pickle, locations map[string]gherkintree.Location) gherkintree.Location {
	for i := len(pickle.AstNodeIds) - 1; i >= 0; i-- {
		if location, ok := locations[pickle.AstNodeIds[i]]; ok {
			return location
		}
	}
	return gherkintree.Location{}
}

func stepLine(step *messages.PickleStep, locations map[string]gherkintree.Location) int64 {
	for i := len(step.AstNodeIds) - 1; i >= 0; i-- {
		if location, ok := locations[step.AstNodeIds[i]]; ok {
			return location.Line
		}
	}
	return 0
}

func tagNames(tags []*messages.PickleTag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}
