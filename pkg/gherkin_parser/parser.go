// Package gherkin_parser locates feature files and turns them into
// parsed Gherkin documents and executable pickles.
package gherkin_parser

import (
	"io"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/google/uuid"

	"github.com/isabella232/teacup/pkg/gherkintree"
)

const (
	FeatureExtension = ".feature"
)

func SearchFeatureFilesIn(directories []string) ([]string, error) {
	featureFiles := make([]string, 0)

	for _, directory := range directories {
		err := filepath.Walk(directory, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				log.Println(err)
				return err
			}
			if !info.IsDir() {
				if strings.HasSuffix(info.Name(), FeatureExtension) {
					featureFiles = append(featureFiles, path)
				}
			}
			return nil
		})

		if err != nil {
			log.Println(err)
			return nil, err
		}
	}
	return featureFiles, nil
}

func ParseGherkinFile(reader io.Reader) (*messages.GherkinDocument, error) {
	id := (&messages.Incrementing{}).NewId
	document, err := gherkin.ParseGherkinDocument(reader, id)
	if err != nil {

		return nil, err
	}
	return document, nil
}

// CompilePickles expands a parsed document into its executable pickles,
// one per scenario or example row, with fresh unique ids.
func CompilePickles(document *messages.GherkinDocument, uri string) []*messages.Pickle {
	if document == nil {
		return nil
	}
	return gherkin.Pickles(*document, uri, uuid.NewString)
}

// AstLocations indexes the source position of every AST node a pickle
// can refer back to: scenarios, example rows, and steps (background
// steps included). Pickles carry AST node ids, not positions; this is
// the reverse mapping.
func AstLocations(document *messages.GherkinDocument) map[string]gherkintree.Location {
	locations := make(map[string]gherkintree.Location)
	if document == nil || document.Feature == nil {
		return locations
	}
	for _, child := range document.Feature.Children {
		indexChild(locations, child.Background, child.Scenario)
		if child.Rule != nil {
			for _, ruleChild := range child.Rule.Children {
				indexChild(locations, ruleChild.Background, ruleChild.Scenario)
			}
		}
	}
	return locations
}

func indexChild(locations map[string]gherkintree.Location, background *messages.Background, scenario *messages.Scenario) {
	if background != nil {
		for _, step := range background.Steps {
			locations[step.Id] = gherkintree.LocationOf(step.Location)
		}
	}
	if scenario != nil {
		locations[scenario.Id] = gherkintree.LocationOf(scenario.Location)
		for _, step := range scenario.Steps {
			locations[step.Id] = gherkintree.LocationOf(step.Location)
		}
		for _, examples := range scenario.Examples {
			for _, row := range examples.TableBody {
				locations[row.Id] = gherkintree.LocationOf(row.Location)
			}
		}
	}
}
