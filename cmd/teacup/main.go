package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/isabella232/teacup/pkg/gherkin_parser"
	"github.com/isabella232/teacup/pkg/runner"
	"github.com/isabella232/teacup/pkg/snippets"
	"github.com/isabella232/teacup/pkg/teamcity"
)

var rootCmd = &cobra.Command{
	Use:   "teacup",
	Short: "teacup — TeamCity service-message reporting for Gherkin features",
}

var reportTags string

var reportCmd = &cobra.Command{
	Use:   "report [directories...]",
	Short: "Parse feature files and print their service-message stream",
	Long: `Report walks the given directories (default: the working directory)
for .feature files and prints the TeamCity service-message stream a run
of those features would produce. No step code is executed; every step
reports as undefined, with a suggested Go stub in the failure details.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plugin := teamcity.NewPlugin(cmd.OutOrStdout())
		return runner.NewReportRunner(plugin).
			WithFeaturesDirectories(args...).
			WithTagExpression(reportTags).
			Run()
	},
}

var stubsCmd = &cobra.Command{
	Use:   "stubs [directories...]",
	Short: "Generate Go step-definition stubs for every step",
	RunE: func(cmd *cobra.Command, args []string) error {
		directories := args
		if len(directories) == 0 {
			directories = []string{"."}
		}
		stepTexts, err := collectStepTexts(directories)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), snippets.File(snippets.PackageNameFor("."), stepTexts))
		return nil
	},
}

// collectStepTexts gathers the distinct step texts of all features, in
// document order.
func collectStepTexts(directories []string) ([]string, error) {
	featureFiles, err := gherkin_parser.SearchFeatureFilesIn(directories)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	stepTexts := make([]string, 0)
	for _, file := range featureFiles {
		readFile, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("could not read file %s, error=%w", file, err)
		}
		document, err := gherkin_parser.ParseGherkinFile(bytes.NewReader(readFile))
		if err != nil {
			return nil, fmt.Errorf("gherkin parse error in file %s, error=%w", file, err)
		}
		for _, pickle := range gherkin_parser.CompilePickles(document, file) {
			for _, step := range pickle.Steps {
				if seen[step.Text] {
					continue
				}
				seen[step.Text] = true
				stepTexts = append(stepTexts, step.Text)
			}
		}
	}
	return stepTexts, nil
}

func init() {
	reportCmd.Flags().StringVar(&reportTags, "tags", "",
		`tag expression selecting the reported scenarios (e.g. "@smoke and not @wip")`)
	rootCmd.AddCommand(reportCmd, stubsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
