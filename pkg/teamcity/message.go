package teamcity

import "time"

const teamcityPrefix = "##teamcity"

// Service-message templates. The spacing inside the brackets is part of
// the protocol as consumed by the IDE test runners; do not normalize it.
const (
	templateEnterTheMatrix  = teamcityPrefix + "[enteredTheMatrix timestamp = '%s']"
	templateTestRunStarted  = teamcityPrefix + "[testSuiteStarted timestamp = '%s' name = 'Cucumber']"
	templateTestRunFinished = teamcityPrefix + "[testSuiteFinished timestamp = '%s' name = 'Cucumber']"

	templateTestSuiteStarted  = teamcityPrefix + "[testSuiteStarted timestamp = '%s' locationHint = '%s' name = '%s']"
	templateTestSuiteFinished = teamcityPrefix + "[testSuiteFinished timestamp = '%s' name = '%s']"

	templateTestStarted  = teamcityPrefix + "[testStarted timestamp = '%s' locationHint = '%s' captureStandardOutput = 'true' name = '%s']"
	templateTestFinished = teamcityPrefix + "[testFinished timestamp = '%s' duration = '%s' name = '%s']"
	templateTestFailed   = teamcityPrefix + "[testFailed timestamp = '%s' duration = '%s' message = '%s' details = '%s' name = '%s']"
	templateTestIgnored  = teamcityPrefix + "[testIgnored timestamp = '%s' duration = '%s' message = '%s' name = '%s']"

	templateBeforeAfterAllStarted  = teamcityPrefix + "[testStarted timestamp = '%s' name = '%s']"
	templateBeforeAfterAllFailed   = teamcityPrefix + "[testFailed timestamp = '%s' message = '%s' details = '%s' name = '%s']"
	templateBeforeAfterAllFinished = teamcityPrefix + "[testFinished timestamp = '%s' name = '%s']"

	templateProgressCountingStarted  = teamcityPrefix + "[customProgressStatus testsCategory = 'Scenarios' count = '0' timestamp = '%s']"
	templateProgressCountingFinished = teamcityPrefix + "[customProgressStatus testsCategory = '' count = '0' timestamp = '%s']"
	templateProgressTestStarted      = teamcityPrefix + "[customProgressStatus type = 'testStarted' timestamp = '%s']"
	templateProgressTestFinished     = teamcityPrefix + "[customProgressStatus type = 'testFinished' timestamp = '%s']"

	templateAttachWriteEvent = teamcityPrefix + "[message text='%s' status='NORMAL']"
)

// timestampLayout mimics the original plugin's formatter, 12-hour clock
// field included. The IDE consumers only read the date portion, so the
// quirk is kept for byte-compatibility.
const timestampLayout = "2006-01-02T03:04:05.000-0700"

// formatTimestamp renders an instant for a service message, normalized
// to UTC.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
