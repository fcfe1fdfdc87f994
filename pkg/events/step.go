package events

// HookType identifies where a hook runs relative to the case or step it
// wraps.
type HookType int

const (
	// BeforeHook runs before a test case.
	BeforeHook HookType = iota
	// AfterHook runs after a test case.
	AfterHook
	// BeforeStepHook runs before each step of a test case.
	BeforeStepHook
	// AfterStepHook runs after each step of a test case.
	AfterStepHook
)

// String returns the canonical name of the hook type.
func (h HookType) String() string {
	switch h {
	case BeforeHook:
		return "BEFORE"
	case AfterHook:
		return "AFTER"
	case BeforeStepHook:
		return "BEFORE_STEP"
	case AfterStepHook:
		return "AFTER_STEP"
	default:
		return "UNKNOWN"
	}
}

// Step is the sealed union of the two step kinds a test case executes.
type Step interface {
	step()
}

// PickleStep is a concrete step compiled from a feature file, with a
// known source position and literal text.
type PickleStep struct {
	// URI identifies the feature file the step comes from.
	URI string

	// Line is the source line of the step.
	Line int64

	// Text is the step text after the keyword.
	Text string
}

// HookStep is a fixture-style step with no source line, only an opaque
// code-location string pointing at the hook implementation.
type HookStep struct {
	// Type is the hook granularity and position.
	Type HookType

	// CodeLocation is the raw implementation reference, e.g.
	// "com.example.Steps.before(io.cucumber.java.Scenario)".
	CodeLocation string
}

func (PickleStep) step() {}
func (HookStep) step()   {}
