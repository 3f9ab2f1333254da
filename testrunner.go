package sections

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Index  int     `json:"index,omitempty"`
	Jump   bool    `json:"jump,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"wheel": true, "swipe": true, "scroll": true, "goto": true,
	"wait": true, "expect": true,
}

// TestRunner sequences injected input across frames for automated runs of a
// surface. Attach to a Controller via SetTestRunner.
//
// Actions: "wheel" (dx, dy), "swipe" (fromX, fromY, toX, toY, frames),
// "scroll" (delta), "goto" (index, jump), "wait" (frames) and
// "expect" (index), which records a failure when the current section
// differs.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Controller via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner. Its step method is called from
// Controller.Update before injected input is processed.
func (c *Controller) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the messages of failed "expect" steps.
func (r *TestRunner) Failures() []string {
	return r.failures
}

// step advances the test runner by one frame. Called from Controller.Update.
func (r *TestRunner) step(c *Controller) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "wheel":
		c.InjectWheel(st.DX, st.DY)
	case "swipe":
		c.InjectSwipe(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "scroll":
		c.InjectScroll(st.Delta)
	case "goto":
		c.InjectRequest(st.Index, st.Jump)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		if got := c.Current(); got != st.Index {
			r.failures = append(r.failures,
				fmt.Sprintf("step %d: current section = %d, want %d", r.cursor-1, got, st.Index))
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}
