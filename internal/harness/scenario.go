package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios validate the navigation state machine by executing a flow
// of discrete events and asserting on the resulting trace and final
// state.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Tabs declares the tab set.
	Tabs []TabSpec `yaml:"tabs"`

	// InitialTab names the tab selected at construction.
	InitialTab string `yaml:"initial_tab"`

	// PrimaryTab names the "home" tab for tier-2 back resolution.
	PrimaryTab string `yaml:"primary_tab"`

	// Setup contains steps executed before the main flow to establish
	// initial state. Setup steps are assumed to succeed and are not
	// traced.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow contains the main test flow - navigation events with
	// optional expected outcomes. Each flow step appends one
	// TraceEvent.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final state after the flow completes.
	// Supported types: selected_tab, stack_depth, stack_routes,
	// can_go_back.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// TabSpec declares one tab of the scenario's tab set.
type TabSpec struct {
	// ID uniquely identifies the tab.
	ID string `yaml:"id"`

	// Root is the tab's root route.
	Root string `yaml:"root"`

	// Label is optional display metadata.
	Label string `yaml:"label,omitempty"`
}

// Step is one navigation operation in a setup or flow section.
type Step struct {
	// Op names the operation: "navigate", "back", "select_tab",
	// "reset_tab" or "clear_tab".
	Op string `yaml:"op"`

	// Route is the destination route (navigate, reset_tab).
	Route string `yaml:"route,omitempty"`

	// Tab is the targeted tab id (select_tab, reset_tab, clear_tab).
	// Empty targets the selected tab where the operation allows it.
	Tab string `yaml:"tab,omitempty"`

	// Expect specifies the expected outcome of this step.
	// If nil, the step's outcome is not validated.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of one flow step.
// Only the specified fields are validated.
type ExpectClause struct {
	// Consumed is the expected back-event consumption result.
	Consumed *bool `yaml:"consumed,omitempty"`

	// Selected is the expected selected tab id after the step.
	Selected string `yaml:"selected,omitempty"`

	// Depth is the expected selected tab's stack depth after the step.
	Depth *int `yaml:"depth,omitempty"`
}

// Assertion validates the final navigation state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "selected_tab": the selected tab id equals Tab
	// - "stack_depth": tab Tab's stack depth equals Depth
	// - "stack_routes": tab Tab's route list equals Routes exactly
	// - "can_go_back": the selected tab's CanGoBack equals Value
	Type string `yaml:"type"`

	// Tab is the targeted tab id (selected_tab, stack_depth,
	// stack_routes).
	Tab string `yaml:"tab,omitempty"`

	// Depth is the expected stack depth (stack_depth).
	Depth int `yaml:"depth,omitempty"`

	// Routes is the expected route list, bottom first (stack_routes).
	Routes []string `yaml:"routes,omitempty"`

	// Value is the expected boolean (can_go_back).
	Value bool `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertSelectedTab = "selected_tab"
	AssertStackDepth  = "stack_depth"
	AssertStackRoutes = "stack_routes"
	AssertCanGoBack   = "can_go_back"
)

// Step operation constants.
const (
	OpNavigate  = "navigate"
	OpBack      = "back"
	OpSelectTab = "select_tab"
	OpResetTab  = "reset_tab"
	OpClearTab  = "clear_tab"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs
	// "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks structural requirements before execution.
// Tab-set semantics (duplicate ids, unknown initial/primary) are left
// to tabnav.NewConfig, which aggregates those violations itself.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow must contain at least one step")
	}
	for i, step := range s.Setup {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
		if step.Expect != nil {
			return fmt.Errorf("setup[%d]: expect clauses are only valid in flow steps", i)
		}
	}
	for i, step := range s.Flow {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
	}
	for i, a := range s.Assertions {
		switch a.Type {
		case AssertSelectedTab, AssertStackDepth, AssertStackRoutes, AssertCanGoBack:
		default:
			return fmt.Errorf("assertions[%d]: unknown type %q", i, a.Type)
		}
	}
	return nil
}

func validateStep(step Step) error {
	switch step.Op {
	case OpNavigate:
		if step.Route == "" {
			return fmt.Errorf("navigate requires a route")
		}
	case OpBack, OpClearTab:
		// No required fields.
	case OpSelectTab:
		if step.Tab == "" {
			return fmt.Errorf("select_tab requires a tab")
		}
	case OpResetTab:
		if step.Tab == "" || step.Route == "" {
			return fmt.Errorf("reset_tab requires a tab and a route")
		}
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}
