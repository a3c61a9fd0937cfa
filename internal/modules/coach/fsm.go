// Package coach drives a guided goal-creation conversation and falls back
// to free-form advice through the text generation collaborator. The
// conversation is an explicit state machine: every step takes the stored
// state and the user's message, and returns the next state plus a reply.
// Nothing about the dialogue lives in process memory.
package coach

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
)

// Step identifies where a goal-creation dialogue stands.
type Step string

const (
	StepIdle               Step = "IDLE"
	StepCollectingName     Step = "COLLECTING_NAME"
	StepCollectingAmount   Step = "COLLECTING_AMOUNT"
	StepCollectingDeadline Step = "COLLECTING_DEADLINE"
	StepCollectingPriority Step = "COLLECTING_PRIORITY"
	StepConfirming         Step = "CONFIRMING"
)

// State is the full conversation state. It is a value: Advance never
// mutates its input, it returns the successor.
type State struct {
	Step         Step                `json:"step"`
	GoalName     string              `json:"goal_name,omitempty"`
	TargetAmount decimal.Decimal     `json:"target_amount,omitempty"`
	Deadline     string              `json:"deadline,omitempty"` // YYYY-MM-DD
	Priority     domain.GoalPriority `json:"priority,omitempty"`
	Category     domain.GoalCategory `json:"category,omitempty"`
}

// NewState returns the idle starting state.
func NewState() State {
	return State{Step: StepIdle}
}

// Reply is what the coach says back, plus control signals for the caller.
type Reply struct {
	Message string
	// CreateGoal is set when the user confirmed: the caller should create
	// the goal from the returned state and reset the conversation.
	CreateGoal bool
	// FreeChat is set when the message is not part of a goal dialogue and
	// should go to the advice generator instead.
	FreeChat bool
}

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentCreateGoal Intent = "CREATE_GOAL"
	IntentCancel     Intent = "CANCEL"
	IntentAffirm     Intent = "AFFIRM"
	IntentDeny       Intent = "DENY"
	IntentOther      Intent = "OTHER"
)

// IntentClassifier decides what a message is trying to do. The strategy is
// pluggable; the default is keyword matching.
type IntentClassifier interface {
	Classify(message string) Intent
}

// FSM advances goal-creation conversations.
type FSM struct {
	classifier IntentClassifier
}

// NewFSM creates a conversation state machine with the given classifier.
func NewFSM(classifier IntentClassifier) *FSM {
	return &FSM{classifier: classifier}
}

// Advance computes the successor state and reply for one user message.
// Pure over (state, message, today). Cancel works from any step.
func (f *FSM) Advance(state State, message string, today time.Time) (State, Reply) {
	intent := f.classifier.Classify(message)

	if intent == IntentCancel && state.Step != StepIdle {
		return NewState(), Reply{Message: "No problem, I've dropped that goal. Anything else I can help with?"}
	}

	switch state.Step {
	case StepIdle:
		if intent == IntentCreateGoal {
			next := NewState()
			next.Step = StepCollectingName
			return next, Reply{Message: "Great, let's set up a new goal. What are you saving for?"}
		}
		return state, Reply{FreeChat: true}

	case StepCollectingName:
		name := strings.TrimSpace(message)
		if name == "" {
			return state, Reply{Message: "I didn't catch that. What should we call this goal?"}
		}
		state.GoalName = name
		state.Category = guessCategory(name)
		state.Step = StepCollectingAmount
		return state, Reply{Message: fmt.Sprintf("Saving for %q, got it. How much do you need in total?", name)}

	case StepCollectingAmount:
		amount, ok := parseAmount(message)
		if !ok || !amount.IsPositive() {
			return state, Reply{Message: "I need a positive amount, for example 1500 or 1500.500."}
		}
		state.TargetAmount = amount
		state.Step = StepCollectingDeadline
		return state, Reply{Message: fmt.Sprintf("%s it is. When do you want to reach it? Give me a date like 2027-06-01.",
			domain.FormatAmount(amount))}

	case StepCollectingDeadline:
		deadline, ok := parseDeadline(message, today)
		if !ok {
			return state, Reply{Message: "I couldn't read that as a date. Try the YYYY-MM-DD form, for example 2027-06-01."}
		}
		if !deadline.After(today) {
			return state, Reply{Message: "That date has already passed. When in the future should we aim for?"}
		}
		state.Deadline = deadline.Format(time.DateOnly)
		state.Step = StepCollectingPriority
		return state, Reply{Message: "And how important is this one: low, medium or high priority?"}

	case StepCollectingPriority:
		priority, ok := parsePriority(message)
		if !ok {
			return state, Reply{Message: "Just tell me low, medium or high."}
		}
		state.Priority = priority
		state.Step = StepConfirming
		return state, Reply{Message: fmt.Sprintf(
			"Here's the plan: save %s for %q by %s, %s priority. Shall I create it?",
			domain.FormatAmount(state.TargetAmount), state.GoalName, state.Deadline,
			strings.ToLower(string(priority)))}

	case StepConfirming:
		switch intent {
		case IntentAffirm:
			return NewState(), Reply{CreateGoal: true}
		case IntentDeny:
			return NewState(), Reply{Message: "Okay, I've discarded it. We can start over whenever you like."}
		default:
			return state, Reply{Message: "Should I create the goal? A simple yes or no works."}
		}

	default:
		// Unknown persisted step, likely from an older version. Reset.
		return NewState(), Reply{FreeChat: true}
	}
}

// KeywordIntentClassifier is the default strategy: case-insensitive phrase
// matching, cancel checked before creation.
type KeywordIntentClassifier struct{}

// Classify implements IntentClassifier.
func (KeywordIntentClassifier) Classify(message string) Intent {
	m := strings.ToLower(strings.TrimSpace(message))
	switch {
	case containsAny(m, "cancel", "never mind", "nevermind", "stop", "forget it"):
		return IntentCancel
	case containsAny(m, "new goal", "create a goal", "create goal", "add a goal", "add goal", "save for", "saving for", "start a goal", "set up a goal"):
		return IntentCreateGoal
	case m == "yes" || m == "y" || containsAny(m, "yes please", "yep", "yeah", "sure", "go ahead", "do it", "confirm"):
		return IntentAffirm
	case m == "no" || m == "n" || containsAny(m, "nope", "don't", "do not"):
		return IntentDeny
	default:
		return IntentOther
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var amountPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

func parseAmount(message string) (decimal.Decimal, bool) {
	match := amountPattern.FindString(strings.ReplaceAll(message, ",", ""))
	if match == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

var inMonthsPattern = regexp.MustCompile(`in\s+(\d+)\s+months?`)

func parseDeadline(message string, today time.Time) (time.Time, bool) {
	m := strings.ToLower(strings.TrimSpace(message))

	if match := inMonthsPattern.FindStringSubmatch(m); match != nil {
		var n int
		if _, err := fmt.Sscanf(match[1], "%d", &n); err == nil && n > 0 {
			return domain.AddMonths(today, n), true
		}
		return time.Time{}, false
	}

	if date, err := time.Parse(time.DateOnly, m); err == nil {
		return date, true
	}
	return time.Time{}, false
}

func parsePriority(message string) (domain.GoalPriority, bool) {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "high"):
		return domain.PriorityHigh, true
	case strings.Contains(m, "med"):
		return domain.PriorityMedium, true
	case strings.Contains(m, "low"):
		return domain.PriorityLow, true
	default:
		return "", false
	}
}

func guessCategory(name string) domain.GoalCategory {
	n := strings.ToLower(name)
	switch {
	case containsAny(n, "trip", "travel", "holiday", "vacation", "flight"):
		return domain.GoalTravel
	case containsAny(n, "car", "bike", "motorcycle", "vehicle"):
		return domain.GoalVehicle
	case containsAny(n, "house", "apartment", "flat", "property", "down payment"):
		return domain.GoalProperty
	case containsAny(n, "school", "university", "course", "degree", "tuition", "study"):
		return domain.GoalEducation
	case containsAny(n, "emergency", "rainy day", "buffer"):
		return domain.GoalEmergency
	default:
		return domain.GoalSavings
	}
}
