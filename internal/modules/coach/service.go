package coach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/modules/goals"
	"github.com/pathwise/pathwise/internal/modules/profile"
)

// maxHistoryLines caps how much transcript the history endpoint returns.
const maxHistoryLines = 100

// GoalCreator creates goals on the user's behalf once a dialogue confirms.
type GoalCreator interface {
	Create(userID uuid.UUID, in goals.Input) (*goals.Goal, error)
}

// SnapshotSource provides the financial snapshot used to ground free chat.
// Implemented by the profile service.
type SnapshotSource interface {
	SnapshotFor(userID uuid.UUID) (profile.FinancialSnapshot, error)
}

// ChatResult is the outcome of one coach exchange.
type ChatResult struct {
	Reply       string
	GoalCreated *goals.Goal // non-nil when the exchange created a goal
}

// Service runs coach conversations: the goal dialogue through the FSM,
// everything else through the text generator.
type Service struct {
	fsm       *FSM
	sessions  SessionStore
	advice    *AdviceRepository
	goals     GoalCreator
	snapshots SnapshotSource
	generator domain.TextGenerator
	now       func() time.Time
	log       zerolog.Logger
}

// NewService creates a new coach service.
func NewService(
	fsm *FSM,
	sessions SessionStore,
	advice *AdviceRepository,
	goalCreator GoalCreator,
	snapshots SnapshotSource,
	generator domain.TextGenerator,
	logger zerolog.Logger,
) *Service {
	return &Service{
		fsm:       fsm,
		sessions:  sessions,
		advice:    advice,
		goals:     goalCreator,
		snapshots: snapshots,
		generator: generator,
		now:       time.Now,
		log:       logger.With().Str("service", "coach").Logger(),
	}
}

// Chat processes one user message and returns the coach's reply. The
// transcript is recorded for both sides of the exchange.
func (s *Service) Chat(ctx context.Context, userID uuid.UUID, message string) (*ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.NewValidationError("message", "must not be empty")
	}

	state, err := s.sessions.Load(userID)
	if err != nil {
		return nil, err
	}

	next, reply := s.fsm.Advance(state, message, s.now())

	result := &ChatResult{Reply: reply.Message}
	switch {
	case reply.CreateGoal:
		goal, createErr := s.createFromState(userID, state)
		if createErr != nil {
			// Keep the confirmation step so the user can adjust and retry.
			return nil, createErr
		}
		result.GoalCreated = goal
		result.Reply = fmt.Sprintf("Done. %q is set up with a target of %s by %s. You can see it under your goals.",
			goal.Name, domain.FormatAmount(goal.TargetAmount), goal.Deadline.Format(time.DateOnly))
	case reply.FreeChat:
		answer, genErr := s.freeChat(ctx, userID, message)
		if genErr != nil {
			return nil, genErr
		}
		result.Reply = answer
	}

	if err := s.sessions.Save(userID, next); err != nil {
		return nil, err
	}
	if err := s.advice.Append(userID, RoleUser, message); err != nil {
		return nil, err
	}
	if err := s.advice.Append(userID, RoleAssistant, result.Reply); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("user_id", userID.String()).
		Str("step", string(next.Step)).
		Bool("goal_created", result.GoalCreated != nil).
		Msg("Coach exchange completed")
	return result, nil
}

// History returns the user's transcript, oldest first.
func (s *Service) History(userID uuid.UUID) ([]AdviceEntry, error) {
	return s.advice.History(userID, maxHistoryLines)
}

// Reset abandons any in-flight goal dialogue.
func (s *Service) Reset(userID uuid.UUID) error {
	return s.sessions.Clear(userID)
}

func (s *Service) createFromState(userID uuid.UUID, state State) (*goals.Goal, error) {
	deadline, err := time.Parse(time.DateOnly, state.Deadline)
	if err != nil {
		return nil, domain.NewValidationError("deadline", "conversation captured an unreadable date")
	}
	return s.goals.Create(userID, goals.Input{
		Name:         state.GoalName,
		Category:     state.Category,
		TargetAmount: state.TargetAmount,
		Deadline:     deadline,
		Priority:     state.Priority,
	})
}

func (s *Service) freeChat(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	snapshot, err := s.snapshots.SnapshotFor(userID)
	if err != nil {
		return "", err
	}

	prompt := buildAdvicePrompt(snapshot, message)
	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate advice: %w", err)
	}
	return answer, nil
}

func buildAdvicePrompt(snapshot profile.FinancialSnapshot, message string) string {
	var b strings.Builder
	b.WriteString("You are a pragmatic personal finance coach. Answer briefly and concretely.\n\n")
	b.WriteString("The user's current situation:\n")
	fmt.Fprintf(&b, "- Monthly salary: %s\n", domain.FormatAmount(snapshot.Salary))
	fmt.Fprintf(&b, "- Monthly expenses: %s\n", domain.FormatAmount(snapshot.TotalExpenses))
	fmt.Fprintf(&b, "- Disposable income: %s\n", domain.FormatAmount(snapshot.DisposableIncome))
	fmt.Fprintf(&b, "- Committed to goals: %s per month\n", domain.FormatAmount(snapshot.TotalMonthlyCommitment))
	if snapshot.SavingsRatePercent != nil {
		fmt.Fprintf(&b, "- Savings rate: %.1f%% of disposable income\n", *snapshot.SavingsRatePercent)
	}
	if snapshot.WarningMessage != "" {
		fmt.Fprintf(&b, "- Warning: %s\n", snapshot.WarningMessage)
	}
	b.WriteString("\nUser question: ")
	b.WriteString(message)
	return b.String()
}
