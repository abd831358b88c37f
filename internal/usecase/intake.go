package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/nutriguide/backend/internal/domain"
	"github.com/nutriguide/backend/internal/logger"
)

// SurveySubmission is one completed health survey: profile attributes
// plus the selection names picked across all three groups.
type SurveySubmission struct {
	Age          int      `json:"age"`
	Gender       string   `json:"gender"`
	StressLevel  string   `json:"stressLevel"`
	SleepQuality int      `json:"sleepQuality"`
	DietHabits   []string `json:"dietHabits"`
	Selections   []string `json:"selections"`
}

// IntakeService persists a survey submission as an immutable profile and
// its choices. It owns nothing of the scoring pipeline; it only produces
// the user id the engine runs on.
type IntakeService struct {
	store domain.Store
	log   *logger.Logger
}

// NewIntakeService creates a new intake service
func NewIntakeService(store domain.Store, log *logger.Logger) *IntakeService {
	return &IntakeService{
		store: store,
		log:   log.With("service", "IntakeService"),
	}
}

// Submit validates and stores one submission, returning the new user id.
// Unknown selection names and habit tags are dropped with a warning;
// the survey form is versioned separately from the reference catalog and
// may briefly reference options the catalog no longer carries.
func (s *IntakeService) Submit(ctx context.Context, submission SurveySubmission) (uint, error) {
	if err := validateSubmission(submission); err != nil {
		return 0, err
	}

	habits := make([]string, 0, len(submission.DietHabits))
	for _, tag := range submission.DietHabits {
		switch tag {
		case domain.HabitLackVeggies, domain.HabitGreasyFood, domain.HabitInstantFood:
			habits = append(habits, tag)
		default:
			s.log.Warn("unknown diet habit tag dropped", "tag", tag)
		}
	}

	var userID uint
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		profile := &domain.UserProfile{
			Age:          submission.Age,
			Gender:       submission.Gender,
			StressLevel:  submission.StressLevel,
			SleepQuality: submission.SleepQuality,
			DietHabits:   strings.Join(habits, ","),
		}
		if err := tx.CreateProfile(ctx, profile); err != nil {
			return err
		}

		if len(submission.Selections) > 0 {
			options, err := tx.SelectionsByNames(ctx, submission.Selections)
			if err != nil {
				return err
			}
			if len(options) < len(submission.Selections) {
				s.log.Warn("some selections not found in catalog",
					"requested", len(submission.Selections), "resolved", len(options))
			}
			selectionIDs := make([]uint, 0, len(options))
			for _, option := range options {
				selectionIDs = append(selectionIDs, option.ID)
			}
			if len(selectionIDs) > 0 {
				if err := tx.AddChoices(ctx, profile.ID, selectionIDs); err != nil {
					return err
				}
			}
		}

		userID = profile.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("survey submission stored", "userId", userID)
	return userID, nil
}

func validateSubmission(submission SurveySubmission) error {
	switch submission.StressLevel {
	case domain.StressLow, domain.StressMedium, domain.StressHigh:
	default:
		return fmt.Errorf("%w: stress level must be one of %s/%s/%s",
			domain.ErrInvalidSubmission, domain.StressLow, domain.StressMedium, domain.StressHigh)
	}

	if submission.SleepQuality < 1 || submission.SleepQuality > 5 {
		return fmt.Errorf("%w: sleep quality must be between 1 and 5", domain.ErrInvalidSubmission)
	}

	if submission.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", domain.ErrInvalidSubmission)
	}

	return nil
}
