package profile

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/clientdata"
	"github.com/itamarw/nestegg/internal/domain"
)

// finalOnboardingStep is the step recorded when onboarding completes.
const finalOnboardingStep = 10

// cachedStatus is the msgpack payload cached in client_data.db.
type cachedStatus struct {
	Completed bool `msgpack:"completed"`
}

// Service manages user profiles, onboarding progress and the cached
// completion flag.
type Service struct {
	repo      *Repository
	cache     *clientdata.Repository
	statusTTL time.Duration
	clock     domain.Clock
	log       zerolog.Logger
}

// NewService creates a new profile service.
// statusTTL bounds how long the completion flag stays cached; non-positive
// values fall back to the default.
func NewService(repo *Repository, cache *clientdata.Repository, statusTTL time.Duration, clock domain.Clock, log zerolog.Logger) *Service {
	if statusTTL <= 0 {
		statusTTL = clientdata.TTLOnboardingStatus
	}
	return &Service{
		repo:      repo,
		cache:     cache,
		statusTTL: statusTTL,
		clock:     clock,
		log:       log.With().Str("service", "profile").Logger(),
	}
}

// Status returns the combined onboarding view. Missing rows degrade to
// nil sub-objects, never errors.
func (s *Service) Status(userID string) (OnboardingStatus, error) {
	status := OnboardingStatus{}

	p, err := s.repo.Get(userID)
	switch {
	case err == nil:
		status.Completed = p.OnboardingCompleted
		status.CurrentStep = p.OnboardingStep
		status.Profile = &p
	case errors.Is(err, ErrProfileNotFound):
		// New user, nothing saved yet.
	default:
		return OnboardingStatus{}, fmt.Errorf("loading profile: %w", err)
	}

	prefs, err := s.repo.GetPreferences(userID)
	switch {
	case err == nil:
		status.Preferences = &prefs
	case errors.Is(err, ErrProfileNotFound):
	default:
		return OnboardingStatus{}, fmt.Errorf("loading preferences: %w", err)
	}

	return status, nil
}

// SaveProgress persists the partial data from one onboarding step and
// invalidates the cached completion flag.
func (s *Service) SaveProgress(userID string, step int, update ProgressUpdate) error {
	if step < 0 || step > finalOnboardingStep {
		return domain.NewValidationError("step", "must be between 0 and 10")
	}

	p, err := s.repo.Get(userID)
	if errors.Is(err, ErrProfileNotFound) {
		p = Profile{UserID: userID, CreatedAt: s.clock.Now()}
	} else if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	p.OnboardingStep = step
	if update.Age != nil {
		p.Age = update.Age
	}
	if update.InvestmentExperience != nil {
		p.InvestmentExperience = update.InvestmentExperience
	}
	if update.RiskTolerance != nil {
		p.RiskTolerance = update.RiskTolerance
	}
	if update.InitialInvestment != nil {
		if *update.InitialInvestment < 0 {
			return domain.NewValidationError("initial_investment", "must be non-negative")
		}
		p.InitialInvestment = *update.InitialInvestment
	}
	if update.MonthlyBudget != nil {
		if *update.MonthlyBudget < 0 {
			return domain.NewValidationError("monthly_budget", "must be non-negative")
		}
		p.MonthlyBudget = *update.MonthlyBudget
	}
	if update.InvestmentGoals != nil {
		p.InvestmentGoals = *update.InvestmentGoals
	}

	if err := s.repo.Upsert(p); err != nil {
		return err
	}

	if update.Sectors != nil || update.Countries != nil || update.ESGPreference != nil {
		prefs, err := s.repo.GetPreferences(userID)
		if errors.Is(err, ErrProfileNotFound) {
			prefs = Preferences{UserID: userID}
		} else if err != nil {
			return fmt.Errorf("loading preferences: %w", err)
		}

		if update.Sectors != nil {
			prefs.PreferredSectors = *update.Sectors
		}
		if update.Countries != nil {
			prefs.PreferredCountries = *update.Countries
		}
		if update.ESGPreference != nil {
			prefs.ESGPreference = update.ESGPreference
		}

		if err := s.repo.UpsertPreferences(prefs); err != nil {
			return err
		}
	}

	s.invalidateStatus(userID)
	return nil
}

// Complete marks onboarding as finished and invalidates the cached flag.
func (s *Service) Complete(userID string) error {
	if err := s.repo.SetCompleted(userID, finalOnboardingStep); err != nil {
		return err
	}
	s.invalidateStatus(userID)
	return nil
}

// HasCompleted reports whether the user finished onboarding, consulting
// the TTL cache before the database. Missing profiles count as not
// completed.
func (s *Service) HasCompleted(userID string) (bool, error) {
	var cached cachedStatus
	fresh, err := s.cache.GetIfFresh("onboarding_status", userID, &cached)
	if err != nil {
		s.log.Warn().Err(err).Msg("Onboarding status cache read failed")
	} else if fresh {
		return cached.Completed, nil
	}

	p, err := s.repo.Get(userID)
	if errors.Is(err, ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading profile: %w", err)
	}

	if err := s.cache.Store("onboarding_status", userID,
		cachedStatus{Completed: p.OnboardingCompleted}, s.statusTTL); err != nil {
		s.log.Warn().Err(err).Msg("Onboarding status cache write failed")
	}

	return p.OnboardingCompleted, nil
}

// GetCashSchedule exposes the accrual inputs for the aggregator.
func (s *Service) GetCashSchedule(userID string) (domain.CashSchedule, error) {
	return s.repo.GetCashSchedule(userID)
}

func (s *Service) invalidateStatus(userID string) {
	if err := s.cache.Invalidate("onboarding_status", userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Failed to invalidate onboarding status cache")
	}
}
