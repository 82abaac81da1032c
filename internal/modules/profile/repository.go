// Package profile stores user onboarding profiles, investment
// preferences and the cash schedule the accrual calculator reads.
package profile

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/domain"
)

// ErrProfileNotFound is returned when a user has no profile row yet.
// Callers that can degrade (cash accrual) treat it as a zero schedule.
var ErrProfileNotFound = errors.New("profile not found")

// Repository handles profile and preference database operations.
// Both tables live in portfolio.db.
type Repository struct {
	portfolioDB *sql.DB
	log         zerolog.Logger
}

// NewRepository creates a new profile repository
func NewRepository(portfolioDB *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		portfolioDB: portfolioDB,
		log:         log.With().Str("repo", "profile").Logger(),
	}
}

// Get returns the user's profile, or ErrProfileNotFound.
func (r *Repository) Get(userID string) (Profile, error) {
	query := `SELECT user_id, age, investment_experience, risk_tolerance, investment_goals,
		initial_investment, monthly_budget, onboarding_step, onboarding_completed, created_at
		FROM user_profiles WHERE user_id = ?`

	var (
		p         Profile
		goals     sql.NullString
		completed int
		createdAt int64
	)
	err := r.portfolioDB.QueryRow(query, userID).Scan(
		&p.UserID,
		&p.Age,
		&p.InvestmentExperience,
		&p.RiskTolerance,
		&goals,
		&p.InitialInvestment,
		&p.MonthlyBudget,
		&p.OnboardingStep,
		&completed,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, fmt.Errorf("failed to query profile: %w", err)
	}

	p.OnboardingCompleted = completed != 0
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	if goals.Valid && goals.String != "" {
		if err := json.Unmarshal([]byte(goals.String), &p.InvestmentGoals); err != nil {
			return Profile{}, fmt.Errorf("failed to decode investment goals: %w", err)
		}
	}

	return p, nil
}

// Upsert inserts or updates the user's profile row.
func (r *Repository) Upsert(p Profile) error {
	goals, err := json.Marshal(p.InvestmentGoals)
	if err != nil {
		return fmt.Errorf("failed to encode investment goals: %w", err)
	}

	query := `INSERT INTO user_profiles
		(user_id, age, investment_experience, risk_tolerance, investment_goals,
		 initial_investment, monthly_budget, onboarding_step, onboarding_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			age = excluded.age,
			investment_experience = excluded.investment_experience,
			risk_tolerance = excluded.risk_tolerance,
			investment_goals = excluded.investment_goals,
			initial_investment = excluded.initial_investment,
			monthly_budget = excluded.monthly_budget,
			onboarding_step = excluded.onboarding_step,
			onboarding_completed = excluded.onboarding_completed`

	completed := 0
	if p.OnboardingCompleted {
		completed = 1
	}

	_, err = r.portfolioDB.Exec(
		query,
		p.UserID,
		p.Age,
		p.InvestmentExperience,
		p.RiskTolerance,
		string(goals),
		p.InitialInvestment,
		p.MonthlyBudget,
		p.OnboardingStep,
		completed,
		p.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// SetCompleted marks onboarding as finished for the user.
func (r *Repository) SetCompleted(userID string, finalStep int) error {
	query := `UPDATE user_profiles SET onboarding_completed = 1, onboarding_step = ?
		WHERE user_id = ?`

	result, err := r.portfolioDB.Exec(query, finalStep, userID)
	if err != nil {
		return fmt.Errorf("failed to complete onboarding: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check completion update: %w", err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// GetPreferences returns the user's investment preferences, or
// ErrProfileNotFound when none were saved.
func (r *Repository) GetPreferences(userID string) (Preferences, error) {
	query := `SELECT user_id, preferred_sectors, preferred_countries, esg_preference
		FROM investment_preferences WHERE user_id = ?`

	var (
		prefs     Preferences
		sectors   sql.NullString
		countries sql.NullString
		esg       sql.NullInt64
	)
	err := r.portfolioDB.QueryRow(query, userID).Scan(&prefs.UserID, &sectors, &countries, &esg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Preferences{}, ErrProfileNotFound
		}
		return Preferences{}, fmt.Errorf("failed to query preferences: %w", err)
	}

	if sectors.Valid && sectors.String != "" {
		if err := json.Unmarshal([]byte(sectors.String), &prefs.PreferredSectors); err != nil {
			return Preferences{}, fmt.Errorf("failed to decode sectors: %w", err)
		}
	}
	if countries.Valid && countries.String != "" {
		if err := json.Unmarshal([]byte(countries.String), &prefs.PreferredCountries); err != nil {
			return Preferences{}, fmt.Errorf("failed to decode countries: %w", err)
		}
	}
	if esg.Valid {
		v := esg.Int64 != 0
		prefs.ESGPreference = &v
	}

	return prefs, nil
}

// UpsertPreferences inserts or updates the user's preference row.
func (r *Repository) UpsertPreferences(prefs Preferences) error {
	sectors, err := json.Marshal(prefs.PreferredSectors)
	if err != nil {
		return fmt.Errorf("failed to encode sectors: %w", err)
	}
	countries, err := json.Marshal(prefs.PreferredCountries)
	if err != nil {
		return fmt.Errorf("failed to encode countries: %w", err)
	}

	var esg interface{}
	if prefs.ESGPreference != nil {
		if *prefs.ESGPreference {
			esg = 1
		} else {
			esg = 0
		}
	}

	query := `INSERT INTO investment_preferences
		(user_id, preferred_sectors, preferred_countries, esg_preference)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			preferred_sectors = excluded.preferred_sectors,
			preferred_countries = excluded.preferred_countries,
			esg_preference = excluded.esg_preference`

	if _, err := r.portfolioDB.Exec(query, prefs.UserID, string(sectors), string(countries), esg); err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return nil
}

// GetCashSchedule extracts the accrual inputs from the profile row.
func (r *Repository) GetCashSchedule(userID string) (domain.CashSchedule, error) {
	p, err := r.Get(userID)
	if err != nil {
		return domain.CashSchedule{}, err
	}

	return domain.CashSchedule{
		CreatedAt:         p.CreatedAt,
		InitialInvestment: p.InitialInvestment,
		MonthlyBudget:     p.MonthlyBudget,
	}, nil
}
