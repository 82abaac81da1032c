package profile

import "time"

// Profile is a user's onboarding profile and cash plan.
type Profile struct {
	UserID               string    `json:"user_id"`
	Age                  *int      `json:"age,omitempty"`
	InvestmentExperience *string   `json:"investment_experience,omitempty"`
	RiskTolerance        *int      `json:"risk_tolerance,omitempty"`
	InvestmentGoals      []string  `json:"investment_goals"`
	InitialInvestment    float64   `json:"initial_investment"`
	MonthlyBudget        float64   `json:"monthly_budget"`
	OnboardingStep       int       `json:"onboarding_step"`
	OnboardingCompleted  bool      `json:"onboarding_completed"`
	CreatedAt            time.Time `json:"created_at"`
}

// Preferences holds sector and region preferences collected during
// onboarding.
type Preferences struct {
	UserID             string   `json:"user_id"`
	PreferredSectors   []string `json:"preferred_sectors"`
	PreferredCountries []string `json:"preferred_countries"`
	ESGPreference      *bool    `json:"esg_preference,omitempty"`
}

// OnboardingStatus is the combined view the UI polls during signup.
type OnboardingStatus struct {
	Completed   bool         `json:"completed"`
	CurrentStep int          `json:"current_step"`
	Profile     *Profile     `json:"profile"`
	Preferences *Preferences `json:"preferences"`
}

// ProgressUpdate carries the partial data saved at one onboarding step.
// Nil fields are left untouched.
type ProgressUpdate struct {
	Age                  *int      `json:"age"`
	InvestmentExperience *string   `json:"experience"`
	RiskTolerance        *int      `json:"risk_tolerance"`
	InitialInvestment    *float64  `json:"initial_investment"`
	MonthlyBudget        *float64  `json:"monthly_budget"`
	InvestmentGoals      *[]string `json:"investment_goals"`
	Sectors              *[]string `json:"sectors"`
	Countries            *[]string `json:"countries"`
	ESGPreference        *bool     `json:"esg_preference"`
}
