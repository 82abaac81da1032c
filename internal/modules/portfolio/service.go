package portfolio

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/clients/marketdata"
	"github.com/itamarw/nestegg/internal/domain"
	"github.com/itamarw/nestegg/internal/modules/ledger"
)

// Ledger exposes the position and transaction views the aggregator reads.
type Ledger interface {
	OpenPositions(userID string) ([]domain.Position, error)
	Transactions(userID string) ([]domain.ClosedTransaction, error)
}

// ScheduleProvider supplies a user's cash schedule. A missing profile is
// reported as an error; the aggregator degrades to a zero schedule.
type ScheduleProvider interface {
	GetCashSchedule(userID string) (domain.CashSchedule, error)
}

// Service computes portfolio snapshots and history on top of the ledger.
type Service struct {
	ledger    Ledger
	feed      marketdata.PriceFeed
	schedules ScheduleProvider
	clock     domain.Clock
	log       zerolog.Logger
}

func NewService(l Ledger, feed marketdata.PriceFeed, schedules ScheduleProvider, clock domain.Clock, log zerolog.Logger) *Service {
	return &Service{
		ledger:    l,
		feed:      feed,
		schedules: schedules,
		clock:     clock,
		log:       log.With().Str("service", "portfolio").Logger(),
	}
}

// Snapshot returns the user's open positions with prices refreshed from
// the market data feed. Positions whose symbol has no quote keep their
// purchase price.
func (s *Service) Snapshot(userID string) ([]domain.Position, error) {
	positions, err := s.ledger.OpenPositions(userID)
	if err != nil {
		return nil, fmt.Errorf("loading positions: %w", err)
	}
	if len(positions) == 0 {
		return positions, nil
	}

	symbols := make([]string, 0, len(positions))
	for _, p := range positions {
		symbols = append(symbols, p.Symbol)
	}

	prices, err := s.feed.GetPrices(symbols)
	if err != nil {
		// Stale valuations beat no valuations. RefreshPrices falls
		// back to purchase price when the map is empty.
		s.log.Warn().Err(err).Msg("Price refresh failed, using fallback prices")
		prices = nil
	}

	return ledger.RefreshPrices(positions, prices), nil
}

// Stats aggregates the full portfolio view for a user.
func (s *Service) Stats(userID string) (Stats, error) {
	positions, err := s.Snapshot(userID)
	if err != nil {
		return Stats{}, err
	}

	transactions, err := s.ledger.Transactions(userID)
	if err != nil {
		return Stats{}, fmt.Errorf("loading transactions: %w", err)
	}

	return Aggregate(positions, transactions, s.cashSchedule(userID), s.clock.Now()), nil
}

// History builds the six month interpolated value series. Earlier points
// assume linear contributions and a flat growth estimate; the final point
// is the live portfolio value when one exists, otherwise the invested
// amount with no gain.
func (s *Service) History(userID string) (History, error) {
	positions, err := s.Snapshot(userID)
	if err != nil {
		return History{}, err
	}

	var currentValue float64
	for _, p := range positions {
		currentValue += p.Value()
	}

	transactions, err := s.ledger.Transactions(userID)
	if err != nil {
		return History{}, fmt.Errorf("loading transactions: %w", err)
	}
	var realizedGains float64
	for _, tx := range transactions {
		realizedGains += tx.RealizedPnL
	}

	schedule := s.cashSchedule(userID)
	now := s.clock.Now()

	points := make([]HistoryPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		monthIdx := ((int(now.Month()) - 1 - i) + 12) % 12

		progress := float64(5-i) / 5
		invested := schedule.InitialInvestment + schedule.MonthlyBudget*float64(5-i)
		value := invested * (1 + historyGrowthRate*progress)

		if i == 0 {
			if currentValue > 0 {
				value = currentValue
			} else {
				value = invested
			}
		}

		points = append(points, HistoryPoint{
			Month:    monthNames[monthIdx],
			Value:    round(value, 2),
			Invested: round(invested, 2),
			Gain:     round(value-invested, 2),
		})
	}

	totalInvested := schedule.InitialInvestment + schedule.MonthlyBudget*6
	totalGain := (currentValue + realizedGains) - totalInvested
	var totalGainPercent float64
	if totalInvested > 0 {
		totalGainPercent = totalGain / totalInvested * 100
	}

	return History{
		Points:           points,
		CurrentValue:     round(currentValue, 2),
		TotalInvested:    round(totalInvested, 2),
		TotalGain:        round(totalGain, 2),
		TotalGainPercent: round(totalGainPercent, 2),
	}, nil
}

// cashSchedule fetches the user's schedule, degrading to a zero schedule
// when no profile exists yet.
func (s *Service) cashSchedule(userID string) domain.CashSchedule {
	schedule, err := s.schedules.GetCashSchedule(userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("No cash schedule, using zero values")
		return domain.CashSchedule{}
	}
	return schedule
}

// historyGrowthRate is the flat growth estimate applied across the
// interpolated history window.
const historyGrowthRate = 0.05

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
