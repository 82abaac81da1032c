// Package recommendations maps risk profiles to model allocations and
// curated stock ideas.
package recommendations

import (
	"github.com/itamarw/nestegg/internal/domain"
)

// Allocation is the model portfolio for one risk profile. Percentages
// sum to 100.
type Allocation struct {
	ProfileType string `json:"profile_type"`
	Stocks      int    `json:"stocks"`
	Bonds       int    `json:"bonds"`
	Cash        int    `json:"cash"`
	Explanation string `json:"explanation"`
}

// StockIdea is one curated pick for a risk profile.
type StockIdea struct {
	Ticker      string `json:"ticker"`
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Explanation string `json:"explanation"`
}

var allocations = map[int]Allocation{
	1: {
		ProfileType: "Conservative",
		Stocks:      20,
		Bonds:       60,
		Cash:        20,
		Explanation: "A conservative portfolio focuses on capital preservation and income. It works best for investors with a low tolerance for risk or those approaching retirement.",
	},
	2: {
		ProfileType: "Balanced",
		Stocks:      50,
		Bonds:       35,
		Cash:        15,
		Explanation: "A balanced portfolio is suitable for investors with moderate risk tolerance. It combines growth potential with stability.",
	},
	3: {
		ProfileType: "Dynamic",
		Stocks:      70,
		Bonds:       20,
		Cash:        10,
		Explanation: "A dynamic portfolio leans towards growth, making it suitable for investors with a longer time horizon and some tolerance for market volatility.",
	},
	4: {
		ProfileType: "Aggressive",
		Stocks:      90,
		Bonds:       5,
		Cash:        5,
		Explanation: "An aggressive portfolio maximizes growth potential through high exposure to stocks. It is designed for investors with a high risk tolerance and a long investment horizon.",
	},
}

var stockIdeas = map[int][]StockIdea{
	1: {
		{Ticker: "MSFT", Name: "Microsoft Corporation", Sector: "Technology",
			Explanation: "Microsoft demonstrates exceptional stability with recurring revenue streams through Azure and Office 365. Ideal for conservative investors seeking steady growth with quarterly dividends."},
		{Ticker: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare",
			Explanation: "Healthcare sector leader with over 60 years of continuous dividend growth. Perfect for minimizing volatility while maintaining defensive market exposure."},
		{Ticker: "PG", Name: "Procter & Gamble", Sector: "Consumer Defensive",
			Explanation: "A consumer staples giant that performs well in all economic cycles. Provides reliable income and low volatility protection."},
		{Ticker: "KO", Name: "Coca-Cola Company", Sector: "Beverages",
			Explanation: "An iconic brand with a massive global distribution network. innovative dividend payer that offers a safe haven for capital preservation."},
	},
	2: {
		{Ticker: "AAPL", Name: "Apple Inc.", Sector: "Technology",
			Explanation: "Apple combines a massive cash reserve with consistent buybacks and dividends. Offers a perfect balance of safety and capital appreciation."},
		{Ticker: "V", Name: "Visa Inc.", Sector: "Financial Services",
			Explanation: "Dominant global payment processor benefiting from the secular shift to digital payments. Offers solid growth with high profit margins."},
		{Ticker: "GOOGL", Name: "Alphabet Inc.", Sector: "Communication Services",
			Explanation: "Market leader in search and digital advertising with strong cloud growth. Provides growth potential with a relatively stable business model."},
		{Ticker: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financial Services",
			Explanation: "The largest U.S. bank with a diversified revenue model. Offers attractive valuation and dividends while participating in economic growth."},
		{Ticker: "COST", Name: "Costco Wholesale", Sector: "Consumer Cyclical",
			Explanation: "Best-in-class retailer with a loyal membership base. Delivers consistent steady growth and performs well even in inflationary environments."},
	},
	3: {
		{Ticker: "NVDA", Name: "NVIDIA Corporation", Sector: "Technology",
			Explanation: "The undisputed leader in AI computing hardware. Offers massive growth potential as AI adoption accelerates across all industries."},
		{Ticker: "AMD", Name: "Advanced Micro Devices", Sector: "Technology",
			Explanation: "Strong competitor in data center and consumer chips. Provides high beta exposure to the semiconductor cycle for growth-focused portfolios."},
		{Ticker: "TSLA", Name: "Tesla, Inc.", Sector: "Consumer Cyclical",
			Explanation: "Leader in EVs and clean energy storage. A high-volatility play on the future of transportation and energy."},
		{Ticker: "NFLX", Name: "Netflix, Inc.", Sector: "Communication Services",
			Explanation: "Dominant streaming platform with improving profitability. Offers dynamic growth through global expansion and ad-supported tiers."},
		{Ticker: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Cyclical",
			Explanation: "E-commerce and cloud computing giant. Reinvests heavily for growth, making it suitable for investors willing to ride out volatility."},
	},
	4: {
		{Ticker: "COIN", Name: "Coinbase Global", Sector: "Financial Services",
			Explanation: "The leading US crypto exchange. A high-risk, high-reward proxy for the cryptocurrency market and blockchain adoption."},
		{Ticker: "PLTR", Name: "Palantir Technologies", Sector: "Technology",
			Explanation: "Data analytics firm deeply embedded in government and enterprise defense. Offers explosive growth potential but with significant valuation risk."},
		{Ticker: "SHOP", Name: "Shopify Inc.", Sector: "Technology",
			Explanation: "Powering the global e-commerce infrastructure. High growth stock that can be volatile but offers substantial long-term upside."},
		{Ticker: "ARKK", Name: "ARK Innovation ETF", Sector: "Fund",
			Explanation: "An active ETF focused on disruptive innovation. Gives exposure to a basket of high-growth, high-risk early stage technology companies."},
		{Ticker: "MSTR", Name: "MicroStrategy", Sector: "Technology",
			Explanation: "Enterprise software company that acts as a leveraged play on Bitcoin. Extremely volatile and suitable only for the most aggressive risk profiles."},
	},
}

// ForProfile returns the model allocation for a risk profile between 1
// (Conservative) and 4 (Aggressive).
func ForProfile(profile int) (Allocation, error) {
	allocation, ok := allocations[profile]
	if !ok {
		return Allocation{}, domain.NewValidationError("profile", "must be an integer between 1 and 4")
	}
	return allocation, nil
}

// StocksForProfile returns the curated picks for a risk profile.
func StocksForProfile(profile int) ([]StockIdea, error) {
	ideas, ok := stockIdeas[profile]
	if !ok {
		return nil, domain.NewValidationError("profile", "must be an integer between 1 and 4")
	}
	return ideas, nil
}
