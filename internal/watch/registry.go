// Package watch holds the static monitoring configuration: which SEC
// filers and which tickers the bot watches. The registries are built once
// at startup and never mutated; scan order follows declaration order.
package watch

// Category distinguishes individual investors from institutions.
type Category string

const (
	CategoryIndividual  Category = "individual"
	CategoryInstitution Category = "institution"
)

// VolatilityClass selects the base price-alert threshold for a symbol.
type VolatilityClass string

const (
	ClassStable   VolatilityClass = "stable"
	ClassVolatile VolatilityClass = "volatile"
	ClassDefault  VolatilityClass = "default"
)

// Filer is a watched SEC registrant.
type Filer struct {
	Name      string
	CIK       string
	Company   string
	Strategy  string
	Category  Category
	WhaleLink string
}

// Symbol is a watched ticker.
type Symbol struct {
	Ticker  string
	Company string
	Class   VolatilityClass
}

// Registry exposes the watched filers and symbols.
type Registry struct {
	filers  []Filer
	symbols []Symbol
	byTick  map[string]int
}

// New builds a registry from explicit lists. Used by tests; production code
// uses Default.
func New(filers []Filer, symbols []Symbol) *Registry {
	r := &Registry{filers: filers, symbols: symbols, byTick: make(map[string]int, len(symbols))}
	for i, s := range symbols {
		r.byTick[s.Ticker] = i
	}
	return r
}

// Default returns the built-in production registry.
func Default() *Registry {
	return New(defaultFilers, defaultSymbols)
}

// Filers returns the watched filers in declaration order.
func (r *Registry) Filers() []Filer { return r.filers }

// Symbols returns the watched symbols in declaration order.
func (r *Registry) Symbols() []Symbol { return r.symbols }

// CompanyName resolves a ticker to its display name, falling back to a
// generic "<TICKER> Inc." when the ticker is unknown.
func (r *Registry) CompanyName(ticker string) string {
	if i, ok := r.byTick[ticker]; ok && r.symbols[i].Company != "" {
		return r.symbols[i].Company
	}
	return ticker + " Inc."
}

// Class returns the volatility class for a ticker, defaulting when unknown.
func (r *Registry) Class(ticker string) VolatilityClass {
	if i, ok := r.byTick[ticker]; ok && r.symbols[i].Class != "" {
		return r.symbols[i].Class
	}
	return ClassDefault
}

var defaultFilers = []Filer{
	{Name: "Warren Buffett", CIK: "1067983", Company: "Berkshire Hathaway", Strategy: "Long-term value investing", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/berkshire-hathaway-inc"},
	{Name: "Ray Dalio", CIK: "1350694", Company: "Bridgewater Associates", Strategy: "All-weather portfolio", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/bridgewater-associates-lp"},
	{Name: "Seth Klarman", CIK: "1061768", Company: "Baupost Group", Strategy: "Deep value investing", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/baupost-group-llc"},
	{Name: "Michael Burry", CIK: "1649339", Company: "Scion Asset Management", Strategy: "Contrarian deep-value bets", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/scion-asset-management-llc"},
	{Name: "Bill Ackman", CIK: "1336528", Company: "Pershing Square", Strategy: "Activist investing", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/pershing-square-capital-management-l-p"},
	{Name: "David Tepper", CIK: "1006438", Company: "Appaloosa Management", Strategy: "Macro and distressed investing", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/appaloosa-management-lp"},
	{Name: "Renaissance Technologies", CIK: "1037389", Company: "Renaissance Technologies", Strategy: "Quantitative investing", Category: CategoryInstitution, WhaleLink: "https://whalewisdom.com/filer/renaissance-technologies-llc"},
	{Name: "Carl Icahn", CIK: "921669", Company: "Icahn Enterprises", Strategy: "Activist investing", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/icahn-enterprises-l-p"},
	{Name: "Stanley Druckenmiller", CIK: "1536411", Company: "Duquesne Family Office", Strategy: "Macro and growth investing", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/duquesne-family-office-llc"},
	{Name: "George Soros", CIK: "1029160", Company: "Soros Fund Management", Strategy: "Macro and currency trading", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/soros-fund-management-llc"},
	{Name: "Chase Coleman", CIK: "1167483", Company: "Tiger Global Management", Strategy: "Growth investing", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/tiger-global-management-llc"},
	{Name: "Steve Cohen", CIK: "1603466", Company: "Point72 Asset Management", Strategy: "Quantitative and fundamental", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/point72-asset-management-l-p"},
	{Name: "Ken Griffin", CIK: "1423053", Company: "Citadel", Strategy: "Quantitative trading", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/citadel-advisors-llc"},
	{Name: "David Einhorn", CIK: "1079114", Company: "Greenlight Capital", Strategy: "Value and activist investing", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/greenlight-capital-inc"},
	{Name: "Howard Marks", CIK: "949509", Company: "Oaktree Capital", Strategy: "Distressed and credit investing", Category: CategoryIndividual, WhaleLink: "https://whalewisdom.com/filer/oaktree-capital-management-l-p"},
	{Name: "BlackRock", CIK: "1364742", Company: "BlackRock Inc", Strategy: "Global asset management", Category: CategoryInstitution, WhaleLink: "https://whalewisdom.com/filer/blackrock-inc"},
	{Name: "Vanguard Group", CIK: "102909", Company: "Vanguard Group", Strategy: "Index fund investing", Category: CategoryInstitution, WhaleLink: "https://whalewisdom.com/filer/vanguard-group-inc"},
	{Name: "State Street Global Advisors", CIK: "93751", Company: "State Street Corp", Strategy: "ETF and index investing", Category: CategoryInstitution, WhaleLink: "https://whalewisdom.com/filer/state-street-corporation"},
	{Name: "Blackstone", CIK: "1393818", Company: "Blackstone Group", Strategy: "Alternative investments", Category: CategoryInstitution, WhaleLink: "https://whalewisdom.com/filer/blackstone-group-inc"},
	{Name: "KKR", CIK: "1404912", Company: "KKR & Co", Strategy: "Private equity and credit", Category: CategoryInstitution, WhaleLink: "https://whalewisdom.com/filer/kkr-co-inc"},
}

var defaultSymbols = []Symbol{
	{Ticker: "AAPL", Company: "Apple Inc.", Class: ClassStable},
	{Ticker: "MSFT", Company: "Microsoft Corporation", Class: ClassStable},
	{Ticker: "GOOGL", Company: "Alphabet Inc.", Class: ClassStable},
	{Ticker: "AMZN", Company: "Amazon.com Inc.", Class: ClassStable},
	{Ticker: "NVDA", Company: "NVIDIA Corporation", Class: ClassVolatile},
	{Ticker: "META", Company: "Meta Platforms Inc.", Class: ClassDefault},
	{Ticker: "TSLA", Company: "Tesla Inc.", Class: ClassVolatile},
	{Ticker: "BRK-B", Company: "Berkshire Hathaway", Class: ClassStable},
	{Ticker: "JPM", Company: "JPMorgan Chase & Co.", Class: ClassStable},
	{Ticker: "V", Company: "Visa Inc.", Class: ClassStable},
	{Ticker: "MA", Company: "Mastercard Inc.", Class: ClassStable},
	{Ticker: "UNH", Company: "UnitedHealth Group", Class: ClassStable},
	{Ticker: "JNJ", Company: "Johnson & Johnson", Class: ClassStable},
	{Ticker: "PG", Company: "Procter & Gamble", Class: ClassStable},
	{Ticker: "HD", Company: "The Home Depot", Class: ClassStable},
	{Ticker: "BAC", Company: "Bank of America", Class: ClassDefault},
	{Ticker: "WMT", Company: "Walmart Inc.", Class: ClassStable},
	{Ticker: "DIS", Company: "The Walt Disney Company", Class: ClassDefault},
	{Ticker: "NFLX", Company: "Netflix Inc.", Class: ClassDefault},
	{Ticker: "CRM", Company: "Salesforce Inc.", Class: ClassDefault},
	{Ticker: "ADBE", Company: "Adobe Inc.", Class: ClassDefault},
	{Ticker: "ORCL", Company: "Oracle Corporation", Class: ClassDefault},
	{Ticker: "CSCO", Company: "Cisco Systems", Class: ClassDefault},
	{Ticker: "INTC", Company: "Intel Corporation", Class: ClassDefault},
	{Ticker: "AMD", Company: "Advanced Micro Devices", Class: ClassVolatile},
	{Ticker: "QCOM", Company: "QUALCOMM Inc.", Class: ClassDefault},
	{Ticker: "TXN", Company: "Texas Instruments", Class: ClassDefault},
	{Ticker: "AVGO", Company: "Broadcom Inc.", Class: ClassDefault},
	{Ticker: "HON", Company: "Honeywell International", Class: ClassDefault},
	{Ticker: "CAT", Company: "Caterpillar Inc.", Class: ClassDefault},
	{Ticker: "BA", Company: "The Boeing Company", Class: ClassDefault},
	{Ticker: "GE", Company: "General Electric", Class: ClassDefault},
	{Ticker: "MMM", Company: "3M Company", Class: ClassDefault},
	{Ticker: "KO", Company: "The Coca-Cola Company", Class: ClassStable},
	{Ticker: "PEP", Company: "PepsiCo Inc.", Class: ClassStable},
	{Ticker: "MCD", Company: "McDonald's Corporation", Class: ClassStable},
	{Ticker: "NKE", Company: "NIKE Inc.", Class: ClassDefault},
	{Ticker: "SBUX", Company: "Starbucks Corporation", Class: ClassDefault},
}
