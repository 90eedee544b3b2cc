package recommendation

// FeaturedKoreanETFs is the Korean analysis universe
var FeaturedKoreanETFs = []string{
	"069500.KS", // KODEX 200
	"360750.KS", // TIGER 미국S&P500
	"133690.KS", // TIGER 미국나스닥100
	"379800.KS", // KODEX 미국S&P500
	"381170.KS", // TIGER 미국테크TOP10
	"458750.KS", // TIGER 미국배당다우존스
	"143850.KS", // TIGER 미국S&P500선물(H)
	"102110.KS", // TIGER 200
	"278530.KS", // KODEX 200TR
	"091180.KS", // KODEX 배당성장
}

// FeaturedUSETFs is the US analysis universe
var FeaturedUSETFs = []string{
	"SPY",  // SPDR S&P 500
	"QQQ",  // Invesco QQQ
	"VOO",  // Vanguard S&P 500
	"VTI",  // Vanguard Total Stock Market
	"VIG",  // Vanguard Dividend Appreciation
	"SCHD", // Schwab US Dividend Equity
	"VYM",  // Vanguard High Dividend Yield
	"IVV",  // iShares Core S&P 500
	"VEA",  // Vanguard FTSE Developed Markets
	"AGG",  // iShares Core US Aggregate Bond
}

// UniverseFor selects the analysis universe for a category filter.
// Anything other than "korean" or "us" gets both markets.
func UniverseFor(category string) []string {
	switch category {
	case "korean":
		return FeaturedKoreanETFs
	case "us":
		return FeaturedUSETFs
	default:
		tickers := make([]string, 0, len(FeaturedKoreanETFs)+len(FeaturedUSETFs))
		tickers = append(tickers, FeaturedKoreanETFs...)
		tickers = append(tickers, FeaturedUSETFs...)
		return tickers
	}
}
