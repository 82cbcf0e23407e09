package yahoo

// ChartResponse represents the Yahoo Finance v8 chart response
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartError is the error object Yahoo returns in place of a result
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResult is one symbol's bars plus quote metadata
type ChartResult struct {
	Meta       ChartMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// ChartMeta carries the live quote and exchange timezone offset
type ChartMeta struct {
	Symbol               string   `json:"symbol"`
	Currency             string   `json:"currency"`
	ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
	GMTOffset            int64    `json:"gmtoffset"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	RegularMarketTime    *int64   `json:"regularMarketTime"`
}

// ParsedQuote represents a parsed real-time quote
type ParsedQuote struct {
	Symbol string
	Price  float64
}
