package yahoo

// Response represents the raw JSON response structure from the Yahoo Finance chart API.
//
// The structure includes:
//   - Chart.Result: Array of result objects (typically contains one element)
//   - Chart.Result[].Meta: Symbol metadata (symbol, currency, exchange)
//   - Chart.Result[].Timestamp: Unix timestamps for each data point
//   - Chart.Result[].Indicators.Quote[].Close: Closing prices, null on days without a close
//   - Chart.Error: Set instead of Result when the request failed, e.g. an unknown symbol
type Response struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency     string `json:"currency"`
				Symbol       string `json:"symbol"`
				ExchangeName string `json:"exchangeName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *ChartError `json:"error"`
	} `json:"chart"`
}

// ChartError is the error object Yahoo returns in place of a result.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
