package domain

// RecognizedCurrency is a currency subscriptions may refer to.
type RecognizedCurrency struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Country string `json:"country"`
}

func (c RecognizedCurrency) RecordID() string     { return c.Code }
func (c RecognizedCurrency) PartitionKey() string { return c.Code }
