package request

// CreateTradeRequest is the POST /api/trade body. TradeValue is deliberately
// absent: it is derived as quantity*price at construction so the stored value
// can never disagree with its factors.
type CreateTradeRequest struct {
	AccountID  string  `json:"accountId"`
	Date       string  `json:"date"`
	Instrument string  `json:"instrument"`
	Action     string  `json:"action"`
	Quantity   float64 `json:"quantity"`
	Price      float64 `json:"price"`
	Brokerage  float64 `json:"brokerage"`
	Source     string  `json:"source,omitempty"`
	OrderRef   string  `json:"orderRef,omitempty"`
	Remarks    string  `json:"remarks,omitempty"`
}

// UpdateTradeRequest is the PUT /api/trade/{id} body. All fields optional.
type UpdateTradeRequest struct {
	AccountID  *string  `json:"accountId,omitempty"`
	Date       *string  `json:"date,omitempty"`
	Instrument *string  `json:"instrument,omitempty"`
	Action     *string  `json:"action,omitempty"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Brokerage  *float64 `json:"brokerage,omitempty"`
	Source     *string  `json:"source,omitempty"`
	OrderRef   *string  `json:"orderRef,omitempty"`
	Remarks    *string  `json:"remarks,omitempty"`
}
