package dto

// BalanceResponse represents the API response for the caller's wallet
type BalanceResponse struct {
	CreditBalance string `json:"credit_balance"`
	RemainingTime uint   `json:"remaining_time"`
}

// HealthResponse reports service and database liveness
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
