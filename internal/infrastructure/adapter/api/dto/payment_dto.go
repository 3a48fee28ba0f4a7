package dto

// StartPaymentRequest is the body of POST /payment/start
type StartPaymentRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Gateway     string `json:"gateway"`
	Description string `json:"description"`
}

// StartPaymentResponse tells the client where to redirect the user
type StartPaymentResponse struct {
	PaymentURL    string `json:"payment_url"`
	TransactionID uint64 `json:"transaction_id"`
	Gateway       string `json:"gateway"`
	Authority     string `json:"authority"`
}

// CallbackResponse is returned to the provider or the user's browser after a callback
type CallbackResponse struct {
	Message       string  `json:"message"`
	TransactionID uint64  `json:"transaction_id,omitempty"`
	Status        string  `json:"status,omitempty"`
	ReferenceID   *string `json:"reference_id,omitempty"`
}

// AdminRechargeRequest is the body of POST /admin/recharge
type AdminRechargeRequest struct {
	UserID      uint64 `json:"user_id" binding:"required,gt=0"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Description string `json:"description"`
}

// AdminRechargeResponse confirms a manual credit
type AdminRechargeResponse struct {
	Message       string `json:"message"`
	TransactionID uint64 `json:"transaction_id"`
	UserID        uint64 `json:"user_id"`
	Balance       string `json:"balance"`
}
