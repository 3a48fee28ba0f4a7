package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	gatewayport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/config"
)

// ZarinpalName is the registry name of the Zarinpal provider
const ZarinpalName = "zarinpal"

const (
	zarinpalCodeSuccess         = 100
	zarinpalCodeAlreadyVerified = 101
)

// Zarinpal talks to the Zarinpal v4 JSON API
type Zarinpal struct {
	merchantID  string
	baseURL     string
	gatewayBase string
	client      *http.Client
}

// NewZarinpal creates a Zarinpal client; sandbox host rewriting happens in config loading
func NewZarinpal(cfg config.ZarinpalConfig, client *http.Client) *Zarinpal {
	return &Zarinpal{
		merchantID:  cfg.MerchantID,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		gatewayBase: strings.TrimRight(cfg.GatewayBase, "/"),
		client:      client,
	}
}

type zarinpalRequest struct {
	MerchantID  string `json:"merchant_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
	CallbackURL string `json:"callback_url,omitempty"`
	Authority   string `json:"authority,omitempty"`
}

type zarinpalReply struct {
	Data   zarinpalData    `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

type zarinpalData struct {
	Code      int        `json:"code"`
	Message   string     `json:"message"`
	Authority string     `json:"authority"`
	RefID     flexString `json:"ref_id"`
}

// UnmarshalJSON tolerates `"data": []`, which the API sends alongside errors
func (d *zarinpalData) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		*d = zarinpalData{}
		return nil
	}
	type plain zarinpalData
	return json.Unmarshal(b, (*plain)(d))
}

// Name returns the registry name
func (z *Zarinpal) Name() string {
	return ZarinpalName
}

// IsCancellation treats Status=NOK on the return redirect as a cancellation
func (z *Zarinpal) IsCancellation(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "NOK")
}

// Start creates a payment request and builds the StartPay redirect
func (z *Zarinpal) Start(ctx context.Context, amount int64, callbackURL, description string) (*gatewayport.StartResult, error) {
	resp, err := postJSON(ctx, z.client, z.baseURL+"/payment/request.json", zarinpalRequest{
		MerchantID:  z.merchantID,
		Amount:      amount,
		Description: description,
		CallbackURL: callbackURL,
	})
	if err != nil {
		return nil, errs.NewGatewayStartError(ZarinpalName, statusOf(err), err.Error())
	}

	var reply zarinpalReply
	if err := resp.decode(&reply); err != nil {
		return nil, errs.NewGatewayStartError(ZarinpalName, resp.status, err.Error())
	}
	if reply.Data.Code != zarinpalCodeSuccess || reply.Data.Authority == "" {
		return nil, errs.NewGatewayStartError(ZarinpalName, resp.status, zarinpalReason(&reply))
	}

	return &gatewayport.StartResult{
		RedirectURL: z.gatewayBase + "/" + url.PathEscape(reply.Data.Authority),
		Authority:   reply.Data.Authority,
	}, nil
}

// Verify confirms the payment for the recorded amount. Code 101 means the
// provider already verified this authority and is reported as success.
func (z *Zarinpal) Verify(ctx context.Context, authority string, expectedAmount int64) (*gatewayport.VerifyResult, error) {
	resp, err := postJSON(ctx, z.client, z.baseURL+"/payment/verify.json", zarinpalRequest{
		MerchantID: z.merchantID,
		Amount:     expectedAmount,
		Authority:  authority,
	})
	if err != nil {
		return nil, errs.NewGatewayTransportError(ZarinpalName, "verify", statusOf(err), err.Error())
	}

	var reply zarinpalReply
	if err := resp.decode(&reply); err != nil {
		return nil, errs.NewGatewayTransportError(ZarinpalName, "verify", resp.status, err.Error())
	}

	result := &gatewayport.VerifyResult{Raw: json.RawMessage(resp.body)}
	switch reply.Data.Code {
	case zarinpalCodeSuccess, zarinpalCodeAlreadyVerified:
		result.Success = true
		result.ReferenceID = optionalString(reply.Data.RefID)
	}
	return result, nil
}

func zarinpalReason(reply *zarinpalReply) string {
	if reply.Data.Message != "" {
		return reply.Data.Message
	}
	if len(reply.Errors) > 0 && string(reply.Errors) != "[]" {
		return string(reply.Errors)
	}
	if reply.Data.Code == zarinpalCodeSuccess {
		return "empty authority"
	}
	return "unexpected response"
}
