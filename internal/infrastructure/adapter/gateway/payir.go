package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	gatewayport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/config"
)

// PayirName is the registry name of the Pay.ir provider
const PayirName = "payir"

// Payir talks to the Pay.ir form-encoded API
type Payir struct {
	apiKey  string
	baseURL string
	client  *http.Client

	alreadyVerified map[string]struct{}
}

// NewPayir creates a Pay.ir client
func NewPayir(cfg config.PayirConfig, client *http.Client) *Payir {
	alreadyVerified := make(map[string]struct{}, len(cfg.AlreadyVerifiedCodes))
	for _, code := range cfg.AlreadyVerifiedCodes {
		if code = strings.TrimSpace(code); code != "" {
			alreadyVerified[code] = struct{}{}
		}
	}

	return &Payir{
		apiKey:          cfg.APIKey,
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		client:          client,
		alreadyVerified: alreadyVerified,
	}
}

type payirReply struct {
	Status       flexString `json:"status"`
	Token        flexString `json:"token"`
	Amount       flexString `json:"amount"`
	TransID      flexString `json:"transId"`
	ErrorCode    flexString `json:"errorCode"`
	ErrorMessage string     `json:"errorMessage"`
	Message      string     `json:"message"`
}

func (r *payirReply) ok() bool {
	return r.Status == "1"
}

// verifiedBefore reports a repeat verify of a captured payment. Only codes the operator
// configured count; an empty list makes every non-1 status a rejection.
func (p *Payir) verifiedBefore(reply *payirReply) bool {
	if reply.ok() || reply.ErrorCode == "" {
		return false
	}
	_, ok := p.alreadyVerified[reply.ErrorCode.String()]
	return ok
}

// Name returns the registry name
func (p *Payir) Name() string {
	return PayirName
}

// IsCancellation treats status 0 on the return redirect as a user cancellation
func (p *Payir) IsCancellation(status string) bool {
	return strings.TrimSpace(status) == "0"
}

// Start requests a payment token and builds the redirect URL
func (p *Payir) Start(ctx context.Context, amount int64, callbackURL, description string) (*gatewayport.StartResult, error) {
	form := url.Values{
		"api":         {p.apiKey},
		"amount":      {strconv.FormatInt(amount, 10)},
		"redirect":    {callbackURL},
		"description": {description},
	}

	resp, err := postForm(ctx, p.client, p.baseURL+"/send", form)
	if err != nil {
		return nil, errs.NewGatewayStartError(PayirName, statusOf(err), err.Error())
	}

	var reply payirReply
	if err := resp.decode(&reply); err != nil {
		return nil, errs.NewGatewayStartError(PayirName, resp.status, err.Error())
	}
	if !reply.ok() || reply.Token == "" {
		return nil, errs.NewGatewayStartError(PayirName, resp.status, payirReason(&reply))
	}

	token := reply.Token.String()
	return &gatewayport.StartResult{
		RedirectURL: p.baseURL + "/go/" + url.PathEscape(token),
		Authority:   token,
	}, nil
}

// Verify confirms the payment; the paid amount must equal expectedAmount
func (p *Payir) Verify(ctx context.Context, authority string, expectedAmount int64) (*gatewayport.VerifyResult, error) {
	form := url.Values{
		"api":   {p.apiKey},
		"token": {authority},
	}

	resp, err := postForm(ctx, p.client, p.baseURL+"/verify", form)
	if err != nil {
		return nil, errs.NewGatewayTransportError(PayirName, "verify", statusOf(err), err.Error())
	}

	var reply payirReply
	if err := resp.decode(&reply); err != nil {
		return nil, errs.NewGatewayTransportError(PayirName, "verify", resp.status, err.Error())
	}

	result := &gatewayport.VerifyResult{Raw: json.RawMessage(resp.body)}
	repeat := p.verifiedBefore(&reply)
	if !reply.ok() && !repeat {
		return result, nil
	}
	// a repeat reply may omit the amount; a present one must still match
	if paid, ok := reply.Amount.Int64(); (!ok && !repeat) || (ok && paid != expectedAmount) {
		return result, nil
	}

	result.Success = true
	result.ReferenceID = optionalString(reply.TransID)
	return result, nil
}

func payirReason(reply *payirReply) string {
	switch {
	case reply.ErrorMessage != "":
		return reply.ErrorMessage
	case reply.Message != "":
		return reply.Message
	case reply.ErrorCode != "":
		return "error code " + reply.ErrorCode.String()
	case reply.ok():
		return "empty token"
	default:
		return "status " + reply.Status.String()
	}
}
