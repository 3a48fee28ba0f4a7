package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

// NewHTTPClient returns the client shared by all providers
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// response is a provider reply read in full
type response struct {
	status int
	body   []byte
}

// transportFailure describes why a call never produced a usable provider answer
type transportFailure struct {
	status int
	reason string
}

func (f *transportFailure) Error() string {
	return f.reason
}

func postForm(ctx context.Context, client *http.Client, endpoint string, form url.Values) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &transportFailure{reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return do(client, req)
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, payload any) (*response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &transportFailure{reason: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &transportFailure{reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return do(client, req)
}

// do executes req; dial errors, timeouts and 5xx replies are transport failures
func do(client *http.Client, req *http.Request) (*response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, &transportFailure{reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &transportFailure{status: resp.StatusCode, reason: "read body: " + err.Error()}
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &transportFailure{status: resp.StatusCode, reason: fmt.Sprintf("provider returned %d", resp.StatusCode)}
	}
	return &response{status: resp.StatusCode, body: body}, nil
}

// decode parses a provider body; an unparsable body is a transport failure
func (r *response) decode(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return &transportFailure{status: r.status, reason: "decode body: " + err.Error()}
	}
	return nil
}

// flexString accepts a JSON string or number and keeps its textual form
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = flexString(num.String())
	return nil
}

func (s flexString) String() string {
	return string(s)
}

// Int64 parses the value as an integer; "10000.0" is accepted
func (s flexString) Int64() (int64, bool) {
	if v, err := strconv.ParseInt(string(s), 10, 64); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

func optionalString(s flexString) *string {
	if s == "" {
		return nil
	}
	v := s.String()
	return &v
}

func statusOf(err error) int {
	if f, ok := err.(*transportFailure); ok {
		return f.status
	}
	return 0
}
