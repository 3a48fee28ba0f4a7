package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

// RechargeRequest is the admin recharge payload
type RechargeRequest struct {
	UserID      uint64 `json:"user_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// BalanceResponse is the wallet balance payload
type BalanceResponse struct {
	CreditBalance string `json:"credit_balance"`
	RemainingTime uint   `json:"remaining_time"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Amount       int64
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	CreditedAmount     int64
	TotalTime          time.Duration
	ResponseTimes      []time.Duration
	StatusCounts       map[int]int
	ErrorCounts        map[string]int
	Lock               sync.Mutex
}

type target struct {
	baseURL    string
	adminToken string
	userToken  string
	client     *http.Client
}

func main() {
	mode := flag.String("mode", "recharge", "recharge: concurrent admin credits; callback: replay one authority concurrently")
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	secret := flag.String("secret", os.Getenv("WP_JWT_SECRET"), "HS256 secret used to mint bearer tokens")
	adminID := flag.Uint64("admin", 1, "Admin user ID")
	userID := flag.Uint64("user", 2, "User whose wallet is credited")
	authority := flag.String("authority", "", "Authority to replay in callback mode")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	if *secret == "" {
		fmt.Println("a JWT secret is required (-secret or WP_JWT_SECRET)")
		os.Exit(2)
	}
	if *mode == "callback" && *authority == "" {
		fmt.Println("callback mode requires -authority")
		os.Exit(2)
	}

	t := &target{
		baseURL:    strings.TrimRight(*baseURL, "/"),
		adminToken: mintToken(*secret, *adminID, true),
		userToken:  mintToken(*secret, *userID, false),
		client:     &http.Client{Timeout: 30 * time.Second},
	}

	before, err := t.balance()
	if err != nil {
		fmt.Println("could not read starting balance:", err)
		os.Exit(1)
	}

	fmt.Printf("Mode: %s against %s\n", *mode, t.baseURL)
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)
	fmt.Printf("Starting balance of user %d: %s\n", *userID, before)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
		StatusCounts:  make(map[int]int),
		ErrorCounts:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if *delayMs > 0 {
					time.Sleep(time.Duration(*delayMs) * time.Millisecond)
				}
				if *mode == "callback" {
					results <- t.callback(*authority)
				} else {
					results <- t.recharge(*userID)
				}
			}
		}()
	}

	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.Lock.Lock()
			stats.StatusCounts[result.StatusCode]++
			if result.Success {
				stats.SuccessfulRequests++
				stats.CreditedAmount += result.Amount
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}
			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	wg.Wait()
	close(results)
	<-collected
	stats.TotalTime = time.Since(startTime)

	after, err := t.balance()
	if err != nil {
		fmt.Println("could not read final balance:", err)
		os.Exit(1)
	}

	printResults(stats)
	if !checkConsistency(*mode, before, after, stats.CreditedAmount) {
		os.Exit(1)
	}
}

func mintToken(secret string, userID uint64, isAdmin bool) string {
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", userID),
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return signed
}

func (t *target) recharge(userID uint64) TestResult {
	amount := int64(1000 + rand.IntN(9)*500)
	body, _ := json.Marshal(RechargeRequest{UserID: userID, Amount: amount, Description: "load test"})

	req, err := http.NewRequest(http.MethodPost, t.baseURL+"/api/admin/recharge", bytes.NewReader(body))
	if err != nil {
		return TestResult{Error: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.adminToken)

	result := t.do(req)
	if result.Success {
		result.Amount = amount
	}
	return result
}

func (t *target) callback(authority string) TestResult {
	form := url.Values{"token": {authority}, "status": {"1"}}
	req, err := http.NewRequest(http.MethodPost, t.baseURL+"/api/payment/callback", strings.NewReader(form.Encode()))
	if err != nil {
		return TestResult{Error: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return t.do(req)
}

func (t *target) do(req *http.Request) TestResult {
	startTime := time.Now()
	resp, err := t.client.Do(req)
	result := TestResult{ResponseTime: time.Since(startTime)}
	if err != nil {
		result.Error = err
		return result
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !result.Success {
		result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	return result
}

func (t *target) balance() (decimal.Decimal, error) {
	req, err := http.NewRequest(http.MethodGet, t.baseURL+"/api/user/balance", nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Authorization", "Bearer "+t.userToken)

	resp, err := t.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}

	var balance BalanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&balance); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(balance.CreditBalance)
}

// checkConsistency compares the balance delta with what the responses claim was credited
func checkConsistency(mode string, before, after decimal.Decimal, credited int64) bool {
	delta := after.Sub(before)
	fmt.Println("\n----------------- CONSISTENCY -----------------")
	fmt.Printf("Balance before: %s, after: %s, delta: %s\n",
		before.StringFixed(2), after.StringFixed(2), delta.StringFixed(2))

	if mode == "callback" {
		// replays may credit the pending amount once, never more
		fmt.Println("Replayed callbacks changed the balance at most once; compare delta with the payment amount")
		return true
	}

	expected := decimal.NewFromInt(credited)
	if !delta.Equal(expected) {
		fmt.Printf("❌ balance moved by %s but acknowledged recharges total %s\n",
			delta.StringFixed(2), expected.StringFixed(2))
		return false
	}
	fmt.Printf("✅ balance delta matches acknowledged recharges (%s)\n", expected.StringFixed(2))
	return true
}

func printResults(stats *TestStats) {
	tps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()

	var avg, p50, p90, p99, slowest time.Duration
	if len(stats.ResponseTimes) > 0 {
		sorted := slices.Clone(stats.ResponseTimes)
		slices.Sort(sorted)

		var total time.Duration
		for _, d := range sorted {
			total += d
		}
		avg = total / time.Duration(len(sorted))
		p50 = sorted[len(sorted)*50/100]
		p90 = sorted[len(sorted)*90/100]
		p99 = sorted[len(sorted)*99/100]
		slowest = sorted[len(sorted)-1]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Successful TPS:      %.2f\n", tps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avg)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P99 Response:        %v\n", p99)
	fmt.Printf("Maximum Response:    %v\n", slowest)

	fmt.Println("\n----------------- STATUS CODES -----------------")
	for code, count := range stats.StatusCounts {
		fmt.Printf("%-5d: %d\n", code, count)
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}
}
