package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:8080"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numProfiles  = 200
	numSeeds     = 1000
)

var formats = []string{"all", "reels", "posts", "stories"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== kgsite Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Profiles: %d | Seeds: %d\n\n", numProfiles, numSeeds)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/api/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: cold analytics, every request a cache miss
	fmt.Println("\n--- Phase 1: Analytics with random seeds (GET /api/analytics) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doGetSeries(rng, rng.IntN(1<<31))
	})

	// Phase 2: hot analytics from a small seed set
	fmt.Println("\n--- Phase 2: Cached analytics (80% series, 20% charts) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.8 {
			return doGetSeries(rng, rng.IntN(numSeeds))
		}
		return doGetCharts(rng)
	})

	// Phase 3: consent flow and intake
	fmt.Println("\n--- Phase 3: Consent flow (40% status, 40% request, 20% intake) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doGetConsent(rng)
		case r < 0.80:
			return doConsentRequest(rng)
		default:
			return doIntake(rng)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, uint64(time.Now().UnixNano())))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Uint64() + uint64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doGetSeries(rng *rand.Rand, seed int) result {
	url := fmt.Sprintf("%s/api/analytics?seed=%d&range=%d&format=%s", baseURL, seed, 7+rng.IntN(84), formats[rng.IntN(len(formats))])
	return doGet("GET /api/analytics", url)
}

func doGetCharts(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/api/analytics/charts?seed=%d&format=%s", baseURL, rng.IntN(numSeeds), formats[rng.IntN(len(formats))])
	return doGet("GET /api/analytics/charts", url)
}

func doGetConsent(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/api/consent?profile=p%d", baseURL, rng.IntN(numProfiles))
	return doGet("GET /api/consent", url)
}

func doConsentRequest(rng *rand.Rand) result {
	body := map[string]any{
		"lat":      -90 + rng.Float64()*180,
		"lon":      -180 + rng.Float64()*360,
		"accuracy": 5 + rng.Float64()*100,
	}
	if rng.Float64() < 0.2 {
		body = map[string]any{"errorCode": 1, "errorMessage": "User denied Geolocation"}
	}
	url := fmt.Sprintf("%s/api/consent/request?profile=p%d", baseURL, rng.IntN(numProfiles))
	return doPost("POST /api/consent/request", url, body, http.StatusOK)
}

func doIntake(rng *rand.Rand) result {
	body := map[string]any{
		"lat":       -90 + rng.Float64()*180,
		"lon":       -180 + rng.Float64()*360,
		"accuracy":  rng.Float64() * 50,
		"timestamp": time.Now().UnixMilli(),
	}
	// 429 is the limiter doing its job, not a failure.
	res := doPost("POST /api/geo", baseURL+"/api/geo", body, http.StatusCreated)
	if res.status == http.StatusTooManyRequests {
		res.err = false
	}
	return res
}

func doGet(endpoint, url string) result {
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doPost(endpoint, url string, body any, want int) result {
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
