package ratelimit

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(config *Config) (*Limiter, *fakeClock) {
	clock := newFakeClock()
	config.CleanupInterval = 0
	l := NewLimiter(config)
	l.now = clock.Now
	return l, clock
}

func TestBucket_Take(t *testing.T) {
	now := time.Now()
	b := newBucket(10, 1.0, now)

	for i := 0; i < 10; i++ {
		if !b.take(now) {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}
	if b.take(now) {
		t.Error("Expected 11th request to be denied")
	}
}

func TestBucket_Refill(t *testing.T) {
	now := time.Now()
	b := newBucket(10, 1.0, now)
	for i := 0; i < 10; i++ {
		b.take(now)
	}

	now = now.Add(1100 * time.Millisecond)
	if !b.take(now) {
		t.Error("Expected request to be allowed after refill")
	}
	if b.take(now) {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestBucket_RefillCapsAtCapacity(t *testing.T) {
	now := time.Now()
	b := newBucket(3, 1.0, now)
	b.take(now)

	b.refill(now.Add(time.Hour))
	if b.tokens != 3 {
		t.Errorf("Expected tokens capped at 3, got %v", b.tokens)
	}
}

func TestBucket_NextToken(t *testing.T) {
	now := time.Now()
	b := newBucket(1, 0.5, now)
	b.take(now)

	if got := b.nextToken(); got != 2*time.Second {
		t.Errorf("Expected 2s until next token, got %v", got)
	}
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("192.168.1.1", "/anything", http.MethodGet)
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", info.Limit)
		}
	}

	allowed, info := l.Allow("192.168.1.1", "/anything", http.MethodGet)
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if info.RetryAfter <= 0 {
		t.Error("Expected a positive RetryAfter on denial")
	}
	if info.Remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", info.Remaining)
	}
}

func TestLimiter_RecoversOverTime(t *testing.T) {
	l, clock := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  60,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	for i := 0; i < 60; i++ {
		l.Allow("c", "/x", http.MethodGet)
	}
	if allowed, _ := l.Allow("c", "/x", http.MethodGet); allowed {
		t.Fatal("Expected denial once the burst is spent")
	}

	clock.Advance(time.Second)
	if allowed, _ := l.Allow("c", "/x", http.MethodGet); !allowed {
		t.Error("Expected one request to be allowed after a second")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
	})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := l.Allow("10.0.0.1", "/x", http.MethodGet); !allowed {
			t.Fatalf("Expected whitelisted request %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer l.Stop()

	if allowed, _ := l.Allow("10.0.0.2", "/x", http.MethodGet); allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		if allowed, _ := l.Allow("c", "/x", http.MethodGet); !allowed {
			t.Fatal("Expected all requests to be allowed when disabled")
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(2, time.Hour),
	})
	defer l.Stop()

	// generate has burst 5 regardless of the hourly limit
	for i := 0; i < 5; i++ {
		if allowed, _ := l.Allow("c", "/api/generate", http.MethodPost); !allowed {
			t.Fatalf("Expected generate request %d to be allowed", i+1)
		}
	}
	if allowed, _ := l.Allow("c", "/api/generate", http.MethodPost); allowed {
		t.Error("Expected generate to be throttled after the burst")
	}

	// other endpoints are unaffected
	if allowed, _ := l.Allow("c", "/api/resumes", http.MethodGet); !allowed {
		t.Error("Expected listing to be allowed")
	}
}

func TestLimiter_PrefixRuleSharesBucket(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/resumes/", Method: http.MethodGet, Limit: 2, Window: time.Minute},
		},
	})
	defer l.Stop()

	l.Allow("c", "/api/resumes/a", http.MethodGet)
	l.Allow("c", "/api/resumes/b", http.MethodGet)
	if allowed, _ := l.Allow("c", "/api/resumes/c", http.MethodGet); allowed {
		t.Error("Expected downloads of different ids to share one budget")
	}
	if l.size() != 1 {
		t.Errorf("Expected 1 bucket, got %d", l.size())
	}
}

func TestLimiter_HealthIsFree(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	for i := 0; i < 20; i++ {
		if allowed, _ := l.Allow("c", "/health", http.MethodGet); !allowed {
			t.Fatal("Expected health checks never to be throttled")
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("c", "/x", http.MethodGet); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected exactly 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, clock := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		IdleTimeout:   time.Minute,
	})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/x", http.MethodGet)
	}
	if l.size() != 5 {
		t.Fatalf("Expected 5 buckets, got %d", l.size())
	}

	clock.Advance(30 * time.Second)
	l.Allow("client-0", "/x", http.MethodGet)
	clock.Advance(45 * time.Second)
	l.evictIdle()

	if l.size() != 1 {
		t.Errorf("Expected only the recently used bucket to survive, got %d", l.size())
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	l.Stop()
	l.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	if allowed, _ := l.Allow("c", "/x", http.MethodGet); !allowed {
		t.Error("Expected default limiter to allow a first request")
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs(30, time.Hour)

	tests := []struct {
		name   string
		path   string
		method string
		want   string
	}{
		{"generate", "/api/generate", http.MethodPost, "/api/generate"},
		{"list exact", "/api/resumes", http.MethodGet, "/api/resumes"},
		{"download prefix", "/api/resumes/abc", http.MethodGet, "/api/resumes/"},
		{"wrong method", "/api/generate", http.MethodGet, ""},
		{"health", "/health", http.MethodGet, "/health"},
		{"unknown", "/nope", http.MethodGet, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.want == "" {
				if got != nil {
					t.Errorf("Expected no match, got %q", got.Path)
				}
				return
			}
			if got == nil || got.Path != tt.want {
				t.Errorf("Expected match %q, got %+v", tt.want, got)
			}
		})
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_GENERATE_LIMIT", "7")
	t.Setenv("RATE_LIMIT_WHITELIST", " 1.1.1.1 , 2.2.2.2,")

	cfg := LoadConfig()
	if !cfg.Enabled {
		t.Fatal("Expected limiter enabled")
	}
	if len(cfg.Whitelist) != 2 || !cfg.Whitelist["2.2.2.2"] {
		t.Errorf("Unexpected whitelist: %v", cfg.Whitelist)
	}
	rule := MatchEndpoint("/api/generate", http.MethodPost, cfg.EndpointConfigs)
	if rule == nil || rule.Limit != 7 {
		t.Errorf("Expected generate limit 7, got %+v", rule)
	}
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	if LoadConfig().Enabled {
		t.Error("Expected limiter disabled")
	}
}
