package riot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL), WithRateLimit(1000, 10000)}, opts...)
	client, err := NewClient("RGAPI-test-key", opts...)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClient_EmptyKey(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("Expected error for empty API key")
	}
}

func TestGetMatchHistory_MostRecentLast(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tft/match/v1/matches/by-puuid/puuid-1/ids" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("count") != "5" {
			t.Errorf("Expected count=5, got %s", r.URL.Query().Get("count"))
		}
		w.Write([]byte(`["NA1_3","NA1_2","NA1_1"]`))
	}, WithMatchCount(5))

	ids, err := client.GetMatchHistory(context.Background(), RegionAmericas, "puuid-1")
	if err != nil {
		t.Fatalf("GetMatchHistory failed: %v", err)
	}
	want := []string{"NA1_1", "NA1_2", "NA1_3"}
	if len(ids) != len(want) {
		t.Fatalf("Expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestGetMatch_Decodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tft/match/v1/matches/NA1_42" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"metadata": {"match_id": "NA1_42", "participants": ["a", "b"]},
			"info": {"game_length": 2100.5, "tft_set_number": 10, "participants": [
				{"puuid": "a", "placement": 2, "last_round": 23, "time_eliminated": 1500.25,
				 "traits": [{"name": "Set10_Punk", "num_units": 2, "style": 1, "tier_current": 1, "tier_total": 4}],
				 "units": [{"character_id": "TFT10_Ekko", "tier": 2, "rarity": 4, "itemNames": ["TFT_Item_Bloodthirster"]}]},
				{"puuid": "b", "placement": 1, "last_round": 30, "time_eliminated": 1900}
			]}
		}`))
	})

	match, err := client.GetMatch(context.Background(), RegionAmericas, "NA1_42")
	if err != nil {
		t.Fatalf("GetMatch failed: %v", err)
	}
	if match.Metadata.MatchID != "NA1_42" {
		t.Errorf("MatchID = %s", match.Metadata.MatchID)
	}
	if len(match.Info.Participants) != 2 {
		t.Fatalf("Expected 2 participants, got %d", len(match.Info.Participants))
	}
	p := match.Info.Participants[0]
	if p.LastRound != 23 || p.TimeEliminated != 1500.25 || p.Placement != 2 {
		t.Errorf("Unexpected participant: %+v", p)
	}
	if len(p.Traits) != 1 || p.Traits[0].NumUnits != 2 {
		t.Errorf("Unexpected traits: %+v", p.Traits)
	}
	if len(p.Units) != 1 || p.Units[0].CharacterID != "TFT10_Ekko" || p.Units[0].ItemNames[0] != "TFT_Item_Bloodthirster" {
		t.Errorf("Unexpected units: %+v", p.Units)
	}
}

func TestLookupPlayer_RiotID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/riot/account/v1/accounts/by-riot-id/Some%20One/NA1" {
			t.Errorf("Unexpected path: %s", r.URL.EscapedPath())
		}
		w.Write([]byte(`{"puuid":"p-1","gameName":"Some One","tagLine":"NA1"}`))
	})

	id, err := client.LookupPlayer(context.Background(), "NA1", RegionAmericas, "Some One#NA1")
	if err != nil {
		t.Fatalf("LookupPlayer failed: %v", err)
	}
	if id.PUUID != "p-1" || id.DisplayName() != "Some One#NA1" {
		t.Errorf("Unexpected identity: %+v", id)
	}
}

func TestLookupPlayer_SummonerName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tft/summoner/v1/summoners/by-name/Dishsoap" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"s-1","puuid":"p-2","name":"Dishsoap","summonerLevel":300}`))
	})

	id, err := client.LookupPlayer(context.Background(), "NA1", RegionAmericas, "Dishsoap")
	if err != nil {
		t.Fatalf("LookupPlayer failed: %v", err)
	}
	if id.PUUID != "p-2" || id.DisplayName() != "Dishsoap" {
		t.Errorf("Unexpected identity: %+v", id)
	}
}

func TestResolveParticipant(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/riot/account/v1/accounts/by-puuid/p-3" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"puuid":"p-3","gameName":"Milk","tagLine":"EUW"}`))
	})

	id, err := client.ResolveParticipant(context.Background(), RegionEurope, "p-3")
	if err != nil {
		t.Fatalf("ResolveParticipant failed: %v", err)
	}
	if id.DisplayName() != "Milk#EUW" {
		t.Errorf("DisplayName() = %s", id.DisplayName())
	}
}

func TestDoRequest_NotFoundIsTerminal(t *testing.T) {
	var attempts int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetAccountByPUUID(context.Background(), RegionAmericas, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected *APIError with 404, got: %v", err)
	}
	if atomic.LoadInt32(&attempts) != 1 {
		t.Errorf("Expected 1 attempt, got %d", atomic.LoadInt32(&attempts))
	}
}

func TestDoRequest_ServerErrorRetried(t *testing.T) {
	var attempts int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) <= 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`["NA1_1"]`))
	})

	ids, err := client.GetMatchHistory(context.Background(), RegionAmericas, "p")
	if err != nil {
		t.Fatalf("Expected success after retries, got: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("Expected 1 id, got %d", len(ids))
	}
	if atomic.LoadInt32(&attempts) != 4 {
		t.Errorf("Expected 4 attempts (3 retries), got %d", atomic.LoadInt32(&attempts))
	}
}

func TestDoRequest_RetriesExhausted(t *testing.T) {
	var attempts int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, WithPolicy(Policy{
		http.StatusServiceUnavailable: {Action: Backoff, Attempts: 2, Step: 10 * time.Millisecond},
	}))

	_, err := client.GetMatch(context.Background(), RegionAmericas, "NA1_1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 APIError, got: %v", err)
	}
	if atomic.LoadInt32(&attempts) != 3 {
		t.Errorf("Expected 3 attempts (2 backoffs), got %d", atomic.LoadInt32(&attempts))
	}
}

func TestDoRequest_RateLimited(t *testing.T) {
	var attempts int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"puuid":"p"}`))
	})

	if _, err := client.GetAccountByPUUID(context.Background(), RegionAsia, "p"); err != nil {
		t.Errorf("Expected success after 429, got: %v", err)
	}
	if atomic.LoadInt32(&attempts) != 2 {
		t.Errorf("Expected 2 attempts, got %d", atomic.LoadInt32(&attempts))
	}
}

func TestDoRequest_CacheHit(t *testing.T) {
	var attempts int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Write([]byte(`{"puuid":"p","gameName":"Cached","tagLine":"1"}`))
	}, WithCacheTTL(time.Minute))

	for i := 0; i < 3; i++ {
		id, err := client.ResolveParticipant(context.Background(), RegionAmericas, "p")
		if err != nil {
			t.Fatalf("ResolveParticipant failed: %v", err)
		}
		if id.GameName != "Cached" {
			t.Errorf("Unexpected identity: %+v", id)
		}
	}
	if atomic.LoadInt32(&attempts) != 1 {
		t.Errorf("Expected 1 request with cache, got %d", atomic.LoadInt32(&attempts))
	}
}

func TestDoRequest_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.GetMatchHistory(ctx, RegionAmericas, "p"); err == nil {
		t.Error("Expected context cancelled error")
	}
}

func TestPolicy_Delay(t *testing.T) {
	p := DefaultPolicy()

	if _, ok := p.delay(http.StatusNotFound, 1); ok {
		t.Error("404 should be terminal")
	}
	if _, ok := p.delay(http.StatusTeapot, 1); ok {
		t.Error("status without rule should be terminal")
	}
	if d, ok := p.delay(http.StatusInternalServerError, 3); !ok || d != 0 {
		t.Errorf("500 third retry = (%v, %v), want (0, true)", d, ok)
	}
	if _, ok := p.delay(http.StatusInternalServerError, 4); ok {
		t.Error("500 fourth retry should be refused")
	}
	if d, ok := p.delay(http.StatusServiceUnavailable, 2); !ok || d != 6*time.Second {
		t.Errorf("503 second retry = (%v, %v), want (6s, true)", d, ok)
	}
}
