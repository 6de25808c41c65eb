package fantasycritic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fantasy-critic-bot/internal/core/domain"
)

func TestClient_Login(t *testing.T) {
	t.Run("stores credentials and notifies the hook", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/account/login" || r.Method != http.MethodPost {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["emailAddress"] != "a@b.c" || body["password"] != "hunter2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(domain.AuthCredentials{Token: "tok-1", RefreshToken: "ref-1"})
		}))
		defer server.Close()

		client := NewTestClient(server.URL)
		var notified *domain.AuthCredentials
		client.OnAuthRefresh(func(auth *domain.AuthCredentials) { notified = auth })

		if err := client.Login(context.Background(), "a@b.c", "hunter2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !client.Authenticated() {
			t.Error("client should be authenticated")
		}
		if auth := client.Auth(); auth == nil || auth.Token != "tok-1" || auth.RefreshToken != "ref-1" {
			t.Errorf("unexpected credentials: %+v", auth)
		}
		if notified == nil || notified.Token != "tok-1" {
			t.Errorf("refresh hook not notified: %+v", notified)
		}
	})

	t.Run("bad credentials surface as an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewTestClient(server.URL)
		err := client.Login(context.Background(), "a@b.c", "wrong")
		if err == nil || !strings.Contains(err.Error(), "401") {
			t.Errorf("expected status error, got %v", err)
		}
		if client.Authenticated() {
			t.Error("failed login must not authenticate the client")
		}
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewTestClient(server.URL)
		if err := client.Login(context.Background(), "a@b.c", "pw"); err == nil {
			t.Error("expected error for empty token")
		}
	})
}

func TestClient_GetLeagueYear(t *testing.T) {
	t.Run("sends bearer token and query parameters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			if r.URL.Path != "/League/GetLeagueYear" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			q := r.URL.Query()
			if q.Get("leagueID") != "league-9" || q.Get("year") != "2024" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Write([]byte(`{
				"publishers": [{"publisherName": "Hyped Games Inc", "playerName": "alice", "totalFantasyPoints": 55}],
				"playStatus": {"playStatus": "DraftFinal"}
			}`))
		}))
		defer server.Close()

		client := NewTestClient(server.URL)
		client.SetAuth(&domain.AuthCredentials{Token: "tok-1", RefreshToken: "ref-1"})

		ly, err := client.GetLeagueYear(context.Background(), domain.League{ID: "league-9", Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ly.Publishers) != 1 || ly.Publishers[0].PublisherName != "Hyped Games Inc" {
			t.Errorf("unexpected league year: %+v", ly)
		}
		if ly.PlayStatus.PlayStatus != "DraftFinal" {
			t.Errorf("unexpected play status: %q", ly.PlayStatus.PlayStatus)
		}
	})

	t.Run("requires login", func(t *testing.T) {
		client := NewTestClient("http://unused")
		if _, err := client.GetLeagueYear(context.Background(), domain.League{ID: "x", Year: 2024}); err == nil {
			t.Error("expected error without credentials")
		}
	})
}

func TestClient_TokenRefresh(t *testing.T) {
	t.Run("forbidden response refreshes once and retries", func(t *testing.T) {
		var refreshes int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/token/refresh":
				refreshes++
				var body map[string]string
				json.NewDecoder(r.Body).Decode(&body)
				if body["token"] != "stale" || body["refreshToken"] != "ref-1" {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				json.NewEncoder(w).Encode(domain.AuthCredentials{Token: "fresh", RefreshToken: "ref-2"})
			case "/League/GetLeagueActions":
				if r.Header.Get("Authorization") != "Bearer fresh" {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				w.Write([]byte(`[{"publisherName": "Hyped Games Inc", "description": "Drafted something"}]`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		client := NewTestClient(server.URL)
		client.SetAuth(&domain.AuthCredentials{Token: "stale", RefreshToken: "ref-1"})
		var notified *domain.AuthCredentials
		client.OnAuthRefresh(func(auth *domain.AuthCredentials) { notified = auth })

		actions, err := client.GetLeagueActions(context.Background(), domain.League{ID: "league-9", Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(actions) != 1 || actions[0].Description != "Drafted something" {
			t.Errorf("unexpected actions: %+v", actions)
		}
		if refreshes != 1 {
			t.Errorf("expected exactly 1 refresh, got %d", refreshes)
		}
		if notified == nil || notified.Token != "fresh" {
			t.Errorf("refreshed credentials not surfaced: %+v", notified)
		}
		if auth := client.Auth(); auth == nil || auth.Token != "fresh" {
			t.Errorf("client kept stale credentials: %+v", auth)
		}
	})

	t.Run("refresh happens at most once per request", func(t *testing.T) {
		var refreshes int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/token/refresh" {
				refreshes++
				json.NewEncoder(w).Encode(domain.AuthCredentials{Token: "still-bad", RefreshToken: "ref"})
				return
			}
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewTestClient(server.URL)
		client.SetAuth(&domain.AuthCredentials{Token: "stale", RefreshToken: "ref"})

		_, err := client.GetLeagueActions(context.Background(), domain.League{ID: "x", Year: 2024})
		if err == nil || !strings.Contains(err.Error(), "403") {
			t.Errorf("expected status error, got %v", err)
		}
		if refreshes != 1 {
			t.Errorf("expected exactly 1 refresh attempt, got %d", refreshes)
		}
	})

	t.Run("failed refresh surfaces the refresh error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/token/refresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewTestClient(server.URL)
		client.SetAuth(&domain.AuthCredentials{Token: "stale", RefreshToken: "dead"})

		_, err := client.GetLeagueYear(context.Background(), domain.League{ID: "x", Year: 2024})
		if !errors.Is(err, ErrAuthExpired) {
			t.Errorf("expected ErrAuthExpired, got %v", err)
		}
	})
}

func TestClient_GetMasterGameYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/game/MasterGameYear/2024" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`[
			{"masterGameID": "g1", "gameName": "Elden Sequel", "willRelease": true},
			{"masterGameID": "g2", "gameName": "Indie Darling", "willRelease": false}
		]`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)
	client.SetAuth(&domain.AuthCredentials{Token: "tok", RefreshToken: "ref"})

	games, err := client.GetMasterGameYear(context.Background(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 2 || games[0].MasterGameID != "g1" {
		t.Errorf("unexpected games: %+v", games)
	}
}

func TestClient_GetLeagueUpcoming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/League/GetLeagueUpcoming" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`[{"gameName": "Elden Sequel", "publisherName": "Hyped Games Inc", "estimatedReleaseDate": "2024 Q4"}]`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)
	client.SetAuth(&domain.AuthCredentials{Token: "tok", RefreshToken: "ref"})

	upcoming, err := client.GetLeagueUpcoming(context.Background(), domain.League{ID: "league-9", Year: 2024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].GameName != "Elden Sequel" {
		t.Errorf("unexpected upcoming games: %+v", upcoming)
	}
}
