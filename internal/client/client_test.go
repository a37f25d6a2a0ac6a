package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/liomshq/lioms-client/internal/errs"
	"github.com/liomshq/lioms-client/internal/model"
	"github.com/liomshq/lioms-client/internal/tokenstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// idle keep-alive connections park these until transport shutdown
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

func newTestClient(t *testing.T, srv *httptest.Server, store *tokenstore.Store, expired *atomic.Int32) *Client {
	t.Helper()
	c, err := New(Options{
		BaseURL: srv.URL,
		Store:   store,
		OnSessionExpired: func() {
			if expired != nil {
				expired.Add(1)
			}
		},
	})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// refreshHandler answers accounts/Refresh with the given pair after delay,
// counting calls.
func refreshHandler(calls *atomic.Int32, delay time.Duration, pair model.TokenPair) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(delay)
		writeJSON(w, http.StatusOK, pair)
	}
}

func TestBearerAndRequestIDAttached(t *testing.T) {
	var gotAuth, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotID = r.Header.Get("X-Request-Id")
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	store := tokenstore.New(nil)
	require.NoError(t, store.SetTokens("T1", "R1"))
	c := newTestClient(t, srv, store, nil)

	require.NoError(t, c.Get(context.Background(), "companies", nil))
	require.Equal(t, "Bearer T1", gotAuth)
	require.NotEmpty(t, gotID)
}

func TestSingleFlightRefresh(t *testing.T) {
	const workers = 8

	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/Refresh", refreshHandler(&refreshCalls, 150*time.Millisecond, model.TokenPair{
		AccessToken: "T2", RefreshToken: "R2",
	}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer T2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := tokenstore.New(nil)
	require.NoError(t, store.SetTokens("T1", "R1"))
	c := newTestClient(t, srv, store, nil)

	var wg sync.WaitGroup
	errsCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errsCh <- c.Get(context.Background(), "plans", nil)
		}()
	}
	wg.Wait()
	close(errsCh)

	for err := range errsCh {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), refreshCalls.Load(), "exactly one refresh call for the whole burst")

	pair, ok := store.Pair()
	require.True(t, ok)
	require.Equal(t, tokenstore.Pair{AccessToken: "T2", RefreshToken: "R2"}, pair)
}

func TestOneShotRetry(t *testing.T) {
	var refreshCalls, dataCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/Refresh", refreshHandler(&refreshCalls, 0, model.TokenPair{
		AccessToken: "T2", RefreshToken: "R2",
	}))
	mux.HandleFunc("/plans", func(w http.ResponseWriter, r *http.Request) {
		dataCalls.Add(1)
		// refreshed token is still rejected
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := tokenstore.New(nil)
	require.NoError(t, store.SetTokens("T1", "R1"))
	c := newTestClient(t, srv, store, nil)

	err := c.Get(context.Background(), "plans", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.Equal(t, int32(2), dataCalls.Load(), "retried exactly once, never a third time")
	require.Equal(t, int32(1), refreshCalls.Load())
}

func TestNoCredentialShortCircuit(t *testing.T) {
	var refreshCalls atomic.Int32
	var expired atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/Refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/plans", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := tokenstore.New(nil) // no tokens at all
	c := newTestClient(t, srv, store, &expired)

	err := c.Get(context.Background(), "plans", nil)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.ErrorIs(t, err, errs.ErrSessionExpired)
	require.Equal(t, int32(0), refreshCalls.Load(), "no refresh call without a stored pair")
	require.Equal(t, int32(1), expired.Load(), "forced logout must fire")
}

func TestRefreshFailureEndsSession(t *testing.T) {
	const workers = 4

	var refreshCalls atomic.Int32
	var expired atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/Refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/plans", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := tokenstore.New(nil)
	require.NoError(t, store.SetTokens("T1", "R1"))
	c := newTestClient(t, srv, store, &expired)

	var wg sync.WaitGroup
	errsCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errsCh <- c.Get(context.Background(), "plans", nil)
		}()
	}
	wg.Wait()
	close(errsCh)

	for err := range errsCh {
		require.ErrorIs(t, err, errs.ErrUnauthorized, "every waiter rejects with the original error")
		require.ErrorIs(t, err, errs.ErrSessionExpired)
	}
	require.Equal(t, int32(1), refreshCalls.Load())
	require.False(t, store.IsAuthenticated(), "failed refresh must clear the pair")
	require.GreaterOrEqual(t, expired.Load(), int32(1))
}

func TestCreateBodyWrappedOnWire(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{"id": 1})
	}))
	defer srv.Close()

	store := tokenstore.New(nil)
	require.NoError(t, store.SetTokens("T1", "R1"))
	c := newTestClient(t, srv, store, nil)

	dto := model.CompanyPost{Name: "Acme", Alias: "acme"}
	require.NoError(t, c.DoJSON(context.Background(), http.MethodPost, "companies", dto, nil))

	require.Equal(t, map[string]any{
		"CompanyPostDTO": map[string]any{"name": "Acme", "alias": "acme"},
	}, got)
}

func TestUpdateBodyWrappedWithPathID(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/companies/42", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := tokenstore.New(nil)
	require.NoError(t, store.SetTokens("T1", "R1"))
	c := newTestClient(t, srv, store, nil)

	body := map[string]any{"name": "X"}
	require.NoError(t, c.DoJSON(context.Background(), http.MethodPut, "companies/42", body, nil))

	require.Equal(t, float64(42), got["id"])
	inner, ok := got["CompanyPutDTO"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(42), inner["id"])
	require.Equal(t, "X", inner["name"])
}

func TestExemptPathsNeverWrap(t *testing.T) {
	paths := []string{"projects/summaries/filter", "projectstates/degrade", "projectstates"}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			var got map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			store := tokenstore.New(nil)
			require.NoError(t, store.SetTokens("T1", "R1"))
			c := newTestClient(t, srv, store, nil)

			body := map[string]any{"projectId": float64(1), "stateId": float64(2)}
			require.NoError(t, c.DoJSON(context.Background(), http.MethodPost, p, body, nil))
			require.Equal(t, body, got, "bespoke body must travel unmodified")
		})
	}
}

func TestResponsesUnwrapped(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/companies", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"getDTOs":[{"id":1,"name":"Acme","alias":"acme"}]}`)
	})
	mux.HandleFunc("/projects/7", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"getDTO":{"id":7,"name":"P7"}}`)
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		// some endpoints answer bare; both shapes must decode identically
		_, _ = io.WriteString(w, `[{"id":3,"username":"ada"}]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := tokenstore.New(nil)
	require.NoError(t, store.SetTokens("T1", "R1"))
	c := newTestClient(t, srv, store, nil)
	ctx := context.Background()

	var companies []model.Company
	require.NoError(t, c.Get(ctx, "companies", &companies))
	require.Len(t, companies, 1)
	require.Equal(t, "Acme", companies[0].Name)

	var project model.Project
	require.NoError(t, c.Get(ctx, "projects/7", &project))
	require.Equal(t, int64(7), project.ID)

	var users []model.UserProfile
	require.NoError(t, c.Get(ctx, "users", &users))
	require.Len(t, users, 1)
	require.Equal(t, "ada", users[0].Username)
}

func TestUploadMultipartBypassesWrapping(t *testing.T) {
	var contentType, fileName, fileContent, projectID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		projectID = r.FormValue("projectId")
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		fileName = hdr.Filename
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		fileContent = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := tokenstore.New(nil)
	require.NoError(t, store.SetTokens("T1", "R1"))
	c := newTestClient(t, srv, store, nil)

	_, err := c.Upload(context.Background(), "projectfiles",
		map[string]string{"projectId": "9", "privacyLevel": "2"},
		"file", "report.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(contentType, "multipart/form-data"))
	require.Equal(t, "9", projectID)
	require.Equal(t, "report.pdf", fileName)
	require.Equal(t, "pdf-bytes", fileContent)
}

func TestErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, "name is required")
	}))
	defer srv.Close()

	store := tokenstore.New(nil)
	require.NoError(t, store.SetTokens("T1", "R1"))
	c := newTestClient(t, srv, store, nil)

	err := c.Get(context.Background(), "companies", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "name is required", apiErr.Message)
}

func TestTransportErrorPropagates(t *testing.T) {
	store := tokenstore.New(nil)
	c, err := New(Options{BaseURL: "http://127.0.0.1:1", Store: store,
		HTTPClient: &http.Client{Timeout: 200 * time.Millisecond}})
	require.NoError(t, err)

	err = c.Get(context.Background(), "companies", nil)
	require.Error(t, err)
	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr), "transport errors are not API errors")
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store := tokenstore.New(nil)
	require.NoError(t, store.SetTokens("T1", "R1"))
	c := newTestClient(t, srv, store, nil)

	err := c.Get(context.Background(), "companies/99", nil)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
