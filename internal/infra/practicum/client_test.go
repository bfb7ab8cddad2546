package practicum

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, timeout time.Duration) *Client {
	return New(Config{Endpoint: url, Token: "secret", Timeout: timeout})
}

func TestFetchStatus_OK(t *testing.T) {
	var gotAuth, gotFrom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFrom = r.URL.Query().Get("from_date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks": [{"homework_name": "hw1", "status": "approved"}], "current_date": 1000}`))
	}))
	defer srv.Close()

	payload, err := newTestClient(srv.URL, time.Second).FetchStatus(context.Background(), 1700000000)
	require.NoError(t, err)

	assert.Equal(t, "OAuth secret", gotAuth)
	assert.Equal(t, "1700000000", gotFrom)

	list, err := homework.Validate(payload)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	date, ok := homework.CurrentDate(payload)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), date)
}

func TestFetchStatus_KeepsEndpointQuery(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"homeworks": []}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL+"/?lang=ru", time.Second).FetchStatus(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"ru"}, gotQuery["lang"])
	assert.Equal(t, []string{"0"}, gotQuery["from_date"])
}

func TestFetchStatus_ReturnsPayloadUnvalidated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"not an object"`))
	}))
	defer srv.Close()

	payload, err := newTestClient(srv.URL, time.Second).FetchStatus(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "not an object", payload)
}

func TestFetchStatus_Failures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantBody   string
		wantCause  bool
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "internal", http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal",
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"homeworks": [`))
			},
			wantStatus: http.StatusOK,
			wantCause:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			payload, err := newTestClient(srv.URL, time.Second).FetchStatus(context.Background(), 0)
			require.Error(t, err)
			assert.Nil(t, payload)

			var reqErr *homework.RequestError
			require.True(t, errors.As(err, &reqErr), "expected RequestError, got %T", err)
			assert.Equal(t, tt.wantStatus, reqErr.StatusCode)
			assert.Equal(t, tt.wantBody, reqErr.Body)
			assert.Equal(t, tt.wantCause, reqErr.Err != nil)
		})
	}
}

func TestFetchStatus_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := newTestClient(addr, time.Second).FetchStatus(context.Background(), 0)
	var reqErr *homework.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Zero(t, reqErr.StatusCode)
	assert.Error(t, reqErr.Err)
}

func TestFetchStatus_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := newTestClient(srv.URL, 50*time.Millisecond).FetchStatus(context.Background(), 0)
	var reqErr *homework.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Less(t, time.Since(start), 5*time.Second)
}
