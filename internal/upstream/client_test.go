package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGet(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"status":1,"counties":["Hudson","Bergen"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/Live/Acme/")
	resp, err := c.Get(context.Background(), "/counties.php", map[string]any{
		"state":      "NJ",
		"session_id": "tok",
	})
	require.NoError(t, err)

	assert.Equal(t, "/Live/Acme/counties.php", gotPath)
	assert.Equal(t, "NJ", gotQuery.Get("state"))
	assert.Equal(t, "tok", gotQuery.Get("session_id"))
	assert.JSONEq(t, `{"status":1,"counties":["Hudson","Bergen"]}`, string(resp))
}

func TestClientPostJSON(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"status":1,"total":1234.5}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.PostJSON(context.Background(), "/closing_cost_calculations.php", map[string]any{
		"state":          "NJ",
		"purchase_price": 230000.0,
	})
	require.NoError(t, err)

	assert.Equal(t, "NJ", got["state"])
	assert.Equal(t, 230000.0, got["purchase_price"])
	status, ok := resp.Status()
	assert.True(t, ok)
	assert.Equal(t, 1, status)
}

func TestClientPostForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(body))
		assert.NoError(t, err)
		assert.Equal(t, "alice", form.Get("username"))
		assert.Equal(t, "secret", form.Get("password"))
		w.Write([]byte(`{"status":0,"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.PostForm(context.Background(), "/Login/login.php", url.Values{
		"username": {"alice"},
		"password": {"secret"},
	})
	require.NoError(t, err, "form posts return logical failures to the caller")
	assert.True(t, resp.Failed())
	assert.Equal(t, "Invalid credentials", resp.FailureMessage())
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "logical failure in 200 body",
			status:     http.StatusOK,
			body:       `{"status":0,"message":"Session expired"}`,
			wantStatus: http.StatusOK,
			wantMsg:    "Session expired",
		},
		{
			name:       "logical failure falls back to error field",
			status:     http.StatusOK,
			body:       `{"status":0,"error":"bad county"}`,
			wantStatus: http.StatusOK,
			wantMsg:    "bad county",
		},
		{
			name:       "logical failure without explanation",
			status:     http.StatusOK,
			body:       `{"status":"0"}`,
			wantStatus: http.StatusOK,
			wantMsg:    "API request failed",
		},
		{
			name:       "non-2xx with failure body",
			status:     http.StatusBadRequest,
			body:       `{"status":0,"message":"Missing state"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Missing state",
		},
		{
			name:       "non-2xx without failure body",
			status:     http.StatusInternalServerError,
			body:       `oops`,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "request failed with status code 500",
		},
		{
			name:       "invalid JSON",
			status:     http.StatusOK,
			body:       `<html>`,
			wantStatus: http.StatusOK,
			wantMsg:    "response is not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Get(context.Background(), "/geocode.php", nil)
			require.Error(t, err)

			var upErr *Error
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, tt.wantStatus, upErr.StatusCode)
			assert.Equal(t, tt.wantMsg, upErr.Message)
		})
	}
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.Get(context.Background(), "/counties.php", map[string]any{"state": "NJ"})
	require.Error(t, err)

	var upErr *Error
	require.True(t, errors.As(err, &upErr))
	assert.Zero(t, upErr.StatusCode)
	assert.Contains(t, upErr.Message, "timeout")
}

func TestEncodeQuery(t *testing.T) {
	values := EncodeQuery(map[string]any{
		"state":   "NJ",
		"price":   230000.0,
		"include": true,
		"skipped": nil,
		"loan_info": map[string]any{
			"prop_type": 1.0,
			"loan_type": 2.0,
		},
		"codes": []any{"a", "b"},
		"endorsements": []any{
			map[string]any{"endo_id": 7.0},
		},
	})

	assert.Equal(t, "NJ", values.Get("state"))
	assert.Equal(t, "230000", values.Get("price"))
	assert.Equal(t, "true", values.Get("include"))
	assert.NotContains(t, values, "skipped")
	assert.NotContains(t, values, "loan_info")
	assert.Equal(t, "1", values.Get("loan_info[prop_type]"))
	assert.Equal(t, "2", values.Get("loan_info[loan_type]"))
	assert.Equal(t, []string{"a", "b"}, values["codes[]"])
	assert.Equal(t, "7", values.Get("endorsements[0][endo_id]"))
}

func TestResponseAccessors(t *testing.T) {
	resp := Response(`{"status":1,"session_id":"abc123def456"}`)

	status, ok := resp.Status()
	assert.True(t, ok)
	assert.Equal(t, 1, status)
	assert.Equal(t, "abc123def456", resp.SessionID())
	assert.False(t, resp.Failed())

	list := Response(`[1,2,3]`)
	_, ok = list.Status()
	assert.False(t, ok)
	assert.Empty(t, list.SessionID())

	out, err := json.Marshal(map[string]any{"result": resp})
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":{"status":1,"session_id":"abc123def456"}}`, string(out))
}
