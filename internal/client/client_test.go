// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pnum-lookup/pkg/types"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		action types.Action
		pnum   string
		want   string
	}{
		{"with pnum", types.ActionGender, "199001011234", "http://0.0.0.0:5000/pnums/gender/199001011234"},
		{"listing", types.ActionListAll, "", "http://0.0.0.0:5000/pnums/listall"},
		{"isvalid", types.ActionIsValid, "19900101-1234", "http://0.0.0.0:5000/pnums/isvalid/19900101-1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURL(types.DefaultBaseURL, tt.action, tt.pnum))
		})
	}
}

func TestSend(t *testing.T) {
	var got *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pnum":"199001011234","gender":"male"}`))
	}))
	defer ts.Close()

	c := New(types.HTTPConfig{BaseURL: ts.URL + "/pnums/", UserAgent: "pls/test", APIToken: "tok"}, nil)
	resp, err := c.Send(context.Background(), types.ActionGender, "199001011234")
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/pnums/gender/199001011234", got.URL.Path)
	assert.Equal(t, "pls/test", got.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.Equal(t, resp.RequestID, got.Header.Get("X-Request-ID"))
	_, err = uuid.Parse(resp.RequestID)
	assert.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, ts.URL+"/pnums/gender/199001011234", resp.URL)
	assert.Equal(t, types.ActionGender, resp.Action())
	assert.Equal(t, "199001011234", resp.Pnum())
	assert.JSONEq(t, `{"pnum":"199001011234","gender":"male"}`, string(resp.Body))
}

func TestSend_NoTokenNoAuthorization(t *testing.T) {
	var auth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := New(types.HTTPConfig{BaseURL: ts.URL + "/pnums/"}, nil)
	_, err := c.Send(context.Background(), types.ActionListAll, "")
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestSend_ErrorStatusIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"Error message":"Invalid personal number"}`))
	}))
	defer ts.Close()

	c := New(types.HTTPConfig{BaseURL: ts.URL + "/pnums/"}, nil)
	resp, err := c.Send(context.Background(), types.ActionAge, "123")
	require.NoError(t, err)

	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	msg, ok := resp.ErrorMessage()
	assert.True(t, ok)
	assert.Equal(t, "Invalid personal number", msg)
}

func TestSend_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	base := ts.URL + "/pnums/"
	ts.Close()

	c := New(types.HTTPConfig{BaseURL: base}, nil)
	_, err := c.Send(context.Background(), types.ActionListAll, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET "+base+"listall")
}

func TestNew_Defaults(t *testing.T) {
	c := New(types.HTTPConfig{}, nil)
	assert.Equal(t, types.DefaultBaseURL, c.cfg.BaseURL)
	assert.Equal(t, defaultUserAgent, c.cfg.UserAgent)
	assert.Zero(t, c.HTTP.Timeout)
}
