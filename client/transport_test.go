package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"czardeck/game"
)

func TestTransport_Call_DecodesSuccess(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req game.JoinReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal("Ann", req.Name)

		json.NewEncoder(w).Encode(game.StateRsp{PlayerId: "p1", Selected: -1})
	}))
	defer srv.Close()

	var rsp game.StateRsp
	status, raw, err := NewTransport(srv.URL).Call(context.Background(), "/join", game.JoinReq{Name: "Ann"}, &rsp, false)

	assert.NoError(err)
	assert.Equal(http.StatusOK, status)
	assert.Empty(raw)
	assert.Equal("p1", rsp.PlayerId)
}

func TestTransport_Call_FailureBodyIsRawText(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not everyone has played yet", http.StatusBadRequest)
	}))
	defer srv.Close()

	// A failure must never touch the destination value.
	rsp := game.StateRsp{PlayerId: "keep-me"}
	status, raw, err := NewTransport(srv.URL).Call(context.Background(), "/czar", game.CzarReq{}, &rsp, false)

	assert.NoError(err)
	assert.Equal(http.StatusBadRequest, status)
	assert.Equal("not everyone has played yet", raw)
	assert.Equal("keep-me", rsp.PlayerId)
}

func TestTransport_Call_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, _, err := NewTransport(srv.URL).Call(context.Background(), "/state", game.StateReq{}, nil, false)
	assert.Error(t, err)
}

func TestTransport_InFlightCounter(t *testing.T) {
	assert := assert.New(t)

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	transport := NewTransport(srv.URL)
	done := make(chan struct{})
	go func() {
		transport.Call(context.Background(), "/reset", struct{}{}, nil, false)
		close(done)
	}()

	assert.Eventually(func() bool { return transport.InFlight() == 1 },
		time.Second, time.Millisecond)

	close(release)
	<-done
	assert.Equal(0, transport.InFlight())
}

func TestTransport_SilentSkipsCounter(t *testing.T) {
	assert := assert.New(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	transport := NewTransport(srv.URL)
	done := make(chan struct{})
	go func() {
		transport.Call(context.Background(), "/state", game.StateReq{}, nil, true)
		close(done)
	}()

	// Even while the request is in progress, a silent call stays invisible.
	<-entered
	assert.Equal(0, transport.InFlight())

	close(release)
	<-done
	assert.Equal(0, transport.InFlight())
}
