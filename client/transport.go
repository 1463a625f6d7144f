// Package client implements the terminal player for czardeck: a polling
// state-synchronization engine and a small view state machine, run as a
// Bubble Tea program. The server is the only source of truth; the client
// renders whatever snapshot it last received and never mutates state
// speculatively.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
)

// Transport posts JSON request bodies to the game server and interprets
// each response exactly once: a 200 body is decoded into out, while any
// other status hands back the raw body text untouched — failure bodies are
// never assumed to be parseable. It also owns the process-wide in-flight
// counter behind the busy indicator; silent calls (background polls) skip
// the counter.
type Transport struct {
	base     string
	hc       *http.Client
	inFlight atomic.Int64
}

func NewTransport(base string) *Transport {
	return &Transport{
		base: strings.TrimSuffix(base, "/"),
		hc:   &http.Client{},
	}
}

// Call issues one request. On a 200 response the body is decoded into out
// (which may be nil to discard it) and raw is empty; on any other status
// out is left untouched and raw carries the response text. err is non-nil
// only when no response was obtained at all, or when a 200 body fails to
// decode. There are no retries, and no timeout beyond ctx: a hung request
// simply never completes.
func (t *Transport) Call(ctx context.Context, endpoint string, req, out any, silent bool) (status int, raw string, err error) {
	if !silent {
		t.inFlight.Add(1)
		defer t.inFlight.Add(-1)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return 0, "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.base+endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	rsp, err := t.hc.Do(httpReq)
	if err != nil {
		return 0, "", err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(rsp.Body)
		return rsp.StatusCode, strings.TrimSpace(string(text)), nil
	}

	if out != nil {
		if err := json.NewDecoder(rsp.Body).Decode(out); err != nil {
			return rsp.StatusCode, "", err
		}
	}
	return rsp.StatusCode, "", nil
}

// InFlight reports how many non-silent requests are outstanding. The busy
// indicator is shown whenever this is nonzero.
func (t *Transport) InFlight() int {
	return int(t.inFlight.Load())
}
