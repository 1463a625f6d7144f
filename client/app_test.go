package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"czardeck/game"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collectMsgs runs a command tree to completion and gathers every message
// it produces.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collectMsgs(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func snap(playerId, black string, selected int, hand []game.Card, names ...string) *game.StateRsp {
	players := make([]game.PlayerState, len(names))
	for i, name := range names {
		players[i] = game.PlayerState{Id: "id-" + name, Name: name}
	}
	return &game.StateRsp{
		PlayerId: playerId,
		Black:    game.Card{Id: 100, Text: black},
		Hand:     hand,
		Selected: selected,
		Players:  players,
	}
}

func newTestApp(serverURL string) *App {
	return NewApp(NewTransport(serverURL), 5*time.Millisecond)
}

// fakeTable is a canned server that records playCard requests and serves
// scripted snapshots.
type fakeTable struct {
	mu         sync.Mutex
	plays      []game.PlayCardReq
	stateCalls int
	state      *game.StateRsp
}

func (f *fakeTable) serve(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/playCard", func(w http.ResponseWriter, r *http.Request) {
		var req game.PlayCardReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		f.mu.Lock()
		f.plays = append(f.plays, req)
		f.state.Selected = req.CardId
		rsp := *f.state
		f.mu.Unlock()

		json.NewEncoder(w).Encode(rsp)
	})
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.stateCalls++
		rsp := *f.state
		f.mu.Unlock()

		json.NewEncoder(w).Encode(rsp)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestApp_StartsOnJoinView(t *testing.T) {
	app := newTestApp("http://unused")

	assert.Equal(t, view(app.join), app.cur)
	assert.Contains(t, app.View(), "Join the table")
}

func TestApp_HandleState_ShowsPlayAndRoster(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp("http://unused")

	rsp := snap("id-Ann", "Prompt X", -1,
		[]game.Card{{Id: 1, Text: "Card A"}, {Id: 2, Text: "Card B"}}, "Ann", "Bob")
	app.Update(joinRspMsg{rsp: rsp, status: 200})

	assert.Equal(view(app.play), app.cur)
	out := app.View()
	assert.Contains(out, "Prompt X")
	assert.Contains(out, "Card A")
	assert.Contains(out, "Card B")
	assert.Contains(out, "Ann (you)")
	assert.Contains(out, "Bob")
}

func TestApp_SnapshotReplacementIsTotal(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp("http://unused")

	app.Update(joinRspMsg{status: 200, rsp: snap("id-Ann", "Prompt X", -1,
		[]game.Card{{Id: 1, Text: "Card A"}}, "Ann")})
	app.Update(pollRspMsg{status: 200, rsp: snap("id-Ann", "Prompt Y", -1,
		[]game.Card{{Id: 3, Text: "Card C"}}, "Ann", "Bob")})

	out := app.View()
	assert.Contains(out, "Prompt Y")
	assert.Contains(out, "Card C")
	assert.Contains(out, "Bob")
	assert.NotContains(out, "Prompt X")
	assert.NotContains(out, "Card A")
}

func TestApp_JudgingIsSticky(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp("http://unused")

	app.Update(joinRspMsg{status: 200, rsp: snap("id-Ann", "Prompt X", -1,
		[]game.Card{{Id: 1, Text: "Card A"}}, "Ann", "Bob")})
	app.Update(czarRspMsg{status: 200, rsp: &game.CzarRsp{
		Played: map[string]game.Card{"id-Bob": {Id: 7, Text: "Card G"}},
	}})
	assert.Equal(view(app.czar), app.cur)

	// A poll landing mid-judging must not interrupt it.
	app.Update(pollRspMsg{status: 200, rsp: snap("id-Ann", "Prompt Z", -1,
		[]game.Card{{Id: 1, Text: "Card A"}}, "Ann", "Bob")})

	assert.Equal(view(app.czar), app.cur)
	assert.Contains(app.View(), "JUDGING")
}

func TestApp_CzarEntryRejected(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp("http://unused")

	app.Update(joinRspMsg{status: 200, rsp: snap("id-Ann", "Prompt X", -1,
		[]game.Card{{Id: 1, Text: "Card A"}}, "Ann")})
	app.Update(czarRspMsg{status: 400, raw: "not everyone has played yet"})

	assert.Equal(view(app.play), app.cur)
	assert.Contains(app.View(), "Can't judge: not everyone has played yet")
}

func TestApp_CzarCancelIsLocal(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp("http://unused")

	app.Update(joinRspMsg{status: 200, rsp: snap("id-Ann", "Prompt X", -1, nil, "Ann")})
	app.Update(czarRspMsg{status: 200, rsp: &game.CzarRsp{
		Played: map[string]game.Card{"id-Bob": {Id: 7, Text: "Card G"}},
	}})

	_, cmd := app.Update(key("esc"))

	assert.Equal(view(app.play), app.cur)
	assert.Nil(cmd)
}

func TestApp_CzarChoiceExitsJudgingUnconditionally(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp("http://unused")

	app.Update(joinRspMsg{status: 200, rsp: snap("id-Ann", "Prompt X", -1, nil, "Ann", "Bob")})
	app.Update(czarRspMsg{status: 200, rsp: &game.CzarRsp{
		Played: map[string]game.Card{"id-Bob": {Id: 7, Text: "Card G"}},
	}})

	// Picking asks for confirmation first.
	_, cmd := app.Update(key("enter"))
	assert.Nil(cmd)
	require.NotNil(t, app.confirm)

	_, cmd = app.Update(key("y"))
	assert.NotNil(cmd)

	// Even a failed submission ends judging.
	app.Update(czarChoiceRspMsg{status: 500})
	assert.Equal(view(app.play), app.cur)
}

func TestApp_SelectionToggle(t *testing.T) {
	assert := assert.New(t)

	table := &fakeTable{state: snap("id-Ann", "Prompt X", -1,
		[]game.Card{{Id: 1, Text: "Card A"}, {Id: 2, Text: "Card B"}}, "Ann")}
	srv := table.serve(t)
	app := newTestApp(srv.URL)

	first := *table.state
	app.Update(joinRspMsg{status: 200, rsp: &first})

	// Move the cursor to card 2 and play it.
	app.Update(key("right"))
	_, cmd := app.Update(key("enter"))
	require.NotNil(t, cmd)
	for _, msg := range collectMsgs(cmd) {
		app.Update(msg)
	}

	require.Len(t, table.plays, 1)
	assert.Equal(2, table.plays[0].CardId)
	assert.Equal(2, app.state.Selected)
	assert.Contains(app.View(), "played")

	// Playing the selected card again withdraws it (the sentinel).
	_, cmd = app.Update(key("enter"))
	require.NotNil(t, cmd)
	for _, msg := range collectMsgs(cmd) {
		app.Update(msg)
	}

	require.Len(t, table.plays, 2)
	assert.Equal(-1, table.plays[1].CardId)
	assert.Equal(-1, app.state.Selected)
	assert.NotContains(app.View(), "played")
}

func TestApp_JoinGatesPolling(t *testing.T) {
	assert := assert.New(t)

	table := &fakeTable{state: snap("id-Ann", "Prompt X", -1, nil, "Ann")}
	srv := table.serve(t)
	app := newTestApp(srv.URL)

	// No snapshot yet: a tick only reschedules itself.
	_, cmd := app.Update(pollTickMsg(time.Now()))
	for _, msg := range collectMsgs(cmd) {
		_, isTick := msg.(pollTickMsg)
		assert.True(isTick)
	}
	assert.Equal(0, table.stateCalls)

	first := *table.state
	app.Update(joinRspMsg{status: 200, rsp: &first})

	_, cmd = app.Update(pollTickMsg(time.Now()))
	sawPoll := false
	for _, msg := range collectMsgs(cmd) {
		if rsp, ok := msg.(pollRspMsg); ok {
			sawPoll = true
			app.Update(rsp)
		}
	}
	assert.True(sawPoll)
	assert.Equal(1, table.stateCalls)
}

func TestApp_PollFailureIsSkipped(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp("http://unused")

	app.Update(joinRspMsg{status: 200, rsp: snap("id-Ann", "Prompt X", -1,
		[]game.Card{{Id: 1, Text: "Card A"}}, "Ann")})

	app.Update(pollRspMsg{status: 400})

	assert.Contains(app.View(), "Prompt X")
	assert.Empty(app.status)
}

func TestApp_ResetClearsIdentity(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp("http://unused")

	app.Update(joinRspMsg{status: 200, rsp: snap("id-Ann", "Prompt X", -1,
		[]game.Card{{Id: 1, Text: "Card A"}}, "Ann", "Bob")})

	_, cmd := app.Update(key("r"))
	assert.Nil(cmd)
	require.NotNil(t, app.confirm)

	// Declining aborts before any request.
	app.Update(key("n"))
	assert.Nil(app.confirm)
	assert.Equal(view(app.play), app.cur)

	app.Update(key("r"))
	_, cmd = app.Update(key("y"))
	assert.NotNil(cmd)

	app.Update(resetRspMsg{status: 200})

	assert.Equal(view(app.join), app.cur)
	assert.Empty(app.roster.content())
	assert.Contains(app.View(), "Join the table")
}

func TestApp_BusyIndicator(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp("http://unused")

	app.Update(joinRspMsg{status: 200, rsp: snap("id-Ann", "Prompt X", -1, nil, "Ann")})

	_, cmd := app.Update(key("c"))
	assert.NotNil(cmd)
	assert.Contains(app.View(), "waiting on the server")

	app.Update(czarRspMsg{status: 400, raw: "nope"})
	assert.NotContains(app.View(), "waiting on the server")
}

func TestApp_JoinFailureKeepsForm(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp("http://unused")

	app.join.input.SetValue("Ann")
	_, cmd := app.Update(key("enter"))
	assert.NotNil(cmd)

	app.Update(joinRspMsg{status: 500, err: nil})

	assert.Equal(view(app.join), app.cur)
	assert.Contains(app.View(), "Failed to join")
	assert.Equal("Ann", app.join.input.Value())
}

// End to end against the real handlers: join, play, judge, conclude.
func TestApp_AgainstRealServer(t *testing.T) {
	assert := assert.New(t)

	mux := httprouter.New()
	game.NewServer(nil).Register("", mux, make(chan error, 64))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	app := newTestApp(srv.URL)

	app.join.input.SetValue("Ann")
	_, cmd := app.Update(key("enter"))
	require.NotNil(t, cmd)
	for _, msg := range collectMsgs(cmd) {
		app.Update(msg)
	}

	assert.Equal(view(app.play), app.cur)
	require.NotNil(t, app.state)
	assert.Len(app.state.Hand, 10)
	assert.Contains(app.View(), "Ann (you)")

	// A second player joins out of band.
	rsp, err := http.Post(srv.URL+"/join", "application/json",
		strings.NewReader(`{"Name": "Bob"}`))
	require.NoError(t, err)
	rsp.Body.Close()
	require.Equal(t, 200, rsp.StatusCode)

	// Bob hasn't played, so judging is refused and play stays active.
	_, cmd = app.Update(key("c"))
	for _, msg := range collectMsgs(cmd) {
		app.Update(msg)
	}
	assert.Equal(view(app.play), app.cur)
	assert.Contains(app.View(), "Can't judge")
}
