package client

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"czardeck/game"
)

// App is the client controller. It owns the single authoritative snapshot,
// the active view, and the poll schedule. All mutation happens inside
// Update on the program's one goroutine; user input, poll ticks, and
// request completions are just messages, so every action runs to
// completion before the next is processed. Responses across independent
// actions carry no sequence numbers: whichever arrives last wins, and any
// staleness self-corrects within one poll interval.
type App struct {
	transport *Transport
	interval  time.Duration

	join   *joinView
	play   *playView
	roster *rosterView
	czar   *czarView
	cur    view

	state *game.StateRsp

	busy    int // model-side mirror of the in-flight counter, drives the indicator
	status  string
	confirm *confirmPrompt
	width   int
}

// confirmPrompt gates an irreversible action behind a y/n question. While
// set, it swallows all other input; declining aborts before any request is
// sent.
type confirmPrompt struct {
	question string
	action   tea.Cmd
}

func NewApp(transport *Transport, interval time.Duration) *App {
	a := &App{
		transport: transport,
		interval:  interval,
		join:      newJoinView(),
		play:      newPlayView(80),
		roster:    newRosterView(),
		czar:      newCzarView(80),
		width:     80,
	}
	a.cur = a.join
	return a
}

// Messages. One request command produces exactly one of these.

type pollTickMsg time.Time

type joinRspMsg struct {
	rsp    *game.StateRsp
	status int
	err    error
}

type pollRspMsg struct {
	rsp    *game.StateRsp
	status int
	err    error
}

type playRspMsg struct {
	rsp    *game.StateRsp
	status int
	err    error
}

type czarRspMsg struct {
	rsp    *game.CzarRsp
	status int
	raw    string
	err    error
}

type czarChoiceRspMsg struct {
	rsp    *game.StateRsp
	status int
	err    error
}

type resetRspMsg struct {
	status int
	err    error
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.schedulePoll(), textinput.Blink)
}

func (a *App) schedulePoll() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// handleState is the single funnel through which server truth enters the
// client: the snapshot is replaced wholesale, the in-game views re-render
// from it, and the play view becomes active unless judging is in progress.
// Judging is only ever exited by explicit cancel or by submitting a pick.
func (a *App) handleState(rsp *game.StateRsp) {
	a.state = rsp
	a.play.render(rsp)
	a.roster.render(rsp)
	if a.cur != a.czar {
		a.cur = a.play
	}
}

// Request commands. The busy mirror is adjusted synchronously in Update;
// the transport's own counter covers the request lifecycle. Requests use
// a background context: no timeout is enforced, a hung request just never
// completes.

func (a *App) joinCmd(name string) tea.Cmd {
	t := a.transport
	return func() tea.Msg {
		rsp := &game.StateRsp{}
		status, _, err := t.Call(context.Background(), "/join", game.JoinReq{Name: name}, rsp, false)
		return joinRspMsg{rsp: rsp, status: status, err: err}
	}
}

func (a *App) pollCmd(playerId string) tea.Cmd {
	t := a.transport
	return func() tea.Msg {
		rsp := &game.StateRsp{}
		status, _, err := t.Call(context.Background(), "/state", game.StateReq{PlayerId: playerId}, rsp, true)
		return pollRspMsg{rsp: rsp, status: status, err: err}
	}
}

func (a *App) playCmd(playerId string, cardId int) tea.Cmd {
	t := a.transport
	return func() tea.Msg {
		rsp := &game.StateRsp{}
		status, _, err := t.Call(context.Background(), "/playCard", game.PlayCardReq{PlayerId: playerId, CardId: cardId}, rsp, false)
		return playRspMsg{rsp: rsp, status: status, err: err}
	}
}

func (a *App) czarCmd(playerId string) tea.Cmd {
	t := a.transport
	return func() tea.Msg {
		rsp := &game.CzarRsp{}
		status, raw, err := t.Call(context.Background(), "/czar", game.CzarReq{PlayerId: playerId}, rsp, false)
		return czarRspMsg{rsp: rsp, status: status, raw: raw, err: err}
	}
}

func (a *App) czarChoiceCmd(playerId, winnerId string) tea.Cmd {
	t := a.transport
	return func() tea.Msg {
		rsp := &game.StateRsp{}
		status, _, err := t.Call(context.Background(), "/czarChoice", game.CzarChoiceReq{PlayerId: playerId, WinningPlayerId: winnerId}, rsp, false)
		return czarChoiceRspMsg{rsp: rsp, status: status, err: err}
	}
}

func (a *App) resetCmd() tea.Cmd {
	t := a.transport
	return func() tea.Msg {
		status, _, err := t.Call(context.Background(), "/reset", struct{}{}, nil, false)
		return resetRspMsg{status: status, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.play.setWidth(msg.Width)
		a.czar.setWidth(msg.Width)
		return a, nil

	case pollTickMsg:
		// Join gates polling: nothing is fetched until a snapshot exists.
		// Overlapping polls are not prevented; last response wins.
		if a.state == nil {
			return a, a.schedulePoll()
		}
		return a, tea.Batch(a.pollCmd(a.state.PlayerId), a.schedulePoll())

	case tea.KeyMsg:
		return a.handleKey(msg)

	case joinRspMsg:
		a.busy--
		if msg.err != nil || msg.status != 200 {
			a.status = "Failed to join"
			return a, nil
		}
		a.status = ""
		a.handleState(msg.rsp)
		return a, nil

	case pollRspMsg:
		// Poll failures skip the update and retry at the next interval.
		if msg.err != nil || msg.status != 200 {
			return a, nil
		}
		a.handleState(msg.rsp)
		return a, nil

	case playRspMsg:
		a.busy--
		if msg.err != nil || msg.status != 200 {
			a.status = "The server rejected that play"
			return a, nil
		}
		a.status = ""
		a.handleState(msg.rsp)
		return a, nil

	case czarRspMsg:
		a.busy--
		if msg.err != nil || msg.status != 200 {
			reason := msg.raw
			if reason == "" {
				reason = "request failed"
			}
			a.status = "Can't judge: " + reason
			return a, nil
		}
		a.status = ""
		a.czar.render(a.state.Black, msg.rsp)
		a.cur = a.czar
		return a, nil

	case czarChoiceRspMsg:
		a.busy--
		// Judging ends with the submission, whether or not it succeeded.
		if a.cur == a.czar {
			a.cur = a.play
		}
		if msg.err != nil || msg.status != 200 {
			a.status = "The pick was not accepted"
			return a, nil
		}
		a.status = ""
		a.handleState(msg.rsp)
		return a, nil

	case resetRspMsg:
		a.busy--
		if msg.err != nil || msg.status != 200 {
			a.status = "Reset failed"
			return a, nil
		}
		a.roster.clear()
		a.cur = a.join
		a.status = "Game reset; join with a fresh name"
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	// A pending confirmation swallows everything else.
	if a.confirm != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			action := a.confirm.action
			a.confirm = nil
			a.busy++
			return a, action
		case "n", "N", "esc":
			a.confirm = nil
			return a, nil
		}
		return a, nil
	}

	switch a.cur {

	case a.join:
		if msg.Type == tea.KeyEnter {
			name := strings.TrimSpace(a.join.input.Value())
			if name == "" {
				return a, nil
			}
			a.busy++
			return a, a.joinCmd(name)
		}
		var cmd tea.Cmd
		a.join.input, cmd = a.join.input.Update(msg)
		return a, cmd

	case a.play:
		switch msg.String() {
		case "left", "h":
			a.play.moveCursor(-1)
			return a, nil
		case "right", "l":
			a.play.moveCursor(1)
			return a, nil
		case "enter", " ":
			card, ok := a.play.cursorCard()
			if !ok {
				return a, nil
			}
			// Toggle: re-playing the already-selected card withdraws it.
			// The decision is made from the server-confirmed selection,
			// never from an optimistic local flip.
			cardId := card.Id
			if a.state.Selected == card.Id {
				cardId = -1
			}
			a.busy++
			return a, a.playCmd(a.state.PlayerId, cardId)
		case "c":
			a.busy++
			return a, a.czarCmd(a.state.PlayerId)
		case "r":
			a.confirm = &confirmPrompt{
				question: "This will start the game over with a new deck and players. Are you sure?",
				action:   a.resetCmd(),
			}
			return a, nil
		case "q":
			return a, tea.Quit
		}

	case a.czar:
		switch msg.String() {
		case "left", "h":
			a.czar.moveCursor(-1)
			return a, nil
		case "right", "l":
			a.czar.moveCursor(1)
			return a, nil
		case "esc":
			// Local cancel: back to the hand without contacting the server.
			a.cur = a.play
			return a, nil
		case "enter", " ":
			candidate, ok := a.czar.cursorCandidate()
			if !ok {
				return a, nil
			}
			a.confirm = &confirmPrompt{
				question: candidate.face.card.Text + "\nIs that your final answer?",
				action:   a.czarChoiceCmd(a.state.PlayerId, candidate.playerId),
			}
			return a, nil
		}
	}

	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.cur {
	case a.join:
		body = a.join.content()
	case a.czar:
		body = a.czar.content()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			a.play.content(),
			"   ",
			a.roster.content(),
		)
		body += "\n\n" + fg(clrSubtle).Render("[ ←/→ ] move    [ ENTER ] play/withdraw    [ c ] judge    [ r ] reset    [ q ] quit")
	}

	return body + "\n" + a.statusBar()
}

func (a *App) statusBar() string {
	if a.confirm != nil {
		return fg(clrGold).Render(a.confirm.question) + "  " + bold(clrWhite).Render("[y/n]")
	}

	var parts []string
	if a.status != "" {
		parts = append(parts, fg(clrRed).Render(a.status))
	}
	if a.busy > 0 || a.transport.InFlight() > 0 {
		parts = append(parts, fg(clrSubtle).Render("⋯ waiting on the server"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "   ")
}
