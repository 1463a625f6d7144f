package client

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"czardeck/game"
)

// view is the capability the controller switches between: each of the four
// views owns its rendered content and rebuilds it only when told to.
// Exactly one view is active at a time; the roster is not part of the
// rotation, it renders beside the play view as the compound in-game mode.
type view interface {
	content() string
}

// ---- Join ----

type joinView struct {
	input textinput.Model
}

func newJoinView() *joinView {
	input := textinput.New()
	input.Placeholder = "your name"
	input.CharLimit = 32
	input.Width = 24
	input.Focus()
	return &joinView{input: input}
}

func (v *joinView) content() string {
	var sb strings.Builder
	sb.WriteString(bold(clrGold).Render("CZARDECK") + "\n\n")
	sb.WriteString(fg(clrWhite).Render("Join the table") + "\n\n")
	sb.WriteString(v.input.View() + "\n\n")
	sb.WriteString(fg(clrSubtle).Render("[ ENTER ] join"))
	return sb.String()
}

// ---- Play ----

type playView struct {
	prompt  cardFace
	faces   []cardFace
	cursor  int
	width   int
	body    string
}

func newPlayView(width int) *playView {
	return &playView{width: width}
}

// render rebuilds the whole view from the snapshot: prompt card, every
// hand card, and the selection flag wherever the snapshot says the played
// card is. Nothing from a previous snapshot survives.
func (v *playView) render(state *game.StateRsp) {
	v.prompt = cardFace{card: state.Black, prompt: true}
	v.faces = make([]cardFace, len(state.Hand))
	for i, card := range state.Hand {
		v.faces[i] = cardFace{card: card}
		if card.Id == state.Selected {
			v.faces[i].setSelected(true)
		}
	}
	if v.cursor >= len(v.faces) {
		v.cursor = len(v.faces) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.rebuild()
}

func (v *playView) setWidth(width int) {
	v.width = width
	v.rebuild()
}

func (v *playView) moveCursor(delta int) {
	if len(v.faces) == 0 {
		return
	}
	v.cursor = (v.cursor + delta + len(v.faces)) % len(v.faces)
	v.rebuild()
}

// cursorCard returns the card under the cursor, if any.
func (v *playView) cursorCard() (game.Card, bool) {
	if v.cursor < 0 || v.cursor >= len(v.faces) {
		return game.Card{}, false
	}
	return v.faces[v.cursor].card, true
}

func (v *playView) rebuild() {
	if len(v.faces) == 0 && v.prompt.card.Text == "" {
		v.body = ""
		return
	}
	var sb strings.Builder
	sb.WriteString(v.prompt.render(false) + "\n\n")
	sb.WriteString(fg(clrSubtle).Render("Your hand:") + "\n")
	sb.WriteString(cardRow(v.faces, v.cursor, v.width))
	v.body = sb.String()
}

func (v *playView) content() string {
	return v.body
}

// ---- Roster ----

type rosterView struct {
	body string
}

func newRosterView() *rosterView {
	return &rosterView{}
}

// render replaces the roster wholesale from the snapshot's player list.
func (v *rosterView) render(state *game.StateRsp) {
	var sb strings.Builder
	sb.WriteString(bold(clrGold).Render("PLAYERS") + "\n")
	for _, p := range state.Players {
		marker := fg(clrSubtle).Render("-")
		if p.Played {
			marker = fg(clrGreen).Render("x")
		}
		name := p.Name
		if p.Id == state.PlayerId {
			name += " (you)"
		}
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			marker,
			fg(clrWhite).Render(fmt.Sprintf("%-18s", name)),
			fg(clrSubtle).Render(fmt.Sprintf("%3d", p.Score)),
		))
	}
	v.body = sb.String()
}

func (v *rosterView) clear() {
	v.body = ""
}

func (v *rosterView) content() string {
	return v.body
}

// ---- Czar ----

type czarCandidate struct {
	playerId string
	face     cardFace
}

type czarView struct {
	prompt     cardFace
	candidates []czarCandidate
	cursor     int
	width      int
	body       string
}

func newCzarView(width int) *czarView {
	return &czarView{width: width}
}

// render lays out the prompt card and every submission. Candidates are
// ordered by card id so the layout is stable across renders; submitters
// are tracked but never named before a pick.
func (v *czarView) render(black game.Card, rsp *game.CzarRsp) {
	v.prompt = cardFace{card: black, prompt: true}
	v.candidates = make([]czarCandidate, 0, len(rsp.Played))
	for playerId, card := range rsp.Played {
		v.candidates = append(v.candidates, czarCandidate{
			playerId: playerId,
			face:     cardFace{card: card},
		})
	}
	sort.Slice(v.candidates, func(i, j int) bool {
		return v.candidates[i].face.card.Id < v.candidates[j].face.card.Id
	})
	v.cursor = 0
	v.rebuild()
}

func (v *czarView) setWidth(width int) {
	v.width = width
	v.rebuild()
}

func (v *czarView) moveCursor(delta int) {
	if len(v.candidates) == 0 {
		return
	}
	v.cursor = (v.cursor + delta + len(v.candidates)) % len(v.candidates)
	v.rebuild()
}

func (v *czarView) cursorCandidate() (czarCandidate, bool) {
	if v.cursor < 0 || v.cursor >= len(v.candidates) {
		return czarCandidate{}, false
	}
	return v.candidates[v.cursor], true
}

func (v *czarView) rebuild() {
	faces := make([]cardFace, len(v.candidates))
	for i, c := range v.candidates {
		faces[i] = c.face
	}
	var sb strings.Builder
	sb.WriteString(bold(clrGold).Render("JUDGING") + "\n\n")
	sb.WriteString(v.prompt.render(false) + "\n\n")
	sb.WriteString(fg(clrSubtle).Render("Pick the winning card:") + "\n")
	sb.WriteString(cardRow(faces, v.cursor, v.width))
	sb.WriteString("\n\n" + fg(clrSubtle).Render("[ ENTER ] pick    [ ESC ] back to your hand"))
	v.body = sb.String()
}

func (v *czarView) content() string {
	return v.body
}
