// Package game holds the czardeck rules engine and the wire types shared
// by the server handlers and the terminal client.
//
// How to play
// - Each player joins by name and is dealt a hand of white cards
// - Every round has one black prompt card; non-czar players each submit a white card
// - Whoever is judging this round fetches the submissions, picks a winner, and
//   the winner scores a point
// - The judge role is not assigned by the server: anyone who has not submitted
//   a card may claim it once everyone else has played
package game

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// handSize is how many white cards each player holds.
const handSize = 10

// noCard is the sentinel card id meaning "no selection".
const noCard = -1

type Card struct {
	Id   int
	Text string
}

type Deck []Card

// Populate fills the deck with one card per text, ids assigned by index.
func (d *Deck) Populate(texts []string) {
	*d = make([]Card, len(texts))
	for i, text := range texts {
		(*d)[i] = Card{
			Id:   i,
			Text: text,
		}
	}
}

// Deal removes and returns up to count cards from the top of the deck.
func (d *Deck) Deal(count int) []Card {
	if count > len(*d) {
		count = len(*d)
	}

	result := make([]Card, count)
	copy(result, (*d)[:count])
	*d = (*d)[count:]
	return result
}

func (d *Deck) Add(cards []Card) {
	*d = append(*d, cards...)
}

func (d *Deck) Remove(cardId int) {
	for i, card := range *d {
		if card.Id == cardId {
			*d = append((*d)[:i], (*d)[i+1:]...)
			return
		}
	}
}

func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

type Player struct {
	Id   string
	Name string
	Hand Deck
}

// Game is the authoritative state of a single table. It is not safe for
// concurrent use; Server serializes access.
type Game struct {
	Blacks   Deck
	Whites   Deck
	Players  map[string]Player // playerId -> Player
	CurBlack Card
	Played   map[string]int // playerId -> cardId
	Score    map[string]int // playerId -> score
}

// Reset rebuilds both decks, clears the roster and scores, and deals the
// first black card. Every identity from the previous game is forgotten.
func (g *Game) Reset() {
	g.Played = make(map[string]int)
	g.Score = make(map[string]int)
	g.Players = make(map[string]Player)

	g.Blacks = Deck{}
	g.Whites = Deck{}
	g.Blacks.Populate(blackTexts)
	g.Whites.Populate(whiteTexts)
	g.Blacks.Shuffle()
	g.Whites.Shuffle()

	g.CurBlack = g.Blacks.Deal(1)[0]
}

// Join adds a player by name and returns their state. Joining with a name
// already at the table (case-insensitive) reclaims that identity instead of
// creating a duplicate, so a reloaded client can pick up where it left off.
func (g *Game) Join(name string) StateRsp {
	for _, player := range g.Players {
		if strings.EqualFold(player.Name, name) {
			return g.StateFor(player.Id)
		}
	}

	id := uuid.NewString()
	g.Players[id] = Player{Id: id, Name: name, Hand: g.Whites.Deal(handSize)}
	return g.StateFor(id)
}

// PlayCard records a player's submission for the round, or withdraws it
// when cardId is the sentinel. Reports false for unknown players.
func (g *Game) PlayCard(playerId string, cardId int) (StateRsp, bool) {
	if _, exists := g.Players[playerId]; !exists {
		return StateRsp{}, false
	}

	if cardId == noCard {
		delete(g.Played, playerId)
	} else {
		g.Played[playerId] = cardId
	}
	return g.StateFor(playerId), true
}

// Submissions returns this round's played cards keyed by submitter, for the
// judging player. It reports false unless the requester is eligible: they
// must not have submitted a card themselves, and everyone else must have.
func (g *Game) Submissions(playerId string) (CzarRsp, bool) {
	_, played := g.Played[playerId]
	if played || len(g.Played) != len(g.Players)-1 {
		return CzarRsp{}, false
	}

	rsp := CzarRsp{
		Played: make(map[string]Card, len(g.Played)),
	}
	for id, cardId := range g.Played {
		rsp.Played[id] = Card{Id: cardId, Text: whiteTexts[cardId]}
	}
	return rsp, true
}

// ConcludeRound scores the round for winnerId and advances to the next one:
// every played card is replaced in its owner's hand, the submission map is
// cleared, and a new black card is dealt while any remain.
func (g *Game) ConcludeRound(playerId, winnerId string) StateRsp {
	for id, cardId := range g.Played {
		p := g.Players[id]
		p.Hand.Remove(cardId)
		p.Hand.Add(g.Whites.Deal(1))
		g.Players[id] = p
	}

	g.Played = make(map[string]int)
	g.Score[winnerId]++
	if len(g.Blacks) > 0 {
		g.CurBlack = g.Blacks.Deal(1)[0]
	}

	return g.StateFor(playerId)
}

// StateFor builds the per-player snapshot sent on every mutating endpoint
// and on polls. The roster is rebuilt wholesale each time, sorted by name
// so clients render a stable list.
func (g *Game) StateFor(id string) StateRsp {
	rsp := StateRsp{
		PlayerId: id,
		Black:    g.CurBlack,
		Hand:     g.Players[id].Hand,
		Selected: noCard,
		Players:  make([]PlayerState, 0, len(g.Players)),
	}

	if played, hasPlayed := g.Played[id]; hasPlayed {
		rsp.Selected = played
	}

	for pid, player := range g.Players {
		_, hasPlayed := g.Played[pid]
		rsp.Players = append(rsp.Players, PlayerState{
			Id:     pid,
			Name:   player.Name,
			Played: hasPlayed,
			Score:  g.Score[pid],
		})
	}
	sort.Slice(rsp.Players, func(i, j int) bool {
		return rsp.Players[i].Name < rsp.Players[j].Name
	})

	return rsp
}
