package game

// Request bodies. Field names are the wire format; the terminal client and
// any other consumer must marshal them exactly as written here.
type JoinReq struct {
	Name string
}

type StateReq struct {
	PlayerId string
}

type PlayCardReq struct {
	PlayerId string
	CardId   int
}

type CzarReq struct {
	PlayerId string
}

type CzarChoiceReq struct {
	PlayerId        string
	WinningPlayerId string
}

// PlayerState is one roster row: whether the player has submitted a card
// this round, and their score so far.
type PlayerState struct {
	Id     string
	Name   string
	Played bool
	Score  int
}

// StateRsp is the full per-player snapshot. Selected is the card id this
// player has submitted for the current round, or -1 for none.
type StateRsp struct {
	PlayerId string
	Black    Card
	Hand     []Card
	Selected int
	Players  []PlayerState
}

// CzarRsp reveals the round's submissions to the judging player, keyed by
// the submitting player's id.
type CzarRsp struct {
	Played map[string]Card
}
