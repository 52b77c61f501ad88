// Package soccermarkets prices secondary soccer-match betting markets
// (head-to-head, total goals, correct score, goalscorer and assist offers)
// from a compact set of team- and player-level scoring parameters.
package soccermarkets

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Score is a full or partial match scoreline.
type Score struct {
	Home uint8
	Away uint8
}

// Total returns home+away goals widened to avoid overflow.
func (s Score) Total() int {
	return int(s.Home) + int(s.Away)
}

func (s Score) String() string {
	return fmt.Sprintf("%d:%d", s.Home, s.Away)
}

// Period identifies which part of the match an offer or projection applies to.
type Period int

const (
	FirstHalf Period = iota
	SecondHalf
	FullTime
)

func (p Period) String() string {
	switch p {
	case FirstHalf:
		return "FirstHalf"
	case SecondHalf:
		return "SecondHalf"
	case FullTime:
		return "FullTime"
	default:
		return fmt.Sprintf("Period(%d)", int(p))
	}
}

// Side identifies the home or away team.
type Side int

const (
	Home Side = iota
	Away
)

func (s Side) String() string {
	switch s {
	case Home:
		return "Home"
	case Away:
		return "Away"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Home {
		return Away
	}
	return Home
}

// playerKind discriminates the Player tagged union.
type playerKind int

const (
	playerNamed playerKind = iota
	playerOther
)

// Player identifies a goalscorer or assister: either a named individual on a
// side, or the Other bucket that aggregates every unnamed scorer on that
// side. Other carries a Side so the two unnamed buckets are distinct values
// from construction, rather than requiring disambiguation at attribution
// time (see DESIGN.md, "Other disambiguation").
type Player struct {
	kind playerKind
	Side Side
	Name string
}

// NamedPlayer constructs a named player on the given side.
func NamedPlayer(side Side, name string) Player {
	return Player{kind: playerNamed, Side: side, Name: name}
}

// OtherPlayer constructs the unnamed-scorer bucket for the given side.
func OtherPlayer(side Side) Player {
	return Player{kind: playerOther, Side: side}
}

// IsOther reports whether this is an Other bucket rather than a named player.
func (p Player) IsOther() bool {
	return p.kind == playerOther
}

func (p Player) String() string {
	if p.kind == playerOther {
		return fmt.Sprintf("Other(%s)", p.Side)
	}
	return fmt.Sprintf("%s:%s", p.Side, p.Name)
}

// playerGob is Player's wire shape: gob only encodes exported fields, and
// kind must round-trip so that Config's cache key (see cache.go) and any
// other serialization distinguish a named player from the Other bucket.
type playerGob struct {
	Kind playerKind
	Side Side
	Name string
}

func (p Player) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(playerGob{Kind: p.kind, Side: p.Side, Name: p.Name}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Player) GobDecode(data []byte) error {
	var g playerGob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}
	p.kind = g.Kind
	p.Side = g.Side
	p.Name = g.Name
	return nil
}

// offerKind discriminates the OfferType tagged union.
type offerKind int

const (
	offerHeadToHead offerKind = iota
	offerTotalGoals
	offerCorrectScore
	offerDrawNoBet
	offerFirstGoalscorer
	offerAnytimeGoalscorer
	offerPlayerShotsOnTarget
	offerAnytimeAssist
)

// OfferType identifies a market. Period and Threshold are only meaningful
// for the kinds that use them (HeadToHead/TotalGoals/CorrectScore and
// TotalGoals/PlayerShotsOnTarget respectively); constructors zero the
// unused fields so two logically-equal offers always compare ==.
type OfferType struct {
	kind      offerKind
	Period    Period
	Threshold uint8
}

func HeadToHeadOffer(period Period) OfferType {
	return OfferType{kind: offerHeadToHead, Period: period}
}
func TotalGoalsOffer(period Period, threshold uint8) OfferType {
	return OfferType{kind: offerTotalGoals, Period: period, Threshold: threshold}
}
func CorrectScoreOffer(period Period) OfferType {
	return OfferType{kind: offerCorrectScore, Period: period}
}
func DrawNoBetOffer() OfferType       { return OfferType{kind: offerDrawNoBet} }
func FirstGoalscorerOffer() OfferType { return OfferType{kind: offerFirstGoalscorer} }
func AnytimeGoalscorerOffer() OfferType {
	return OfferType{kind: offerAnytimeGoalscorer}
}
func PlayerShotsOnTargetOffer(threshold uint8) OfferType {
	return OfferType{kind: offerPlayerShotsOnTarget, Threshold: threshold}
}
func AnytimeAssistOffer() OfferType { return OfferType{kind: offerAnytimeAssist} }

func (o OfferType) String() string {
	switch o.kind {
	case offerHeadToHead:
		return fmt.Sprintf("HeadToHead(%s)", o.Period)
	case offerTotalGoals:
		return fmt.Sprintf("TotalGoals(%s, %d)", o.Period, o.Threshold)
	case offerCorrectScore:
		return fmt.Sprintf("CorrectScore(%s)", o.Period)
	case offerDrawNoBet:
		return "DrawNoBet"
	case offerFirstGoalscorer:
		return "FirstGoalscorer"
	case offerAnytimeGoalscorer:
		return "AnytimeGoalscorer"
	case offerPlayerShotsOnTarget:
		return fmt.Sprintf("PlayerShotsOnTarget(%d)", o.Threshold)
	case offerAnytimeAssist:
		return "AnytimeAssist"
	default:
		return fmt.Sprintf("OfferType(%d)", int(o.kind))
	}
}

// outcomeKind discriminates the Outcome tagged union.
type outcomeKind int

const (
	outcomeWin outcomeKind = iota
	outcomeDraw
	outcomeOver
	outcomeUnder
	outcomeScore
	outcomePlayer
	outcomeNone
)

// Outcome identifies a single selection within an offer.
type Outcome struct {
	kind      outcomeKind
	Side      Side
	Threshold uint8
	Score     Score
	Player    Player
}

func WinOutcome(side Side) Outcome       { return Outcome{kind: outcomeWin, Side: side} }
func DrawOutcome() Outcome               { return Outcome{kind: outcomeDraw} }
func OverOutcome(threshold uint8) Outcome { return Outcome{kind: outcomeOver, Threshold: threshold} }
func UnderOutcome(threshold uint8) Outcome {
	return Outcome{kind: outcomeUnder, Threshold: threshold}
}
func ScoreOutcome(score Score) Outcome    { return Outcome{kind: outcomeScore, Score: score} }
func PlayerOutcome(player Player) Outcome { return Outcome{kind: outcomePlayer, Player: player} }
func NoneOutcome() Outcome                { return Outcome{kind: outcomeNone} }

func (o Outcome) String() string {
	switch o.kind {
	case outcomeWin:
		return fmt.Sprintf("Win(%s)", o.Side)
	case outcomeDraw:
		return "Draw"
	case outcomeOver:
		return fmt.Sprintf("Over(%d)", o.Threshold)
	case outcomeUnder:
		return fmt.Sprintf("Under(%d)", o.Threshold)
	case outcomeScore:
		return fmt.Sprintf("Score(%s)", o.Score)
	case outcomePlayer:
		return fmt.Sprintf("Player(%s)", o.Player)
	case outcomeNone:
		return "None"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o.kind))
	}
}

// BivariateProbs are the per-interval probabilities that, within one slice,
// the home team alone scores, the away team alone scores, or both score
// simultaneously (the coincident component of a Holgate-style bivariate
// Poisson). The residual 1-Home-Away-Common is the no-goal probability.
type BivariateProbs struct {
	Home   float64
	Away   float64
	Common float64
}

// UnivariateProbs is the conditional probability that a goal for a side is
// credited with an assist.
type UnivariateProbs struct {
	Home float64
	Away float64
}

// TeamProbs holds the fitted team-level scoring parameters for both halves.
type TeamProbs struct {
	H1Goals BivariateProbs
	H2Goals BivariateProbs
	Assists UnivariateProbs
}

// PlayerProbs are conditional attribution probabilities for one player. Nil
// fields mean "not fitted" (the Rust Option<f64> equivalent).
type PlayerProbs struct {
	Goal   *float64
	Assist *float64
}

// Expansions is a capability set describing which prospect attributes must
// be tracked by the interval engine. Callers union the requirements of every
// offer they intend to query to obtain the minimal tracking set.
type Expansions struct {
	HTScore              bool
	FTScore              bool
	PlayerGoalStats      bool
	PlayerSplitGoalStats bool
	MaxPlayerAssists     int
	FirstGoalscorer      bool
}

// Union reduces two expansion sets by field-wise or/max, producing the
// minimal set that satisfies both.
func (e Expansions) Union(other Expansions) Expansions {
	maxAssists := e.MaxPlayerAssists
	if other.MaxPlayerAssists > maxAssists {
		maxAssists = other.MaxPlayerAssists
	}
	return Expansions{
		HTScore:              e.HTScore || other.HTScore,
		FTScore:              e.FTScore || other.FTScore,
		PlayerGoalStats:      e.PlayerGoalStats || other.PlayerGoalStats,
		PlayerSplitGoalStats: e.PlayerSplitGoalStats || other.PlayerSplitGoalStats,
		MaxPlayerAssists:     maxAssists,
		FirstGoalscorer:      e.FirstGoalscorer || other.FirstGoalscorer,
	}
}

// TracksAssists reports whether any assist attribution is required.
func (e Expansions) TracksAssists() bool {
	return e.MaxPlayerAssists > 0
}

// PruneThresholds bound the state space the engine is willing to retain.
type PruneThresholds struct {
	MaxTotalGoals uint16
	MinProb       float64
}

// PlayerRating pairs a player with their fitted attribution probabilities.
// Config.PlayerProbs is a slice (not a map) so that its order is part of the
// canonical cache key and is reproducible across runs.
type PlayerRating struct {
	Player Player
	Probs  PlayerProbs
}

// Config is the full, canonically-ordered parameterization of one
// Explore call. It is used directly as a cache key (see cache.go), so every
// field that affects the resulting distribution must be represented here,
// including Expansions -- omitting it would let a cheap head-to-head query
// collide with an expensive goalscorer query that shares the same team and
// player probabilities.
type Config struct {
	Intervals   uint8
	TeamProbs   TeamProbs
	PlayerProbs []PlayerRating
	Prune       PruneThresholds
	Expansions  Expansions
}

// GoalsAssists counts goals and assists credited to one player in one half.
type GoalsAssists struct {
	Goals   uint8
	Assists uint8
}

// PlayerStats splits one player's match contribution by half.
type PlayerStats struct {
	H1 GoalsAssists
	H2 GoalsAssists
}

// MaxTrackedPlayers bounds how many distinct players the engine can carry
// per-player stats for within one ProspectKey. It is a Go-native
// consequence of needing a fixed-size, natively-comparable map key (see
// DESIGN.md, "ProspectKey coarsening"): Go map keys cannot embed a slice, so
// stats are carried in a fixed array indexed by the engine's player lookup.
// Real offer catalogs price goal/assist markets for a small named subset of
// each squad, so this comfortably covers real fixtures.
const MaxTrackedPlayers = 32

// noFirstScorer is the ProspectKey sentinel for "no goal has been scored
// yet" / "first_goalscorer not tracked" (Option<usize>::None in the
// original engine). Player indices are always >= 0, so -1 is unambiguous.
const noFirstScorer = -1

// ProspectKey is a joint outcome of a simulated match, coarsened to exactly
// the attributes the active Expansions track and comparable as a native Go
// map key (see DESIGN.md Design Note 2). Stats is indexed positionally by
// the engine's HashLookup[Player]; slots beyond the tracked player count are
// zero. FirstScorer holds a player index, or noFirstScorer.
type ProspectKey struct {
	HTScore     Score
	FTScore     Score
	Stats       [MaxTrackedPlayers]PlayerStats
	FirstScorer int
}

// H2Score derives the second-half-only scoreline from HTScore and FTScore.
func (p ProspectKey) H2Score() Score {
	return Score{Home: p.FTScore.Home - p.HTScore.Home, Away: p.FTScore.Away - p.HTScore.Away}
}

// TotalGoalsForPlayer sums a tracked player's goals across both halves.
func (p ProspectKey) TotalGoalsForPlayer(index int) int {
	if index < 0 || index >= MaxTrackedPlayers {
		return 0
	}
	return int(p.Stats[index].H1.Goals) + int(p.Stats[index].H2.Goals)
}

// TotalAssistsForPlayer sums a tracked player's assists across both halves.
func (p ProspectKey) TotalAssistsForPlayer(index int) int {
	if index < 0 || index >= MaxTrackedPlayers {
		return 0
	}
	return int(p.Stats[index].H1.Assists) + int(p.Stats[index].H2.Assists)
}

// Prospects is a mapping from coarsened joint outcome to probability.
// Invariant: non-negative values; sums to 1 minus any pruned mass.
type Prospects map[ProspectKey]float64

// Exploration is the result of one Explore call: the terminal distribution
// plus the player lookup that fixes the positional meaning of every
// ProspectKey.Stats slot and FirstScorer index.
type Exploration struct {
	PlayerLookup HashLookup[Player]
	Prospects    Prospects
}

// SurvivalMass returns the sum of the exploration's prospect probabilities,
// i.e. 1 minus whatever mass pruning discarded.
func (e Exploration) SurvivalMass() float64 {
	var sum float64
	for _, w := range e.Prospects {
		sum += w
	}
	return sum
}

// Market carries the caller's already-converted outcome probabilities,
// aligned by index with the owning Offer's Outcomes lookup. Price<->
// probability conversion (decimal odds, overround) is an external
// collaborator's responsibility and is not modeled here.
type Market struct {
	Probs []float64 `json:"probs"`
}

// Offer is one priced (or to-be-priced) market: its type, its ordered set of
// outcomes, and the observed (or modeled) probability of each.
type Offer struct {
	OfferType OfferType           `json:"offer_type"`
	Outcomes  HashLookup[Outcome] `json:"outcomes"`
	Market    Market              `json:"market"`
}

// Booksum returns the sum of the offer's probabilities.
func (o Offer) Booksum() float64 {
	var sum float64
	for _, p := range o.Market.Probs {
		sum += p
	}
	return sum
}

// Probability returns the probability of the given outcome, if present.
func (o Offer) Probability(outcome Outcome) (float64, bool) {
	idx, ok := o.Outcomes.IndexOf(outcome)
	if !ok {
		return 0, false
	}
	return o.Market.Probs[idx], true
}
