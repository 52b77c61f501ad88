package soccermarkets

import (
	"encoding/json"
	"fmt"
	"sort"
)

// JSON codecs for the tagged-struct types (OfferType, Outcome, Player) and
// Period/Side. encoding/json, like encoding/gob, only sees exported fields,
// so each type's unexported `kind` discriminant needs an explicit textual
// encoding to round-trip through a Fit-request/Price-response file (see
// SPEC_FULL.md §6: "a Model with offers populated from JSON").

func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Period) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "FirstHalf":
		*p = FirstHalf
	case "SecondHalf":
		*p = SecondHalf
	case "FullTime":
		*p = FullTime
	default:
		return fmt.Errorf("unknown period %q", s)
	}
	return nil
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "Home":
		*s = Home
	case "Away":
		*s = Away
	default:
		return fmt.Errorf("unknown side %q", str)
	}
	return nil
}

type playerJSON struct {
	Kind string `json:"kind"`
	Side Side   `json:"side"`
	Name string `json:"name,omitempty"`
}

func (p Player) MarshalJSON() ([]byte, error) {
	kind := "Named"
	if p.kind == playerOther {
		kind = "Other"
	}
	return json.Marshal(playerJSON{Kind: kind, Side: p.Side, Name: p.Name})
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var raw playerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case "Named":
		*p = NamedPlayer(raw.Side, raw.Name)
	case "Other":
		*p = OtherPlayer(raw.Side)
	default:
		return fmt.Errorf("unknown player kind %q", raw.Kind)
	}
	return nil
}

var offerKindNames = map[offerKind]string{
	offerHeadToHead:          "HeadToHead",
	offerTotalGoals:          "TotalGoals",
	offerCorrectScore:        "CorrectScore",
	offerDrawNoBet:           "DrawNoBet",
	offerFirstGoalscorer:     "FirstGoalscorer",
	offerAnytimeGoalscorer:   "AnytimeGoalscorer",
	offerPlayerShotsOnTarget: "PlayerShotsOnTarget",
	offerAnytimeAssist:       "AnytimeAssist",
}

type offerTypeJSON struct {
	Kind      string `json:"kind"`
	Period    Period `json:"period,omitempty"`
	Threshold uint8  `json:"threshold,omitempty"`
}

func (o OfferType) MarshalJSON() ([]byte, error) {
	name, ok := offerKindNames[o.kind]
	if !ok {
		return nil, fmt.Errorf("unknown offer kind %d", o.kind)
	}
	return json.Marshal(offerTypeJSON{Kind: name, Period: o.Period, Threshold: o.Threshold})
}

func (o *OfferType) UnmarshalJSON(data []byte) error {
	var raw offerTypeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for kind, name := range offerKindNames {
		if name == raw.Kind {
			*o = OfferType{kind: kind, Period: raw.Period, Threshold: raw.Threshold}
			return nil
		}
	}
	return fmt.Errorf("unknown offer type kind %q", raw.Kind)
}

var outcomeKindNames = map[outcomeKind]string{
	outcomeWin:    "Win",
	outcomeDraw:   "Draw",
	outcomeOver:   "Over",
	outcomeUnder:  "Under",
	outcomeScore:  "Score",
	outcomePlayer: "Player",
	outcomeNone:   "None",
}

type outcomeJSON struct {
	Kind      string  `json:"kind"`
	Side      Side    `json:"side,omitempty"`
	Threshold uint8   `json:"threshold,omitempty"`
	Score     *Score  `json:"score,omitempty"`
	Player    *Player `json:"player,omitempty"`
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	name, ok := outcomeKindNames[o.kind]
	if !ok {
		return nil, fmt.Errorf("unknown outcome kind %d", o.kind)
	}
	raw := outcomeJSON{Kind: name, Side: o.Side, Threshold: o.Threshold}
	if o.kind == outcomeScore {
		raw.Score = &o.Score
	}
	if o.kind == outcomePlayer {
		raw.Player = &o.Player
	}
	return json.Marshal(raw)
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	var raw outcomeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for kind, name := range outcomeKindNames {
		if name != raw.Kind {
			continue
		}
		switch kind {
		case outcomeScore:
			if raw.Score == nil {
				return fmt.Errorf("outcome kind Score requires a score field")
			}
			*o = ScoreOutcome(*raw.Score)
		case outcomePlayer:
			if raw.Player == nil {
				return fmt.Errorf("outcome kind Player requires a player field")
			}
			*o = PlayerOutcome(*raw.Player)
		case outcomeWin:
			*o = WinOutcome(raw.Side)
		case outcomeOver:
			*o = OverOutcome(raw.Threshold)
		case outcomeUnder:
			*o = UnderOutcome(raw.Threshold)
		case outcomeDraw:
			*o = DrawOutcome()
		case outcomeNone:
			*o = NoneOutcome()
		}
		return nil
	}
	return fmt.Errorf("unknown outcome kind %q", raw.Kind)
}

// Model's wire shape follows SPEC_FULL.md §6: fit input is "a Model with
// offers populated from JSON"; fit output is "the same Model with
// goal_probs, assist_probs, and player_probs set" -- here team_probs bundles
// the per-half goal probabilities and the side-level assist rate, and
// player_probs is the flattened per-player goal/assist attribution.
type teamProbsJSON struct {
	H1Goals BivariateProbs  `json:"h1_goals"`
	H2Goals BivariateProbs  `json:"h2_goals"`
	Assists UnivariateProbs `json:"assists"`
}

type playerProbsEntryJSON struct {
	Player Player   `json:"player"`
	Goal   *float64 `json:"goal,omitempty"`
	Assist *float64 `json:"assist,omitempty"`
}

type modelJSON struct {
	Offers      []Offer                `json:"offers"`
	TeamProbs   *teamProbsJSON         `json:"team_probs,omitempty"`
	PlayerProbs []playerProbsEntryJSON `json:"player_probs,omitempty"`
}

func (m Model) MarshalJSON() ([]byte, error) {
	var raw modelJSON
	for _, o := range m.Offers {
		raw.Offers = append(raw.Offers, o)
	}
	sort.Slice(raw.Offers, func(i, j int) bool {
		return raw.Offers[i].OfferType.String() < raw.Offers[j].OfferType.String()
	})

	if m.TeamProbs != nil {
		raw.TeamProbs = &teamProbsJSON{
			H1Goals: m.TeamProbs.H1Goals,
			H2Goals: m.TeamProbs.H2Goals,
			Assists: m.TeamProbs.Assists,
		}
	}

	for p, pp := range m.PlayerProbs {
		raw.PlayerProbs = append(raw.PlayerProbs, playerProbsEntryJSON{Player: p, Goal: pp.Goal, Assist: pp.Assist})
	}
	sort.Slice(raw.PlayerProbs, func(i, j int) bool {
		return raw.PlayerProbs[i].Player.String() < raw.PlayerProbs[j].Player.String()
	})

	return json.Marshal(raw)
}

func (m *Model) UnmarshalJSON(data []byte) error {
	var raw modelJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = *NewModel()
	for _, o := range raw.Offers {
		m.SetOffer(o)
	}
	if raw.TeamProbs != nil {
		tp := TeamProbs{H1Goals: raw.TeamProbs.H1Goals, H2Goals: raw.TeamProbs.H2Goals, Assists: raw.TeamProbs.Assists}
		m.TeamProbs = &tp
	}
	for _, e := range raw.PlayerProbs {
		pp := m.getOrCreatePlayer(e.Player)
		pp.Goal = e.Goal
		pp.Assist = e.Assist
	}
	return nil
}
