package rewards

import (
	"encoding/json"
)

// RawAmount is a decimal figure exactly as written in the extract, either a
// JSON string or a JSON number. It is parsed when the row is applied, so a
// malformed figure is reported as an ArithmeticError naming the field rather
// than as an undecodable line.
type RawAmount struct {
	text    string
	present bool
}

// Raw returns a present RawAmount holding s.
func Raw(s string) RawAmount { return RawAmount{text: s, present: true} }

// Present reports whether the field was in the extract (and not null).
func (r RawAmount) Present() bool { return r.present }

func (r RawAmount) String() string { return r.text }

func (r RawAmount) MarshalJSON() ([]byte, error) {
	if !r.present {
		return []byte("null"), nil
	}
	return json.Marshal(r.text)
}

func (r *RawAmount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = RawAmount{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Raw(s)
		return nil
	}
	*r = Raw(string(b))
	return nil
}

// LoyaltyTier is the loyalty level of an account, as attached to each of its
// holdings.
type LoyaltyTier struct {
	Title string `json:"title"`
	Level int    `json:"level,omitempty"`
}

// BalanceChange is one entry of a holding's balance history.
type BalanceChange struct {
	Type       string    `json:"type,omitempty"`
	Date       string    `json:"date,omitempty"`
	NewBalance RawAmount `json:"newBalance"`
}

// CoinHolding is the reward data of one coin held by one account for the week.
//
// Fields that are missing from some historical extracts are optional:
// EarningInterestInCel defaults to false, a missing LoyaltyTier yields an
// empty title and a missing InterestCoin means interest is paid in the held
// coin itself.
type CoinHolding struct {
	InterestCoin         string          `json:"interestCoin,omitempty"`
	TotalInterestInCoin  RawAmount       `json:"totalInterestInCoin"`
	TotalInterestInUsd   RawAmount       `json:"totalInterestInUsd"`
	EarningInterestInCel bool            `json:"earningInterestInCel"`
	LoyaltyTier          *LoyaltyTier    `json:"loyaltyTier,omitempty"`
	DistributionData     []BalanceChange `json:"distributionData"`

	// raw is the holding as read from the extract, fields we ignore included.
	raw json.RawMessage
}

// TierTitle returns the loyalty tier title, or "" when the holding has none.
func (h CoinHolding) TierTitle() string {
	if h.LoyaltyTier == nil {
		return ""
	}
	return h.LoyaltyTier.Title
}

// CurrentBalance returns the last balance of the history, and false if the
// history is empty.
func (h CoinHolding) CurrentBalance() (RawAmount, bool) {
	if len(h.DistributionData) == 0 {
		return RawAmount{}, false
	}
	return h.DistributionData[len(h.DistributionData)-1].NewBalance, true
}

// plainHolding has the fields of CoinHolding without its methods.
type plainHolding CoinHolding

func (h *CoinHolding) UnmarshalJSON(b []byte) error {
	var p plainHolding
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*h = CoinHolding(p)
	h.raw = append(json.RawMessage(nil), b...)
	return nil
}

// MarshalJSON writes the holding back as it was read, or from its fields when
// it was built in memory.
func (h CoinHolding) MarshalJSON() ([]byte, error) {
	if h.raw != nil {
		return h.raw, nil
	}
	return json.Marshal(plainHolding(h))
}

// Holding is a coin symbol and its reward data, as keyed in a row.
type Holding struct {
	Coin string
	CoinHolding
}

// Holdings are the coins of a row in the order of the extract.
//
// The order matters: the loyalty tier counted for an account is the tier of
// its last holding.
type Holdings []Holding

func (hs *Holdings) UnmarshalJSON(b []byte) error {
	*hs = (*hs)[:0]
	index := make(map[string]int)
	return decodeObject(b, func(coin string, raw json.RawMessage) error {
		var h CoinHolding
		if err := json.Unmarshal(raw, &h); err != nil {
			return err
		}
		if i, ok := index[coin]; ok {
			(*hs)[i].CoinHolding = h
			return nil
		}
		index[coin] = len(*hs)
		*hs = append(*hs, Holding{Coin: coin, CoinHolding: h})
		return nil
	})
}

func (hs Holdings) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, h := range hs {
		w.Append(h.Coin, h.CoinHolding)
	}
	return w.MarshalJSON()
}
