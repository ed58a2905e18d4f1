package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Deck is one player's submitted card list for one tournament placement.
// Decks are grouped by archetype before aggregation and are treated as
// read-only once loaded.
type Deck struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	Archetype string     `json:"archetype" gorm:"not null;index"`
	Placement *int       `json:"placement,omitempty"`
	Cards     []DeckCard `json:"cards" gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// DeckCard is a single decklist line: count copies of a printed card.
type DeckCard struct {
	ID     uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	DeckID string `json:"-" gorm:"index"`
	Name   string `json:"name"`
	Set    string `json:"set,omitempty"`
	Number string `json:"number,omitempty"`
	Count  int    `json:"count"`
}

// deckCardJSON mirrors DeckCard for decoding. Tournament exports are not
// consistent about card numbers: some emit "18a", some emit 18. Accept both.
type deckCardJSON struct {
	Name   string          `json:"name"`
	Set    string          `json:"set"`
	Number json.RawMessage `json:"number"`
	Count  int             `json:"count"`
}

func (c *DeckCard) UnmarshalJSON(data []byte) error {
	var raw deckCardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Name = raw.Name
	c.Set = raw.Set
	c.Count = raw.Count

	if len(raw.Number) == 0 || string(raw.Number) == "null" {
		c.Number = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(raw.Number, &s); err == nil {
		c.Number = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(raw.Number, &n); err == nil {
		c.Number = n.String()
		return nil
	}

	return fmt.Errorf("card %q: number must be a string or a number", raw.Name)
}

// DeckImportRequest is the payload for POST /api/decks/import
type DeckImportRequest struct {
	Decks []Deck `json:"decks" binding:"required"`
}

// DeckImportResponse reports how much of the payload was stored
type DeckImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// ArchetypeSummary describes one loaded deck pool
type ArchetypeSummary struct {
	Archetype string `json:"archetype"`
	DeckTotal int    `json:"deckTotal"`
}
