// models/battle.go
package models

// TimeLayout matches JavaScript's Date.toISOString() output so timestamps
// written by the original Node deployments keep comparing correctly.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Battle is a single showcased CSS challenge.
//
// Image holds a dereferenceable URL once persisted; raw payloads only appear
// on the write path, before the uploader has run.
type Battle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code,omitempty"`
	Image       string `json:"image,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// BattleInput is the create payload. It deliberately has no ID or CreatedAt
// field: those are server-assigned, and anything the client sends for them is
// dropped during decoding.
type BattleInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Image       string `json:"image"`
}

// BattleUpdate is the update payload. Pointer fields distinguish "field
// omitted" (nil, keep the stored value) from "field set to empty".
type BattleUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Code        *string `json:"code"`
	Image       *string `json:"image"`
}
