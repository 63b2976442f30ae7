package model

import (
	"encoding/json"
	"time"
)

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsDone      bool      `json:"is_done"`
	OwnerID     *int64    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskFilter narrows a task listing. A nil OwnerID lists every owner.
type TaskFilter struct {
	OwnerID *int64
	Query   string
}

// TaskPatch carries the fields of a partial update. Nil pointers are left
// untouched; Description is applied only when DescriptionSet is true, so an
// explicit null clears it.
type TaskPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	IsDone         *bool
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && !p.DescriptionSet && p.IsDone == nil
}

// Apply merges the patch into t and returns the result.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.DescriptionSet {
		t.Description = p.Description
	}
	if p.IsDone != nil {
		t.IsDone = *p.IsDone
	}
	return t
}

// OptionalString tells an absent JSON field apart from an explicit null.
type OptionalString struct {
	Value *string
	Set   bool
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
