package domain

import "time"

type Note struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	CreatedOn time.Time `json:"createdOn"`
}

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

// UpdateNoteRequest uses pointers so an absent field and a present
// zero value (isPinned:false, tags:[]) are distinguishable.
type UpdateNoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"isPinned"`
}

func (r *UpdateNoteRequest) Empty() bool {
	return r.Title == nil && r.Content == nil && r.Tags == nil && r.IsPinned == nil
}

type PinNoteRequest struct {
	IsPinned *bool `json:"isPinned" validate:"required"`
}

type NoteResponse struct {
	Error   bool   `json:"error"`
	Note    *Note  `json:"note"`
	Message string `json:"message"`
}

type NotesResponse struct {
	Error   bool    `json:"error"`
	Notes   []*Note `json:"notes"`
	Message string  `json:"message"`
}
