package repository

import (
	"context"
	"fmt"

	"todo-notes-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

// NoteRepository scopes every lookup by the owner's ID, so a note that
// belongs to another user is indistinguishable from an absent one.
type NoteRepository interface {
	Create(note *domain.Note) error
	FindOne(noteID, ownerID string) (*domain.Note, error)
	ListByOwner(ownerID string) ([]*domain.Note, error)
	Update(note *domain.Note) error
	Delete(noteID, ownerID string) error
}

type noteRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *noteRepository) Create(note *domain.Note) error {
	db := r.client.DB(r.dbName)

	if _, err := db.Put(context.Background(), note.ID, note); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindOne(noteID, ownerID string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id":    noteID,
			"userId": ownerID,
		},
		"limit": 1,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrNoteNotFound
	}

	var note domain.Note
	if err := rows.ScanDoc(&note); err != nil {
		return nil, fmt.Errorf("failed to scan note: %w", err)
	}

	return &note, nil
}

func (r *noteRepository) ListByOwner(ownerID string) ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"userId": ownerID,
			"title":  map[string]interface{}{"$exists": true},
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

type noteRows interface {
	Next() bool
	ScanDoc(dest interface{}) error
	Err() error
}

// scanNotes materializes every row; a scan failure aborts the listing
// rather than silently dropping the note.
func scanNotes(rows noteRows) ([]*domain.Note, error) {
	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.ScanDoc(&note); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

func (r *noteRepository) Update(note *domain.Note) error {
	db := r.client.DB(r.dbName)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), note.ID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch existing note for update: %w", err)
	}

	existingDoc["title"] = note.Title
	existingDoc["content"] = note.Content
	existingDoc["tags"] = note.Tags
	existingDoc["isPinned"] = note.IsPinned

	if _, err := db.Put(context.Background(), note.ID, existingDoc); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

func (r *noteRepository) Delete(noteID, ownerID string) error {
	db := r.client.DB(r.dbName)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), noteID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return ErrNoteNotFound
	}

	if owner, ok := existingDoc["userId"].(string); !ok || owner != ownerID {
		return ErrNoteNotFound
	}

	rev, _ := existingDoc["_rev"].(string)
	if _, err := db.Delete(context.Background(), noteID, rev); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}
