package service

import (
	"errors"
	"sort"
	"time"

	"todo-notes-server/internal/domain"
	"todo-notes-server/internal/repository"
	"todo-notes-server/internal/websocket"

	"github.com/google/uuid"
)

type NoteService struct {
	repo   repository.NoteRepository
	events *websocket.Manager
}

func NewNoteService(repo repository.NoteRepository, events *websocket.Manager) *NoteService {
	return &NoteService{
		repo:   repo,
		events: events,
	}
}

func (s *NoteService) Create(ownerID string, req *domain.CreateNoteRequest) (*domain.Note, error) {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	note := &domain.Note{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      tags,
		IsPinned:  false,
		CreatedOn: time.Now(),
	}

	if err := s.repo.Create(note); err != nil {
		return nil, err
	}

	s.publish(ownerID, websocket.TypeNoteCreated, note)

	return note, nil
}

// List returns the owner's notes with pinned notes first. The sort is
// stable so order within each group is whatever the store returned.
func (s *NoteService) List(ownerID string) ([]*domain.Note, error) {
	notes, err := s.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].IsPinned && !notes[j].IsPinned
	})

	if notes == nil {
		notes = []*domain.Note{}
	}

	return notes, nil
}

// Update applies only the fields present in the request. A present
// zero value (isPinned:false, tags:[]) is stored; an absent field
// leaves the stored value untouched.
func (s *NoteService) Update(ownerID, noteID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.findOwned(noteID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Tags != nil {
		note.Tags = *req.Tags
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}

	if err := s.repo.Update(note); err != nil {
		return nil, err
	}

	s.publish(ownerID, websocket.TypeNoteUpdated, note)

	return note, nil
}

func (s *NoteService) Pin(ownerID, noteID string, pinned bool) (*domain.Note, error) {
	note, err := s.findOwned(noteID, ownerID)
	if err != nil {
		return nil, err
	}

	note.IsPinned = pinned

	if err := s.repo.Update(note); err != nil {
		return nil, err
	}

	s.publish(ownerID, websocket.TypeNoteUpdated, note)

	return note, nil
}

func (s *NoteService) Delete(ownerID, noteID string) error {
	if _, err := s.findOwned(noteID, ownerID); err != nil {
		return err
	}

	if err := s.repo.Delete(noteID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	s.publish(ownerID, websocket.TypeNoteDeleted, map[string]string{"noteId": noteID})

	return nil
}

// findOwned translates only a genuine miss into ErrNoteNotFound;
// storage failures propagate so handlers report them as 500, not 404.
func (s *NoteService) findOwned(noteID, ownerID string) (*domain.Note, error) {
	note, err := s.repo.FindOne(noteID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

func (s *NoteService) publish(ownerID string, eventType websocket.MessageType, payload interface{}) {
	if s.events == nil {
		return
	}

	msg, err := websocket.NewMessage(eventType, payload)
	if err != nil {
		return
	}

	s.events.BroadcastToUser(ownerID, msg)
}
