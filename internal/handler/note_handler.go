package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"todo-notes-server/internal/domain"
	"todo-notes-server/internal/middleware"
	"todo-notes-server/internal/service"
	"todo-notes-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type NoteHandler struct {
	noteService *service.NoteService
	validate    *validator.Validate
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		validate:    validator.New(),
	}
}

func (h *NoteHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	notes, err := h.noteService.List(userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, domain.NotesResponse{
		Error:   false,
		Notes:   notes,
		Message: "Notes Retrieved Successfully",
	})
}

func (h *NoteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.noteService.Create(userID, &req)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, domain.NoteResponse{
		Error:   false,
		Note:    note,
		Message: "Note Added Successfully",
	})
}

func (h *NoteHandler) Edit(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["noteId"]

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Empty() {
		response.BadRequest(w, "No changes provided")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.noteService.Update(userID, noteID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.NotFound(w, "Note not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, domain.NoteResponse{
		Error:   false,
		Note:    note,
		Message: "Note Updated Successfully",
	})
}

func (h *NoteHandler) Pin(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["noteId"]

	var req domain.PinNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.noteService.Pin(userID, noteID, *req.IsPinned)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.NotFound(w, "Note not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, domain.NoteResponse{
		Error:   false,
		Note:    note,
		Message: "Note Pinned Successfully",
	})
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["noteId"]
	userID := middleware.GetUserID(r)

	if err := h.noteService.Delete(userID, noteID); err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.NotFound(w, "Note not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, response.Envelope{Error: false, Message: "Note deleted successfully"})
}
