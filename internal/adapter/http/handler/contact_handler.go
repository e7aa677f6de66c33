package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/http/dto"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

// ContactService defines the behavior needed by ContactHandler.
type ContactService interface {
	CreateContact(ctx context.Context, input usecase.CreateContactInput) (*domain.Contact, error)
	GetContact(ctx context.Context, id string) (*domain.Contact, error)
	ListContacts(ctx context.Context) ([]*domain.Contact, error)
}

// ContactHandler handles contact-related HTTP requests.
type ContactHandler struct {
	contactUC ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactUC ContactService) *ContactHandler {
	return &ContactHandler{contactUC: contactUC}
}

// Create creates a new contact.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	contact, err := h.contactUC.CreateContact(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create contact", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ContactFromDomain(contact))
}

// Get retrieves a contact by ID.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing contact ID", "")
		return
	}

	contact, err := h.contactUC.GetContact(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get contact", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ContactFromDomain(contact))
}

// List lists all contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactUC.ListContacts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list contacts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ContactsFromDomain(contacts))
}
