package usecase

import (
	"context"
	"time"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// ContactUseCase handles contact management.
type ContactUseCase struct {
	contactRepo ContactRepository
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewContactUseCase creates a new ContactUseCase.
func NewContactUseCase(contactRepo ContactRepository, accountRepo AccountRepository, idGen IDGenerator) *ContactUseCase {
	return &ContactUseCase{contactRepo: contactRepo, accountRepo: accountRepo, idGen: idGen}
}

// CreateContactInput represents input for creating a contact.
type CreateContactInput struct {
	Name             string
	Role             domain.ContactRole
	DefaultAccountID string
}

// CreateContact creates a new contact. A default account, when given, must
// exist; it will override automatic classification for this counterparty.
func (uc *ContactUseCase) CreateContact(ctx context.Context, input CreateContactInput) (*domain.Contact, error) {
	if err := domain.ValidateContactName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	contact := &domain.Contact{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Role:      input.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if contact.Role == "" {
		contact.Role = domain.ContactRoleBoth
	}
	if input.DefaultAccountID != "" {
		if _, err := uc.accountRepo.GetByID(ctx, input.DefaultAccountID); err != nil {
			return nil, err
		}
		contact.DefaultAccountID = &input.DefaultAccountID
	}

	if err := uc.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// GetContact retrieves a contact by ID.
func (uc *ContactUseCase) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	return uc.contactRepo.GetByID(ctx, id)
}

// ListContacts lists all contacts.
func (uc *ContactUseCase) ListContacts(ctx context.Context) ([]*domain.Contact, error) {
	return uc.contactRepo.List(ctx)
}
