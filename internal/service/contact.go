package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"provideo-rentals/internal/dto"
	"provideo-rentals/internal/model"
	"provideo-rentals/internal/repository"
)

type ContactService interface {
	Submit(ctx context.Context, req *dto.ContactRequest) (*model.Contact, error)
	List(ctx context.Context) ([]*model.Contact, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type contactServiceImpl struct {
	repo   repository.ContactRepository
	mailer Mailer
}

func NewContactService(repo repository.ContactRepository, mailer Mailer) ContactService {
	return &contactServiceImpl{repo: repo, mailer: mailer}
}

func (s *contactServiceImpl) Submit(ctx context.Context, req *dto.ContactRequest) (*model.Contact, error) {
	contact := &model.Contact{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}

	if err := s.mailer.SendContactNotice(contact); err != nil {
		log.Printf("contact %s stored but notice failed: %v", contact.ID, err)
	}
	return contact, nil
}

func (s *contactServiceImpl) List(ctx context.Context) ([]*model.Contact, error) {
	return s.repo.List(ctx)
}

func (s *contactServiceImpl) MarkRead(ctx context.Context, id string) error {
	err := s.repo.MarkRead(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
