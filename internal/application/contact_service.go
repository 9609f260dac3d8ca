package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bazarhub/catalog-api/internal/domain/entity"
	repo "github.com/bazarhub/catalog-api/internal/domain/repository"
	"github.com/bazarhub/catalog-api/pkg/mailer"
)

// ContactService captures contacts and product enquiries. Enquiries
// additionally notify the admin inbox through the email queue.
type ContactService struct {
	Contacts    repo.ContactRepository
	Enquiries   repo.EnquiryRepository
	Mail        EmailQueue
	MailEnabled bool
	AdminEmail  string
	Logger      *logrus.Logger
}

func NewContactService(contacts repo.ContactRepository, enquiries repo.EnquiryRepository, mail EmailQueue, mailEnabled bool, adminEmail string, logger *logrus.Logger) *ContactService {
	return &ContactService{
		Contacts:    contacts,
		Enquiries:   enquiries,
		Mail:        mail,
		MailEnabled: mailEnabled,
		AdminEmail:  adminEmail,
		Logger:      logger,
	}
}

func (s *ContactService) CreateContact(ctx context.Context, c *entity.Contact) error {
	return s.Contacts.Create(ctx, c)
}

func (s *ContactService) GetContact(ctx context.Context, id string) (*entity.Contact, error) {
	c, err := s.Contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *ContactService) ListContacts(ctx context.Context) ([]entity.Contact, error) {
	return s.Contacts.List(ctx)
}

func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	if _, err := s.GetContact(ctx, id); err != nil {
		return err
	}
	return s.Contacts.Delete(ctx, id)
}

// CreateEnquiry stores the enquiry; the admin notification is best
// effort and never fails the request.
func (s *ContactService) CreateEnquiry(ctx context.Context, e *entity.Enquiry) error {
	if err := s.Enquiries.Create(ctx, e); err != nil {
		return err
	}
	if s.MailEnabled && s.Mail != nil && s.AdminEmail != "" {
		job := mailer.EmailJob{
			To:      s.AdminEmail,
			Subject: "New product enquiry",
			Text:    fmt.Sprintf("Enquiry from %s <%s>: %s", e.Name, e.Email, e.Message),
		}
		if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("enquiry notification enqueue failed")
		}
	}
	return nil
}

func (s *ContactService) GetEnquiry(ctx context.Context, id string) (*entity.Enquiry, error) {
	e, err := s.Enquiries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *ContactService) ListEnquiries(ctx context.Context) ([]entity.Enquiry, error) {
	return s.Enquiries.List(ctx)
}

func (s *ContactService) DeleteEnquiry(ctx context.Context, id string) error {
	if _, err := s.GetEnquiry(ctx, id); err != nil {
		return err
	}
	return s.Enquiries.Delete(ctx, id)
}
