package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bazarhub/catalog-api/internal/domain/entity"
)

type fakeContactRepo struct {
	seq      int
	contacts map[string]*entity.Contact
}

func (r *fakeContactRepo) Create(_ context.Context, c *entity.Contact) error {
	r.seq++
	c.ID = fmt.Sprintf("contact-%d", r.seq)
	cp := *c
	r.contacts[c.ID] = &cp
	return nil
}

func (r *fakeContactRepo) GetByID(_ context.Context, id string) (*entity.Contact, error) {
	if c, ok := r.contacts[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeContactRepo) List(_ context.Context) ([]entity.Contact, error) {
	out := make([]entity.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeContactRepo) Delete(_ context.Context, id string) error {
	delete(r.contacts, id)
	return nil
}

type fakeEnquiryRepo struct {
	seq       int
	enquiries map[string]*entity.Enquiry
}

func (r *fakeEnquiryRepo) Create(_ context.Context, e *entity.Enquiry) error {
	r.seq++
	e.ID = fmt.Sprintf("enquiry-%d", r.seq)
	cp := *e
	r.enquiries[e.ID] = &cp
	return nil
}

func (r *fakeEnquiryRepo) GetByID(_ context.Context, id string) (*entity.Enquiry, error) {
	if e, ok := r.enquiries[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeEnquiryRepo) List(_ context.Context) ([]entity.Enquiry, error) {
	out := make([]entity.Enquiry, 0, len(r.enquiries))
	for _, e := range r.enquiries {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEnquiryRepo) Delete(_ context.Context, id string) error {
	delete(r.enquiries, id)
	return nil
}

func newTestContacts(queue *fakeQueue, adminEmail string) *ContactService {
	return NewContactService(
		&fakeContactRepo{contacts: map[string]*entity.Contact{}},
		&fakeEnquiryRepo{enquiries: map[string]*entity.Enquiry{}},
		queue,
		true,
		adminEmail,
		nil,
	)
}

func TestContactLifecycle(t *testing.T) {
	svc := newTestContacts(&fakeQueue{}, "")
	ctx := context.Background()

	c := &entity.Contact{Name: "Alice", Email: "alice@example.com", Subject: "hi", Message: "hello"}
	if err := svc.CreateContact(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("name = %q", got.Name)
	}
	if err := svc.DeleteContact(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetContact(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete = %v, want ErrNotFound", err)
	}
}

func TestCreateEnquiryNotifiesAdmin(t *testing.T) {
	queue := &fakeQueue{}
	svc := newTestContacts(queue, "admin@example.com")

	e := &entity.Enquiry{Name: "Bob", Email: "bob@example.com", Message: "is this in stock?"}
	if err := svc.CreateEnquiry(context.Background(), e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if queue.count() != 1 {
		t.Fatalf("queued %d notifications, want 1", queue.count())
	}
}

func TestCreateEnquiryNotificationFailureIsNotFatal(t *testing.T) {
	queue := &fakeQueue{err: errors.New("broker down")}
	svc := newTestContacts(queue, "admin@example.com")

	e := &entity.Enquiry{Name: "Bob", Email: "bob@example.com", Message: "hello"}
	if err := svc.CreateEnquiry(context.Background(), e); err != nil {
		t.Fatalf("create should not fail on notification error: %v", err)
	}
	if _, err := svc.GetEnquiry(context.Background(), e.ID); err != nil {
		t.Fatalf("enquiry not stored: %v", err)
	}
}

func TestCreateEnquiryNoAdminConfigured(t *testing.T) {
	queue := &fakeQueue{}
	svc := newTestContacts(queue, "")

	e := &entity.Enquiry{Name: "Bob", Email: "bob@example.com", Message: "hello"}
	if err := svc.CreateEnquiry(context.Background(), e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if queue.count() != 0 {
		t.Fatalf("notification sent with no admin inbox configured")
	}
}
