package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return d.err
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

type savedFile struct {
	name    string
	content string
}

type fakeStore struct {
	saved []savedFile
	err   error
}

func (f *fakeStore) Save(_ context.Context, content io.Reader, originalName string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	f.saved = append(f.saved, savedFile{name: originalName, content: string(b)})
	return fmt.Sprintf("/uploads/%d-%s", len(f.saved), originalName), nil
}

// racingUsers hides existing users from the pre-check so the store's
// unique constraint is what rejects the duplicate.
type racingUsers struct {
	repository.UserRepository
}

func (racingUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, repository.ErrNotFound
}

type racingProducts struct {
	repository.ProductRepository
}

func (racingProducts) GetBySKU(context.Context, string) (*domain.Product, error) {
	return nil, repository.ErrNotFound
}

type brokenProducts struct {
	repository.ProductRepository
	err error
}

func (b brokenProducts) List(context.Context) ([]domain.Product, error) { return nil, b.err }

func (b brokenProducts) GetByID(context.Context, int64) (*domain.Product, error) {
	return nil, b.err
}
