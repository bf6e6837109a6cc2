package repofake

import (
	"sort"
	"sync"

	"github.com/jrsteele09/go-token-service/registry"
)

var _ registry.Repo = (*FakeServiceRepo)(nil)

// FakeServiceRepo is a mutable in-memory registry for tests.
type FakeServiceRepo struct {
	services map[string]*registry.RegisteredService
	lock     sync.RWMutex
}

func NewFakeServiceRepo() *FakeServiceRepo {
	return &FakeServiceRepo{
		services: make(map[string]*registry.RegisteredService),
	}
}

func (r *FakeServiceRepo) Upsert(service *registry.RegisteredService) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.services[service.ClientID] = service
}

func (r *FakeServiceRepo) Get(clientID string) (*registry.RegisteredService, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	s, ok := r.services[clientID]
	if !ok {
		return nil, registry.ErrNotFound
	}
	return s, nil
}

func (r *FakeServiceRepo) List() ([]*registry.RegisteredService, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	services := make([]*registry.RegisteredService, 0, len(r.services))
	for _, s := range r.services {
		services = append(services, s)
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].ClientID < services[j].ClientID
	})
	return services, nil
}
