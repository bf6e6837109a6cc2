// Package yamlrepo loads the service registry from a YAML file at startup.
// The file is read once; the registry is immutable for the process lifetime.
package yamlrepo

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/jrsteele09/go-token-service/registry"
)

var _ registry.Repo = (*YAMLRepo)(nil)

type servicesFile struct {
	Services []*registry.RegisteredService `yaml:"services"`
}

// YAMLRepo is a read-only registry backed by a YAML file.
type YAMLRepo struct {
	services map[string]*registry.RegisteredService
}

// Load reads and parses the services file.
func Load(path string) (*YAMLRepo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[yamlrepo.Load] read %s", path)
	}

	var file servicesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "[yamlrepo.Load] parse %s", path)
	}

	services := make(map[string]*registry.RegisteredService, len(file.Services))
	for _, s := range file.Services {
		if s.ClientID == "" {
			return nil, errors.Errorf("[yamlrepo.Load] service %q has no client_id", s.Name)
		}
		if _, exists := services[s.ClientID]; exists {
			return nil, errors.Errorf("[yamlrepo.Load] duplicate client_id %q", s.ClientID)
		}
		services[s.ClientID] = s
	}

	return &YAMLRepo{services: services}, nil
}

// Get implements registry.Repo.
func (r *YAMLRepo) Get(clientID string) (*registry.RegisteredService, error) {
	s, ok := r.services[clientID]
	if !ok {
		return nil, registry.ErrNotFound
	}
	return s, nil
}

// List implements registry.Repo.
func (r *YAMLRepo) List() ([]*registry.RegisteredService, error) {
	services := make([]*registry.RegisteredService, 0, len(r.services))
	for _, s := range r.services {
		services = append(services, s)
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].ClientID < services[j].ClientID
	})
	return services, nil
}
