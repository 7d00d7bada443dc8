package domain

import (
	"fmt"
	"strings"
)

// Service is a bookable barber service
type Service struct {
	Name            string
	PriceCents      int64
	DurationMinutes int
}

// Barber is a member of the fixed barber roster
type Barber struct {
	Name           string
	SurchargeCents int64  // Доплата за выбор барбера (например, +$5 у Alex)
	NotifyPhone    string // Телефон для уведомлений о новых записях
}

// Quote is the priced and timed result of a service selection
type Quote struct {
	Services        []string
	DurationMinutes int
	PriceCents      int64
}

// Catalog is the immutable service and barber catalog
// Создаётся один раз при старте и передаётся в компоненты, которым нужны цены и длительности
type Catalog struct {
	services      []Service
	servicesByKey map[string]Service
	barbers       []Barber
	barbersByKey  map[string]Barber
}

// NewCatalog validates the given services and barbers and builds a catalog
func NewCatalog(services []Service, barbers []Barber) (*Catalog, error) {
	c := &Catalog{
		services:      make([]Service, 0, len(services)),
		servicesByKey: make(map[string]Service, len(services)),
		barbers:       make([]Barber, 0, len(barbers)),
		barbersByKey:  make(map[string]Barber, len(barbers)),
	}

	for _, s := range services {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: service name is empty", ErrInvalidCatalog)
		}
		if s.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: service %q must have positive duration", ErrInvalidCatalog, name)
		}
		if s.PriceCents < 0 {
			return nil, fmt.Errorf("%w: service %q has negative price", ErrInvalidCatalog, name)
		}
		key := catalogKey(name)
		if _, exists := c.servicesByKey[key]; exists {
			return nil, fmt.Errorf("%w: duplicate service %q", ErrInvalidCatalog, name)
		}
		s.Name = name
		c.services = append(c.services, s)
		c.servicesByKey[key] = s
	}

	for _, b := range barbers {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: barber name is empty", ErrInvalidCatalog)
		}
		key := catalogKey(name)
		if _, exists := c.barbersByKey[key]; exists {
			return nil, fmt.Errorf("%w: duplicate barber %q", ErrInvalidCatalog, name)
		}
		b.Name = name
		c.barbers = append(c.barbers, b)
		c.barbersByKey[key] = b
	}

	if len(c.services) == 0 || len(c.barbers) == 0 {
		return nil, fmt.Errorf("%w: catalog needs at least one service and one barber", ErrInvalidCatalog)
	}

	return c, nil
}

// Services returns the services in catalog order
func (c *Catalog) Services() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// Barbers returns the barber roster in catalog order
func (c *Catalog) Barbers() []Barber {
	out := make([]Barber, len(c.barbers))
	copy(out, c.barbers)
	return out
}

// Service looks up a service by name (case-insensitive)
func (c *Catalog) Service(name string) (Service, bool) {
	s, ok := c.servicesByKey[catalogKey(name)]
	return s, ok
}

// Barber looks up a barber by name (case-insensitive)
func (c *Catalog) Barber(name string) (Barber, bool) {
	b, ok := c.barbersByKey[catalogKey(name)]
	return b, ok
}

// Quote sums durations and prices of the selected services, adding the barber surcharge
func (c *Catalog) Quote(barber string, serviceNames []string) (Quote, error) {
	b, ok := c.Barber(barber)
	if !ok {
		return Quote{}, fmt.Errorf("%w: %q", ErrUnknownBarber, barber)
	}

	if len(serviceNames) == 0 {
		return Quote{}, ErrEmptyServiceSelection
	}

	q := Quote{Services: make([]string, 0, len(serviceNames))}
	seen := make(map[string]struct{}, len(serviceNames))
	for _, name := range serviceNames {
		s, ok := c.Service(name)
		if !ok {
			return Quote{}, fmt.Errorf("%w: %q", ErrUnknownService, name)
		}
		key := catalogKey(s.Name)
		if _, dup := seen[key]; dup {
			return Quote{}, fmt.Errorf("%w: %q", ErrDuplicateService, s.Name)
		}
		seen[key] = struct{}{}

		q.Services = append(q.Services, s.Name)
		q.DurationMinutes += s.DurationMinutes
		q.PriceCents += s.PriceCents
	}
	q.PriceCents += b.SurchargeCents

	return q, nil
}

func catalogKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
