package list_services

import "github.com/m04kA/KingsBarber-BookingService/internal/domain"

// ServiceResponse HTTP модель услуги
type ServiceResponse struct {
	Name            string `json:"name"`
	PriceCents      int64  `json:"priceCents"`
	DurationMinutes int    `json:"durationMinutes"`
}

// BarberResponse HTTP модель барбера
type BarberResponse struct {
	Name           string `json:"name"`
	SurchargeCents int64  `json:"surchargeCents"`
}

// CatalogResponse HTTP response model
type CatalogResponse struct {
	Services []ServiceResponse `json:"services"`
	Barbers  []BarberResponse  `json:"barbers"`
}

// FromDomainCatalog конвертирует каталог в HTTP response, телефоны барберов не раскрываются
func FromDomainCatalog(services []domain.Service, barbers []domain.Barber) *CatalogResponse {
	resp := &CatalogResponse{
		Services: make([]ServiceResponse, 0, len(services)),
		Barbers:  make([]BarberResponse, 0, len(barbers)),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			Name:            s.Name,
			PriceCents:      s.PriceCents,
			DurationMinutes: s.DurationMinutes,
		})
	}
	for _, b := range barbers {
		resp.Barbers = append(resp.Barbers, BarberResponse{
			Name:           b.Name,
			SurchargeCents: b.SurchargeCents,
		})
	}
	return resp
}
