package catalogRepo

import "agendly/models"

// CatalogRepository is the read side of the service catalog. Catalog
// management itself lives upstream; the booking engine only resolves
// duration and the price snapshot at creation time.
type CatalogRepository interface {
	GetServiceByID(serviceID string) (*models.Service, error)
}
