package repository

import "offer-agent/domain"

type OfferRepository interface {
	Save(property domain.PropertyData, repairs domain.RepairSet, offers []domain.OfferResult) error
}
