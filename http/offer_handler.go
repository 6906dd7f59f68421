package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"offer-agent/domain"
	"offer-agent/service"
)

type OfferHandler struct {
	service  *service.CalculatorService
	validate *validator.Validate
}

func NewOfferHandler(service *service.CalculatorService) *OfferHandler {
	return &OfferHandler{
		service:  service,
		validate: validator.New(),
	}
}

type calculateOffersRequest struct {
	Property propertyPayload `json:"property"`
	Repairs  repairsPayload  `json:"repairs"`
}

type propertyPayload struct {
	ListedPrice        float64 `json:"listed_price" validate:"gt=0"`
	MonthlyRent        float64 `json:"monthly_rent" validate:"gt=0"`
	MonthlyPropertyTax float64 `json:"monthly_property_tax" validate:"gte=0"`
	MonthlyInsurance   float64 `json:"monthly_insurance" validate:"gte=0"`
	MonthlyHOAFee      float64 `json:"monthly_hoa_fee" validate:"gte=0"`
	MonthlyOtherFees   float64 `json:"monthly_other_fees" validate:"gte=0"`
	ARV                float64 `json:"arv" validate:"gt=0"`
}

type repairsPayload struct {
	Light  float64 `json:"light" validate:"gte=0"`
	Medium float64 `json:"medium" validate:"gte=0"`
	Heavy  float64 `json:"heavy" validate:"gte=0"`
}

type calculateOffersResponse struct {
	Offers []domain.OfferResult `json:"offers"`
}

func (h *OfferHandler) CalculateOffers(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request calculateOffersRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	property := domain.PropertyData{
		ListedPrice:        request.Property.ListedPrice,
		MonthlyRent:        request.Property.MonthlyRent,
		MonthlyPropertyTax: request.Property.MonthlyPropertyTax,
		MonthlyInsurance:   request.Property.MonthlyInsurance,
		MonthlyHOAFee:      request.Property.MonthlyHOAFee,
		MonthlyOtherFees:   request.Property.MonthlyOtherFees,
		ARV:                request.Property.ARV,
	}
	repairs := domain.RepairSet{
		LightSqft:  request.Repairs.Light,
		MediumSqft: request.Repairs.Medium,
		HeavySqft:  request.Repairs.Heavy,
	}

	offers, err := h.service.CalculateAllOffers(property, repairs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(calculateOffersResponse{Offers: offers})
}
