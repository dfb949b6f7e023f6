package routes

import (
	"github.com/vijaypatidar123/Dream-Nest/models"
	"github.com/vijaypatidar123/Dream-Nest/utils"

	"github.com/kataras/iris/v12"
)

// CreateBooking persists the booking exactly as submitted. The total price is
// computed client-side and the date range is not checked against the
// listing's other bookings, so overlapping stays are possible.
func (h *Handler) CreateBooking(ctx iris.Context) {
	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	booking := models.Booking{
		CustomerID: input.CustomerID,
		HostID:     input.HostID,
		ListingID:  input.ListingID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		TotalPrice: input.TotalPrice,
	}

	if err := h.DB.Create(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONSuccess(ctx, iris.StatusCreated, &booking, "Booking created successfully")
}

type CreateBookingInput struct {
	CustomerID uint    `json:"customerId" validate:"required"`
	HostID     uint    `json:"hostId" validate:"required"`
	ListingID  uint    `json:"listingId" validate:"required"`
	StartDate  string  `json:"startDate" validate:"required"`
	EndDate    string  `json:"endDate" validate:"required"`
	TotalPrice float64 `json:"totalPrice" validate:"required"`
}
