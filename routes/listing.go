package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/vijaypatidar123/Dream-Nest/models"
	"github.com/vijaypatidar123/Dream-Nest/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

const maxListingPhotos = 25

// CreateListing publishes a listing from a multipart form. Photos upload to
// the media host one at a time; the first failure aborts the whole create and
// no listing is persisted. Photos already pushed remotely are not deleted.
func (h *Handler) CreateListing(ctx iris.Context) {
	creatorParam := ctx.FormValue("creator")
	category := ctx.FormValue("category")
	listingType := ctx.FormValue("type")
	title := ctx.FormValue("title")
	priceParam := ctx.FormValue("price")

	if creatorParam == "" || category == "" || listingType == "" || title == "" || priceParam == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Missing required fields: creator, category, type, title, price", ctx)
		return
	}

	creatorID64, parseErr := strconv.ParseUint(creatorParam, 10, 32)
	if parseErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid creator id format.", ctx)
		return
	}

	price, priceErr := strconv.ParseFloat(priceParam, 64)
	if priceErr != nil || price < 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Price must be a non-negative number.", ctx)
		return
	}

	guestCount, countErr := formCount(ctx, "guestCount")
	if countErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", countErr.Error(), ctx)
		return
	}
	bedroomCount, countErr := formCount(ctx, "bedroomCount")
	if countErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", countErr.Error(), ctx)
		return
	}
	bedCount, countErr := formCount(ctx, "bedCount")
	if countErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", countErr.Error(), ctx)
		return
	}
	bathroomCount, countErr := formCount(ctx, "bathroomCount")
	if countErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", countErr.Error(), ctx)
		return
	}

	photos := listingPhotos(ctx)
	if len(photos) == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "No listing photos uploaded.", ctx)
		return
	}
	if len(photos) > maxListingPhotos {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Too many listing photos (max 25).", ctx)
		return
	}
	for _, header := range photos {
		if header.Size > maxImageSize {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "A listing photo exceeds the 10MB limit.", ctx)
			return
		}
	}

	var creator models.User
	creatorExists := h.DB.Limit(1).Find(&creator, uint(creatorID64))
	if creatorExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if creatorExists.RowsAffected == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Creator does not exist.", ctx)
		return
	}

	photoURLs, uploadErr := h.uploadListingPhotos(photos)
	if uploadErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Upload Error", "Cloud upload failed.", ctx)
		return
	}
	photoURLsJSON, _ := json.Marshal(photoURLs)

	amenities := formAmenities(ctx)
	amenitiesJSON, _ := json.Marshal(amenities)

	listing := models.Listing{
		CreatorID:     uint(creatorID64),
		Category:      category,
		Type:          listingType,
		StreetAddress: ctx.FormValue("streetAddress"),
		AptSuite:      ctx.FormValue("aptSuite"),
		City:          ctx.FormValue("city"),
		State:         ctx.FormValue("state"),
		Country:       ctx.FormValue("country"),
		GuestCount:    guestCount,
		BedroomCount:  bedroomCount,
		BedCount:      bedCount,
		BathroomCount: bathroomCount,
		Amenities:     datatypes.JSON(amenitiesJSON),
		PhotoURLs:     datatypes.JSON(photoURLsJSON),
		Title:         title,
		Description:   ctx.FormValue("description"),
		Highlight:     ctx.FormValue("highlight"),
		HighlightDesc: ctx.FormValue("highlightDesc"),
		Price:         price,
	}

	if err := h.DB.Create(&listing).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	listing.Creator = creator

	utils.JSONSuccess(ctx, iris.StatusCreated, &listing, "Listing created successfully")
}

// GetListings returns all listings, optionally filtered by exact category.
func (h *Handler) GetListings(ctx iris.Context) {
	category := ctx.URLParam("category")

	query := h.DB.Preload("Creator")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}

	utils.JSONSuccess(ctx, iris.StatusOK, listings, "Listings fetched successfully")
}

// SearchListings matches the term against category or title, case-insensitive.
// The literal term "all" is a sentinel meaning no filter, so a genuine search
// for the word "all" is not possible on this route.
func (h *Handler) SearchListings(ctx iris.Context) {
	term := ctx.Params().Get("term")

	query := h.DB.Preload("Creator")
	if term != "all" {
		pattern := "%" + term + "%"
		query = query.Where("lower(category) LIKE lower(?) OR lower(title) LIKE lower(?)", pattern, pattern)
	}

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}

	utils.JSONSuccess(ctx, iris.StatusOK, listings, "Search results fetched successfully")
}

// GetListingDetails returns one listing with its creator populated.
func (h *Handler) GetListingDetails(ctx iris.Context) {
	id := ctx.Params().Get("listingId")

	listingID, parseErr := strconv.ParseUint(id, 10, 32)
	if parseErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid listing id format.", ctx)
		return
	}

	var listing models.Listing
	listingExists := h.DB.Preload("Creator").Limit(1).Find(&listing, uint(listingID))
	if listingExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if listingExists.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Listing not found.", ctx)
		return
	}

	utils.JSONSuccess(ctx, iris.StatusOK, &listing, "Listing fetched successfully")
}

func (h *Handler) uploadListingPhotos(photos []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(photos))
	for _, header := range photos {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		remoteURL, err := h.Media.Upload(data, "listing-"+uuid.NewString())
		if err != nil {
			return nil, err
		}
		urls = append(urls, remoteURL)
	}
	return urls, nil
}

func listingPhotos(ctx iris.Context) []*multipart.FileHeader {
	// FormValue has already parsed the multipart body by the time this runs.
	form := ctx.Request().MultipartForm
	if form == nil {
		return nil
	}
	return form.File["listingPhotos"]
}

func formAmenities(ctx iris.Context) []string {
	form := ctx.Request().MultipartForm
	if form == nil {
		return []string{}
	}
	amenities := form.Value["amenities"]
	if amenities == nil {
		return []string{}
	}
	return amenities
}

func formCount(ctx iris.Context, field string) (int, error) {
	value := ctx.FormValue(field)
	if value == "" {
		return 1, nil
	}
	count, err := strconv.Atoi(value)
	if err != nil || count < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", field)
	}
	return count, nil
}
