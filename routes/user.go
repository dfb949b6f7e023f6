package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vijaypatidar123/Dream-Nest/models"
	"github.com/vijaypatidar123/Dream-Nest/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
)

// Register creates a user from a multipart form. The avatar is required and
// is uploaded to the media host before the record is written.
func (h *Handler) Register(ctx iris.Context) {
	fullName := strings.TrimSpace(ctx.FormValue("fullName"))
	username := strings.TrimSpace(ctx.FormValue("username"))
	email := strings.ToLower(strings.TrimSpace(ctx.FormValue("email")))
	password := ctx.FormValue("password")

	avatar, avatarHeader, avatarErr := ctx.FormFile("avatar")
	if fullName == "" || username == "" || email == "" || password == "" || avatarErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Missing required fields: fullName, username, email, password, avatar", ctx)
		return
	}
	defer avatar.Close()

	var existingUser models.User
	userExists := h.DB.Where("email = ? OR username = ?", email, username).Limit(1).Find(&existingUser)
	if userExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExists.RowsAffected > 0 {
		if existingUser.Email == email {
			utils.CreateConflict(ctx, "Email already registered.")
		} else {
			utils.CreateConflict(ctx, "Username already taken.")
		}
		return
	}

	if avatarHeader.Size > maxImageSize {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Avatar exceeds the 10MB limit.", ctx)
		return
	}

	avatarBytes, readErr := io.ReadAll(avatar)
	if readErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	avatarURL, uploadErr := h.Media.Upload(avatarBytes, "avatar-"+uuid.NewString())
	if uploadErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Upload Error", "Avatar upload failed.", ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser := models.User{
		FullName:  fullName,
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		AvatarURL: avatarURL,
		Wishlist:  datatypes.JSON("[]"),
	}

	if err := h.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONSuccess(ctx, iris.StatusCreated, &newUser, "User registered successfully")
}

// Login accepts either the email or the username as identifier.
func (h *Handler) Login(ctx iris.Context) {
	var userInput LoginUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	errorMsg := "Invalid credentials."
	identifier := strings.TrimSpace(userInput.Identifier)

	var existingUser models.User
	userExists := h.DB.Where("email = ? OR username = ?", strings.ToLower(identifier), identifier).
		Limit(1).Find(&existingUser)
	if userExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExists.RowsAffected == 0 {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	h.returnUserWithTokens(&existingUser, ctx, "User logged in successfully")
}

// Logout revokes the stored refresh token and clears the auth cookies.
func (h *Handler) Logout(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	if err := h.Tokens.Revoke(ctx.Request().Context(), claims.ID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.RemoveCookie("accessToken")
	ctx.RemoveCookie("refreshToken")

	utils.JSONSuccess(ctx, iris.StatusOK, nil, "User logged out successfully")
}

// RefreshToken exchanges a valid, non-revoked refresh token for a fresh pair.
// The presented token must match the one recorded for the user; issuing a new
// pair overwrites it, so the old token cannot be replayed.
func (h *Handler) RefreshToken(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)

	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid refresh token.", ctx)
		return
	}

	valid, validErr := h.Tokens.ValidateStored(ctx.Request().Context(), uint(userID), string(token.Token))
	if validErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !valid {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Refresh token is expired or revoked.", ctx)
		return
	}

	tokenPair, tokenPairErr := h.Tokens.CreateTokenPair(ctx.Request().Context(), uint(userID))
	if tokenPairErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	h.setAuthCookies(ctx, tokenPair)

	utils.JSONSuccess(ctx, iris.StatusOK, iris.Map{
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	}, "Access token refreshed successfully")
}

// ToggleWishlist adds the listing to the user's wishlist when absent and
// removes it when present. Hosts cannot wishlist their own listings.
func (h *Handler) ToggleWishlist(ctx iris.Context) {
	user := h.getUserByID(ctx.Params().Get("userId"), ctx)
	if user == nil {
		return
	}

	listingID64, parseErr := strconv.ParseUint(ctx.Params().Get("listingId"), 10, 32)
	if parseErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid listing id format.", ctx)
		return
	}
	listingID := uint(listingID64)

	var listing models.Listing
	listingExists := h.DB.Limit(1).Find(&listing, listingID)
	if listingExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if listingExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if listing.CreatorID == user.ID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You cannot wishlist your own listing.", ctx)
		return
	}

	var wishlistIDs []uint
	if user.Wishlist != nil {
		if err := json.Unmarshal(user.Wishlist, &wishlistIDs); err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	wishlistIDs = toggleWishlistID(wishlistIDs, listingID)

	marshalled, marshalErr := json.Marshal(wishlistIDs)
	if marshalErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := h.DB.Model(user).Update("wishlist", datatypes.JSON(marshalled)).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	wishlist := []models.Listing{}
	if len(wishlistIDs) > 0 {
		if err := h.DB.Preload("Creator").Where("id IN ?", wishlistIDs).Find(&wishlist).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	utils.JSONSuccess(ctx, iris.StatusOK, wishlist, "Wishlist updated successfully")
}

// GetTripList returns the bookings the user made as a customer.
func (h *Handler) GetTripList(ctx iris.Context) {
	id := ctx.Params().Get("userId")

	var trips []models.Booking
	tripsExist := h.DB.Preload("Listing").Preload("Listing.Creator").Preload("Host").
		Where("customer_id = ?", id).Find(&trips)
	if tripsExist.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if trips == nil {
		trips = []models.Booking{}
	}

	utils.JSONSuccess(ctx, iris.StatusOK, trips, "Trip list fetched successfully")
}

// GetPropertyList returns the listings the user created.
func (h *Handler) GetPropertyList(ctx iris.Context) {
	id := ctx.Params().Get("userId")

	var properties []models.Listing
	propertiesExist := h.DB.Preload("Creator").Where("creator_id = ?", id).Find(&properties)
	if propertiesExist.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if properties == nil {
		properties = []models.Listing{}
	}

	utils.JSONSuccess(ctx, iris.StatusOK, properties, "Property list fetched successfully")
}

// GetReservationList returns the bookings made against the user's listings.
func (h *Handler) GetReservationList(ctx iris.Context) {
	id := ctx.Params().Get("userId")

	var reservations []models.Booking
	reservationsExist := h.DB.Preload("Listing").Preload("Customer").
		Where("host_id = ?", id).Find(&reservations)
	if reservationsExist.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if reservations == nil {
		reservations = []models.Booking{}
	}

	utils.JSONSuccess(ctx, iris.StatusOK, reservations, "Reservation list fetched successfully")
}

func (h *Handler) returnUserWithTokens(user *models.User, ctx iris.Context, message string) {
	tokenPair, tokenErr := h.Tokens.CreateTokenPair(ctx.Request().Context(), user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	h.setAuthCookies(ctx, tokenPair)

	utils.JSONSuccess(ctx, iris.StatusOK, iris.Map{
		"user":         user,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	}, message)
}

func (h *Handler) setAuthCookies(ctx iris.Context, tokenPair *jwt.TokenPair) {
	ctx.SetCookie(&http.Cookie{
		Name:     "accessToken",
		Value:    string(tokenPair.AccessToken),
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(h.Tokens.AccessTTL),
	})
	ctx.SetCookie(&http.Cookie{
		Name:     "refreshToken",
		Value:    string(tokenPair.RefreshToken),
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(h.Tokens.RefreshTTL),
	})
}

func (h *Handler) getUserByID(id string, ctx iris.Context) *models.User {
	userID, parseErr := strconv.ParseUint(id, 10, 32)
	if parseErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid user id format.", ctx)
		return nil
	}

	var user models.User
	userExists := h.DB.Limit(1).Find(&user, uint(userID))
	if userExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}
	if userExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return nil
	}

	return &user
}

func toggleWishlistID(ids []uint, listingID uint) []uint {
	if !slices.Contains(ids, listingID) {
		return append(ids, listingID)
	}

	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != listingID {
			out = append(out, id)
		}
	}
	return out
}

func hashAndSaltPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

type LoginUserInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}
