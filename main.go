package main

import (
	"log"

	"github.com/vijaypatidar123/Dream-Nest/config"
	"github.com/vijaypatidar123/Dream-Nest/routes"
	"github.com/vijaypatidar123/Dream-Nest/storage"
	"github.com/vijaypatidar123/Dream-Nest/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := storage.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}

	tokens := &utils.TokenService{
		AccessSecret:  cfg.Auth.AccessTokenSecret,
		RefreshSecret: cfg.Auth.RefreshTokenSecret,
		AccessTTL:     cfg.Auth.AccessTokenTTL,
		RefreshTTL:    cfg.Auth.RefreshTokenTTL,
		Redis:         storage.NewRedis(cfg),
	}

	h := &routes.Handler{
		DB:     db,
		Tokens: tokens,
		Media:  storage.NewCloudinary(cfg),
	}

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(corsMiddleware(cfg.Server.AllowedOrigins))
	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(cfg.Auth.AccessTokenSecret))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifier.Extractors = append(accessTokenVerifier.Extractors, func(ctx iris.Context) string {
		return ctx.GetCookie("accessToken")
	})
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(cfg.Auth.RefreshTokenSecret))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors,
		func(ctx iris.Context) string {
			var tokenInput utils.RefreshTokenInput
			if err := ctx.ReadJSON(&tokenInput); err != nil {
				return ""
			}
			return tokenInput.RefreshToken
		},
		func(ctx iris.Context) string {
			return ctx.GetCookie("refreshToken")
		},
	)
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	user := app.Party("/api/v1/users")
	{
		user.Post("/register", h.Register)
		user.Post("/login", h.Login)
		user.Post("/logout", accessTokenVerifierMiddleware, h.Logout)
		user.Post("/refresh-token", refreshTokenVerifierMiddleware, h.RefreshToken)
		user.Get("/{userId}/trips", accessTokenVerifierMiddleware, utils.UserIDMiddleware, h.GetTripList)
		user.Get("/{userId}/properties", accessTokenVerifierMiddleware, utils.UserIDMiddleware, h.GetPropertyList)
		user.Get("/{userId}/reservations", accessTokenVerifierMiddleware, utils.UserIDMiddleware, h.GetReservationList)
		user.Patch("/{userId}/{listingId}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, h.ToggleWishlist)
	}

	listing := app.Party("/api/v1/listings")
	{
		listing.Post("/create", accessTokenVerifierMiddleware, h.CreateListing)
		listing.Get("/", h.GetListings)
		listing.Get("/search/{term}", h.SearchListings)
		listing.Get("/{listingId}", h.GetListingDetails)
	}

	booking := app.Party("/api/v1/bookings")
	{
		booking.Post("/create", accessTokenVerifierMiddleware, h.CreateBooking)
	}

	app.Listen(":" + cfg.Server.Port)
}

// corsMiddleware reflects the origin only when it is on the allow list.
// Requests without an Origin header (curl, server-to-server) pass through.
func corsMiddleware(allowedOrigins []string) iris.Handler {
	return func(ctx iris.Context) {
		origin := ctx.GetHeader("Origin")
		if origin != "" && slices.Contains(allowedOrigins, origin) {
			ctx.Header("Access-Control-Allow-Origin", origin)
			ctx.Header("Vary", "Origin")
			ctx.Header("Access-Control-Allow-Credentials", "true")
			ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
			ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		}
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
