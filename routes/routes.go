// Package routes contains the HTTP handlers. They hang off a Handler struct
// so the database, token service and media client are constructed in main and
// injected, not reached through package globals.
package routes

import (
	"github.com/vijaypatidar123/Dream-Nest/storage"
	"github.com/vijaypatidar123/Dream-Nest/utils"

	"gorm.io/gorm"
)

type Handler struct {
	DB     *gorm.DB
	Tokens *utils.TokenService
	Media  *storage.Cloudinary
}

// Per-file upload limit, matching the media host's 10MB cap.
const maxImageSize = 10 << 20
