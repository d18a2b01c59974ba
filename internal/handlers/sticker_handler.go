package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/repositories"
)

// StickerHandler handles HTTP requests for the sticker shop
type StickerHandler struct {
	stickerRepository repositories.StickerRepository
}

// NewStickerHandler creates a new StickerHandler
func NewStickerHandler(stickerRepo repositories.StickerRepository) *StickerHandler {
	return &StickerHandler{stickerRepository: stickerRepo}
}

// RegisterStickerRoutes registers sticker shop routes
func (h *StickerHandler) RegisterStickerRoutes(g *echo.Group) {
	g.GET("/stickers", h.GetStickers)
	g.POST("/stickers/:id/purchase", h.PurchaseSticker)
	g.GET("/users/me/stickers", h.GetOwnedStickers)
}

// GetStickers returns the shop catalog
func (h *StickerHandler) GetStickers(c echo.Context) error {
	stickers, err := h.stickerRepository.ListStickers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stickers)
}

// PurchaseSticker buys a sticker with the caller's points
func (h *StickerHandler) PurchaseSticker(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	sticker, err := h.stickerRepository.GetStickerByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Sticker not found")
	}

	if err := h.stickerRepository.Purchase(currentUserID, sticker); err != nil {
		switch err {
		case repositories.ErrAlreadyOwned:
			return echo.NewHTTPError(http.StatusConflict, "Sticker already owned")
		case repositories.ErrInsufficientPoints:
			return echo.NewHTTPError(http.StatusBadRequest, "Insufficient points")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// GetOwnedStickers returns the caller's purchased stickers
func (h *StickerHandler) GetOwnedStickers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	purchases, err := h.stickerRepository.ListOwned(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, purchases)
}
