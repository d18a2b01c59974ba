package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/repositories"
)

// BoardHandler handles HTTP requests related to boards
type BoardHandler struct {
	boardRepository repositories.BoardRepository
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardRepo repositories.BoardRepository) *BoardHandler {
	return &BoardHandler{boardRepository: boardRepo}
}

// RegisterBoardRoutes registers board-related routes
func (h *BoardHandler) RegisterBoardRoutes(g *echo.Group) {
	g.GET("/boards", h.GetBoards)
}

// GetBoards returns all boards
func (h *BoardHandler) GetBoards(c echo.Context) error {
	boards, err := h.boardRepository.GetAllBoards()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, boards)
}
