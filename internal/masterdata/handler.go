package masterdata

import (
	"github.com/kantinhub/kantin-api/internal/models"
	"github.com/kantinhub/kantin-api/internal/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Master data is a thin read surface: the rest of the system only consumes
// the identifiers.

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) ListDepartments(c *fiber.Ctx) error {
	var departments []models.Department
	if err := h.db.Order("id").Find(&departments).Error; err != nil {
		return response.InternalError(c, "Failed to fetch departments")
	}
	return c.JSON(departments)
}

func (h *Handler) ListShifts(c *fiber.Ctx) error {
	var shifts []models.Shift
	if err := h.db.Order("id").Find(&shifts).Error; err != nil {
		return response.InternalError(c, "Failed to fetch shifts")
	}
	return c.JSON(shifts)
}

func (h *Handler) ListLocations(c *fiber.Ctx) error {
	var locations []models.Location
	if err := h.db.Order("id").Find(&locations).Error; err != nil {
		return response.InternalError(c, "Failed to fetch locations")
	}
	return c.JSON(locations)
}
