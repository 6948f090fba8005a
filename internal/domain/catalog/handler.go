package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospsim/hospsim/pkg/pagination"
)

// Handler serves read-only views of the loaded catalog.
type Handler struct {
	cat *Catalog
}

func NewHandler(cat *Catalog) *Handler {
	return &Handler{cat: cat}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.ListDoctors)
	api.GET("/treatment-machines", h.ListTreatmentMachines)
	api.GET("/treatment-rooms", h.ListTreatmentRooms)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	pg := pagination.FromContext(c)
	low, high := pg.Slice(len(h.cat.Doctors))
	return c.JSON(http.StatusOK, pagination.NewResponse(h.cat.Doctors[low:high], len(h.cat.Doctors), pg.Limit, pg.Offset))
}

func (h *Handler) ListTreatmentMachines(c echo.Context) error {
	pg := pagination.FromContext(c)
	low, high := pg.Slice(len(h.cat.Machines))
	return c.JSON(http.StatusOK, pagination.NewResponse(h.cat.Machines[low:high], len(h.cat.Machines), pg.Limit, pg.Offset))
}

func (h *Handler) ListTreatmentRooms(c echo.Context) error {
	pg := pagination.FromContext(c)
	low, high := pg.Slice(len(h.cat.Rooms))
	return c.JSON(http.StatusOK, pagination.NewResponse(h.cat.Rooms[low:high], len(h.cat.Rooms), pg.Limit, pg.Offset))
}
