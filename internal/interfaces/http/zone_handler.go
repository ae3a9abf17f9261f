package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/hierarchy"
)

// ZoneHandler maneja las peticiones HTTP para zonas (protegido).
type ZoneHandler struct {
	uc *hierarchy.ZoneUseCase
}

// NewZoneHandler construye el handler.
func NewZoneHandler(uc *hierarchy.ZoneUseCase) *ZoneHandler {
	return &ZoneHandler{uc: uc}
}

// Create godoc
// @Summary      Crear zona
// @Description  El código se normaliza (mayúsculas, sin espacios extremos) y es único entre zonas activas del negocio. Un código de zona eliminada se reutiliza reactivando la fila con estadísticas en cero.
// @Tags         zones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateZoneRequest  true  "Datos de la zona"
// @Success      201   {object}  dto.ZoneResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/zones [post]
func (h *ZoneHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateZoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(c.Context(), GetBusinessID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar zonas activas de una bodega
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ZoneListResponse
// @Router       /api/zones [get]
func (h *ZoneHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	out, err := h.uc.List(c.Context(), GetBusinessID(c), warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar zona (soft delete)
// @Description  Falla con 400 si la zona tiene racks activos.
// @Tags         zones
// @Security     Bearer
// @Param        code  path  string  true  "Código de la zona"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/zones/{code} [delete]
func (h *ZoneHandler) Delete(c *fiber.Ctx) error {
	code := c.Params("code")
	if err := h.uc.Delete(c.Context(), GetBusinessID(c), GetUserID(c), code); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
