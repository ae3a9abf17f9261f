package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/hierarchy"
)

// RackHandler maneja las peticiones HTTP para racks (protegido).
type RackHandler struct {
	uc     *hierarchy.RackUseCase
	moveUC *hierarchy.MoveRackUseCase
}

// NewRackHandler construye el handler.
func NewRackHandler(uc *hierarchy.RackUseCase, moveUC *hierarchy.MoveRackUseCase) *RackHandler {
	return &RackHandler{uc: uc, moveUC: moveUC}
}

// Create godoc
// @Summary      Crear rack
// @Description  Position > 0 inserta en esa posición desplazando a los hermanos; 0 o ausente agrega al final de la zona.
// @Tags         racks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRackRequest  true  "Datos del rack"
// @Success      201   {object}  dto.RackResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/racks [post]
func (h *RackHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRackRequest
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
// @Summary      Listar racks activos de una zona por posición
// @Tags         racks
// @Security     Bearer
// @Produce      json
// @Param        zone_id  query  string  true  "Código de la zona"
// @Success      200  {object}  dto.RackListResponse
// @Router       /api/racks [get]
func (h *RackHandler) List(c *fiber.Ctx) error {
	zoneID := c.Query("zone_id")
	if zoneID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "zone_id es requerido"})
	}
	out, err := h.uc.List(c.Context(), GetBusinessID(c), zoneID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Mover rack a otra zona
// @Description  Cierra el hueco en la zona origen y abre hueco (o agrega al final) en la destino, en una sola operación atómica. Mover a la zona actual responde 400.
// @Tags         racks
// @Security     Bearer
// @Accept       json
// @Param        code  path  string  true  "Código del rack"
// @Param        body  body  dto.MoveRackRequest  true  "Zona destino"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/racks/{code}/move [post]
func (h *RackHandler) Move(c *fiber.Ctx) error {
	code := c.Params("code")
	var in dto.MoveRackRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.moveUC.Move(c.Context(), GetBusinessID(c), GetUserID(c), code, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar rack (soft delete)
// @Description  Falla con 400 si el rack tiene estanterías activas. Los hermanos con posición mayor bajan una posición.
// @Tags         racks
// @Security     Bearer
// @Param        code  path  string  true  "Código del rack"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/racks/{code} [delete]
func (h *RackHandler) Delete(c *fiber.Ctx) error {
	code := c.Params("code")
	if err := h.uc.Delete(c.Context(), GetBusinessID(c), GetUserID(c), code); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
