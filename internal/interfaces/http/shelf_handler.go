package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/hierarchy"
)

// ShelfHandler maneja las peticiones HTTP para estanterías (protegido).
type ShelfHandler struct {
	uc     *hierarchy.ShelfUseCase
	moveUC *hierarchy.MoveShelfUseCase
}

// NewShelfHandler construye el handler.
func NewShelfHandler(uc *hierarchy.ShelfUseCase, moveUC *hierarchy.MoveShelfUseCase) *ShelfHandler {
	return &ShelfHandler{uc: uc, moveUC: moveUC}
}

// Create godoc
// @Summary      Crear estantería
// @Description  Position > 0 inserta en esa posición desplazando a los hermanos; 0 o ausente agrega al final del rack.
// @Tags         shelves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShelfRequest  true  "Datos de la estantería"
// @Success      201   {object}  dto.ShelfResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shelves [post]
func (h *ShelfHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShelfRequest
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
// @Summary      Listar estanterías activas de un rack por posición
// @Tags         shelves
// @Security     Bearer
// @Produce      json
// @Param        rack_id  query  string  true  "Código del rack"
// @Success      200  {object}  dto.ShelfListResponse
// @Router       /api/shelves [get]
func (h *ShelfHandler) List(c *fiber.Ctx) error {
	rackID := c.Query("rack_id")
	if rackID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rack_id es requerido"})
	}
	out, err := h.uc.List(c.Context(), GetBusinessID(c), rackID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar estantería
// @Description  Campos omitidos no cambian. Un cambio de posición reordena a los hermanos del mismo rack.
// @Tags         shelves
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la estantería"
// @Param        body  body  dto.UpdateShelfRequest  true  "Campos a actualizar"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [put]
func (h *ShelfHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateShelfRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.Update(c.Context(), GetBusinessID(c), GetUserID(c), id, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Move godoc
// @Summary      Mover estantería a otro rack
// @Description  Cierra el hueco en el rack origen y abre hueco (o agrega al final) en el destino, en una sola operación atómica. Mover al rack actual responde 400.
// @Tags         shelves
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la estantería"
// @Param        body  body  dto.MoveShelfRequest  true  "Rack destino"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id}/move [post]
func (h *ShelfHandler) Move(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.MoveShelfRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.moveUC.Move(c.Context(), GetBusinessID(c), GetUserID(c), id, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar estantería (soft delete)
// @Description  Las hermanas con posición mayor bajan una posición; las posiciones del rack quedan densas.
// @Tags         shelves
// @Security     Bearer
// @Param        id  path  string  true  "ID de la estantería"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [delete]
func (h *ShelfHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.Context(), GetBusinessID(c), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
