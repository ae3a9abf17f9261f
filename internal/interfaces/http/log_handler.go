package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LogHandler expone la bitácora estructural (solo lectura; protegido).
type LogHandler struct {
	uc *usecase.LogUseCase
}

// NewLogHandler construye el handler.
func NewLogHandler(uc *usecase.LogUseCase) *LogHandler {
	return &LogHandler{uc: uc}
}

// List godoc
// @Summary      Listar bitácora estructural
// @Description  Entradas created/updated/deleted/restored/moved con diff de campos, más recientes primero.
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        entity_type  query  string  false  "Filtrar por tipo (warehouse|zone|rack|shelf|placement)"
// @Param        entity_id    query  string  false  "Filtrar por entidad"
// @Param        action       query  string  false  "Filtrar por acción"
// @Success      200  {object}  dto.LogListResponse
// @Router       /api/logs [get]
func (h *LogHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), GetBusinessID(c), repository.LogFilter{
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		Action:     c.Query("action"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
