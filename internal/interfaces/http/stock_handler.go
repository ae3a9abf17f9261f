package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockHandler maneja put-away, pick y los listados de stock (protegido).
type StockHandler struct {
	putAwayUC *stock.PutAwayUseCase
	queryUC   *usecase.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(putAwayUC *stock.PutAwayUseCase, queryUC *usecase.StockQueryUseCase) *StockHandler {
	return &StockHandler{putAwayUC: putAwayUC, queryUC: queryUC}
}

// PutAway godoc
// @Summary      Ubicar unidades de una GRN en una estantería
// @Description  Crea una unidad física por cada units, acumula la colocación producto-estantería y registra el movimiento inbound, todo en una sola transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.PutAwayRequest  true  "Datos del put-away"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/putaway [post]
func (h *StockHandler) PutAway(c *fiber.Ctx) error {
	var in dto.PutAwayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.putAwayUC.PutAway(c.Context(), GetBusinessID(c), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Pick godoc
// @Summary      Retirar unidades de una estantería hacia un pedido
// @Description  Marca unidades inbound como outbound (FIFO), descuenta la colocación y registra el movimiento outbound. Si no hay unidades suficientes responde 409.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.PickRequest  true  "Datos del pick"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/pick [post]
func (h *StockHandler) Pick(c *fiber.Ctx) error {
	var in dto.PickRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	// La tienda destino sale del acceso resuelto: un vendedor nunca elige
	// una tienda ajena, aunque la mande en el cuerpo.
	if access := GetAccess(c); access != nil && access.StoreID != "" {
		in.StoreID = access.StoreID
	}
	if err := h.putAwayUC.Pick(c.Context(), GetBusinessID(c), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPlacements godoc
// @Summary      Listar colocaciones producto-estantería
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        shelf_id    query  string  false  "Filtrar por estantería"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.PlacementListResponse
// @Router       /api/stock/placements [get]
func (h *StockHandler) ListPlacements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.queryUC.ListPlacements(c.Context(), GetBusinessID(c), repository.PlacementFilter{
		ShelfID:   c.Query("shelf_id"),
		ProductID: c.Query("product_id"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListUPCs godoc
// @Summary      Listar unidades físicas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        grn_id      query  string  false  "Filtrar por GRN"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        shelf_id    query  string  false  "Filtrar por estantería"
// @Param        put_away    query  string  false  "Filtrar por estado (none|inbound|outbound)"
// @Success      200  {object}  dto.UPCListResponse
// @Router       /api/stock/upcs [get]
func (h *StockHandler) ListUPCs(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.queryUC.ListUPCs(c.Context(), GetBusinessID(c), repository.UPCFilter{
		GRNID:     c.Query("grn_id"),
		ProductID: c.Query("product_id"),
		ShelfID:   c.Query("shelf_id"),
		PutAway:   c.Query("put_away"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        grn_id      query  string  false  "Filtrar por GRN"
// @Param        type        query  string  false  "Filtrar por tipo (INBOUND|OUTBOUND|TRANSFER|ADJUSTMENT)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.queryUC.ListMovements(c.Context(), GetBusinessID(c), repository.MovementFilter{
		ProductID: c.Query("product_id"),
		GRNID:     c.Query("grn_id"),
		Type:      c.Query("type"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
