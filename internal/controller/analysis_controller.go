package controller

import (
	"errors"

	"github.com/Tigierre/contractguardian/internal/dto"
	"github.com/Tigierre/contractguardian/internal/pkg/serverutils"
	"github.com/Tigierre/contractguardian/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	StartBasic(ctx *fiber.Ctx) error
	StartEnhanced(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Findings(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
}

func NewAnalysisController(analysisService service.IAnalysisService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analysis/v1")
	h.Post("", c.StartBasic)
	h.Post("enhanced", c.StartEnhanced)
	h.Get(":id", c.Show)
	h.Get(":id/findings", c.Findings)
	h.Delete(":id", c.Delete)
}

func (c *analysisController) StartBasic(ctx *fiber.Ctx) error {
	var req dto.StartAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.analysisService.StartBasic(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Document not found"))
		}
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Analysis queued", res))
}

func (c *analysisController) StartEnhanced(ctx *fiber.Ctx) error {
	var req dto.StartEnhancedAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.analysisService.StartEnhanced(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Document not found"))
		}
		if errors.Is(err, service.ErrMetadataRequired) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "Document metadata must be validated before an enhanced analysis"))
		}
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Enhanced analysis queued", res))
}

func (c *analysisController) Show(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.analysisService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Analysis not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show analysis", res))
}

func (c *analysisController) Findings(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.analysisService.Findings(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAnalysisNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Analysis not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list findings", res))
}

func (c *analysisController) Delete(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	err := c.analysisService.Delete(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAnalysisNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Analysis not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete analysis", nil))
}
