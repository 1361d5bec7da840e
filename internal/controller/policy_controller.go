package controller

import (
	"github.com/Tigierre/contractguardian/internal/pkg/serverutils"
	"github.com/Tigierre/contractguardian/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPolicyController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type policyController struct {
	policyService service.IPolicyService
}

func NewPolicyController(policyService service.IPolicyService) IPolicyController {
	return &policyController{
		policyService: policyService,
	}
}

func (c *policyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/policy/v1")
	h.Get("", c.List)
}

func (c *policyController) List(ctx *fiber.Ctx) error {
	res, err := c.policyService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list policies", res))
}
