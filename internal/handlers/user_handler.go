package handlers

import (
	"log"

	"foodgram/internal/config"
	"foodgram/internal/dto"
	"foodgram/internal/pagination"
	"foodgram/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for accounts and subscriptions.
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
	subService  *services.SubscriptionService
	validate    *validator.Validate
	cfg         config.Config
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	authService *services.AuthService,
	userService *services.UserService,
	subService *services.SubscriptionService,
	cfg config.Config,
) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		subService:  subService,
		validate:    dto.NewValidator(),
		cfg:         cfg,
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The static
// paths are registered before /:id so they are matched first.
func (h *UserHandler) RegisterRoutes(router fiber.Router, required, optional fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleSignUp)
	userRoutes.Get("/subscriptions", required, h.HandleListSubscriptions)
	userRoutes.Get("/me", required, h.HandleMe)
	userRoutes.Get("/", optional, h.HandleListUsers)
	userRoutes.Get("/:id", optional, h.HandleGetUser)
	userRoutes.Post("/:id/subscribe", required, h.HandleSubscribe)
	userRoutes.Delete("/:id/subscribe", required, h.HandleUnsubscribe)
}

// HandleSignUp registers a new account.
func (h *UserHandler) HandleSignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing sign-up request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"errors":  err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, err := h.authService.RegisterUser(req)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user, false))
}

// HandleListUsers retrieves a page of accounts.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	params := pagination.Parse(c, h.cfg.PageSize)
	users, count, err := h.userService.ListUsers(currentUserID(c), params.Offset(), params.Limit)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondServiceError(c, err)
	}
	return c.JSON(pagination.NewPage(c.Path(), count, params, users))
}

// HandleGetUser retrieves a single account.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	user, err := h.userService.GetUser(id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// HandleMe retrieves the authenticated account.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	userID := currentUserID(c)
	user, err := h.userService.GetUser(userID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// HandleSubscribe subscribes the authenticated user to an author.
func (h *UserHandler) HandleSubscribe(c *fiber.Ctx) error {
	authorID, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	recipesLimit := c.QueryInt("recipes_limit", 0)
	view, err := h.subService.Subscribe(currentUserID(c), authorID, recipesLimit)
	if err != nil {
		log.Printf("Error subscribing to author %d: %v", authorID, err)
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleUnsubscribe removes the authenticated user's subscription to an
// author.
func (h *UserHandler) HandleUnsubscribe(c *fiber.Ctx) error {
	authorID, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := h.subService.Unsubscribe(currentUserID(c), authorID); err != nil {
		log.Printf("Error unsubscribing from author %d: %v", authorID, err)
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListSubscriptions retrieves a page of the authenticated user's
// followed authors. The optional recipes_limit parameter truncates each
// author's embedded recipe list.
func (h *UserHandler) HandleListSubscriptions(c *fiber.Ctx) error {
	params := pagination.Parse(c, h.cfg.PageSize)
	recipesLimit := c.QueryInt("recipes_limit", 0)
	views, count, err := h.subService.ListSubscriptions(currentUserID(c), recipesLimit, params.Offset(), params.Limit)
	if err != nil {
		log.Printf("Error listing subscriptions: %v", err)
		return respondServiceError(c, err)
	}
	return c.JSON(pagination.NewPage(c.Path(), count, params, views))
}
