package handlers

import (
	"log"

	"foodcourt/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for accounts: registration, login,
// password changes, the admin user CRUD, and profile updates.
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userService *services.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Post("/register", h.HandleRegister)
	users.Post("/login", h.HandleLogin)
	users.Get("/", h.HandleList)
	users.Post("/", h.HandleCreate)
	users.Put("/profile/:id", h.HandleUpdateProfile)
	users.Get("/:id", h.HandleGet)
	users.Put("/:id/password", h.HandleChangePassword)
	users.Put("/:id", h.HandleUpdate)
	users.Delete("/:id", h.HandleDelete)
}

// RegisterRequest is the body of a self-service registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister handles new user registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	user, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusCreated, "User registered successfully", user)
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user and returns the account plus a JWT.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Login successful", fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"token": token,
	})
}

// ChangePasswordRequest is the body of a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// HandleChangePassword verifies the current password and replaces it.
func (h *UserHandler) HandleChangePassword(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Current password and new password are required")
	}

	if err := h.authService.ChangePassword(id, req.CurrentPassword, req.NewPassword); err != nil {
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Password updated successfully", nil)
}

// HandleList returns all users, for the admin panel.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "", users)
}

// HandleGet returns one user.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Get(id)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "", user)
}

// CreateUserRequest is the body of an admin user creation.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=user admin"`
}

// HandleCreate creates a user with an explicit role.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	user, err := h.userService.Create(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusCreated, "User created successfully", user)
}

// UpdateUserRequest is the body of a user or profile update. Password,
// role, and profile_image are applied only when present.
type UpdateUserRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_image"`
}

// HandleUpdate applies an admin edit to a user.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Name and email are required")
	}

	user, err := h.userService.Update(id, services.UpdateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "User updated successfully", user)
}

// HandleUpdateProfile is the self-service variant of HandleUpdate; it can
// never change the role.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Name and email are required")
	}

	user, err := h.userService.UpdateProfile(id, services.UpdateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Profile updated successfully", user)
}

// HandleDelete removes a user; the last admin account is protected.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.userService.Delete(id); err != nil {
		log.Printf("Error deleting user %d: %v", id, err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "User deleted successfully", nil)
}
