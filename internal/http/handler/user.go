package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"blogapi/internal/service"
)

// Register handles POST /api/register.
func Register(users service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		user, err := users.Register(c.UserContext(), in)
		if err != nil {
			if verr, ok := asValidation(err); ok {
				return writeValidationError(c, verr)
			}
			if errors.Is(err, service.ErrEmailTaken) {
				return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong!")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User registered successfully",
			"user":    user.Profile(),
		})
	}
}

// Login handles POST /api/login. Unknown email and wrong password produce the
// same response.
func Login(users service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LoginInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		res, err := users.Login(c.UserContext(), in)
		if err != nil {
			if verr, ok := asValidation(err); ok {
				return writeValidationError(c, verr)
			}
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong!")
		}

		return c.JSON(res)
	}
}

// ListUsers handles GET /api/users.
func ListUsers(users service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profiles, err := users.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong!")
		}
		return c.JSON(profiles)
	}
}

// GetUser handles GET /api/user/:id.
func GetUser(users service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := users.GetByID(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong!")
		}
		return c.JSON(profile)
	}
}

// UpdateUser handles PUT /api/user/:id with a partial body; absent fields are
// left unchanged.
func UpdateUser(users service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.UpdateUserInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		profile, err := users.UpdateByID(c.UserContext(), c.Params("id"), in)
		if err != nil {
			if verr, ok := asValidation(err); ok {
				return writeValidationError(c, verr)
			}
			switch {
			case errors.Is(err, service.ErrUserNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
			case errors.Is(err, service.ErrEmailTaken):
				return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong!")
			}
		}

		return c.JSON(fiber.Map{
			"message": "User updated successfully",
			"user":    profile,
		})
	}
}
