package helperAuth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "spkmitra_backend/internals/helpers"
)

// GetUserIDFromLocals membaca user_id yang diset middleware AuthJWT.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: user_id tidak ada di token", helper.ErrValidation)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: user_id di token bukan uuid", helper.ErrValidation)
	}
	return id, nil
}

func GetUserNameFromLocals(c *fiber.Ctx) string {
	name, _ := c.Locals("user_name").(string)
	return name
}

func GetRoleFromLocals(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
