// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gatewayauth

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wepoYJ/wepo-server/internal/types"
)

// Session resolution happens at the gateway, which forwards the
// authenticated identity in these headers. This service only trusts the
// private network between it and the gateway.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUsername = "X-User-Name"
)

// Optional resolves the viewer identity when present and lets the request
// through either way. Read paths use it so anonymous browsing works.
func Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user, ok := resolve(c); ok {
			c.Locals(types.UserCtxName, user)
		}
		return c.Next()
	}
}

// Required rejects requests without a resolvable viewer identity. Write
// paths use it.
func Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := resolve(c)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHENTICATED",
				"message": "Authentication required",
			})
		}
		c.Locals(types.UserCtxName, user)
		return c.Next()
	}
}

func resolve(c *fiber.Ctx) (types.UserContext, bool) {
	raw := c.Get(HeaderUserID)
	if raw == "" {
		return types.UserContext{}, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return types.UserContext{}, false
	}
	return types.UserContext{
		UserID:   id,
		Username: c.Get(HeaderUsername),
	}, true
}
