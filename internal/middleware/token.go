package middleware

import (
	jwtPkg "talksy/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func (m *middleware) unauthorized(ctx *fiber.Ctx, reason string) error {
	m.log.WithFields(logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"path":       ctx.Path(),
		"client_ip":  ctx.IP(),
		"error":      reason,
	}).Warn("Token verification failed")

	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	token, err := jwtPkg.VerifyTokenHeader(ctx, jwtPkg.AccessTokenSecret)
	if err != nil {
		return m.unauthorized(ctx, err.Error())
	}

	operator, err := jwtPkg.OperatorFromToken(token)
	if err != nil {
		return m.unauthorized(ctx, err.Error())
	}
	ctx.Locals("operator", operator)

	m.log.WithFields(logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"operator":   operator.Username,
	}).Debug("Authentication successful")
	return ctx.Next()
}
