package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"event_management_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConnectCheck check api connect start
// @Summary Check service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "event service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("event service start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param service query string true "Service name"
// @Param status query bool true "Debug status"
// @Success 200 {string} string "Service debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	query, err := url.ParseQuery(string(c.Context().QueryArgs().QueryString()))
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	service := query.Get("service")
	statusStr := query.Get("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	switch service {
	default:
		logger.Log.SetDebugMode(status)
	}
	return c.SendString(fmt.Sprintf("service[%s]: debug mode is : %t", service, status))
}
