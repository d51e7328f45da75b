package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/order-service/internal/api/dto"
	"github.com/spec-kit/order-service/internal/domain"
	"github.com/spec-kit/order-service/internal/service"
	apperrors "github.com/spec-kit/order-service/pkg/util/errorutil"
)

// bindJSON decodes and validates the request body.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := dto.Validate(out); details != nil {
		return apperrors.NewValidationError("validation failed", details)
	}
	return nil
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id must be a positive integer", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

// parseListQuery reads optional ?status=A,B&page=N&page_size=M. Without page_size every row is returned.
func parseListQuery(c *fiber.Ctx) (service.OrderListFilter, error) {
	filter := service.OrderListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			status, err := domain.ParseOrderStatus(strings.TrimSpace(part))
			if err != nil {
				return filter, apperrors.NewValidationError(err.Error(), nil)
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	pageSize := parseInt(c.Query("page_size"), 0)
	if pageSize > 0 {
		page := parseInt(c.Query("page"), 1)
		filter.Limit = pageSize
		filter.Offset = (page - 1) * pageSize
	}
	return filter, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
