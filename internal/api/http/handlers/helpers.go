package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/alliance-shipping/backoffice/internal/auth"
	"github.com/alliance-shipping/backoffice/internal/domain"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

func currentSession(c *fiber.Ctx) (*domain.AdminSession, error) {
	sess, ok := auth.SessionFromContext(c)
	if !ok || sess == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return sess, nil
}

func parseBoolQuery(c *fiber.Ctx, key string, defaultVal bool) bool {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// parsePage converts page/page_size into limit and offset.
func parsePage(c *fiber.Ctx) (limit, offset int) {
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", 50)
	return pageSize, (page - 1) * pageSize
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
