package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-docs/internal/domain"
)

const isoDate = "2006-01-02"

// firstQuery returns the first non-empty value among the aliases.
func firstQuery(c *fiber.Ctx, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			return v
		}
	}
	return ""
}

// parseWindowDays falls back to def for anything but a positive integer.
func parseWindowDays(c *fiber.Ctx, def int) int {
	return domain.NormalizeWindowDays(parseInt(firstQuery(c, "dias", "window_days"), def))
}

func parseStatus(c *fiber.Ctx) domain.ExpiryStatus {
	status, ok := domain.ParseExpiryStatus(c.Query("status"))
	if !ok {
		return ""
	}
	return status
}

func parseCategory(c *fiber.Ctx) domain.Category {
	category, ok := domain.ParseCategory(firstQuery(c, "doc", "category"))
	if !ok {
		return ""
	}
	return category
}

func parseBirthMonth(c *fiber.Ctx) int {
	month := parseInt(firstQuery(c, "mes", "birth_month"), 0)
	if month < 1 || month > 12 {
		return 0
	}
	return month
}

// parseActive accepts 1|0|true|false; anything else disables the filter.
func parseActive(c *fiber.Ctx) *bool {
	var active bool
	switch strings.ToLower(firstQuery(c, "ativo", "active")) {
	case "1", "true":
		active = true
	case "0", "false":
		active = false
	default:
		return nil
	}
	return &active
}

// parseID returns the id path parameter when it is a well-formed UUID.
func parseID(c *fiber.Ctx) (string, bool) {
	id := strings.TrimSpace(c.Params("id"))
	if !isUUID(id) {
		return "", false
	}
	return id, true
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(isoDate)
	return &s
}
