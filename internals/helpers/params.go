package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ParseIDParam reads a positive integer path param.
func ParseIDParam(c *fiber.Ctx, name string) (int64, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, BadRequest("Geçersiz id: " + raw)
	}
	return id, nil
}

// QueryInt64 reads an optional positive integer query param. The first
// non-empty key wins, so aliases can be passed in order of preference.
func QueryInt64(c *fiber.Ctx, keys ...string) (*int64, error) {
	for _, k := range keys {
		raw := strings.TrimSpace(c.Query(k))
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, BadRequest("Geçersiz " + k + " değeri: " + raw)
		}
		return &n, nil
	}
	return nil, nil
}

func QueryString(c *fiber.Ctx, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}

// TrimPtr trims s and turns an empty result into nil.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func StrPtr(s string) *string { return &s }
