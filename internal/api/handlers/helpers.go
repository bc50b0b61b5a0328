package handlers

import (
	"Restaurant-POS-Backend/domain"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func principalFrom(c *fiber.Ctx) domain.Principal {
	userID, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)
	return domain.Principal{UserID: userID, Role: role}
}

func uuidParam(c *fiber.Ctx, name string) (string, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return "", domain.ErrParseUUID
	}
	return id.String(), nil
}

func optionalUUIDQuery(c *fiber.Ctx, name string) (string, error) {
	v := c.Query(name)
	if v == "" {
		return "", nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return "", domain.ErrParseUUID
	}
	return id.String(), nil
}

// dateRangeQuery reads date_from and date_to as YYYY-MM-DD in UTC.
func dateRangeQuery(c *fiber.Ctx) (domain.DateRange, error) {
	var r domain.DateRange
	if v := c.Query("date_from"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.UTC)
		if err != nil {
			return r, domain.Errorf(domain.ErrInvalid, "date_from must be YYYY-MM-DD")
		}
		r.From = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.UTC)
		if err != nil {
			return r, domain.Errorf(domain.ErrInvalid, "date_to must be YYYY-MM-DD")
		}
		r.To = &t
	}
	if err := r.Check(0); err != nil {
		return r, err
	}
	return r, nil
}

// reportRangeQuery is dateRangeQuery with the report span cap applied.
func reportRangeQuery(c *fiber.Ctx) (domain.DateRange, error) {
	r, err := dateRangeQuery(c)
	if err != nil {
		return r, err
	}
	return r, r.Check(domain.MaxReportDays)
}

func pageQuery(c *fiber.Ctx, defaultLimit int) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func csvQuery(c *fiber.Ctx, name string) []string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// uuidListQuery reads a comma separated list of UUIDs.
func uuidListQuery(c *fiber.Ctx, name string) ([]string, error) {
	parts := csvQuery(c, name)
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		ids = append(ids, id.String())
	}
	return ids, nil
}
