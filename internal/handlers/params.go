package handlers

import (
	"fmt"
	"strconv"

	"mcacrm/internal/repositories"
	"mcacrm/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

// idParam reads a positive numeric path parameter.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// queryID reads an optional numeric query parameter. Zero means unset.
func queryID(c *fiber.Ctx, name string) uint {
	n, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

func includeDeleted(c *fiber.Ctx) bool {
	return c.QueryBool("include_deleted", false)
}

// listOptions builds repository list options from the query string.
func listOptions(c *fiber.Ctx) (repositories.ListOptions, pagination.Pagination) {
	p := pagination.ParseFromRequest(c)
	return repositories.ListOptions{
		Offset:         p.Offset,
		Limit:          p.Limit,
		IncludeDeleted: includeDeleted(c),
		Status:         c.Query("status"),
		MerchantID:     queryID(c, "merchant_id"),
		Search:         c.Query("search"),
	}, p
}

func paged(c *fiber.Ctx, p pagination.Pagination, total int64, data interface{}) error {
	p.Total = total
	return c.JSON(pagination.Response(p, data))
}
