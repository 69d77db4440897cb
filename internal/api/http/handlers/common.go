package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldstack/isp-ops-service/internal/auth"
	"github.com/fieldstack/isp-ops-service/internal/filterlist"
	"github.com/fieldstack/isp-ops-service/internal/validate"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]any{"parse": err.Error()})
	}
	return nil
}

func validationError(msgs validate.Messages) error {
	return apperrors.NewValidationError("validation failed", map[string]any{"messages": []string(msgs)})
}

func actor(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Email
	}
	return ""
}

// listView builds a per-request filter view over rows: free-text query `q`,
// `status` filter, `page` and `page_size` come from the query string.
func listView[T any](c *fiber.Ctx, rows []T, status func(T) string, searchFields ...func(T) string) filterlist.Snapshot[T] {
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	view := filterlist.NewView(rows, filterlist.Config[T]{
		SearchFields: searchFields,
		PageSize:     pageSize,
	})
	if status != nil {
		view.SetFilter("status", filterlist.Equals(status, c.Query("status")))
	}
	view.CommitQuery(c.Query("q"))
	page, _ := strconv.Atoi(c.Query("page"))
	view.SetPage(page)
	return view.Snapshot()
}
