package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/service"
	apperrors "github.com/spec-kit/hr-docs/pkg/util/errorutil"
)

// sendPDF streams a rendered report as a download.
func sendPDF(c *fiber.Ctx, out *service.RenderedReport) error {
	c.Attachment(out.Filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(out.Body)
}

// notFoundAs names the missing resource in the 404 body.
func notFoundAs(err error, resource, id string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return err
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return s != "" && err == nil
}
