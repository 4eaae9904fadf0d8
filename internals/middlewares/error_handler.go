package middlewares

import (
	"log"

	helper "hatatakip_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const (
	msgServerError = "Sunucu hatası oluştu"
	msgNotFound    = "Endpoint bulunamadı"
	msgTooLarge    = "İstek boyutu sınırı aşıldı"
)

// ErrorHandler renders every error returned by a handler as {"error": ...}.
// Internal details never reach the client; 5xx go to the log and reporter.
func ErrorHandler(rep Reporter) fiber.ErrorHandler {
	if rep == nil {
		rep = NoopReporter{}
	}
	return func(c *fiber.Ctx, err error) error {
		var (
			herr *helper.HTTPError
			ferr *fiber.Error
		)
		switch {
		case errors.As(err, &herr):
			if herr.Code >= fiber.StatusInternalServerError {
				serverError(c, rep, err)
			} else if herr.Err != nil {
				log.Printf("[HTTP] id=%s %d %s %s: %v", RequestID(c), herr.Code, c.Method(), c.Path(), herr.Err)
			}
			return helper.JsonError(c, herr.Code, herr.Message, herr.Fields)

		case errors.As(err, &ferr):
			switch {
			case ferr.Code >= fiber.StatusInternalServerError:
				serverError(c, rep, err)
				return helper.JsonError(c, fiber.StatusInternalServerError, msgServerError, nil)
			case ferr.Code == fiber.StatusNotFound:
				return helper.JsonError(c, ferr.Code, msgNotFound, nil)
			case ferr.Code == fiber.StatusRequestEntityTooLarge:
				return helper.JsonError(c, ferr.Code, msgTooLarge, nil)
			}
			return helper.JsonError(c, ferr.Code, ferr.Message, nil)
		}

		serverError(c, rep, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, msgServerError, nil)
	}
}

func serverError(c *fiber.Ctx, rep Reporter, err error) {
	log.Printf("[HTTP][ERROR] id=%s %s %s: %+v", RequestID(c), c.Method(), c.Path(), err)
	rep.Report(c, err)
}

// NotFoundHandler is mounted last to answer unmatched routes.
func NotFoundHandler(c *fiber.Ctx) error {
	return helper.JsonError(c, fiber.StatusNotFound, msgNotFound, nil)
}
