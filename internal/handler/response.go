package handler

import "github.com/labstack/echo/v4"

// Envelope is the wire format every endpoint answers with. Existing
// clients sniff for the content wrapper, so it stays stable even though a
// flatter shape would be nicer.
type Envelope struct {
	Content any      `json:"content"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func respond(c echo.Context, status int, content any, message string) error {
	return c.JSON(status, Envelope{
		Content: content,
		Message: message,
		Errors:  []string{},
	})
}

func fail(c echo.Context, status int, message string, errs ...string) error {
	if len(errs) == 0 {
		errs = []string{message}
	}
	return c.JSON(status, Envelope{
		Message: message,
		Errors:  errs,
	})
}
