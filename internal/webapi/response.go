package webapi

import "github.com/labstack/echo/v4"

// ok writes a 200 response with the given payload
func ok(c echo.Context, data interface{}) error {
	return c.JSON(200, data)
}

// fail writes an error response with a machine code and human message.
// detail is optional diagnostic content for the response body.
func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := echo.Map{
		"code":    code,
		"message": message,
	}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}
