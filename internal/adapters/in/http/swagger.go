package http

import (
	"encoding/json"
	"sync"

	"routeengine/internal/generated/servers"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// swaggerDoc feeds the OpenAPI document to swag, which echo-swagger reads
// when serving doc.json.
type swaggerDoc struct {
	once sync.Once
	doc  string
}

func (d *swaggerDoc) ReadDoc() string {
	d.once.Do(func() {
		swagger, err := servers.GetSwagger()
		if err != nil {
			d.doc = "{}"
			return
		}
		data, err := json.Marshal(swagger)
		if err != nil {
			d.doc = "{}"
			return
		}
		d.doc = string(data)
	})
	return d.doc
}

var registerDocOnce sync.Once

// RegisterSwaggerUI serves the API document and Swagger UI under /swagger/.
func RegisterSwaggerUI(e *echo.Echo) {
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, &swaggerDoc{})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
