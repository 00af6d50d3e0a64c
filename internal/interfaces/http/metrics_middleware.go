package http

import "github.com/gofiber/fiber/v2"

// RequestObserver recibe cada petición atendida (métricas).
type RequestObserver interface {
	ObserveRequest(method, route string, status int)
}

// MetricsMiddleware registra método, ruta registrada y código de respuesta.
// Se usa la ruta del router (con :params) para no explotar la cardinalidad.
func MetricsMiddleware(obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		obs.ObserveRequest(c.Method(), c.Route().Path, status)
		return err
	}
}
