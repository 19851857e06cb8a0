package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/berfenger/luxtronik2mqtt/internal/core/domain"
	"github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type attributeView struct {
	Group     string `json:"group"`
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Writeable bool   `json:"writeable"`
	Raw       int32  `json:"raw"`
	Value     any    `json:"value"`
}

type errorView struct {
	Error string `json:"error"`
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.GET("/api/v1/:group/:id", s.AttributeHandler)
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

// AttributeHandler returns one attribute of the last snapshot, by index or name.
func (s *Server) AttributeHandler(c echo.Context) error {
	req := domain.LookupAttributeRequest{
		Group: c.Param("group"),
		Id:    c.Param("id"),
	}
	res, err := s.rootContext.RequestFuture(s.masterActor, req, 10*time.Second).Result()
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, errorView{Error: err.Error()})
	}
	response, ok := res.(domain.LookupAttributeResponse)
	if !ok {
		return c.JSON(http.StatusInternalServerError, errorView{Error: "unexpected response"})
	}
	if response.HasResponseError() {
		err := response.GetResponseError()
		status := http.StatusInternalServerError
		if errors.Is(err, luxtronik.ErrUnknownGroup) || errors.Is(err, luxtronik.ErrUnknownAttribute) {
			status = http.StatusNotFound
		}
		return c.JSON(status, errorView{Error: err.Error()})
	}
	attr := response.Attribute
	return c.JSON(http.StatusOK, attributeView{
		Group:     attr.Group,
		Index:     attr.Index,
		Name:      attr.Name,
		Type:      string(attr.Type),
		Writeable: attr.Writeable,
		Raw:       attr.Raw,
		Value:     attr.Value,
	})
}
