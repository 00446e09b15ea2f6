package main

import (
	"essay-assess/provider"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/monitor-prometheus"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
)

func main() {
	provider.Init()
	c := provider.Get().Config

	// 与宿主平台的链路追踪用b3头衔接
	otel.SetTextMapPropagator(b3.New())

	tracer, cfg := hertztracing.NewServerTracer()
	h := server.Default(
		server.WithHostPorts(c.ListenOn),
		server.WithTracer(prometheus.NewServerTracer(":9091", "/metrics")),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(cfg))

	customizedRegister(h)
	h.Spin()
}
