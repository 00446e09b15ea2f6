package main

import (
	handler "essay-assess/biz/adaptor/controller"
	"essay-assess/biz/adaptor/controller/corrector"
	"essay-assess/biz/adaptor/controller/writer"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// customizedRegister registers customize routers.
func customizedRegister(r *server.Hertz) {
	r.GET("/ping", handler.Ping)

	// 写作端
	w := r.Group("/writer")
	{
		w.GET("/data", writer.GetData)
		w.GET("/update", writer.GetUpdate)
		w.PUT("/start", writer.PutStart)
		w.PUT("/steps", writer.PutSteps)
		w.PUT("/changes", writer.PutChanges)
		w.PUT("/final", writer.PutFinal)
		w.GET("/file/:key", writer.GetFile)
	}

	// 批改端
	co := r.Group("/corrector")
	{
		co.GET("/data", corrector.GetData)
		co.GET("/item/:key", corrector.GetItem)
		co.PUT("/changes", corrector.PutChanges)
		co.PUT("/stitch/:key", corrector.PutStitch)
		co.GET("/file/:key", corrector.GetFile)
	}
}
