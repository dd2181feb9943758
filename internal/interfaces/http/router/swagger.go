package router

import (
	_ "github.com/erp/invoicing/docs" // registers the generated API document
	"github.com/erp/invoicing/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterSwagger serves the Swagger UI and doc.json under /swagger
func RegisterSwagger(engine *gin.Engine, cfg middleware.SwaggerConfig) {
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)
}
