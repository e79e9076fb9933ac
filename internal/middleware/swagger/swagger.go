package swagger

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/iwtcode/machineMonitor/docs"
)

// Config содержит настройки для Swagger
type Config struct {
	Enabled bool
	Path    string
	Host    string // адрес API в документации; пустой оставляет сгенерированный
}

// Setup инициализирует маршруты Swagger
func Setup(r *gin.Engine, cfg *Config) {
	if cfg == nil || !cfg.Enabled {
		return
	}
	if cfg.Host != "" {
		docs.SwaggerInfo.Host = cfg.Host
	}
	r.GET(cfg.Path+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.DocExpansion("none"),
		ginSwagger.DefaultModelsExpandDepth(1),
	))
}
