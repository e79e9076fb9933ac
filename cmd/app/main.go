// @title Machine Monitor API
// @version 1.0.0
// @description API мониторинга состояний станков с ЧПУ и аналитики их загрузки.
// @host localhost:8082
// @BasePath /api/v1
package main

import "github.com/iwtcode/machineMonitor/internal/app"

func main() {
	// Создаем и запускаем новый экземпляр приложения fx
	app.New().Run()
}
