package docs

import "github.com/swaggo/swag"

// @title UrFood Delivery API
// @version 1.0
// @description Order lifecycle and payment settlement API for the food delivery marketplace
// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
var SwaggerInfo = &swag.Spec{
	Version:     "1.0",
	Host:        "localhost:8080",
	BasePath:    "/api/v1",
	Title:       "UrFood Delivery API",
	Description: "Order lifecycle and payment settlement API for the food delivery marketplace",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
