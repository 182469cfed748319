package main

import (
	api "PickEm/api"
)

// @title PickEm API
// @version 1.0
// @description Tournament bracket picks, scoring and results
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Provide a valid JWT as: Bearer <token>
func main() {
	api.Run()
}
