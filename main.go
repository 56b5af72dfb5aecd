package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/oshanw/pharmacare-api/cmd/app"
)

// @title PharmaCare API
// @version 1.0
// @description Role-gated pharmacy inventory and prescription API.
// @BasePath /v1
//
// @securityDefinitions.apikey BearerToken
// @in header
// @name Authorization
// @description Bearer token
//
// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
