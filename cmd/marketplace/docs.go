package main

// @title Marketplace API
// @version 1.0
// @description Second-hand marketplace API with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/geotk/marketplace
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/geotk/marketplace/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Users
// @tag.description User registration, login and profile endpoints

// @tag.name Items
// @tag.description Listing, category, image and favorite endpoints

// @tag.name Reviews
// @tag.description User-to-user review endpoints

// @tag.name Health
// @tag.description Health check endpoints
