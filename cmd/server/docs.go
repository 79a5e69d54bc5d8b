package main

// @title ShipDrop Backend API
// @version 1.0
// @description Dropshipping operations dashboard backend: inventory, wholesalers, orders, sync, and analytics.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@shipdrop.example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Products
// @tag.description Inventory registry endpoints

// @tag.name Wholesalers
// @tag.description Wholesaler registry endpoints

// @tag.name Orders
// @tag.description Order router endpoints

// @tag.name Sync
// @tag.description Inventory sync endpoints

// @tag.name Analytics
// @tag.description Analytics aggregator endpoints

// @tag.name Health
// @tag.description Health check endpoints
