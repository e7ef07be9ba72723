package main

import (
	"github.com/gorilla/mux"
)

// setupRoutes configures all HTTP routes for the gateway
func setupRoutes(router *mux.Router, app *application) {
	// Command surfaces
	router.HandleFunc("/command", app.handleCommand).Methods("POST")
	router.HandleFunc("/message", app.handleMessage).Methods("POST")

	// Health and stats endpoints
	router.HandleFunc("/health", app.handleHealth)
	router.HandleFunc("/stats", app.handleStats)

	// Cache management endpoints
	router.HandleFunc("/cache", app.handleCacheDump)
	router.HandleFunc("/cache/backup", app.handleCacheBackup)
	router.HandleFunc("/cache/clear", app.handleCacheClear)

	// Help endpoint
	router.HandleFunc("/", app.handleHelp)
}
