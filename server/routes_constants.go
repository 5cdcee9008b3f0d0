package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public routes
	RouteHealth = "/health"
	RouteLogin  = "/login"
	RouteQRPage = "/qr/{tenant}"

	// Session lifecycle routes
	RouteStatus            = "/status/{tenant}"
	RouteSessions          = "/sessions"
	RouteSession           = "/sessions/{tenant}"
	RouteSessionRestart    = "/sessions/{tenant}/restart"
	RouteSessionDisconnect = "/sessions/{tenant}/disconnect"

	// Messaging routes
	RouteChats            = "/chats/{tenant}"
	RouteSendMessage      = "/send-message"
	RouteSendMessageAsync = "/send-message-async"
	RouteSendTemplate     = "/send-template"
)
