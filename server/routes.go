package server

import "net/http"

func (s *Server) initRoutes() {
	// Public routes
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteQRPage, ChainMiddleware(s.QRPageHandler(), s.APIMiddleware()...))

	// Session lifecycle routes (require a Bearer token)
	s.RegisterRouteHandler("GET "+RouteStatus, ChainMiddleware(s.StatusHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSessions, ChainMiddleware(s.SessionsListHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSession, ChainMiddleware(s.SessionInitializeHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSessionRestart, ChainMiddleware(s.SessionRestartHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSessionDisconnect, ChainMiddleware(s.SessionDisconnectHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteSession, ChainMiddleware(s.SessionDeleteHandler(), s.ProtectedAPIMiddleware()...))

	// CORS preflight for every route
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	// Messaging routes (require a Bearer token)
	s.RegisterRouteHandler("GET "+RouteChats, ChainMiddleware(s.ChatsHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSendMessage, ChainMiddleware(s.SendMessageHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSendMessageAsync, ChainMiddleware(s.SendMessageAsyncHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSendTemplate, ChainMiddleware(s.SendTemplateHandler(), s.ProtectedAPIMiddleware()...))
}

func (s *Server) APIMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return []func(http.HandlerFunc) http.HandlerFunc{
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.CorsMiddleware,
	}
}

func (s *Server) ProtectedAPIMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return append(s.APIMiddleware(), s.RequireAuth())
}
