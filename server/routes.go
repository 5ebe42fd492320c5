package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteLanding    = "/{$}"
	RouteCallback   = "/oidc"
	RouteIdentity   = "/me"
	RouteAuthLogout = "/auth/logout"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteLanding, ChainMiddleware(s.LandingPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteIdentity, ChainMiddleware(s.IdentityHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware()...))
}
