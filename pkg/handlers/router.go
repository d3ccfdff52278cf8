package handlers

import (
	"strings"

	"github.com/backsoul/mathquiz/pkg/metrics"
	"github.com/backsoul/mathquiz/pkg/web"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const routeKey = "route"

// Router enruta las peticiones del servidor del quiz
type Router struct {
	sessionHandler *SessionHandler
	metricsHandler fasthttp.RequestHandler
	log            *zap.Logger
}

func NewRouter(sessionHandler *SessionHandler, log *zap.Logger) *Router {
	return &Router{
		sessionHandler: sessionHandler,
		metricsHandler: metrics.PrometheusHandler(),
		log:            log,
	}
}

// Handler devuelve el handler completo, con métricas
func (r *Router) Handler() fasthttp.RequestHandler {
	return metrics.Middleware(r.handle, func(ctx *fasthttp.RequestCtx) string {
		if route, ok := ctx.UserValue(routeKey).(string); ok {
			return route
		}
		return "unmatched"
	})
}

func (r *Router) handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	r.log.Debug("📡 Petición", zap.String("method", method), zap.String("path", path))

	ctx.Response.Header.Set("Server", "MathQuiz-FastHTTP/1.0")
	ctx.Response.Header.Set("Cache-Control", "no-cache")

	// Headers CORS para desarrollo
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type")

	// Manejar preflight requests
	if method == fasthttp.MethodOptions {
		ctx.SetUserValue(routeKey, "preflight")
		ctx.SetStatusCode(fasthttp.StatusOK)
		return
	}

	switch {
	// Página
	case path == "/" && method == fasthttp.MethodGet:
		r.serveAsset(ctx, "/", "index.html")
	case path == "/assets/js/scripts.js" && method == fasthttp.MethodGet:
		r.serveAsset(ctx, path, "assets/js/scripts.js")

	case path == "/api/health":
		r.route(ctx, "/api/health", r.sessionHandler.HealthCheck)
	case path == "/metrics":
		r.route(ctx, "/metrics", r.metricsHandler)

	case path == "/api/sessions" && method == fasthttp.MethodPost:
		r.route(ctx, "/api/sessions", r.sessionHandler.CreateSession)

	case path == "/ws":
		r.route(ctx, "/ws", r.sessionHandler.HandleWebSocket)

	case strings.HasPrefix(path, "/api/sessions/") && method == fasthttp.MethodGet:
		r.handleSessionGetRoutes(ctx, path)
	case strings.HasPrefix(path, "/api/sessions/") && method == fasthttp.MethodPost:
		r.handleSessionPostRoutes(ctx, path)

	default:
		serve404(ctx)
	}
}

func (r *Router) route(ctx *fasthttp.RequestCtx, name string, h fasthttp.RequestHandler) {
	ctx.SetUserValue(routeKey, name)
	h(ctx)
}

func (r *Router) serveAsset(ctx *fasthttp.RequestCtx, route, name string) {
	ctx.SetUserValue(routeKey, route)

	data, contentType, err := web.Asset(name)
	if err != nil {
		r.log.Error("❌ Archivo no encontrado", zap.String("file", name), zap.Error(err))
		serve404(ctx)
		return
	}

	ctx.SetContentType(contentType)
	ctx.SetBody(data)
}

func (r *Router) handleSessionGetRoutes(ctx *fasthttp.RequestCtx, path string) {
	parts := strings.Split(path, "/")

	// /api/sessions/{id}
	if len(parts) == 4 && parts[3] != "" {
		ctx.SetUserValue("id", parts[3])
		r.route(ctx, "/api/sessions/{id}", r.sessionHandler.GetSession)
		return
	}

	serve404(ctx)
}

func (r *Router) handleSessionPostRoutes(ctx *fasthttp.RequestCtx, path string) {
	parts := strings.Split(path, "/")
	if len(parts) != 5 || parts[3] == "" {
		serve404(ctx)
		return
	}

	ctx.SetUserValue("id", parts[3])

	switch parts[4] {
	case "start":
		r.route(ctx, "/api/sessions/{id}/start", r.sessionHandler.StartGame)
	case "answer":
		r.route(ctx, "/api/sessions/{id}/answer", r.sessionHandler.SubmitAnswer)
	case "finish":
		r.route(ctx, "/api/sessions/{id}/finish", r.sessionHandler.FinishSession)
	default:
		serve404(ctx)
	}
}

func serve404(ctx *fasthttp.RequestCtx) {
	respondWithError(ctx, fasthttp.StatusNotFound, "Ruta no encontrada: "+string(ctx.Path()))
}
