package httpapi

import (
	"net/http"

	"github.com/Dawichi/hexastats/internal/platform/id"
	"github.com/Dawichi/hexastats/internal/platform/logging"
)

type RouterConfig struct {
	ServiceName        string
	CORSAllowedOrigins []string
	IDGenerator        id.Generator
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = id.NewUUIDGenerator()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "hexastats"
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPlayerRoutes(mux, handler)
	registerMatchRoutes(mux, handler)

	return RequestTracing(cfg.ServiceName,
		RequestID(cfg.IDGenerator,
			RequestLogging(logger,
				CORS(cfg.CORSAllowedOrigins,
					recoverPanic(logger, mux)))))
}
