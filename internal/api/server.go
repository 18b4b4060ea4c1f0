package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/quantpilot/backtest/internal/backtest/engine"
	"github.com/quantpilot/backtest/internal/logger"
	"github.com/quantpilot/backtest/internal/strategy"
	"github.com/quantpilot/backtest/internal/types"
	"github.com/quantpilot/backtest/internal/version"
	"github.com/quantpilot/backtest/pkg/errors"
	"go.uber.org/zap"
)

// BacktestRequest is the payload accepted by the backtest endpoint. Config
// may be omitted to run with the engine defaults.
type BacktestRequest struct {
	Candles  []types.Candle  `json:"candles"`
	Strategy strategy.Config `json:"strategy"`
	Config   *engine.Config  `json:"config,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server exposes the backtest core over HTTP. The core stays a pure
// in-process library; this layer only decodes requests, runs one engine per
// request, and encodes the report.
type Server struct {
	router *mux.Router
	log    *logger.Logger
}

// NewServer creates an API server.
func NewServer(log *logger.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		log:    log,
	}

	s.router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/schema", s.handleSchema).Methods(http.MethodGet)
	s.router.HandleFunc("/api/backtest", s.handleBacktest).Methods(http.MethodPost)

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.GetVersion(),
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	config := engine.DefaultConfig()

	schema, err := config.GenerateSchema()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)

		return
	}

	s.writeJSON(w, http.StatusOK, schema)
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	var request BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeError(w, http.StatusBadRequest,
			errors.Wrap(err, errors.ErrCodeInvalidParameter, "invalid request body"))

		return
	}

	if len(request.Candles) == 0 {
		s.writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidCandle, "request contains no candles"))

		return
	}

	if request.Strategy.Strategy == "" {
		s.writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeStrategyConfigError, "request is missing a strategy"))

		return
	}

	if request.Strategy.Version != "" {
		if err := version.CheckConfigCompatibility(version.GetVersion(), request.Strategy.Version); err != nil {
			s.writeError(w, http.StatusBadRequest, err)

			return
		}
	}

	config := engine.DefaultConfig()
	if request.Config != nil {
		config = *request.Config
		if err := config.Validate(); err != nil {
			s.writeError(w, http.StatusBadRequest, err)

			return
		}
	}

	runStrategy, err := strategy.New(request.Strategy, s.log)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)

		return
	}

	eng := engine.NewEngine(config, s.log)

	if err := runStrategy.Execute(request.Candles, eng); err != nil {
		s.writeError(w, http.StatusInternalServerError,
			errors.Wrap(err, errors.ErrCodeBacktestRunFailed, "backtest run failed"))

		return
	}

	s.log.Info("backtest run finished",
		zap.String("strategy", runStrategy.Name()),
		zap.Int("candles", len(request.Candles)),
	)

	s.writeJSON(w, http.StatusOK, eng.Results())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{
		Error: errorBody{
			Code:    int(errors.GetCode(err)),
			Message: err.Error(),
		},
	})
}
