// Package devserver hosts the counter page and its WebAssembly binary for
// local development and end-to-end tests.
package devserver

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/clickcounter/web"
)

// Server serves the host page, config.js and the assets in Config.Dir.
type Server struct {
	cfg      Config
	log      *zap.Logger
	index    []byte
	configJS []byte
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithIndex replaces the stock host page.
func WithIndex(markup []byte) Option {
	return func(s *Server) {
		s.index = markup
	}
}

// New validates cfg and prepares the page assets.
func New(cfg Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "devserver config")
	}
	s := &Server{
		cfg:   cfg,
		log:   zap.NewNop(),
		index: web.Index,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := cfg.Counter.JSON()
	if err != nil {
		return nil, err
	}
	var js bytes.Buffer
	js.WriteString("window.counterConfig = ")
	js.Write(data)
	js.WriteString(";\n")
	s.configJS = js.Bytes()
	return s, nil
}

// Handler returns the HTTP handler serving the page.
func (s *Server) Handler() http.Handler {
	assets := http.FileServer(http.Dir(s.cfg.Dir))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.serveBytes("text/html; charset=utf-8", s.index))
	mux.HandleFunc("GET /index.html", s.serveBytes("text/html; charset=utf-8", s.index))
	mux.HandleFunc("GET /config.js", s.serveBytes("text/javascript; charset=utf-8", s.configJS))
	mux.HandleFunc("GET /main.wasm", func(w http.ResponseWriter, r *http.Request) {
		// instantiateStreaming rejects any other content type.
		w.Header().Set("Content-Type", "application/wasm")
		assets.ServeHTTP(w, r)
	})
	mux.Handle("GET /", assets)

	return s.logRequests(mux)
}

func (s *Server) serveBytes(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(body)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// Run serves on Config.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run over an existing listener, which it closes on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("serving counter page",
			zap.String("addr", ln.Addr().String()),
			zap.String("dir", s.cfg.Dir))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		s.log.Info("server stopped")
		return nil
	})
	return g.Wait()
}
