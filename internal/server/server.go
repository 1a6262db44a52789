package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/simonvc/fecledger/internal/fec"
	"github.com/simonvc/fecledger/internal/logger"
	"github.com/simonvc/fecledger/internal/store"
)

type Server struct {
	store    *store.Store
	exporter *fec.Exporter
	router   chi.Router
	addr     string
	log      zerolog.Logger
	httpSrv  *http.Server
}

func New(st *store.Store, addr string) *Server {
	r := chi.NewRouter()
	s := &Server{
		store:    st,
		exporter: fec.NewExporter(st),
		router:   r,
		addr:     addr,
		log:      logger.WithComponent("server"),
	}
	s.httpSrv = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// Entities and clients
		r.Post("/entities", s.createEntity)
		r.Get("/entities", s.listEntities)
		r.Get("/entities/{id}", s.getEntity)
		r.Get("/entities/{id}/clients", s.listClients)
		r.Post("/clients", s.createClient)

		// Documents
		r.Post("/documents", s.createDocument)
		r.Get("/documents", s.listDocuments)
		r.Get("/documents/{id}", s.getDocument)
		r.Post("/documents/{id}/payments", s.recordPayment)

		// FEC
		r.Get("/fec", s.exportFEC)
		r.Get("/fec/stats", s.fecStats)
		r.Post("/fec/validate", s.validateFEC)

		// Reference data
		r.Get("/chart", s.getChart)
		r.Get("/journals", s.getJournals)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.Info().Str("addr", ln.Addr().String()).Msg("fecledger server listening")
	err := s.httpSrv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
