package server

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/waritt/goldbooks/internal/logging"
	"github.com/waritt/goldbooks/internal/ocr"
	"github.com/waritt/goldbooks/internal/stock"
	"github.com/waritt/goldbooks/internal/store"
)

type Server struct {
	store     *store.Store
	feed      stock.Feed
	extractor ocr.Extractor
	router    chi.Router
	addr      string
	validate  *validator.Validate
	log       *logrus.Logger
}

func New(st *store.Store, feed stock.Feed, extractor ocr.Extractor, addr string) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{
		store:     st,
		feed:      feed,
		extractor: extractor,
		router:    r,
		addr:      addr,
		validate:  validator.New(),
		log:       logging.Get(),
	}

	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		// Receipt log
		r.Post("/receipts", s.createReceipt)
		r.Get("/receipts", s.listReceipts)
		r.Post("/receipts/scan", s.scanReceipt)
		r.Get("/receipts/{key}", s.getReceipt)
		r.Patch("/receipts/{key}", s.updateReceipt)
		r.Delete("/receipts/{key}", s.deleteReceipt)

		// Chart of accounts
		r.Get("/chart", s.getChart)
		r.Patch("/chart", s.patchChart)

		// Company profile
		r.Get("/company", s.getCompany)
		r.Put("/company", s.putCompany)

		// Reports
		r.Get("/reports/journal", s.journalReport)
		r.Get("/reports/trial-balance", s.trialBalanceReport)
		r.Get("/reports/vat-sale", s.vatSaleReport)
		r.Get("/reports/vat-purchase", s.vatPurchaseReport)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.addr).Info("goldbooks server listening")
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.WithField("addr", ln.Addr().String()).Info("goldbooks server listening")
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
