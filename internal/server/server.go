// Package server exposes plan generation, image URLs and document export over
// HTTP. It keeps no state between requests.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fitness-planner/internal/export"
	"fitness-planner/internal/generator"
	"fitness-planner/internal/imagegen"
	"fitness-planner/internal/plan"
)

const maxBodyBytes = 1 << 20

// Planner produces a plan for a profile. *generator.Requestor implements it.
type Planner interface {
	Generate(ctx context.Context, profile plan.UserProfile) (*plan.FitnessPlan, error)
}

type Options struct {
	Planner        Planner
	Images         *imagegen.Requestor
	AllowedOrigins []string
	Logger         *zap.Logger
	// PDFFont is a TrueType font for PDF exports. Empty means the built-in
	// cp1252 font.
	PDFFont []byte
}

type Server struct {
	planner Planner
	images  *imagegen.Requestor
	logger  *zap.Logger
	pdfFont []byte
	handler http.Handler
}

func New(opts Options) *Server {
	s := &Server{
		planner: opts.Planner,
		images:  opts.Images,
		logger:  opts.Logger,
		pdfFont: opts.PDFFont,
	}
	if s.images == nil {
		s.images = imagegen.NewRequestor("")
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/generate", s.generatePlan).Methods(http.MethodPost)
	r.HandleFunc("/api/image", s.generateImage).Methods(http.MethodPost)
	r.HandleFunc("/api/export", s.exportPlan).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
	})
	s.handler = c.Handler(loggingMiddleware(s.logger)(r))
	return s
}

func (s *Server) Handler() http.Handler { return s.handler }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("server stopping")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type errorResponse struct {
	Error string `json:"error"`
	Raw   string `json:"raw,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) generatePlan(w http.ResponseWriter, r *http.Request) {
	var profile plan.UserProfile
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if missing := profile.Missing(); len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing fields: " + strings.Join(missing, ", ")})
		return
	}

	result, err := s.planner.Generate(r.Context(), profile)
	if err != nil {
		var m *plan.MalformedError
		if errors.As(err, &m) {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: plan.ReasonMalformed, Raw: m.Raw})
			return
		}
		if !errors.Is(err, generator.ErrProvider) {
			s.logger.Error("plan generation failed", zap.Error(err))
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to generate plan"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]*plan.FitnessPlan{"result": result})
}

func (s *Server) generateImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.logger.Warn("image request unreadable", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to generate image"})
		return
	}

	url, err := s.images.URL(req.Prompt)
	if errors.Is(err, imagegen.ErrEmptyPrompt) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No prompt provided"})
		return
	}
	if err != nil {
		s.logger.Error("image url failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to generate image"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image": url})
}

type exportRequest struct {
	Name   string          `json:"name"`
	Plan   json.RawMessage `json:"plan"`
	Format string          `json:"format"`
}

func (s *Server) exportPlan(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	p, err := plan.Parse(string(req.Plan))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid plan"})
		return
	}

	var (
		buf         bytes.Buffer
		filename    string
		contentType string
	)
	switch strings.ToLower(req.Format) {
	case "", "pdf":
		var doc *export.Document
		if doc, err = s.layout(p, req.Name); err == nil {
			err = doc.WritePDF(&buf)
			filename, contentType = doc.Filename(), "application/pdf"
		}
	case "xlsx":
		err = export.WriteXLSX(&buf, p, req.Name)
		filename = export.Filename(req.Name, "xlsx")
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unsupported format %q", req.Format)})
		return
	}
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to export plan"})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) layout(p *plan.FitnessPlan, name string) (*export.Document, error) {
	exporter := export.NewExporter()
	if len(s.pdfFont) > 0 {
		var err error
		if exporter, err = export.NewUTF8Exporter(s.pdfFont); err != nil {
			return nil, err
		}
	}
	doc := exporter.Export(p, name)
	if doc.Lossy() {
		s.logger.Warn("pdf export drops characters outside the built-in font; set PDF_FONT")
	}
	return doc, nil
}
