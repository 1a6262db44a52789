package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/simonvc/fecledger/internal/fec"
	"github.com/simonvc/fecledger/internal/ledger"
)

// maxValidateBody bounds uploaded FEC files.
const maxValidateBody = 64 << 20

type periodQuery struct {
	entity *ledger.Entity
	start  time.Time
	end    time.Time
}

// parsePeriod reads entity_id, start and end, and resolves the entity.
func (s *Server) parsePeriod(r *http.Request) (*periodQuery, error) {
	q := r.URL.Query()
	entityID := q.Get("entity_id")
	if entityID == "" {
		return nil, fmt.Errorf("%w: entity_id is required", ledger.ErrInvalidEntity)
	}
	start, err := ledger.ParseDate(q.Get("start"))
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ledger.ErrInvalidPeriod, err)
	}
	end, err := ledger.ParseDate(q.Get("end"))
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ledger.ErrInvalidPeriod, err)
	}
	if err := ledger.ValidatePeriod(start, end); err != nil {
		return nil, err
	}

	entity, err := s.store.GetEntity(r.Context(), entityID)
	if err != nil {
		return nil, err
	}
	return &periodQuery{entity: entity, start: start, end: end}, nil
}

func (s *Server) exportFEC(w http.ResponseWriter, r *http.Request) {
	pq, err := s.parsePeriod(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	exp, err := s.exporter.Generate(r.Context(), pq.entity.ID, pq.start, pq.end)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name := fec.FileName(pq.entity.SIRET, pq.end)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("X-FEC-Documents", strconv.Itoa(exp.Documents))
	w.Header().Set("X-FEC-Lines", strconv.Itoa(len(exp.Lines)))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, exp.Content)
}

func (s *Server) fecStats(w http.ResponseWriter, r *http.Request) {
	pq, err := s.parsePeriod(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	st, err := s.exporter.Stats(r.Context(), pq.entity.ID, pq.start, pq.end)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) validateFEC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxValidateBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	report := fec.Validate(string(body))
	s.log.Debug().
		Bool("valid", report.Valid).
		Int("errors", len(report.Errors)).
		Msg("fec validated")
	writeJSON(w, http.StatusOK, report)
}
