package iohttp

import (
	"io"
	"net/http"
	"strings"

	"github.com/gnames/gnfish/pkg/species"
	"github.com/gnames/gnfmt"
	"github.com/go-chi/chi/v5"
)

// maxRequestBody limits the size of POST bodies.
const maxRequestBody = 1 << 20

type nameRequest struct {
	Name string `validate:"required,max=255"`
}

type batchRequest struct {
	Names []string `validate:"required,min=1,max=1000,dive,required,max=255"`
}

type taxonResponse struct {
	CommonName         string `json:"commonName"`
	ScientificName     string `json:"scientificName"`
	FullScientificName string `json:"fullScientificName"`
	GBIFKey            int    `json:"gbifKey"`
	Rank               string `json:"rank"`
	TaxonomicStatus    string `json:"taxonomicStatus"`
	Source             string `json:"source"`
}

type conservationResponse struct {
	ScientificName string `json:"scientificName"`
	species.ConservationAssessment
	MinedTrend string `json:"trend"`
	Source     string `json:"source"`
}

type saveResponse struct {
	Message   string                `json:"message"`
	Action    species.Action        `json:"action,omitempty"`
	FromCache bool                  `json:"fromCache,omitempty"`
	Record    species.Record        `json:"record"`
	Trace     []species.StageResult `json:"trace,omitempty"`
}

type batchResponse struct {
	Total     int                  `json:"total"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Results   []species.ItemResult `json:"results"`
}

func (s *Server) registerSpecies(r chi.Router) {
	r.Get("/common-to-scientific/{commonName}", s.commonToScientific)
	r.Get("/lookup/{scientificName}", s.lookup)
	r.Get("/full-lookup/{commonName}", s.fullLookup)
	r.Post("/update-species-in-database", s.updateSpecies)
	r.Post("/batch-update-species", s.batchUpdate)
	r.Get("/batch-update", s.refreshAll)
	r.Get("/get-all-species", s.allSpecies)
}

func (s *Server) commonToScientific(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "commonName")
	tc, err := s.resolver.Taxon(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, taxonResponse{
		CommonName:         strings.TrimSpace(name),
		ScientificName:     tc.CanonicalName,
		FullScientificName: tc.ScientificName,
		GBIFKey:            tc.Key,
		Rank:               tc.Rank,
		TaxonomicStatus:    tc.TaxonomicStatus,
		Source:             "GBIF API",
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "scientificName")
	ca := s.resolver.Conservation(r.Context(), name)
	writeJSON(w, http.StatusOK, conservationResponse{
		ScientificName:         strings.TrimSpace(name),
		ConservationAssessment: ca,
		MinedTrend:             species.MineTrend(ca),
		Source:                 "IUCN Red List API v4",
	})
}

func (s *Server) fullLookup(w http.ResponseWriter, r *http.Request) {
	res, err := s.resolver.Resolve(r.Context(), chi.URLParam(r, "commonName"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) updateSpecies(w http.ResponseWriter, r *http.Request) {
	var name string
	if !s.decode(w, r, &name) {
		return
	}
	if err := s.validate.Struct(nameRequest{Name: strings.TrimSpace(name)}); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := s.resolver.Resolve(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	msg := "Species saved"
	switch res.Action {
	case species.ActionInserted:
		msg = "Species added to database"
	case species.ActionUpdated:
		msg = "Species updated in database"
	}
	if res.FromCache {
		msg = "GBIF is unavailable, returning stored species"
	}
	writeJSON(w, http.StatusOK, saveResponse{
		Message:   msg,
		Action:    res.Action,
		FromCache: res.FromCache,
		Record:    res.Record,
		Trace:     res.Trace,
	})
}

func (s *Server) batchUpdate(w http.ResponseWriter, r *http.Request) {
	var names []string
	if !s.decode(w, r, &names) {
		return
	}
	if err := s.validate.Struct(batchRequest{Names: names}); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary(s.resolver.ResolveAll(r.Context(), names)))
}

func (s *Server) refreshAll(w http.ResponseWriter, r *http.Request) {
	res, err := s.resolver.RefreshAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary(res))
}

func (s *Server) allSpecies(w http.ResponseWriter, r *http.Request) {
	res, err := s.resolver.ListCached(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if res == nil {
		res = []species.Record{}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeBadRequest(w, "cannot read request body")
		return false
	}
	if err = (gnfmt.GNjson{}).Decode(body, v); err != nil {
		writeBadRequest(w, "request body is not valid JSON")
		return false
	}
	return true
}

func summary(items []species.ItemResult) batchResponse {
	res := batchResponse{Total: len(items), Results: items}
	for _, v := range items {
		if v.OK() {
			res.Succeeded++
		} else {
			res.Failed++
		}
	}
	if res.Results == nil {
		res.Results = []species.ItemResult{}
	}
	return res
}
