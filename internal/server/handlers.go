package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pkg.jsn.cam/lorem/internal/httpx"
	"pkg.jsn.cam/lorem/internal/store"
	"pkg.jsn.cam/lorem/pkg/lorem"
	"pkg.jsn.cam/lorem/pkg/protocol"
)

func (s *Server) setupRoutes() {
	wrap := httpx.Adapter{Status: statusFor, Logger: s.logger}.Wrap

	// Generation APIs
	for _, kind := range []protocol.Kind{protocol.KindWords, protocol.KindSentences, protocol.KindParagraphs} {
		h := wrap(s.handleGenerate(kind))
		s.mux.HandleFunc("GET /api/"+string(kind), h)
		s.mux.HandleFunc("POST /api/"+string(kind), h)
	}

	// Vocabulary APIs
	s.mux.HandleFunc("GET /api/vocabularies", wrap(s.handleVocabularyList))
	s.mux.HandleFunc("GET /api/vocabularies/{name}", wrap(s.handleVocabularyGet))
	s.mux.HandleFunc("PUT /api/vocabularies/{name}", wrap(s.handleVocabularyPut))
	s.mux.HandleFunc("DELETE /api/vocabularies/{name}", wrap(s.handleVocabularyDelete))

	// Status
	s.mux.HandleFunc("GET /api/version", wrap(s.handleVersion))
	s.mux.HandleFunc("GET /health", wrap(s.handleHealth))
}

func (s *Server) handleGenerate(kind protocol.Kind) httpx.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req protocol.GenerateRequest
		if r.Method == http.MethodPost {
			if err := httpx.DecodeJSON(w, r, &req); err != nil {
				return err
			}
		} else {
			var err error
			if req, err = parseQuery(r.URL.Query()); err != nil {
				return err
			}
		}
		req.Kind = kind

		if err := s.checkLimits(req); err != nil {
			return err
		}

		opts, err := req.Options()
		if err != nil {
			return err
		}
		opts = append(opts, lorem.WithDefaults(s.defaults), lorem.WithLogger(s.logger))

		if req.Vocabulary != "" {
			if err := s.requireStore(); err != nil {
				return err
			}
			v, err := s.store.Get(r.Context(), req.Vocabulary)
			if err != nil {
				return err
			}
			opts = append(opts, lorem.WithPool(v.Words))
		}

		stream, err := streamFor(kind, opts)
		if err != nil {
			return err
		}

		resp := protocol.GenerateResponse{Kind: kind, Count: stream.Remaining(), Version: protocol.Version}
		if req.Join {
			resp.Text, err = stream.Join()
		} else {
			resp.Items, err = stream.Collect()
		}
		if err != nil {
			return err
		}

		httpx.JSON(w, http.StatusOK, resp)
		return nil
	}
}

func streamFor(kind protocol.Kind, opts []lorem.Option) (*lorem.Stream, error) {
	switch kind {
	case protocol.KindWords:
		return lorem.Words(opts...)
	case protocol.KindSentences:
		return lorem.Sentences(opts...)
	case protocol.KindParagraphs:
		return lorem.Paragraphs(opts...)
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

func (s *Server) checkLimits(req protocol.GenerateRequest) error {
	if limit := int(s.maxCount.Load()); limit > 0 && req.Demand() > limit {
		return httpx.Errorf(http.StatusBadRequest, "count %d exceeds limit %d", req.Demand(), limit)
	}
	for name, r := range map[string]*lorem.Range{"comma": req.Comma, "words": req.Words, "sentences": req.Sentences} {
		if r != nil && r.Max > MaxRange {
			return httpx.Errorf(http.StatusBadRequest, "%s range max %d exceeds limit %d", name, r.Max, MaxRange)
		}
	}
	if limit := int(s.maxTokens.Load()); limit > 0 {
		if n := req.Tokens(s.defaults.Snapshot()); n > limit {
			return httpx.Errorf(http.StatusBadRequest, "request may draw %d words, exceeds limit %d", n, limit)
		}
	}
	return nil
}

// parseQuery maps query parameters onto a GenerateRequest. Ranges accept
// "n" or "min,max"; transform takes "name" or "name:arg,arg".
func parseQuery(q url.Values) (protocol.GenerateRequest, error) {
	var req protocol.GenerateRequest

	ints := map[string]*int{"count": &req.Count, "count_min": &req.CountMin, "count_max": &req.CountMax}
	for key, dst := range ints {
		if v := q.Get(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return req, fmt.Errorf("%w: %s=%q", lorem.ErrInvalidRange, key, v)
			}
			if n < 1 {
				return req, fmt.Errorf("%w: %s must be at least 1, got %d", lorem.ErrInvalidRange, key, n)
			}
			*dst = n
		}
	}
	if req.CountMax > 0 && req.CountMin == 0 {
		req.CountMin = 1
	}

	ranges := map[string]**lorem.Range{"comma": &req.Comma, "words": &req.Words, "sentences": &req.Sentences}
	for key, dst := range ranges {
		if v := q.Get(key); v != "" {
			rng, err := lorem.ParseRange(v)
			if err != nil {
				return req, err
			}
			*dst = &rng
		}
	}

	if q.Has("sep") {
		sep := q.Get("sep")
		req.Separator = &sep
	}
	if t := q.Get("transform"); t != "" {
		name, args, found := strings.Cut(t, ":")
		req.Transform = name
		if found {
			req.Args = strings.Split(args, ",")
		}
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("%w: seed=%q", lorem.ErrInvalidArgument, v)
		}
		req.Seed = &seed
	}
	req.Vocabulary = q.Get("vocab")
	if v := q.Get("join"); v != "" {
		join, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("%w: join=%q", lorem.ErrInvalidArgument, v)
		}
		req.Join = join
	}
	return req, nil
}

func toProtocol(v store.Vocabulary, withWords bool) protocol.Vocabulary {
	out := protocol.Vocabulary{
		ID:        v.ID.String(),
		Name:      v.Name,
		Size:      len(v.Words),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if withWords {
		out.Words = v.Words
	}
	return out
}

func (s *Server) requireStore() error {
	if s.store == nil {
		return httpx.Errorf(http.StatusNotImplemented, "vocabulary store is disabled")
	}
	return nil
}

func (s *Server) handleVocabularyList(w http.ResponseWriter, r *http.Request) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	list, err := s.store.List(r.Context())
	if err != nil {
		return err
	}
	resp := protocol.VocabularyListResponse{Vocabularies: make([]protocol.Vocabulary, 0, len(list))}
	for _, v := range list {
		resp.Vocabularies = append(resp.Vocabularies, toProtocol(v, false))
	}
	httpx.JSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) handleVocabularyGet(w http.ResponseWriter, r *http.Request) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	v, err := s.store.Get(r.Context(), r.PathValue("name"))
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusOK, toProtocol(v, true))
	return nil
}

func (s *Server) handleVocabularyPut(w http.ResponseWriter, r *http.Request) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	var req protocol.VocabularyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	v, err := s.store.Put(r.Context(), r.PathValue("name"), req.Words)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if v.CreatedAt.Equal(v.UpdatedAt) {
		status = http.StatusCreated
	}
	httpx.JSON(w, status, toProtocol(v, true))
	return nil
}

func (s *Server) handleVocabularyDelete(w http.ResponseWriter, r *http.Request) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	if err := s.store.Delete(r.Context(), r.PathValue("name")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) error {
	httpx.JSON(w, http.StatusOK, protocol.VersionResponse{Version: protocol.Version})
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) error {
	httpx.JSON(w, http.StatusOK, protocol.HealthResponse{
		Status:  "ok",
		Version: protocol.Version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
	return nil
}
