package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordlook/pkg/dictionary"
)

// Searcher is the part of the dictionary store the server needs
type Searcher interface {
	Query(text string, limit int) []int
	Get(index int) (dictionary.Record, error)
}

// Server handles the IPC for dictionary lookups
type Server struct {
	searcher Searcher
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	maxLimit int

	requestCount int
}

// NewServer creates a lookup server reading requests from r and writing responses to w
func NewServer(searcher Searcher, r io.Reader, w io.Writer, maxLimit int) *Server {
	if maxLimit <= 0 {
		maxLimit = dictionary.DefaultLimit
	}
	return &Server{
		searcher: searcher,
		decoder:  msgpack.NewDecoder(r),
		encoder:  msgpack.NewEncoder(w),
		maxLimit: maxLimit,
	}
}

// Start processes requests until the input ends
func (s *Server) Start() error {
	log.Debug("Starting lookup server")

	for {
		var request LookupRequest
		if err := s.decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Input closed, stopping server", "requests", s.requestCount)
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			if sendErr := s.send(LookupError{Error: "invalid request", Code: 400}); sendErr != nil {
				return sendErr
			}
			// the stream position is unknown after a bad frame
			return fmt.Errorf("decode request: %w", err)
		}

		s.requestCount++
		response, err := s.handleLookup(request)
		if err != nil {
			if sendErr := s.send(LookupError{ID: request.ID, Error: err.Error(), Code: 500}); sendErr != nil {
				return sendErr
			}
			continue
		}
		if err := s.send(response); err != nil {
			return err
		}
	}
}

// handleLookup runs one query and collects the matching records
func (s *Server) handleLookup(request LookupRequest) (LookupResponse, error) {
	start := time.Now()
	response := LookupResponse{ID: request.ID, Results: []LookupResult{}}

	if request.Query == "" {
		return response, nil
	}

	limit := request.Limit
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	for _, index := range s.searcher.Query(request.Query, limit) {
		record, err := s.searcher.Get(index)
		if err != nil {
			return LookupResponse{}, err
		}
		response.Results = append(response.Results, LookupResult{Index: index, Fields: record})
	}

	response.Count = len(response.Results)
	response.TimeTaken = time.Since(start).Microseconds()
	log.Debugf("Took [ %dµs ] for query '%s'", response.TimeTaken, request.Query)
	return response, nil
}

func (s *Server) send(v any) error {
	if err := s.encoder.Encode(v); err != nil {
		log.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}
