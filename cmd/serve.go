package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/solfege/chart"
	"github.com/jsphweid/solfege/constants"
	"github.com/jsphweid/solfege/db"
	"github.com/jsphweid/solfege/file"
	"github.com/jsphweid/solfege/lexer"
	"github.com/jsphweid/solfege/model"
	"github.com/jsphweid/solfege/playback"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// how long DELETE /play/{id} waits for the session to wind down
const cancelWait = 2 * time.Second

var (
	serveAddr   string
	serveOutput outputFlags
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetAddr(), "address to listen on")
	serveOutput.register(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves analysis and playback over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		player, release, err := serveOutput.newPlayer()
		if err != nil {
			log.Fatal(err)
		}
		defer release()

		var store *db.Store
		if endpoint := constants.GetDynamoEndpoint(); endpoint != "" {
			store, err = db.Connect(endpoint, constants.GetDynamoRegion(), constants.DynamoTable)
			if err != nil {
				log.Fatal(err)
			}
		}

		s := NewServer(playback.New(player), store)
		log.Printf("Listening on %v", serveAddr)
		log.Fatal(http.ListenAndServe(serveAddr, s.Router()))
	},
}

// Server exposes analysis and playback. It allows one playback session at a
// time.
type Server struct {
	sequencer *playback.Sequencer
	store     *db.Store

	mu       sync.Mutex
	sessions map[uuid.UUID]*playback.Session
	current  *playback.Session
}

// NewServer builds a server; store may be nil to disable the history.
func NewServer(seq *playback.Sequencer, store *db.Store) *Server {
	return &Server{
		sequencer: seq,
		store:     store,
		sessions:  make(map[uuid.UUID]*playback.Session),
	}
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", s.HandleAnalyze).Methods("POST")
	router.HandleFunc("/analyses/{id}", s.HandleGetAnalysis).Methods("GET")
	router.HandleFunc("/chart", s.HandleChart).Methods("POST")
	router.HandleFunc("/play", s.HandlePlay).Methods("POST")
	router.HandleFunc("/play/{id}", s.HandleGetPlayback).Methods("GET")
	router.HandleFunc("/play/{id}", s.HandleCancelPlayback).Methods("DELETE")

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})
	return c.Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Could not encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// readScore decodes the request body into the text to analyze and its source.
func readScore(r *http.Request) (string, string, error) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		return "", "", errors.Wrap(err, "could not read request body")
	}
	var input model.AnalyzeRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		return "", "", errors.Wrap(err, "could not unmarshal request body")
	}
	if input.Example {
		return file.Example(), file.ExampleName, nil
	}
	source := input.Source
	if source == "" {
		source = "request"
	}
	return input.Text, source, nil
}

func (s *Server) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	text, source, err := readScore(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := lexer.Analyze(text)
	resp := model.NewAnalyzeResponse(res, source)
	if s.store != nil {
		resp.ID = uuid.New().String()
		if err := s.store.Save(r.Context(), db.NewRecord(resp.ID, res, source)); err != nil {
			log.Printf("Could not save analysis: %v", err)
			resp.ID = ""
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "analysis history is disabled")
		return
	}
	rec, err := s.store.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) HandleChart(w http.ResponseWriter, r *http.Request) {
	text, _, err := readScore(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := chart.Render(lexer.Analyze(text), w); err != nil {
		log.Printf("Could not render chart: %v", err)
	}
}

func playbackResponse(session *playback.Session) model.PlaybackResponse {
	resp := model.PlaybackResponse{ID: session.ID.String(), State: session.State().String()}
	if err := session.Err(); err != nil {
		resp.Detail = err.Error()
	}
	return resp
}

func (s *Server) HandlePlay(w http.ResponseWriter, r *http.Request) {
	text, _, err := readScore(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.State() == playback.Running {
		writeError(w, http.StatusConflict, "a score is already playing")
		return
	}
	session := s.sequencer.PlayAll(lexer.Analyze(text))
	s.sessions[session.ID] = session
	s.current = session
	writeJSON(w, http.StatusAccepted, playbackResponse(session))
}

func (s *Server) findSession(w http.ResponseWriter, r *http.Request) *playback.Session {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return nil
	}
	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil
	}
	return session
}

func (s *Server) HandleGetPlayback(w http.ResponseWriter, r *http.Request) {
	if session := s.findSession(w, r); session != nil {
		writeJSON(w, http.StatusOK, playbackResponse(session))
	}
}

func (s *Server) HandleCancelPlayback(w http.ResponseWriter, r *http.Request) {
	session := s.findSession(w, r)
	if session == nil {
		return
	}
	session.Cancel()

	ctx, cancel := context.WithTimeout(r.Context(), cancelWait)
	defer cancel()
	select {
	case <-session.Done():
	case <-ctx.Done():
	}
	writeJSON(w, http.StatusOK, playbackResponse(session))
}
