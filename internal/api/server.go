package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"

	"civiscore/internal/activities"
	"civiscore/internal/config"
	"civiscore/internal/logger"
	"civiscore/internal/pipeline"
	"civiscore/internal/storage"
	"civiscore/internal/workflows"
)

type Server struct {
	cfg            config.Config
	db             *storage.DB
	legislatorRepo *storage.LegislatorRepo
	scoreRepo      *storage.ScoreRepo
	acts           *activities.Activities
	temporal       tclient.Client
	log            *logger.Logger
}

func NewServer(cfg config.Config, log *logger.Logger) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	return &Server{
		cfg:            cfg,
		db:             db,
		legislatorRepo: storage.NewLegislatorRepo(db),
		scoreRepo:      storage.NewScoreRepo(db),
		acts:           activities.New(cfg, db, log),
		temporal:       tc,
		log:            log.With("component", "api"),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/sync/legislators", s.stageHandler(s.acts.SyncLegislatorsActivity))
	mux.HandleFunc("/sync/bills", s.stageHandler(s.acts.SyncBillsActivity))
	mux.HandleFunc("/sync/votes", s.stageHandler(s.acts.SyncVotesActivity))
	mux.HandleFunc("/sync/scores", s.stageHandler(s.acts.CalculateScoresActivity))
	mux.HandleFunc("/sync/full", s.handleFullSync)
	mux.HandleFunc("/sync/runs/", s.handleRunStatus)
	mux.HandleFunc("/legislators", s.handleLegislators)
	mux.HandleFunc("/legislators/", s.handleLegislatorScoped)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type stageFunc func(ctx context.Context, in activities.StageInput) (pipeline.Result, error)

// stageHandler runs one pipeline stage synchronously and applies the result
// mapping the surrounding application relies on: 200 for success, 207 when
// something synced despite errors, 500 when nothing did.
func (s *Server) stageHandler(run stageFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		in, err := decodeStageInput(r)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		res, err := run(r.Context(), in)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, StatusForResult(res), res)
	}
}

// StatusForResult is the only coupling between pipeline results and HTTP.
func StatusForResult(res pipeline.Result) int {
	switch {
	case res.Success:
		return http.StatusOK
	case res.TotalCount() > 0:
		return http.StatusMultiStatus
	default:
		return http.StatusInternalServerError
	}
}

func decodeStageInput(r *http.Request) (activities.StageInput, error) {
	var in activities.StageInput
	if r.Body == nil || r.ContentLength == 0 {
		return in, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, fmt.Errorf("invalid json: %w", err)
	}
	return in, nil
}

func (s *Server) handleFullSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	in, err := decodeStageInput(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if in.Congress <= 0 {
		in.Congress = s.cfg.CongressNumber
	}
	wfID := "fullsync-" + uuid.NewString()
	_, err = s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:        wfID,
		TaskQueue: s.cfg.TemporalTaskQueue,
	}, workflows.FullSyncWorkflow, workflows.FullSyncInput{
		Congress:        in.Congress,
		PageSize:        in.PageSize,
		LegislatorLimit: in.LegislatorLimit,
		BillLimit:       in.BillLimit,
		VoteLimit:       in.VoteLimit,
		SkipScoring:     in.SkipScoring,
	})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"run_id": wfID})
}

func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	runID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sync/runs/"), "/")
	if runID == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	desc, err := s.temporal.DescribeWorkflowExecution(r.Context(), runID, "")
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	status := desc.GetWorkflowExecutionInfo().GetStatus()
	out := map[string]any{
		"run_id": runID,
		"status": enumspb.WorkflowExecutionStatus_name[int32(status)],
	}
	if qr, err := s.temporal.QueryWorkflow(r.Context(), runID, "", workflows.QueryGetSyncProgress); err == nil {
		var prog workflows.FullSyncProgress
		if err := qr.Get(&prog); err == nil {
			out["progress"] = prog
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLegislators(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	legislators, err := s.legislatorRepo.ListLegislators(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"legislators": legislators})
}

func (s *Server) handleLegislatorScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/legislators/"), "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "scores" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	externalID := parts[0]
	legislator, err := s.legislatorRepo.GetLegislatorByExternalID(r.Context(), externalID)
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	topicScores, err := s.scoreRepo.ListTopicScores(r.Context(), externalID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	aggregate, err := s.scoreRepo.GetAggregateScore(r.Context(), externalID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"legislator":   legislator,
		"topic_scores": topicScores,
		"aggregate":    aggregate,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	msg := "request failed"
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, code, map[string]any{"error": map[string]any{"message": msg}})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
