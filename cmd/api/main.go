package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"sales-insights-go/internal/classifier"
	"sales-insights-go/internal/config"
	"sales-insights-go/internal/dataset"
	"sales-insights-go/internal/llm"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/performance"
	"sales-insights-go/internal/scorer"
	"sales-insights-go/internal/transcription"
	"sales-insights-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "sales-insights-go").Info("starting service")

	cfg := config.Load()

	var provider llm.Provider
	if cfg.UseMockLLM {
		provider = mockProvider{}
		log.Info("mock LLM mode ON")
	} else {
		gateway := llm.NewGatewayProvider(cfg.LLMGatewayURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		if gateway.IsConfigured() {
			provider = gateway
			log.WithField("model", cfg.LLMModel).Info("llm gateway configured")
		} else {
			log.Info("no llm gateway configured, classification runs on rules")
		}
	}

	engine := classifier.New(provider)
	transcriber := transcription.NewClient(cfg.TranscribeURL, cfg.TranscribeTimeout, cfg.UseMockTranscribe)

	// optional in-memory activity export for /performance/report
	var exported []types.Activity
	if cfg.DatasetPath != "" {
		log.WithField("dataset_path", cfg.DatasetPath).Info("loading activity export")
		loaded, err := dataset.Load(cfg.DatasetPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load activity export")
		}
		exported = loaded
		log.WithField("activities", len(exported)).Info("activity export loaded")
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Debug("health check")
		fmt.Fprint(w, "ok")
	})

	mux.HandleFunc("/classify", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "classify")
		var body struct {
			Transcript   string `json:"transcript"`
			ActivityType string `json:"activity_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			reqLog.WithError(err).Warn("bad request body")
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		result := engine.Classify(r.Context(), body.Transcript, body.ActivityType)
		reqLog.WithField("category", result.Category).Info("classified transcript")
		writeJSON(w, result)
	})

	mux.HandleFunc("/score", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "score")
		var activity types.Activity
		if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
			reqLog.WithError(err).Warn("bad request body")
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		result := scorer.Score(activity)
		reqLog.WithField("total_score", result.TotalScore).Info("scored activity")
		writeJSON(w, result)
	})

	mux.HandleFunc("/apply", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "apply")
		var activity types.Activity
		if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
			reqLog.WithError(err).Warn("bad request body")
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		updated := engine.Apply(r.Context(), activity)
		reqLog.WithField("activity_score", updated.ActivityScore).Info("applied classification")
		writeJSON(w, updated)
	})

	mux.HandleFunc("/voice", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "voice")
		var body struct {
			RecordingURL string         `json:"recording_url"`
			Activity     types.Activity `json:"activity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			reqLog.WithError(err).Warn("bad request body")
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if body.RecordingURL == "" {
			http.Error(w, "missing recording_url", http.StatusBadRequest)
			return
		}
		transcript, err := transcriber.Transcribe(r.Context(), body.RecordingURL)
		if err != nil {
			reqLog.WithError(err).Error("transcription failed")
			http.Error(w, "transcription failed", http.StatusBadGateway)
			return
		}
		body.Activity.Transcript = transcript
		updated := engine.Apply(r.Context(), body.Activity)
		reqLog.WithField("activity_score", updated.ActivityScore).Info("voice note processed")
		writeJSON(w, updated)
	})

	mux.HandleFunc("/performance", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "performance")
		var body struct {
			UserID     string           `json:"user_id"`
			Activities []types.Activity `json:"activities"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			reqLog.WithError(err).Warn("bad request body")
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		report := performance.Aggregate(body.UserID, body.Activities)
		reqLog.WithField("activity_count", report.ActivityCount).Info("performance report built")
		writeJSON(w, report)
	})

	mux.HandleFunc("/performance/report", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "performance-report")
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, "missing user_id", http.StatusBadRequest)
			return
		}
		var mine []types.Activity
		for _, a := range exported {
			if a.UserID == userID {
				a.ActivityScore = scorer.Score(a).TotalScore
				mine = append(mine, a)
			}
		}
		report := performance.Aggregate(userID, mine)
		reqLog.WithField("activity_count", report.ActivityCount).Info("export report built")
		writeJSON(w, report)
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddress,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", cfg.HTTPAddress).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}

// mockProvider returns a deterministic classification for offline demos.
type mockProvider struct{}

func (mockProvider) IsConfigured() bool { return true }

func (mockProvider) Generate(_ context.Context, _ string) (string, error) {
	return `{
  "category": "negotiation",
  "sub_category": "price-discussion",
  "confidence": 0.85,
  "quality_score": 70,
  "reasoning": "customer is pushing for a discount before signing",
  "extracted_data": {
    "customer_info": {"name": "สมชาย", "company": "ทดสอบ"},
    "deal_info": {"value": "500,000", "status": "negotiating"},
    "action_items": ["ส่งใบเสนอราคาภายในวันศุกร์"],
    "next_steps": ["นัดประชุมรอบถัดไป"],
    "pain_points": ["ต้นทุนสูง"],
    "decision_makers": [],
    "competitors": []
  }
}`, nil
}
