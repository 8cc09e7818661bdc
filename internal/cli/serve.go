package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"corpusqa/internal/usecase"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve queries over HTTP",
	Long: `Start an HTTP server answering corpus questions.

POST /ask with {"query": "..."} returns the answer or refusal plus
provenance. Generation service failures return 502, distinct from
refusals.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

type askRequest struct {
	Query string `json:"query"`
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	pipeline, st, err := newPipeline(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer st.Close()

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	mux.HandleFunc("/ask", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Query == "" {
			http.Error(w, "query is empty", http.StatusBadRequest)
			return
		}

		answer, err := pipeline.Ask(r.Context(), req.Query)
		if err != nil {
			// A generation fault is a service failure, not a refusal.
			if errors.Is(err, usecase.ErrGeneration) {
				http.Error(w, "generation service unavailable", http.StatusBadGateway)
			} else {
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(answer)
	})

	fmt.Printf("Serving %d passages on %s\n", st.Count(), serveAddr)
	return http.ListenAndServe(serveAddr, mux)
}
