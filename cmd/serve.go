package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/karitora/sonodex/cache"
	"github.com/karitora/sonodex/db"
	"github.com/karitora/sonodex/model"
	"github.com/karitora/sonodex/sonolus"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the convert API",
	Long:  `Serves an HTTP API that converts uploaded charts and hands back scores.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

type registryEntry struct {
	name  string
	score *model.Score
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]registryEntry)

	// uploads arrive in bursts; one overview write per burst is enough
	saveDebounced = debounce.New(2 * time.Second)
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func saveRegistryOverview() {
	registryMu.Lock()
	overview := make(map[string]model.ScoreSummary, len(registry))
	for id, entry := range registry {
		overview[id] = model.Summarize(entry.score)
	}
	registryMu.Unlock()

	if err := cache.WriteBinary(cache.OverviewPath(), overview); err != nil {
		log.Printf("could not save registry overview: %v", err)
	}
}

func HandleConvert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "could not read request body")
		return
	}

	score, err := sonolus.Parse(body)
	if err != nil {
		writeError(w, 422, err.Error())
		return
	}

	id := uuid.New().String()
	registryMu.Lock()
	registry[id] = registryEntry{name: r.URL.Query().Get("name"), score: score}
	registryMu.Unlock()
	saveDebounced(saveRegistryOverview)

	json.NewEncoder(w).Encode(model.ConvertResponse{
		ID:      id,
		Summary: model.Summarize(score),
	})
}

func HandleGetScore(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	registryMu.Lock()
	entry, ok := registry[id]
	registryMu.Unlock()
	if !ok {
		writeError(w, 404, "no score with id "+id)
		return
	}

	res := model.ScoreResponse{Score: entry.score}
	if entry.name != "" {
		metadatas := db.GetChartMetadatas([]string{entry.name})
		if m, ok := metadatas[entry.name]; ok {
			res.Metadata = &m
		}
	}
	json.NewEncoder(w).Encode(res)
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/scores/{id}", HandleGetScore).Methods("GET")
	return router
}

func serve() {
	handler := cors.Default().Handler(NewRouter())
	fmt.Println("Listening on :8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}
