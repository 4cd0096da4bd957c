package handlers

import (
	"net/http"

	"github.com/username/clientledger/src/logger"
	"github.com/username/clientledger/src/utils"
)

// HandleRoot answers GET / and 404s every other unmatched path.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" && r.Method == http.MethodGet {
		utils.SendJSON(w, map[string]string{"message": "Client ledger intake is running"}, http.StatusOK)
		return
	}
	logger.FromContext(r.Context()).Warn("Root level path not found")
	http.NotFound(w, r)
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
