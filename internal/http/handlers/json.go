package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	httpx "github.com/ergiva/ergiva-server/internal/http"
)

const maxJSONBody = 64 << 10 // 64KB

// readJSON decodifica el body JSON de forma estricta: Content-Type
// application/json, campos desconocidos rechazados, body acotado.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Type")))
	if !strings.Contains(ct, "application/json") {
		httpx.WriteError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "se requiere Content-Type: application/json")
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		msg := "json inválido"
		if err == io.EOF {
			msg = "body vacío"
		}
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", msg)
		return false
	}
	if dec.More() {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "sobran datos en el body")
		return false
	}
	return true
}
