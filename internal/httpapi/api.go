package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"medpredict/pkg/types"
)

func listDiseasesHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds := svc.Diseases()
		if ds == nil {
			ds = []types.DiseaseInfo{}
		}
		writeJSON(w, types.DiseasesResponse{Diseases: ds})
	}
}

func getDiseaseHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schema, model, err := svc.Schema(chi.URLParam(r, "disease"))
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, schema.Info(model))
	}
}

func predictHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// Oversized bodies also land here; 400 avoids leaking the limit.
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req.Disease = strings.TrimSpace(req.Disease)
		if req.Disease == "" {
			writeJSONError(w, http.StatusBadRequest, "disease is required")
			return
		}

		start := time.Now()
		ctx, cancel := predictContext(r)
		defer cancel()
		resp, err := svc.Predict(ctx, req)
		if err != nil {
			if aborted(r) {
				return
			}
			status := statusFor(err)
			writeJSONErrorFields(w, status, err.Error(), fieldErrors(err))
			logPredict(r, req.Disease, status, start, err)
			return
		}
		writeJSON(w, resp)
		logPredict(r, req.Disease, http.StatusOK, start, nil)
	}
}
