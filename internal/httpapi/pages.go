package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"medpredict/internal/features"
	"medpredict/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"fieldsIn": func(s *features.Schema, group string) []features.Field { return s.FieldsInGroup(group) },
	"value": func(values map[string]string, f features.Field) string {
		if v, ok := values[f.Key]; ok {
			return v
		}
		return f.Default
	},
	"selected": func(f features.Field, raw string, o features.Option) bool { return f.Selected(raw, o) },
	"num":      func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"step": func(f features.Field) string {
		if f.Step <= 0 {
			return "any"
		}
		return strconv.FormatFloat(f.Step, 'f', -1, 64)
	},
	"probability": func(p *float64) string { return strconv.FormatFloat(*p*100, 'f', 1, 64) + "%" },
}).ParseFS(templateFS, "templates/*.html"))

type pageView struct {
	Diseases []types.DiseaseInfo
	Current  string
	Schema   *features.Schema
	Model    string
	Values   map[string]string
	Errors   map[string]string
	Result   *types.PredictResponse
	Error    string
}

func renderPage(w http.ResponseWriter, status int, name string, v pageView) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, v); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func indexHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, http.StatusOK, "index.html", pageView{Diseases: svc.Diseases()})
	}
}

// selectHandler turns the disease selector submission into a redirect.
func selectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := strings.TrimSpace(r.URL.Query().Get("disease"))
		if d == "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/diseases/"+url.PathEscape(d), http.StatusSeeOther)
	}
}

func diseaseFormHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		disease := chi.URLParam(r, "disease")
		schema, model, err := svc.Schema(disease)
		if err != nil {
			renderPage(w, statusFor(err), "index.html", pageView{Diseases: svc.Diseases(), Error: err.Error()})
			return
		}
		renderPage(w, http.StatusOK, "disease.html", pageView{
			Diseases: svc.Diseases(),
			Current:  disease,
			Schema:   schema,
			Model:    model,
			Values:   map[string]string{},
		})
	}
}

func diseaseSubmitHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		disease := chi.URLParam(r, "disease")
		schema, model, err := svc.Schema(disease)
		if err != nil {
			renderPage(w, statusFor(err), "index.html", pageView{Diseases: svc.Diseases(), Error: err.Error()})
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form body", http.StatusBadRequest)
			return
		}
		// Only known fields are echoed back into the page.
		values := make(map[string]string, len(schema.Fields))
		raw := make(map[string]any, len(schema.Fields))
		for _, f := range schema.Fields {
			if _, ok := r.PostForm[f.Key]; ok {
				v := r.PostForm.Get(f.Key)
				values[f.Key] = v
				raw[f.Key] = v
			}
		}
		view := pageView{
			Diseases: svc.Diseases(),
			Current:  disease,
			Schema:   schema,
			Model:    model,
			Values:   values,
		}

		start := time.Now()
		ctx, cancel := predictContext(r)
		defer cancel()
		resp, err := svc.Predict(ctx, types.PredictRequest{Disease: disease, Model: model, Values: raw})
		if err != nil {
			if aborted(r) {
				return
			}
			status := statusFor(err)
			view.Errors = fieldErrors(err)
			if view.Errors == nil {
				view.Error = err.Error()
			}
			logPredict(r, disease, status, start, err)
			renderPage(w, status, "disease.html", view)
			return
		}
		view.Result = &resp
		logPredict(r, disease, http.StatusOK, start, nil)
		renderPage(w, http.StatusOK, "disease.html", view)
	}
}
