package ingest

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"ggAnalyze/api"
	"ggAnalyze/internal/config"
	"ggAnalyze/internal/logger"
	"ggAnalyze/internal/session"
	"ggAnalyze/internal/table"
)

// sessionFrom resolves the caller's session from the X-Session-ID header or
// a session_id query/form value.
func (s *IngestService) sessionFrom(r *http.Request) (*session.Session, bool) {
	id := r.Header.Get("X-Session-ID")
	if id == "" {
		id = r.FormValue("session_id")
	}
	if id == "" {
		return nil, false
	}
	return s.sessions.Get(id)
}

func (s *IngestService) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create()
	if err != nil {
		api.RespondWithError(w, http.StatusInternalServerError, "failed to create session: "+err.Error())
		return
	}
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("session created: " + sess.ID)
	}
	api.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": sess.ID,
		"expires_at": sess.ExpiresAt,
		"files":      baseNames(sess.Registry.Files()),
	})
}

// UploadHandler accepts one or more spreadsheet files as multipart form
// data, stores them in the session's upload directory and parses them
// immediately. A file the loader cannot use still uploads; its slots are
// simply empty.
func (s *IngestService) UploadHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(r)
	if !ok {
		api.RespondWithError(w, http.StatusUnauthorized, "valid session_id required")
		return
	}
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		api.RespondWithError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		api.RespondWithError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	uploaded := make([]map[string]interface{}, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "failed to open file: "+fh.Filename)
			return
		}
		path, err := sess.Registry.Save(fh.Filename, f)
		f.Close()
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		fd := sess.Registry.GetOrLoad(path)
		uploaded = append(uploaded, map[string]interface{}{
			"file": filepath.Base(path),
			"rows": map[string]int{
				"ggtips":          rolesRowCount(fd.Tips),
				"ggtipsCompanies": rolesRowCount(fd.Companies),
				"ggtipsPartners":  rolesRowCount(fd.Partners),
				"ggTeammates":     fd.Teammates.NumRows(),
				"ordersCount":     fd.OrdersCount.NumRows(),
				"clients":         fd.Clients.NumRows(),
				"carseat":         fd.Carseat.NumRows(),
				"users":           fd.Users.NumRows(),
				"serveOrders":     fd.ServeOrders.NumRows(),
				"cancellations":   fd.Cancellations.NumRows(),
			},
		})
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("session %s uploaded %s", sess.ID, fh.Filename))
		}
		s.hub.NotifyRefresh(sess.ID, filepath.Base(path))
	}
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"uploaded": uploaded,
	})
}

func (s *IngestService) ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(r)
	if !ok {
		api.RespondWithError(w, http.StatusUnauthorized, "valid session_id required")
		return
	}
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"files": baseNames(sess.Registry.Files()),
	})
}

func (s *IngestService) DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(r)
	if !ok {
		api.RespondWithError(w, http.StatusUnauthorized, "valid session_id required")
		return
	}
	name := mux.Vars(r)["name"]
	if err := sess.Registry.Remove(name); err != nil {
		api.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("session %s deleted %s", sess.ID, name))
	}
	s.hub.NotifyRefresh(sess.ID, name)
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": name,
	})
}

// FileDatasetsHandler returns one file's per-file result, role tables
// included, mainly for the raw-data navigator view.
func (s *IngestService) FileDatasetsHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(r)
	if !ok {
		api.RespondWithError(w, http.StatusUnauthorized, "valid session_id required")
		return
	}
	name := mux.Vars(r)["name"]
	var path string
	for _, p := range sess.Registry.Files() {
		if filepath.Base(p) == name {
			path = p
			break
		}
	}
	if path == "" {
		api.RespondWithError(w, http.StatusNotFound, "file not tracked: "+name)
		return
	}
	fd := sess.Registry.GetOrLoad(path)
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"file": name,
		"datasets": map[string]interface{}{
			"ggtips":          fd.Tips,
			"ggtipsCompanies": fd.Companies,
			"ggtipsPartners":  fd.Partners,
			"ggTeammates":     fd.Teammates,
			"ordersCount":     fd.OrdersCount,
			"clients":         fd.Clients,
			"carseat":         fd.Carseat,
			"users":           fd.Users,
			"serveOrders":     fd.ServeOrders,
			"cancellations":   fd.Cancellations,
		},
	})
}

// SessionDatasetsHandler rebuilds and returns the session-wide canonical
// dataset mapping; every slot is present, empty tables included.
func (s *IngestService) SessionDatasetsHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(r)
	if !ok {
		api.RespondWithError(w, http.StatusUnauthorized, "valid session_id required")
		return
	}
	combined := sess.Registry.Combined()
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"datasets": combined.Map(),
	})
}

func (s *IngestService) SessionDatasetHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(r)
	if !ok {
		api.RespondWithError(w, http.StatusUnauthorized, "valid session_id required")
		return
	}
	name := mux.Vars(r)["name"]
	combined := sess.Registry.Combined()
	t, ok := combined.Dataset(name)
	if !ok {
		api.RespondWithError(w, http.StatusNotFound, "unknown dataset: "+name)
		return
	}
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"dataset": name,
		"table":   t,
	})
}

func baseNames(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.Base(p))
	}
	return out
}

func rolesRowCount(roles map[string]*table.Table) int {
	n := 0
	for _, t := range roles {
		n += t.NumRows()
	}
	return n
}
