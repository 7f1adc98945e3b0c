package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	attendancedomain "campus/backend/internal/domain/attendance"
	authdomain "campus/backend/internal/domain/auth"
	subjectdomain "campus/backend/internal/domain/subject"
	attendanceusecase "campus/backend/internal/usecase/attendance"
	authusecase "campus/backend/internal/usecase/auth"
	subjectusecase "campus/backend/internal/usecase/subject"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/api/register", http.HandlerFunc(s.handleRegister))
	s.router.Handle("/api/login", http.HandlerFunc(s.handleLogin))

	authenticated := s.authMiddleware
	s.router.Handle("/api/me", authenticated(http.HandlerFunc(s.handleMe)))
	s.router.Handle("/api/subjects", authenticated(http.HandlerFunc(s.handleSubjects)))
	s.router.Handle("/api/attendance", authenticated(http.HandlerFunc(s.handleAttendance)))
	s.router.Handle("/api/attendance/summary", authenticated(http.HandlerFunc(s.handleAttendanceSummary)))
	s.router.Handle("/api/attendance/", authenticated(http.HandlerFunc(s.handleAttendanceByID)))
	s.router.Handle("/api/sample-data", authenticated(http.HandlerFunc(s.handleSampleData)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email            string `json:"email"`
		Password         string `json:"password"`
		Name             string `json:"name"`
		EnrollmentNumber string `json:"enrollment_number"`
		Branch           string `json:"branch"`
		Year             int    `json:"year"`
		Role             string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := s.authService.Register(r.Context(), authusecase.RegisterInput{
		Email:            payload.Email,
		Password:         payload.Password,
		Name:             payload.Name,
		EnrollmentNumber: payload.EnrollmentNumber,
		Branch:           payload.Branch,
		Year:             payload.Year,
		Role:             payload.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrEmailExists):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, authdomain.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, _, err := s.authService.Login(r.Context(), authdomain.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "incorrect email or password")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   authusecase.TokenType,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleSubjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		subjects, err := s.subjectService.List(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if subjects == nil {
			subjects = []*subjectdomain.Subject{}
		}
		writeJSON(w, http.StatusOK, subjects)
	case http.MethodPost:
		if !s.requireRoles(w, r, authdomain.RoleTeacher, authdomain.RoleAdmin) {
			return
		}
		var payload subjectusecase.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		subject, err := s.subjectService.Create(ctx, payload)
		if err != nil {
			switch {
			case errors.Is(err, subjectdomain.ErrDuplicateCode):
				writeError(w, http.StatusConflict, err.Error())
			default:
				writeError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusCreated, subject)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		query := attendanceusecase.QueryInput{
			SubjectID: r.URL.Query().Get("subject_id"),
		}
		if raw := r.URL.Query().Get("start_date"); raw != "" {
			parsed, err := parseTime(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid start_date")
				return
			}
			query.StartDate = &parsed
		}
		if raw := r.URL.Query().Get("end_date"); raw != "" {
			parsed, err := parseTime(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid end_date")
				return
			}
			query.EndDate = &parsed
		}

		records, err := s.attendanceService.List(r.Context(), user, query)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if records == nil {
			records = []*attendancedomain.Record{}
		}
		writeJSON(w, http.StatusOK, records)
	case http.MethodPost:
		var payload struct {
			SubjectID string `json:"subject_id"`
			Date      string `json:"date"`
			Status    string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		date, err := parseTime(payload.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}

		record, err := s.attendanceService.Record(r.Context(), user, attendanceusecase.RecordInput{
			SubjectID: payload.SubjectID,
			Date:      date,
			Status:    payload.Status,
		})
		if err != nil {
			switch {
			case errors.Is(err, subjectdomain.ErrNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, attendancedomain.ErrAlreadyRecorded):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, attendancedomain.ErrInvalidStatus):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusCreated, record)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleAttendanceByID(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/attendance/"), "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "attendance id required")
		return
	}

	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		writeMethodNotAllowed(w, http.MethodPut, http.MethodPatch)
		return
	}

	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	record, err := s.attendanceService.UpdateStatus(r.Context(), user, id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, attendancedomain.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, attendanceusecase.ErrNotOwner):
			writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, attendancedomain.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	summaries, err := s.attendanceService.Summary(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleSampleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	if err := s.subjectService.SeedSamples(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Sample data created successfully"})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authorization token required")
			return
		}

		user, err := s.authService.VerifyToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUserFromContext(ctx context.Context) (*authdomain.User, bool) {
	user, ok := ctx.Value(ctxKeyUser{}).(*authdomain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

func (s *Server) requireRoles(w http.ResponseWriter, r *http.Request, roles ...authdomain.Role) bool {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if !user.HasAnyRole(roles...) {
		writeError(w, http.StatusForbidden, "insufficient privileges")
		return false
	}
	return true
}

type ctxKeyUser struct{}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
