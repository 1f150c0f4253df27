package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

type loginRequest struct {
	Password string `json:"password"`
}

func (l *loginRequest) Bind(_ *http.Request) error {
	if l.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type loginResponse struct {
	AuthToken string `json:"auth_token"`
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	req := &loginRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	token, err := s.auth.Login(r.Context(), req.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, &loginResponse{AuthToken: token})
}

func (s *Server) adminAnalytics(w http.ResponseWriter, r *http.Request) {
	resp, err := s.admin.Analytics(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

func (s *Server) adminWaitlist(w http.ResponseWriter, r *http.Request) {
	resp, err := s.admin.WaitlistEntries(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

func (s *Server) adminWaitlistExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.admin.WaitlistCSV(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="waitlist.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
