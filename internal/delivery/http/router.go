package http

import (
	"net/http"

	"patient-record-service/internal/delivery/http/handler"
	"patient-record-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	patientHandler *handler.PatientHandler
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		patientHandler: patientHandler,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient routes (public reads; search routes before the id wildcard)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.HandleFunc("/search/address", r.patientHandler.SearchByAddress).Methods(http.MethodGet)
	patients.HandleFunc("/search/condition", r.patientHandler.SearchByCondition).Methods(http.MethodGet)
	patients.HandleFunc("", r.patientHandler.List).Methods(http.MethodGet)
	patients.HandleFunc("/{patientId}", r.patientHandler.Get).Methods(http.MethodGet)

	// Patient routes (protected writes)
	protected := api.PathPrefix("/patients").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("", r.patientHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/{patientId}", r.patientHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/{patientId}", r.patientHandler.Delete).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
