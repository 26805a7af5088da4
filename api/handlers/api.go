package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
	"github.com/Pinoccchio/LawbotWeb-sub002/api"
	"github.com/Pinoccchio/LawbotWeb-sub002/api/scheduler"
	"github.com/Pinoccchio/LawbotWeb-sub002/config"
	"github.com/Pinoccchio/LawbotWeb-sub002/databases"
	"github.com/Pinoccchio/LawbotWeb-sub002/models"
	"github.com/Pinoccchio/LawbotWeb-sub002/notifications"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewAccountDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	officerDB := databases.NewOfficerDatabase(a.dbHelper)
	complaintDB := databases.NewComplaintDatabase(a.dbHelper)
	recordDB := databases.NewAssignmentRecordDatabase(a.dbHelper)
	notificationDB := databases.NewNotificationDatabase(a.dbHelper)

	hub := notifications.NewHub()
	notifier := &notifications.Service{NDB: notificationDB, ODB: officerDB, Hub: hub}

	retry := allocation.RetryPolicy{
		MaxAttempts: a.Config.RetryAttempts,
		Backoff:     a.Config.RetryBackoff,
	}
	resolver := allocation.PoolResolver{
		ODB:     officerDB,
		Table:   models.CrimeTypeTable,
		Ceiling: a.Config.WorkloadCeiling,
	}
	allocator := &allocation.Allocator{
		Complaints: complaintDB,
		Officers:   officerDB,
		Records:    recordDB,
		Notifier:   notifier,
		Ceiling:    a.Config.WorkloadCeiling,
	}

	assignment := Assignment{
		Allocator: allocator,
		Resolver:  resolver,
		Engine:    allocation.SuggestionEngine{Retry: retry},
		Retry:     retry,
		CDB:       complaintDB,
		ADB:       recordDB,
	}
	classify := Classify{Classifier: allocation.NewClassifier(models.CrimeTypeTable)}
	officer := Officer{DB: officerDB, Ceiling: a.Config.WorkloadCeiling}
	complaint := Complaint{DB: complaintDB, Classifier: classify.Classifier}
	admin := Admin{}
	if a.Scheduler != nil {
		admin.Reconciler = a.Scheduler
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/crime-types", api.Middleware(http.HandlerFunc(classify.CrimeTypesHandler))).Methods("GET")
	apiCreate.Handle("/classify", api.Middleware(http.HandlerFunc(classify.ClassifyHandler))).Methods("GET")

	apiCreate.Handle("/units/{unit_id}/candidates", api.Middleware(http.HandlerFunc(assignment.CandidatesHandler))).Methods("GET")

	apiCreate.Handle("/complaints", api.Middleware(http.HandlerFunc(complaint.CreateComplaintHandler))).Methods("POST")
	apiCreate.Handle("/complaints/{complaint_id}", api.Middleware(http.HandlerFunc(complaint.ComplaintByIDHandler))).Methods("GET")
	apiCreate.Handle("/complaints/{complaint_id}/suggestion", api.Middleware(http.HandlerFunc(assignment.SuggestionHandler))).Methods("GET")
	apiCreate.Handle("/complaints/{complaint_id}/assign", api.Middleware(http.HandlerFunc(assignment.AssignHandler))).Methods("POST")
	apiCreate.Handle("/complaints/{complaint_id}/reassign", api.Middleware(http.HandlerFunc(assignment.ReassignHandler))).Methods("POST")
	apiCreate.Handle("/complaints/{complaint_id}/assignments", api.Middleware(http.HandlerFunc(assignment.AssignmentHistoryHandler))).Methods("GET")

	apiCreate.Handle("/officers", api.Middleware(http.HandlerFunc(officer.OfficersHandler))).Methods("GET")
	apiCreate.Handle("/officer/{officer_id}", api.Middleware(http.HandlerFunc(officer.OfficerByIDHandler))).Methods("GET")
	apiCreate.Handle("/officer/{officer_id}/availability", api.Middleware(http.HandlerFunc(officer.UpdateAvailabilityHandler))).Methods("PUT")

	apiCreate.Handle("/admin/auth", http.HandlerFunc(admin.AuthHandler)).Methods("POST")
	apiCreate.Handle("/admin/reconcile-workloads", http.HandlerFunc(admin.ReconcileWorkloadsHandler)).Methods("POST")

	apiCreate.HandleFunc("/ws/assignments", hub.HandleAssignmentsWebSocket)

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("case portal api has connected to the database")

	// start the workload reconciliation sweep
	a.Scheduler = scheduler.NewScheduler(
		databases.NewOfficerDatabase(a.dbHelper),
		databases.NewAssignmentRecordDatabase(a.dbHelper),
		a.Config.WorkloadCeiling,
	)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
