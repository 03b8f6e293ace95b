package router

import (
	"net/http"

	"sysai-relay/backend/app/controllers"
	"sysai-relay/backend/app/middleware"

	"github.com/gorilla/mux"
)

func NewRouter(authCtrl *controllers.AuthController, adminCtrl *controllers.AdminController, agentCtrl *controllers.AgentController, cmdCtrl *controllers.CommandController, mw *middleware.Auth) http.Handler {
	r := mux.NewRouter()

	// public
	r.HandleFunc("/api/login", authCtrl.Login).Methods(http.MethodPost)

	// operator endpoints (admin JWT)
	r.Handle("/api/admin/users", mw.RequireAdmin(http.HandlerFunc(adminCtrl.CreateUser))).Methods(http.MethodPost)
	r.Handle("/api/agent/send/{agent_id}", mw.RequireAdmin(http.HandlerFunc(cmdCtrl.Send))).Methods(http.MethodPost)
	r.Handle("/api/agent/results/{agent_id}", mw.RequireAdmin(http.HandlerFunc(cmdCtrl.Results))).Methods(http.MethodGet)

	// agent endpoints (shared agent token)
	r.Handle("/api/agent/update", mw.RequireAgent(http.HandlerFunc(agentCtrl.Update))).Methods(http.MethodPost)
	r.Handle("/api/agent/commands/{agent_id}", mw.RequireAgent(http.HandlerFunc(cmdCtrl.Poll))).Methods(http.MethodGet)
	r.Handle("/api/agent/command_response", mw.RequireAgent(http.HandlerFunc(cmdCtrl.Response))).Methods(http.MethodPost)

	// read-only views used by both dashboard and agents
	r.Handle("/api/agent/list", mw.RequireAny(http.HandlerFunc(agentCtrl.List))).Methods(http.MethodGet)
	r.Handle("/api/agent/info/{agent_id}", mw.RequireAny(http.HandlerFunc(agentCtrl.Info))).Methods(http.MethodGet)

	return r
}
