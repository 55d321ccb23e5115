package server

import (
	"net/http"

	"github.com/Daskott/rolodex/server/service"
	"github.com/Daskott/rolodex/shared"
	"github.com/gorilla/mux"
)

// newRouter mounts the user routes at the root & under /api
func newRouter(userService *service.UserService, corsConfig shared.CorsConfig) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware, corsMiddleware(corsConfig.AllowedOrigins), jsonContentTypeMiddleware)

	handler := &userHandler{users: userService}
	registerUserRoutes(router, handler)
	registerUserRoutes(router.PathPrefix("/api").Subrouter(), handler)

	return router
}

func registerUserRoutes(router *mux.Router, handler *userHandler) {
	router.HandleFunc("/users", handler.listUsers).Methods(http.MethodGet)
	router.HandleFunc("/users", handler.createUser).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", handler.findUser).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", handler.updateUser).Methods(http.MethodPut)
	router.HandleFunc("/users/{id}", handler.deleteUser).Methods(http.MethodDelete)

	router.HandleFunc("/users", preflight).Methods(http.MethodOptions)
	router.HandleFunc("/users/{id}", preflight).Methods(http.MethodOptions)
}
