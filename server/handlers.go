package server

import (
	"encoding/json"
	"net/http"

	"github.com/Daskott/rolodex/server/apperr"
	"github.com/Daskott/rolodex/server/service"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

type userHandler struct {
	users *service.UserService
}

func (h *userHandler) listUsers(rw http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(rw, err)
		return
	}

	writeResponse(rw, users, http.StatusOK)
}

func (h *userHandler) findUser(rw http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(rw, err)
		return
	}

	writeResponse(rw, user, http.StatusOK)
}

func (h *userHandler) createUser(rw http.ResponseWriter, r *http.Request) {
	data := service.CreateUserInput{}

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		writeError(rw, errors.Wrap(apperr.ErrBadRequest, err.Error()))
		return
	}

	user, err := h.users.Create(r.Context(), data)
	if err != nil {
		writeError(rw, err)
		return
	}

	writeResponse(rw, user, http.StatusCreated)
}

func (h *userHandler) updateUser(rw http.ResponseWriter, r *http.Request) {
	data := service.UpdateUserInput{}

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		writeError(rw, errors.Wrap(apperr.ErrBadRequest, err.Error()))
		return
	}

	user, err := h.users.Update(r.Context(), mux.Vars(r)["id"], data)
	if err != nil {
		writeError(rw, err)
		return
	}

	writeResponse(rw, user, http.StatusOK)
}

func (h *userHandler) deleteUser(rw http.ResponseWriter, r *http.Request) {
	err := h.users.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusNoContent)
}

// preflight lets OPTIONS requests match a route so corsMiddleware can answer them
func preflight(rw http.ResponseWriter, r *http.Request) {
	rw.WriteHeader(http.StatusNoContent)
}
