package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Daskott/rolodex/server/apperr"
	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

type ErrorPayload struct {
	Error string `json:"error"`
}

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad interface{}, statusCode int) {
	rw.WriteHeader(statusCode)

	err := json.NewEncoder(rw).Encode(payLoad)
	if err != nil {
		logg.Errorf("writeResponse: %v", err)
	}
}

// writeError translates err into a client response. The detail of unexpected
// errors is only logged.
func writeError(rw http.ResponseWriter, err error) {
	statusCode, msg := apperr.Translate(err)

	if statusCode >= http.StatusInternalServerError {
		logg.Errorf("%+v", err)
	} else {
		logg.Info(msg)
	}

	writeResponse(rw, ErrorPayload{Error: msg}, statusCode)
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Rolodex server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(scheduler *gocron.Scheduler, server *http.Server, db *gorm.DB, backup *sqliteBackup) {
	// Stop scheduled jobs i.e. periodic db backups
	scheduler.Stop()

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Errorf("Rolodex server shutdown failed:%+s", err)
	}

	if backup != nil {
		if err := backup.upload(context.Background()); err != nil {
			logg.Errorf("final sqlite backup failed: %v", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logg.Infof("Rolodex server stopped properly")
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
