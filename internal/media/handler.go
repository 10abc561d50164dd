package media

import (
	"net/http"

	"github.com/hirewire/job-market/internal/apperror"
	"github.com/hirewire/job-market/internal/server"

	"github.com/gorilla/mux"
)

func RetrieveMediaHandler(svr server.Server, mediaRepo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		ctx, cancel := svr.RequestContext(r)
		defer cancel()
		m, err := mediaRepo.MediaByID(ctx, vars["id"])
		if err != nil {
			if apperror.KindOf(err) != apperror.KindNotFound {
				svr.Log(err, "unable to retrieve media by id")
			}
			svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
			return
		}
		svr.MEDIA(w, http.StatusOK, m.Bytes, m.MediaType)
	}
}
