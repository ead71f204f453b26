package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/utils"
)

type versionResponse struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date"`
	BuildCommit string `json:"build_commit"`
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	buildInfo := h.services.AppInfoService.GetBuildInfo(ctx)

	_, err := utils.WriteJSON(w, versionResponse{
		Version:     h.services.AppInfoService.GetAppVersion(ctx),
		BuildDate:   buildInfo.Date,
		BuildCommit: buildInfo.Commit,
	}, http.StatusOK)
	return err
}
