package gauntlethandlers

import (
	"fmt"
	"net/http"

	gauntletservice "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/application"
)

// GetStandings retrieves the ladder ordered by rank.
func (h *GauntletHandlers) GetStandings(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	standings, err := h.service.GetStandings(r.Context(), gauntletID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get standings: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, standings)
}

// ExportStandings serves the ladder as an XLSX download.
func (h *GauntletHandlers) ExportStandings(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workbook, err := h.service.ExportStandings(r.Context(), gauntletID)
	if err != nil {
		if notFound(err) {
			http.Error(w, "Gauntlet not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to export standings: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="standings.xlsx"`)
	if _, err := w.Write(workbook); err != nil {
		h.logger.Error("Failed to write standings export", "error", err)
	}
}

// GetProgressionHistory retrieves the gauntlet's rank-change audit trail.
func (h *GauntletHandlers) GetProgressionHistory(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.service.GetProgressionHistory(r.Context(), gauntletID, queryLimit(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get progressions: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, entries)
}

// GetLineupPosition retrieves one lineup's position.
func (h *GauntletHandlers) GetLineupPosition(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lineupID, err := pathUUID(r, "lineupID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	position, err := h.service.GetLineupPosition(r.Context(), gauntletID, lineupID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get position: %v", err), http.StatusInternalServerError)
		return
	}
	if position == nil {
		http.Error(w, "Position not found", http.StatusNotFound)
		return
	}
	h.respondJSON(w, http.StatusOK, position)
}

// GetLineupProgression retrieves one lineup's rank-change trail.
func (h *GauntletHandlers) GetLineupProgression(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lineupID, err := pathUUID(r, "lineupID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.service.GetLineupProgression(r.Context(), gauntletID, lineupID, queryLimit(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get progressions: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, entries)
}

// GetLineupProgressionChart serves a PNG line chart of a lineup's rank
// over time.
func (h *GauntletHandlers) GetLineupProgressionChart(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lineupID, err := pathUUID(r, "lineupID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.service.GetLineupProgression(r.Context(), gauntletID, lineupID, 0)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get progressions: %v", err), http.StatusInternalServerError)
		return
	}

	png, err := gauntletservice.GenerateProgressionChart(entries, gauntletservice.DefaultChartPalette)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		h.logger.Error("Failed to write chart", "error", err)
	}
}
