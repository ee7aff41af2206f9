package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/receiptsweeper/internal/receipt"
)

// PrinterHandler stands in for a physical receipt printer: it accepts prints
// and writes them to the log.
type PrinterHandler struct {
	log logrus.FieldLogger
}

func NewPrinterHandler(log logrus.FieldLogger) *PrinterHandler {
	return &PrinterHandler{log: log}
}

func (p PrinterHandler) Print(w http.ResponseWriter, r *http.Request) {
	var print receipt.Print
	if err := json.NewDecoder(r.Body).Decode(&print); err != nil {
		sendErrorOrLog(w, p.log, http.StatusBadRequest, err)
		return
	}

	entry := p.log.WithFields(logrus.Fields{
		"slug":       print.Slug,
		"action":     print.Action,
		"coordinate": print.Coordinate.Label(),
	})
	for _, line := range receipt.Format(print) {
		entry.Info(line)
	}

	w.WriteHeader(http.StatusNoContent)
}
