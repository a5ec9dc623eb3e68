package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	commands "motor-editor/internal/commands/domain"
	"motor-editor/internal/curvegen"
	editingapp "motor-editor/internal/editing/application"
	motors "motor-editor/internal/motors/domain"
	"motor-editor/internal/motors/infrastructure/yamlfile"
	motorexport "motor-editor/internal/motors/interfaces"
	"motor-editor/internal/observability/metrics"
	units "motor-editor/internal/units/domain"
)

const (
	apiPrefix    = "/api/v1"
	maxBodyBytes = 4 << 20
)

// Handler provides editing session HTTP endpoints under /api/v1.
type Handler struct {
	session *editingapp.Session
	repo    motors.Repository
	logger  *log.Logger
	routes  map[string]http.HandlerFunc
}

// NewHandler constructs a handler. repo may be nil when no store is configured.
func NewHandler(session *editingapp.Session, repo motors.Repository, logger *log.Logger) (*Handler, error) {
	if session == nil {
		return nil, errors.New("editing handler: nil session")
	}
	if logger == nil {
		return nil, errors.New("editing handler: nil logger")
	}
	h := &Handler{session: session, repo: repo, logger: logger}
	h.routes = map[string]http.HandlerFunc{
		"GET /document":                 h.handleStatus,
		"GET /document/motor":           h.handleSnapshot,
		"POST /document/new":            h.handleNew,
		"POST /document/open":           h.handleOpen,
		"POST /document/save":           h.handleSave,
		"POST /document/close":          h.handleClose,
		"POST /document/import":         h.handleImport,
		"GET /motors":                   h.handleListMotors,
		"POST /points":                  h.handleEditPoint,
		"GET /selection":                h.handleGetSelection,
		"POST /selection":               h.handleSelect,
		"DELETE /selection":             h.handleClearSelection,
		"POST /selection/edit":          h.handleEditSelection,
		"POST /curves":                  h.handleAddCurve,
		"POST /curves/remove":           h.handleRemoveCurve,
		"POST /curves/generate":         h.handleGenerate,
		"POST /curves/lock":             h.handleLock,
		"POST /curves/rename":           h.handleRename,
		"POST /drives":                  h.handleAddDrive,
		"POST /drives/remove":           h.handleRemoveDrive,
		"POST /voltages":                h.handleAddVoltage,
		"POST /voltages/remove":         h.handleRemoveVoltage,
		"POST /fields/motor":            h.handleMotorField,
		"POST /fields/voltage":          h.handleVoltageField,
		"GET /history":                  h.handleStatus,
		"POST /history/undo":            h.handleUndo,
		"POST /history/redo":            h.handleRedo,
		"GET /units":                    h.handleGetUnits,
		"PUT /units":                    h.handleChangeUnits,
		"PUT /units/mode":               h.handleUnitMode,
		"GET /export/motor.yaml":        h.handleExportYAML,
		"GET /export/curves.xlsx":       h.handleExportXLSX,
		"GET /export/datasheet.pdf":     h.handleExportPDF,
		"GET /units/symbols":            h.handleSymbols,
		"GET /curves/corner-speed":      h.handleCornerSpeed,
		"POST /document/validate":       h.handleValidate,
		"GET /selection/display-values": h.handleSelectionValues,
	}
	return h, nil
}

// ServeHTTP dispatches on method and path below /api/v1.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, apiPrefix), "/")
	route, ok := h.routes[r.Method+" "+path]
	if !ok {
		if h.knownPath(path) {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		http.NotFound(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	route(w, r)
}

func (h *Handler) knownPath(path string) bool {
	for key := range h.routes {
		if strings.HasSuffix(key, " "+path) {
			return true
		}
	}
	return false
}

type nameRequest struct {
	Name string `json:"name"`
}

type idRequest struct {
	ID string `json:"id"`
}

type pointEditRequest struct {
	Address editingapp.PointAddress `json:"address"`
	Edit    commands.PointEdit      `json:"edit"`
}

type selectRequest struct {
	Points []editingapp.PointAddress `json:"points"`
}

type addCurveRequest struct {
	Voltage editingapp.VoltageAddress `json:"voltage"`
	Name    string                    `json:"name"`
}

type curveRequest struct {
	Curve editingapp.CurveAddress `json:"curve"`
}

type generateRequest struct {
	Curve       editingapp.CurveAddress `json:"curve"`
	Parameters  *curvegen.Parameters    `json:"parameters,omitempty"`
	FromRatings bool                    `json:"from_ratings"`
}

type lockRequest struct {
	Curve  editingapp.CurveAddress `json:"curve"`
	Locked bool                    `json:"locked"`
}

type renameRequest struct {
	Curve editingapp.CurveAddress `json:"curve"`
	Name  string                  `json:"name"`
}

type driveRequest struct {
	Drive int `json:"drive"`
}

type addVoltageRequest struct {
	Drive   int                       `json:"drive"`
	Voltage editingapp.VoltageRatings `json:"voltage"`
}

type voltageRequest struct {
	Voltage editingapp.VoltageAddress `json:"voltage"`
}

type motorFieldRequest struct {
	Field string           `json:"field"`
	Value *decimal.Decimal `json:"value,omitempty"`
	Text  *string          `json:"text,omitempty"`
	Int   *int             `json:"int,omitempty"`
	Bool  *bool            `json:"bool,omitempty"`
}

type voltageFieldRequest struct {
	Voltage editingapp.VoltageAddress `json:"voltage"`
	Field   string                    `json:"field"`
	Value   decimal.Decimal           `json:"value"`
}

type unitModeRequest struct {
	ConvertStoredData bool `json:"convert_stored_data"`
}

type indexResponse struct {
	Index int `json:"index"`
}

type historyResponse struct {
	Applied     bool   `json:"applied"`
	Description string `json:"description,omitempty"`
}

type unitsResponse struct {
	ConvertStoredData bool           `json:"convert_stored_data"`
	Stored            units.Settings `json:"stored"`
	Display           units.Settings `json:"display"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.session.Status())
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	motor, err := h.session.Snapshot()
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, motor)
}

func (h *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}
	h.session.NewDocument(req.Name)
	writeJSON(w, h.session.Status())
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.session.Open(r.Context(), req.ID); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, h.session.Status())
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Save(r.Context()); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, h.session.Status())
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	h.session.Close()
	writeJSON(w, h.session.Status())
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	motor, err := yamlfile.Decode(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.session.Load(motor); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, h.session.Status())
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	motor, err := h.session.Snapshot()
	if err != nil {
		h.respondError(w, err)
		return
	}
	problems := []string{}
	for _, problem := range multierr.Errors(motor.Validate()) {
		problems = append(problems, problem.Error())
	}
	writeJSON(w, map[string]any{"valid": len(problems) == 0, "problems": problems})
}

func (h *Handler) handleListMotors(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		h.respondError(w, editingapp.ErrNoRepository)
		return
	}
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	if list == nil {
		list = []motors.Summary{}
	}
	writeJSON(w, list)
}

func (h *Handler) handleEditPoint(w http.ResponseWriter, r *http.Request) {
	var req pointEditRequest
	if !decode(w, r, &req) {
		return
	}
	h.respondCommand(w, h.session.EditPoint(req.Address, req.Edit))
}

func (h *Handler) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, selectRequest{Points: h.session.Selection()})
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.session.SelectPoints(req.Points); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, selectRequest{Points: h.session.Selection()})
}

func (h *Handler) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	h.session.ClearSelection()
	writeJSON(w, selectRequest{Points: []editingapp.PointAddress{}})
}

func (h *Handler) handleEditSelection(w http.ResponseWriter, r *http.Request) {
	var req commands.PointEdit
	if !decode(w, r, &req) {
		return
	}
	h.respondCommand(w, h.session.EditSelection(req))
}

// handleSelectionValues returns the selected points in display units.
func (h *Handler) handleSelectionValues(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.View()
	if err != nil {
		h.respondError(w, err)
		return
	}
	motor, display, places := view.Motor, view.Display, view.Places
	type row struct {
		editingapp.PointAddress
		Percent int    `json:"percent"`
		Speed   string `json:"speed"`
		Torque  string `json:"torque"`
	}
	rows := []row{}
	for _, addr := range view.Selection {
		curve, err := motor.Curve(addr.Drive, addr.Voltage, addr.Curve)
		if err != nil || addr.Index >= len(curve.Points) {
			continue
		}
		point := curve.Points[addr.Index]
		speed, err := units.Convert(point.Speed, motor.Units.Speed, display.Speed)
		if err != nil {
			h.respondError(w, err)
			return
		}
		torque, err := units.Convert(point.Torque, motor.Units.Torque, display.Torque)
		if err != nil {
			h.respondError(w, err)
			return
		}
		rows = append(rows, row{
			PointAddress: addr,
			Percent:      point.Percent,
			Speed:        units.Format(speed, display.Speed, places),
			Torque:       units.Format(torque, display.Torque, places),
		})
	}
	writeJSON(w, rows)
}

func (h *Handler) handleAddCurve(w http.ResponseWriter, r *http.Request) {
	var req addCurveRequest
	if !decode(w, r, &req) {
		return
	}
	index, err := h.session.AddCurve(req.Voltage, req.Name)
	h.respondIndex(w, index, err)
}

func (h *Handler) handleRemoveCurve(w http.ResponseWriter, r *http.Request) {
	var req curveRequest
	if !decode(w, r, &req) {
		return
	}
	h.respondCommand(w, h.session.RemoveCurve(req.Curve))
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decode(w, r, &req) {
		return
	}
	switch {
	case req.FromRatings:
		h.respondCommand(w, h.session.GenerateFromRatings(req.Curve))
	case req.Parameters != nil:
		h.respondCommand(w, h.session.GenerateCurve(req.Curve, *req.Parameters))
	default:
		http.Error(w, "parameters or from_ratings required", http.StatusBadRequest)
	}
}

func (h *Handler) handleCornerSpeed(w http.ResponseWriter, r *http.Request) {
	torque, err := decimal.NewFromString(r.URL.Query().Get("max_torque"))
	if err != nil {
		http.Error(w, "max_torque must be a number", http.StatusBadRequest)
		return
	}
	power, err := decimal.NewFromString(r.URL.Query().Get("max_power"))
	if err != nil {
		http.Error(w, "max_power must be a number", http.StatusBadRequest)
		return
	}
	if err := (curvegen.Parameters{MaxTorque: torque, MaxPower: power}).Validate(); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, map[string]decimal.Decimal{"corner_speed": curvegen.CornerSpeed(torque, power)})
}

func (h *Handler) handleLock(w http.ResponseWriter, r *http.Request) {
	var req lockRequest
	if !decode(w, r, &req) {
		return
	}
	h.respondCommand(w, h.session.SetCurveLocked(req.Curve, req.Locked))
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !decode(w, r, &req) {
		return
	}
	h.respondCommand(w, h.session.RenameCurve(req.Curve, req.Name))
}

func (h *Handler) handleAddDrive(w http.ResponseWriter, r *http.Request) {
	var req editingapp.DriveInput
	if !decode(w, r, &req) {
		return
	}
	index, err := h.session.AddDrive(req)
	h.respondIndex(w, index, err)
}

func (h *Handler) handleRemoveDrive(w http.ResponseWriter, r *http.Request) {
	var req driveRequest
	if !decode(w, r, &req) {
		return
	}
	h.respondCommand(w, h.session.RemoveDrive(req.Drive))
}

func (h *Handler) handleAddVoltage(w http.ResponseWriter, r *http.Request) {
	var req addVoltageRequest
	if !decode(w, r, &req) {
		return
	}
	index, err := h.session.AddVoltage(req.Drive, req.Voltage)
	h.respondIndex(w, index, err)
}

func (h *Handler) handleRemoveVoltage(w http.ResponseWriter, r *http.Request) {
	var req voltageRequest
	if !decode(w, r, &req) {
		return
	}
	h.respondCommand(w, h.session.RemoveVoltage(req.Voltage))
}

func (h *Handler) handleMotorField(w http.ResponseWriter, r *http.Request) {
	var req motorFieldRequest
	if !decode(w, r, &req) {
		return
	}
	var err error
	switch {
	case req.Value != nil:
		err = h.session.SetMotorField(req.Field, *req.Value)
	case req.Text != nil:
		err = h.session.SetMotorInfo(req.Field, *req.Text)
	case req.Int != nil && req.Field == "feedback_ppr":
		err = h.session.SetFeedbackPPR(*req.Int)
	case req.Bool != nil && req.Field == "has_brake":
		err = h.session.SetHasBrake(*req.Bool)
	default:
		http.Error(w, "value, text, int or bool required for field", http.StatusBadRequest)
		return
	}
	h.respondCommand(w, err)
}

func (h *Handler) handleVoltageField(w http.ResponseWriter, r *http.Request) {
	var req voltageFieldRequest
	if !decode(w, r, &req) {
		return
	}
	h.respondCommand(w, h.session.SetVoltageField(req.Voltage, req.Field, req.Value))
}

func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	desc, applied, err := h.session.Undo()
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, historyResponse{Applied: applied, Description: desc})
}

func (h *Handler) handleRedo(w http.ResponseWriter, r *http.Request) {
	desc, applied, err := h.session.Redo()
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, historyResponse{Applied: applied, Description: desc})
}

func (h *Handler) handleGetUnits(w http.ResponseWriter, r *http.Request) {
	status := h.session.Status()
	writeJSON(w, unitsResponse{
		ConvertStoredData: status.ConvertStoredData,
		Stored:            status.StoredUnits,
		Display:           status.DisplayUnits,
	})
}

func (h *Handler) handleChangeUnits(w http.ResponseWriter, r *http.Request) {
	var req units.Settings
	if !decode(w, r, &req) {
		return
	}
	if err := h.session.ChangeUnits(req); err != nil {
		h.respondError(w, err)
		return
	}
	h.handleGetUnits(w, r)
}

func (h *Handler) handleUnitMode(w http.ResponseWriter, r *http.Request) {
	var req unitModeRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.session.SetConvertStoredData(req.ConvertStoredData); err != nil {
		h.respondError(w, err)
		return
	}
	h.handleGetUnits(w, r)
}

func (h *Handler) handleSymbols(w http.ResponseWriter, r *http.Request) {
	symbols := make(map[units.Dimension][]string)
	for _, dim := range units.Dimensions() {
		symbols[dim] = units.Symbols(dim)
	}
	writeJSON(w, symbols)
}

func (h *Handler) handleExportYAML(w http.ResponseWriter, r *http.Request) {
	h.export(w, "yaml", "application/yaml", "motor.yaml", func(motor *motors.MotorDefinition, _ motorexport.ExportOptions) ([]byte, error) {
		var buf bytes.Buffer
		if err := yamlfile.Encode(&buf, motor); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "curves.xlsx", motorexport.BuildCurvesXLSX)
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, "pdf", "application/pdf", "datasheet.pdf", motorexport.BuildDatasheetPDF)
}

type exportFunc func(*motors.MotorDefinition, motorexport.ExportOptions) ([]byte, error)

func (h *Handler) export(w http.ResponseWriter, format, contentType, filename string, build exportFunc) {
	start := time.Now()
	view, err := h.session.View()
	if err != nil {
		h.respondError(w, err)
		return
	}
	data, err := build(view.Motor, motorexport.ExportOptions{Units: view.Display, Places: view.Places})
	metrics.ObserveExport(format, metrics.Result(err), time.Since(start))
	if err != nil {
		h.logger.Printf("editing http: %s export failed: %v", format, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	_, _ = w.Write(data)
}

func (h *Handler) respondCommand(w http.ResponseWriter, err error) {
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, h.session.Status())
}

func (h *Handler) respondIndex(w http.ResponseWriter, index int, err error) {
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, indexResponse{Index: index})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Printf("editing http: %v", err)
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, editingapp.ErrNoDocument),
		errors.Is(err, editingapp.ErrCurveLocked):
		return http.StatusConflict
	case errors.Is(err, motors.ErrMotorNotFound),
		errors.Is(err, motors.ErrDriveNotFound),
		errors.Is(err, motors.ErrVoltageNotFound),
		errors.Is(err, motors.ErrCurveNotFound),
		errors.Is(err, editingapp.ErrPointNotFound),
		errors.Is(err, commands.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, editingapp.ErrNoRepository):
		return http.StatusNotImplemented
	case errors.Is(err, editingapp.ErrEmptyEdit),
		errors.Is(err, editingapp.ErrInvalidEdit),
		errors.Is(err, editingapp.ErrUnknownField),
		errors.Is(err, editingapp.ErrEmptySelection),
		errors.Is(err, motors.ErrEmptyName),
		errors.Is(err, motors.ErrNegativeValue),
		errors.Is(err, motors.ErrInvalidPercent),
		errors.Is(err, curvegen.ErrNegativeInput),
		errors.Is(err, units.ErrUnsupportedUnit),
		errors.Is(err, units.ErrDimensionMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return false
	}
	defer r.Body.Close()
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	if err := json.Unmarshal(body, v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
