package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hwen6/loan-ledger/internal/config"
	"github.com/hwen6/loan-ledger/internal/metrics"
	"github.com/hwen6/loan-ledger/internal/planner"
	"github.com/hwen6/loan-ledger/pkg/constants"
	"github.com/hwen6/loan-ledger/pkg/datetime"
	"github.com/hwen6/loan-ledger/pkg/output"
	"github.com/hwen6/loan-ledger/pkg/rates"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the web UI and schedule API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Schedule API endpoint (file upload)
	mux.HandleFunc("/api/schedule", h.instrument("/api/schedule", h.handleSchedule))

	// Schedule API endpoint for editor-driven updates
	mux.HandleFunc("/api/editor/schedule", h.instrument("/api/editor/schedule", h.handleScheduleEditor))

	// Config serialization endpoint for editor downloads
	mux.HandleFunc("/api/editor/export", h.instrument("/api/editor/export", h.handleConfigExport))

	// Ledger file downloads (csv, xlsx, pdf)
	mux.HandleFunc("/api/schedule/export", h.instrument("/api/schedule/export", h.handleScheduleExport))

	// Published benchmark rate table and derived timelines
	mux.HandleFunc("/api/rates/national", h.instrument("/api/rates/national", h.handleNationalRates))

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Liveness probe and Prometheus metrics
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type scheduleResponse struct {
	Scenarios  []string               `json:"scenarios"`
	Plans      []planPayload          `json:"plans"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

type planPayload struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Summary     summaryPayload `json:"summary"`
	Rows        []ledgerRow    `json:"rows"`
}

type summaryPayload struct {
	Periods        int     `json:"periods"`
	Rows           int     `json:"rows"`
	PayoffDate     string  `json:"payoffDate"`
	TotalPrincipal float64 `json:"totalPrincipal"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalPaid      float64 `json:"totalPaid"`
}

type ledgerRow struct {
	Period              int     `json:"period"`
	Date                string  `json:"date"`
	Kind                string  `json:"kind"`
	Principal           float64 `json:"principal"`
	Interest            float64 `json:"interest"`
	RemainingPrincipal  float64 `json:"remainingPrincipal"`
	CumulativePrincipal float64 `json:"cumulativePrincipal"`
	CumulativeInterest  float64 `json:"cumulativeInterest"`
	TotalPayment        float64 `json:"totalPayment"`
}

type rateTableRow struct {
	Date               string  `json:"date"`
	UpToFiveFirstHome  float64 `json:"upToFiveFirstHome"`
	OverFiveFirstHome  float64 `json:"overFiveFirstHome"`
	UpToFiveSecondHome float64 `json:"upToFiveSecondHome,omitempty"`
	OverFiveSecondHome float64 `json:"overFiveSecondHome,omitempty"`
}

type rateChangePayload struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

type nationalRatesResponse struct {
	Table    []rateTableRow      `json:"table"`
	Changes  []rateChangePayload `json:"changes"`
	Timeline []rateChangePayload `json:"timeline,omitempty"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && h.logger != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleSchedule"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err))
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err))
		return
	}

	h.runSchedule(w, configBytes, configMap, start, "server.handleSchedule")
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleScheduleEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	configPayload, ok := h.decodeEditorPayload(w, r, "server.handleScheduleEditor")
	if !ok {
		return
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleScheduleEditor")
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), "server.handleScheduleEditor")
		return
	}

	h.runSchedule(w, configBytes, configMap, start, "server.handleScheduleEditor")
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleConfigExport")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleScheduleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleScheduleExport"
	start := time.Now()

	format := strings.TrimSpace(r.URL.Query().Get("format"))
	if format == "" {
		format = constants.OutputFormatXLSX
	}
	switch format {
	case constants.OutputFormatCSV, constants.OutputFormatXLSX, constants.OutputFormatPDF:
	default:
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format %s", format), op)
		return
	}

	configPayload, ok := h.decodeEditorPayload(w, r, op)
	if !ok {
		return
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err := cfg.Validate(); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid configuration: %v", err), op)
		return
	}

	plans, err := planner.BuildPlans(h.logger, *cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to build schedules: %v", err), op)
		return
	}

	var (
		data        []byte
		contentType string
		filename    string
	)
	switch format {
	case constants.OutputFormatCSV:
		data = []byte(output.CsvString(plans))
		contentType = "text/csv"
		filename = "loan-ledger.csv"
	case constants.OutputFormatXLSX:
		data, err = output.ExcelBytes(plans)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "loan-ledger.xlsx"
	case constants.OutputFormatPDF:
		data, err = output.PDFBytes(plans)
		contentType = "application/pdf"
		filename = "loan-ledger.pdf"
	}
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(start))
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render %s export: %v", format, err), op)
		return
	}

	elapsed := time.Since(start)
	metrics.ObserveExport(format, metrics.ResultSuccess, elapsed)

	if h.logger != nil {
		h.logger.Info("ledger exported",
			zap.String("op", op),
			zap.String("format", format),
			zap.Int("bytes", len(data)),
			zap.Duration("duration", elapsed),
		)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil && h.logger != nil {
		h.logger.Error("failed to write export response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleNationalRates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleNationalRates"
	query := r.URL.Query()

	firstHome := true
	if raw := strings.TrimSpace(query.Get("firstHome")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid firstHome value %q", raw), op)
			return
		}
		firstHome = parsed
	}

	termYears := 30
	if raw := strings.TrimSpace(query.Get("termYears")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid termYears value %q", raw), op)
			return
		}
		termYears = parsed
	}

	table := rates.NationalTable()
	changes := rates.ChangesFor(table, firstHome, termYears)

	response := nationalRatesResponse{
		Table:   make([]rateTableRow, 0, len(table)),
		Changes: make([]rateChangePayload, 0, len(changes)),
	}
	for _, entry := range table {
		response.Table = append(response.Table, rateTableRow{
			Date:               datetime.FormatDate(entry.Date),
			UpToFiveFirstHome:  entry.UpToFiveFirstHome,
			OverFiveFirstHome:  entry.OverFiveFirstHome,
			UpToFiveSecondHome: entry.UpToFiveSecondHome,
			OverFiveSecondHome: entry.OverFiveSecondHome,
		})
	}
	for _, change := range changes {
		response.Changes = append(response.Changes, rateChangePayload{
			Date: datetime.FormatDate(change.Date),
			Rate: change.AnnualRate,
		})
	}

	if raw := strings.TrimSpace(query.Get("firstPaymentDate")); raw != "" {
		firstPayment, err := datetime.ParseDate(raw)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid firstPaymentDate value %q", raw), op)
			return
		}

		basis, err := rates.ParseBasis(query.Get("basis"))
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}

		aligned, err := rates.AlignChanges(changes, basis, firstPayment)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		for _, change := range aligned {
			response.Timeline = append(response.Timeline, rateChangePayload{
				Date: datetime.FormatDate(change.Date),
				Rate: change.AnnualRate,
			})
		}
	}

	h.writeJSON(w, http.StatusOK, response)
}

// decodeEditorPayload reads a JSON body and unwraps the optional top-level
// "config" key the editor sends.
func (h *handler) decodeEditorPayload(w http.ResponseWriter, r *http.Request, op string) (map[string]interface{}, bool) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return nil, false
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid config payload: expected object", op)
			return nil, false
		}
		configPayload = cfgMap
	}

	return configPayload, true
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "loan"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) runSchedule(w http.ResponseWriter, configBytes []byte, configMap map[string]interface{}, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if err := cfg.Validate(); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid configuration: %v", err), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	plans, err := planner.BuildPlans(h.logger, *cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to build schedules: %v", err), op)
		return
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := scheduleResponse{
		Scenarios:  extractPlanNames(plans),
		Plans:      buildPlanPayloads(plans),
		CSV:        output.CsvString(plans),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}

	if h.logger != nil {
		h.logger.Info("schedule computed",
			zap.String("op", op),
			zap.Int("scenarios", len(response.Scenarios)),
			zap.Duration("duration", elapsed),
		)
	}

	h.writeJSON(w, http.StatusOK, response)
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondErrorWithOp(w, status, msg, "server.handleSchedule")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Error("schedule request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// statusRecorder captures the response status for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (h *handler) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		result := metrics.ResultSuccess
		if rec.status >= http.StatusBadRequest {
			result = metrics.ResultError
		}
		metrics.ObserveRequest(endpoint, result, time.Since(start))
	}
}

func extractPlanNames(plans []planner.Plan) []string {
	names := make([]string, 0, len(plans))
	for _, plan := range plans {
		names = append(names, plan.Name)
	}
	return names
}

func buildPlanPayloads(plans []planner.Plan) []planPayload {
	payloads := make([]planPayload, 0, len(plans))
	for _, plan := range plans {
		rows := make([]ledgerRow, 0, len(plan.Rows))
		for _, row := range plan.Rows {
			rows = append(rows, ledgerRow{
				Period:              row.Period,
				Date:                datetime.FormatDate(row.Date),
				Kind:                string(row.Kind),
				Principal:           row.Principal,
				Interest:            row.Interest,
				RemainingPrincipal:  row.RemainingPrincipal,
				CumulativePrincipal: row.CumulativePrincipal,
				CumulativeInterest:  row.CumulativeInterest,
				TotalPayment:        row.TotalPayment,
			})
		}

		payloads = append(payloads, planPayload{
			Name:        plan.Name,
			Description: plan.Description,
			Summary: summaryPayload{
				Periods:        plan.Summary.Periods,
				Rows:           plan.Summary.Rows,
				PayoffDate:     plan.Summary.PayoffDate,
				TotalPrincipal: plan.Summary.TotalPrincipal,
				TotalInterest:  plan.Summary.TotalInterest,
				TotalPaid:      plan.Summary.TotalPaid,
			},
			Rows: rows,
		})
	}
	return payloads
}
