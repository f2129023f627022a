package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/moneymap/moneymap-backend/internal/api/request"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/service"
	"github.com/moneymap/moneymap-backend/internal/validation"
)

// RuleHandler handles monitoring rule HTTP requests
type RuleHandler struct {
	ruleService *service.RuleService
}

// NewRuleHandler creates a new RuleHandler
func NewRuleHandler(ruleService *service.RuleService) *RuleHandler {
	return &RuleHandler{
		ruleService: ruleService,
	}
}

// Rules lists all monitoring rules
func (h *RuleHandler) Rules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.ruleService.GetRules()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rules)
}

// Rule retrieves a single rule
func (h *RuleHandler) Rule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.ruleService.GetRule(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

// CreateRule registers a new monitoring rule
func (h *RuleHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRuleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateCreateRule(req); err != nil {
		respondServiceError(w, err)
		return
	}

	rule, err := h.ruleService.CreateRule(model.MonitoringRule{
		Name:              req.Name,
		Type:              model.RuleType(req.Type),
		Severity:          model.AlertSeverity(req.Severity),
		Description:       req.Description,
		ThresholdAmount:   req.ThresholdAmount,
		ThresholdCurrency: req.ThresholdCurrency,
		MaxTransactions:   req.MaxTransactions,
		TimeWindowMinutes: req.TimeWindowMinutes,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}

// UpdateRule updates a rule's configuration
func (h *RuleHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateRuleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateUpdateRule(req); err != nil {
		respondServiceError(w, err)
		return
	}

	rule, err := h.ruleService.GetRule(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Severity != nil {
		rule.Severity = model.AlertSeverity(*req.Severity)
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}
	if req.Description != nil {
		rule.Description = *req.Description
	}
	if req.ThresholdAmount != nil {
		rule.ThresholdAmount = *req.ThresholdAmount
	}
	if req.ThresholdCurrency != nil {
		rule.ThresholdCurrency = *req.ThresholdCurrency
	}
	if req.MaxTransactions != nil {
		rule.MaxTransactions = *req.MaxTransactions
	}
	if req.TimeWindowMinutes != nil {
		rule.TimeWindowMinutes = *req.TimeWindowMinutes
	}

	updated, err := h.ruleService.UpdateRule(rule)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteRule removes a monitoring rule
func (h *RuleHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	if err := h.ruleService.DeleteRule(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
