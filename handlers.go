package main

import (
	"encoding/json"
	"net/http"
	"time"

	"catalog-bot-go/dispatch"
	"catalog-bot-go/stats"
	"catalog-bot-go/surface"
)

// maxPreAnswers bounds the queued follow-up inputs one request may carry.
const maxPreAnswers = 4

func buildSurface(caller CallerInfo, medium surface.Medium, inputs []string) *surface.Buffer {
	buf := surface.NewBuffer(surface.Caller{
		ID:          caller.ID,
		DisplayName: caller.DisplayName,
		AvatarURL:   caller.AvatarURL,
	}, medium)
	for _, line := range inputs {
		buf.PushInput(line)
	}
	return buf
}

func respond(w http.ResponseWriter, buf *surface.Buffer) {
	resp := CommandResponse{
		Replies: buf.Replies,
		Pages:   make([]PagePayload, 0, len(buf.Pages)),
		Acks:    buf.Acks,
	}
	if resp.Replies == nil {
		resp.Replies = []string{}
	}
	for _, p := range buf.Pages {
		resp.Pages = append(resp.Pages, PagePayload{Page: p.Page, Controls: p.Controls})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCommand runs one structured invocation: named verb, named args.
func (app *application) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Verb == "" {
		writeError(w, http.StatusUnprocessableEntity, "Verb not provided")
		return
	}
	if req.Caller.ID == "" {
		writeError(w, http.StatusUnprocessableEntity, "Caller id not provided")
		return
	}
	if len(req.Inputs) > maxPreAnswers {
		writeError(w, http.StatusUnprocessableEntity, "Too many queued inputs")
		return
	}

	buf := buildSurface(req.Caller, surface.MediumStructured, req.Inputs)
	if err := app.registry.DispatchNamed(r.Context(), req.Verb, req.Args, buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, buf)
}

// handleMessage runs one free-text line through the prefix dispatcher.
func (app *application) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Line == "" {
		writeError(w, http.StatusUnprocessableEntity, "Line not provided")
		return
	}
	if req.Caller.ID == "" {
		writeError(w, http.StatusUnprocessableEntity, "Caller id not provided")
		return
	}
	if len(req.Inputs) > maxPreAnswers {
		writeError(w, http.StatusUnprocessableEntity, "Too many queued inputs")
		return
	}

	buf := buildSurface(req.Caller, surface.MediumText, req.Inputs)
	if err := app.registry.Dispatch(r.Context(), req.Line, buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, buf)
}

func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "ok",
		"token_expires_at": app.tokens.ExpiresAt().Format(time.RFC3339),
	})
}

func (app *application) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Get().Snapshot())
}

// cacheAuthorized guards the cache management endpoints with the access
// token from configuration.
func cacheAuthorized(r *http.Request) bool {
	token := conf.Configuration.CacheAccessToken
	return token != "" && r.Header.Get("Authorization") == token
}

func (app *application) handleCacheDump(w http.ResponseWriter, r *http.Request) {
	if !cacheAuthorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	numKeys, sizeKB := app.cache.Stats()
	writeJSON(w, http.StatusOK, CacheDumpResponse{NumberOfKeys: numKeys, SizeInKB: sizeKB})
}

func (app *application) handleCacheBackup(w http.ResponseWriter, r *http.Request) {
	if !cacheAuthorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	path, err := app.cache.Backup()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"backup": path})
}

func (app *application) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if !cacheAuthorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := app.cache.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (app *application) handleHelp(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"help":     "POST /command with {verb, caller, args} or POST /message with {line, caller}. Text commands start with " + dispatch.Prefix,
		"commands": app.registry.Verbs(),
	})
}
