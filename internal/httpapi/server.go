// Package httpapi is the request/response surface the UI layer talks
// to. It stays a thin collaborator: raw inputs in, rendered strings
// and persisted records out; every calculation rule lives below it.
package httpapi

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/gbyrne/gaa-ref-timer/internal/adapter/reportpresenter"
	"github.com/gbyrne/gaa-ref-timer/internal/msgcat"
	"github.com/gbyrne/gaa-ref-timer/internal/obslog"
	"github.com/gbyrne/gaa-ref-timer/internal/reportcard"
	"github.com/gbyrne/gaa-ref-timer/internal/session"
	"github.com/gbyrne/gaa-ref-timer/pkg/matchdto"
)

// SessionHeader carries the opaque session id between requests. A
// request without one gets a fresh session; the response always
// echoes the id to carry forward.
const SessionHeader = "X-Session-Id"

type Server struct {
	mgr    *session.Manager
	fmtr   *reportpresenter.Formatter
	cards  reportcard.Renderer
	cat    *msgcat.Catalog
	server *fasthttp.Server
}

func New(mgr *session.Manager, fmtr *reportpresenter.Formatter, cards reportcard.Renderer, cat *msgcat.Catalog) *Server {
	s := &Server{mgr: mgr, fmtr: fmtr, cards: cards, cat: cat}
	s.server = &fasthttp.Server{
		Handler: s.Handle,
		Name:    "gaa-ref-timer",
	}
	return s
}

// ListenAndServe blocks serving addr until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	return s.server.ListenAndServe(addr)
}

func (s *Server) Shutdown() error {
	return s.server.Shutdown()
}

// Inner returns the underlying fasthttp server for custom listeners.
func (s *Server) Inner() *fasthttp.Server { return s.server }

// Handle routes a single request.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/healthz" && method == fasthttp.MethodGet:
		writeJSON(ctx, fasthttp.StatusOK, map[string]bool{"ok": true})
	case path == "/api/calculate" && method == fasthttp.MethodPost:
		s.handleCalculate(ctx)
	case path == "/api/report" && method == fasthttp.MethodGet:
		s.handleReport(ctx)
	case path == "/api/save" && method == fasthttp.MethodPost:
		s.handleSave(ctx)
	case path == "/api/history" && method == fasthttp.MethodGet:
		s.handleHistory(ctx)
	case path == "/api/history" && method == fasthttp.MethodDelete:
		s.handleClear(ctx)
	case path == "/api/card" && method == fasthttp.MethodGet:
		s.handleCard(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not_found", "unknown route")
	}
}

func (s *Server) sess(ctx *fasthttp.RequestCtx) *session.Session {
	id := string(ctx.Request.Header.Peek(SessionHeader))
	sess := s.mgr.Session(id)
	ctx.Response.Header.Set(SessionHeader, sess.ID())
	return sess
}

func (s *Server) handleCalculate(ctx *fasthttp.RequestCtx) {
	var req matchdto.CalculateRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "bad_request", "invalid JSON body")
			return
		}
	}
	sess := s.sess(ctx)
	view, err := sess.Calculate(req)
	if err != nil && !errors.Is(err, session.ErrNoStartTime) {
		writeError(ctx, fasthttp.StatusInternalServerError, "calculate_failed", err.Error())
		return
	}
	// ErrNoStartTime is not a failure: the view says hide the result.
	writeJSON(ctx, fasthttp.StatusOK, calculateResponse{
		Session: sess.ID(),
		Result:  view,
		Text:    s.fmtr.Result(view),
	})
}

func (s *Server) handleReport(ctx *fasthttp.RequestCtx) {
	sess := s.sess(ctx)
	text, err := sess.Report()
	if err != nil {
		writeSessionError(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetBodyString(text)
}

func (s *Server) handleSave(ctx *fasthttp.RequestCtx) {
	sess := s.sess(ctx)
	rec, records, err := sess.Save(ctx)
	if err != nil {
		writeSessionError(ctx, err)
		return
	}
	views := make([]matchdto.HistoryView, 0, len(records))
	for _, r := range records {
		views = append(views, reportpresenter.HistoryView(r))
	}
	writeJSON(ctx, fasthttp.StatusOK, saveResponse{
		Session: sess.ID(),
		Record:  rec,
		History: views,
	})
}

func (s *Server) handleHistory(ctx *fasthttp.RequestCtx) {
	sess := s.sess(ctx)
	records := sess.History(ctx)
	views := make([]matchdto.HistoryView, 0, len(records))
	for _, r := range records {
		views = append(views, reportpresenter.HistoryView(r))
	}
	writeJSON(ctx, fasthttp.StatusOK, historyResponse{
		Session: sess.ID(),
		History: views,
		Text:    s.fmtr.HistoryList(records),
	})
}

func (s *Server) handleClear(ctx *fasthttp.RequestCtx) {
	sess := s.sess(ctx)
	if err := sess.ClearHistory(ctx); err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "clear_failed", err.Error())
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (s *Server) handleCard(ctx *fasthttp.RequestCtx) {
	sess := s.sess(ctx)
	view, err := sess.CurrentView()
	if err != nil {
		writeSessionError(ctx, err)
		return
	}
	title, terr := s.cat.Render("card.title", nil)
	if terr != nil {
		title = ""
	}
	data, err := s.cards.RenderPNG(ctx, title, view)
	if err != nil {
		obslog.L().Error("card render failed", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "card_failed", err.Error())
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("image/png")
	ctx.SetBody(data)
}

func writeSessionError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, session.ErrNoCalculation):
		writeError(ctx, fasthttp.StatusConflict, "no_current_calculation", err.Error())
	default:
		writeError(ctx, fasthttp.StatusInternalServerError, "internal", err.Error())
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	raw, err := json.Marshal(body)
	if err != nil {
		obslog.L().Error("response marshal failed", zap.Error(err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetBody(raw)
}

func writeError(ctx *fasthttp.RequestCtx, status int, code, message string) {
	writeJSON(ctx, status, errorResponse{
		Error: matchdto.DomainError{Code: code, Message: message},
	})
}
