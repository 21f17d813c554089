package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"lintang/gridnav/pkg/datastructure"
	"lintang/gridnav/pkg/engine/routingalgorithm"
	"lintang/gridnav/pkg/gridparser"
	"lintang/gridnav/pkg/server"
	"lintang/gridnav/pkg/server/rest/service"
	"lintang/gridnav/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type NavigationService interface {
	SaveGrid(ctx context.Context, name string, rows []string) (*gridparser.Map, error)
	GetGrid(ctx context.Context, name string) (*gridparser.Map, error)
	ListGrids(ctx context.Context) ([]string, error)
	DeleteGrid(ctx context.Context, name string) error

	ShortestPath(ctx context.Context, req service.SearchRequest) (service.ShortestPathResult, error)

	CreateSession(ctx context.Context, req service.SearchRequest) (service.SessionView, error)
	StepSession(ctx context.Context, id string, count int) (service.SessionView, error)
	GetSession(ctx context.Context, id string) (service.SessionView, error)
	DeleteSession(ctx context.Context, id string) error
	ActiveSessions() int
}

type NavigationHandler struct {
	svc          NavigationService
	promeMetrics *metrics
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, m *metrics) {
	handler := &NavigationHandler{svc, m}

	r.Group(func(r chi.Router) {
		r.Route("/api/grids", func(r chi.Router) {
			r.Get("/", handler.listGrids)
			r.Put("/{name}", handler.saveGrid)
			r.Get("/{name}", handler.getGrid)
			r.Delete("/{name}", handler.deleteGrid)
		})
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/shortest-path", handler.shortestPath)
			r.Post("/sessions", handler.createSession)
			r.Post("/sessions/{id}/step", handler.stepSession)
			r.Get("/sessions/{id}", handler.getSession)
			r.Delete("/sessions/{id}", handler.deleteSession)
			r.Get("/hello", handler.Hello)
		})
	})
}

func validateRequest(data interface{}) []error {
	validate := validator.New()
	if err := validate.Struct(data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		return translateError(err, trans)
	}
	return nil
}

// Coord model info
//
//	@Description	koordinat cell di grid, x kolom dan y baris (0-based)
type Coord struct {
	X int `json:"x" validate:"gte=0"`
	Y int `json:"y" validate:"gte=0"`
}

func (c *Coord) toCoordinate() *datastructure.Coordinate {
	if c == nil {
		return nil
	}
	coord := datastructure.NewCoordinate(c.X, c.Y)
	return &coord
}

// GridRequest model info
//
//	@Description	request body untuk menyimpan grid dalam format peta ASCII
type GridRequest struct {
	Rows []string `json:"rows" validate:"required,min=1,dive,required"`
}

func (s *GridRequest) Bind(r *http.Request) error {
	if len(s.Rows) == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// GridResponse model info
//
//	@Description	response body grid yang tersimpan
type GridResponse struct {
	Name   string   `json:"name"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
	Start  *Coord   `json:"start,omitempty"`
	Finish *Coord   `json:"finish,omitempty"`
}

func NewGridResponse(m *gridparser.Map) *GridResponse {
	resp := &GridResponse{
		Name:   m.Name,
		Width:  m.Grid.Width(),
		Height: m.Grid.Height(),
		Rows:   m.Rows(),
	}
	if m.HasStart {
		resp.Start = &Coord{X: m.Start.X, Y: m.Start.Y}
	}
	if m.HasFinish {
		resp.Finish = &Coord{X: m.Finish.X, Y: m.Finish.Y}
	}
	return resp
}

// GridListResponse model info
//
//	@Description	nama semua grid yang tersimpan
type GridListResponse struct {
	Grids []string `json:"grids"`
}

// saveGrid
//
//	@Summary		simpan grid baru atau timpa grid dengan nama yang sama.
//	@Description	simpan grid dalam format peta ASCII: '.' cost 1, '1'-'9' cost N, '#' blocked, 'S' start, 'F' finish.
//	@Tags			grids
//	@Param			name	path	string		true	"nama grid"
//	@Param			body	body	GridRequest	true	"baris peta ASCII"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/grids/{name} [put]
//	@Success		200	{object}	GridResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) saveGrid(w http.ResponseWriter, r *http.Request) {
	data := &GridRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if vv := validateRequest(*data); vv != nil {
		render.Render(w, r, ErrValidation(errors.New("invalid request"), vv))
		return
	}

	m, err := h.svc.SaveGrid(r.Context(), chi.URLParam(r, "name"), data.Rows)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewGridResponse(m))
}

// getGrid
//
//	@Summary		ambil grid yang tersimpan.
//	@Tags			grids
//	@Param			name	path	string	true	"nama grid"
//	@Produce		application/json
//	@Router			/grids/{name} [get]
//	@Success		200	{object}	GridResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) getGrid(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetGrid(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewGridResponse(m))
}

// listGrids
//
//	@Summary		list nama grid yang tersimpan.
//	@Tags			grids
//	@Produce		application/json
//	@Router			/grids [get]
//	@Success		200	{object}	GridListResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) listGrids(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListGrids(r.Context())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &GridListResponse{Grids: names})
}

// deleteGrid
//
//	@Summary		hapus grid.
//	@Tags			grids
//	@Param			name	path	string	true	"nama grid"
//	@Router			/grids/{name} [delete]
//	@Success		204
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) deleteGrid(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteGrid(r.Context(), chi.URLParam(r, "name")); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.NoContent(w, r)
}

// ShortestPathRequest model info
//
//	@Description	request body untuk shortest path query di grid. grid diambil dari grid_name atau rows.
//	@Description	start/finish boleh kosong kalau peta punya marker S/F.
type ShortestPathRequest struct {
	GridName        string   `json:"grid_name" validate:"required_without=Rows"`
	Rows            []string `json:"rows" validate:"required_without=GridName,dive,required"`
	Start           *Coord   `json:"start" validate:"omitempty"`
	Finish          *Coord   `json:"finish" validate:"omitempty"`
	Relaxation      string   `json:"relaxation" validate:"omitempty,oneof=minimum accumulate"`
	Frontier        string   `json:"frontier" validate:"omitempty,oneof=heap linear"`
	Heuristic       string   `json:"heuristic" validate:"omitempty,oneof=manhattan uniform-cost"`
	HeuristicOffset *float64 `json:"heuristic_offset" validate:"omitempty,gte=0"`
	Snap            bool     `json:"snap"`
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	if s.GridName == "" && len(s.Rows) == 0 {
		return errors.New("invalid request: grid_name or rows is required")
	}
	return nil
}

func (s *ShortestPathRequest) toSearchRequest() service.SearchRequest {
	return service.SearchRequest{
		GridName:        s.GridName,
		Rows:            s.Rows,
		Start:           s.Start.toCoordinate(),
		Finish:          s.Finish.toCoordinate(),
		Relaxation:      routingalgorithm.Relaxation(s.Relaxation),
		Frontier:        routingalgorithm.FrontierKind(s.Frontier),
		Heuristic:       s.Heuristic,
		HeuristicOffset: s.HeuristicOffset,
		Snap:            s.Snap,
	}
}

func (s *ShortestPathRequest) frontierLabel() string {
	if s.Frontier == "" {
		return string(routingalgorithm.FrontierHeap)
	}
	return s.Frontier
}

// ShortestPathResponse	model info
//
//	@Description	response body untuk shortest path query. path adalah polyline dari pasangan [y, x].
type ShortestPathResponse struct {
	Path     string                     `json:"path"`
	Cost     float64                    `json:"cost"`
	Found    bool                       `json:"found"`
	Route    []datastructure.Coordinate `json:"route"`
	Expanded int                        `json:"expanded"`
	Start    datastructure.Coordinate   `json:"start"`
	Finish   datastructure.Coordinate   `json:"finish"`
	Alg      string                     `json:"algorithm"`
}

func NewShortestPathResponse(res service.ShortestPathResult) *ShortestPathResponse {
	return &ShortestPathResponse{
		Path:     res.Polyline,
		Cost:     util.RoundFloat(res.Cost, 2),
		Found:    res.Found,
		Route:    res.Path,
		Expanded: res.Expanded,
		Start:    res.Start,
		Finish:   res.Finish,
		Alg:      res.Algorithm,
	}
}

// shortestPath
//
//	@Summary		shortest path query antara 2 cell di grid.
//	@Description	shortest path query antara 2 cell di grid, 4 arah tanpa diagonal. rute tidak ada dikembalikan sebagai found=false.
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"request body query shortest path antara 2 cell"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) shortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if vv := validateRequest(*data); vv != nil {
		render.Render(w, r, ErrValidation(errors.New("invalid request"), vv))
		return
	}

	h.promeMetrics.SPQueryCount.WithLabelValues(data.frontierLabel()).Inc()
	res, err := h.svc.ShortestPath(r.Context(), data.toSearchRequest())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.ExpandedCells.Observe(float64(res.Expanded))
	httplog.LogEntrySetField(r.Context(), "expanded", slog.IntValue(res.Expanded))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewShortestPathResponse(res))
}

// SessionResponse model info
//
//	@Description	state step session: frontier, closed set, cell yang terakhir di-expand dan rute kalau sudah FOUND.
type SessionResponse struct {
	SessionID string                     `json:"session_id"`
	Status    string                     `json:"status"`
	Step      int                        `json:"step"`
	Current   *datastructure.Coordinate  `json:"current,omitempty"`
	Frontier  []datastructure.Coordinate `json:"frontier"`
	Closed    []datastructure.Coordinate `json:"closed"`
	Path      []datastructure.Coordinate `json:"path,omitempty"`
	Cost      *float64                   `json:"cost,omitempty"`
	Alg       string                     `json:"algorithm"`
}

func NewSessionResponse(v service.SessionView) *SessionResponse {
	snap := v.Snapshot
	resp := &SessionResponse{
		SessionID: v.ID,
		Status:    snap.Status.String(),
		Step:      snap.Step,
		Current:   snap.Current,
		Frontier:  snap.Frontier,
		Closed:    snap.Closed,
		Path:      snap.Path,
		Alg:       v.Algorithm,
	}
	if snap.Status == routingalgorithm.Found {
		cost := util.RoundFloat(snap.Cost, 2)
		resp.Cost = &cost
	}
	return resp
}

// createSession
//
//	@Summary		buat step session. search di-step manual lewat endpoint step.
//	@Tags			sessions
//	@Param			body	body	ShortestPathRequest	true	"request body sama dengan shortest path query"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/sessions [post]
//	@Success		201	{object}	SessionResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		409	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) createSession(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if vv := validateRequest(*data); vv != nil {
		render.Render(w, r, ErrValidation(errors.New("invalid request"), vv))
		return
	}

	v, err := h.svc.CreateSession(r.Context(), data.toSearchRequest())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.ActiveSessions.Set(float64(h.svc.ActiveSessions()))
	httplog.LogEntrySetField(r.Context(), "session_id", slog.StringValue(v.ID))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, NewSessionResponse(v))
}

// stepSession
//
//	@Summary		jalankan search step sebanyak count (default 1) atau sampai status terminal.
//	@Tags			sessions
//	@Param			id		path	string	true	"session id"
//	@Param			count	query	int		false	"jumlah step"
//	@Produce		application/json
//	@Router			/navigations/sessions/{id}/step [post]
//	@Success		200	{object}	SessionResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) stepSession(w http.ResponseWriter, r *http.Request) {
	count := 1
	if q := r.URL.Query().Get("count"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid count %q", q)))
			return
		}
		count = n
	}

	id := chi.URLParam(r, "id")
	before, err := h.svc.GetSession(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	v, err := h.svc.StepSession(r.Context(), id, count)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	if n := v.Snapshot.Step - before.Snapshot.Step; n > 0 {
		h.promeMetrics.StepCount.Add(float64(n))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewSessionResponse(v))
}

// getSession
//
//	@Summary		snapshot step session tanpa menjalankan step.
//	@Tags			sessions
//	@Param			id	path	string	true	"session id"
//	@Produce		application/json
//	@Router			/navigations/sessions/{id} [get]
//	@Success		200	{object}	SessionResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) getSession(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewSessionResponse(v))
}

// deleteSession
//
//	@Summary		hapus step session.
//	@Tags			sessions
//	@Param			id	path	string	true	"session id"
//	@Router			/navigations/sessions/{id} [delete]
//	@Success		204
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.ActiveSessions.Set(float64(h.svc.ActiveSessions()))
	render.NoContent(w, r)
}

func (h *NavigationHandler) Hello(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, "Hello, World!")
}

// ErrResponse model info
//
//	@Description	model untuk error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	statusText := ""
	code := getStatusCode(err)
	switch code {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusConflict:
		statusText = "Resource conflict."
	case http.StatusBadRequest:
		statusText = "Bad request."
	default:
		statusText = "Error."
	}

	// error internal tidak dibocorkan ke client
	errText := server.MessageInternalServerError
	var ierr *server.Error
	if code != http.StatusInternalServerError {
		errText = err.Error()
	} else if errors.As(err, &ierr) {
		errText = ierr.Message()
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: code,
		StatusText:     statusText,
		ErrorText:      errText,
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ierr *server.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	} else {
		switch ierr.Code() {
		case server.ErrInternalServerError:
			return http.StatusInternalServerError
		case server.ErrNotFound:
			return http.StatusNotFound
		case server.ErrConflict:
			return http.StatusConflict
		case server.ErrBadParamInput:
			return http.StatusBadRequest
		default:
			return http.StatusInternalServerError
		}
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
