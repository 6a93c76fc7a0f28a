package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"datachat/ai"
	"datachat/apperr"
	"datachat/chart"
	"datachat/dataset"
	"datachat/logger"
	"datachat/report"
	"datachat/session"
	"datachat/validation"
)

const module = "dashboard"

// Dashboard runs the upload, chart, chat and report steps against per-session state.
// Calls for one session are serialised; different sessions run concurrently.
type Dashboard struct {
	store        session.Store
	model        ai.Model
	systemPrompt string
	previewRows  int
	log          logger.Logger
	locks        *keyedMutex
}

type Options struct {
	// Model is nil when no API key is configured.
	Model        ai.Model
	SystemPrompt string
	PreviewRows  int
}

func NewDashboard(store session.Store, opts Options, log logger.Logger) *Dashboard {
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = 10
	}
	return &Dashboard{
		store:        store,
		model:        opts.Model,
		systemPrompt: opts.SystemPrompt,
		previewRows:  opts.PreviewRows,
		log:          log,
		locks:        newKeyedMutex(),
	}
}

// DatasetView is what the dashboard shows for an uploaded file.
type DatasetView struct {
	Name     string           `json:"name"`
	Columns  []dataset.Column `json:"columns"`
	Preview  [][]string       `json:"preview"`
	RowCount int              `json:"row_count"`
	Axes     chart.Axes       `json:"axes"`
}

type ChartView struct {
	X     string `json:"x"`
	Y     string `json:"y"`
	Title string `json:"title"`
	HTML  []byte `json:"-"`
}

// PageView is one render of the dashboard page.
type PageView struct {
	Username     string
	Banners      []session.Banner
	Dataset      *DatasetView
	Chart        *ChartView
	ChartWarning string
	Transcript   []session.Turn
	HasModel     bool
	HasAnswer    bool
}

func (d *Dashboard) HasModel() bool {
	return d.model != nil
}

// Sessions counts the sessions held by the store.
func (d *Dashboard) Sessions() (int, error) {
	n, err := d.store.Len()
	if err != nil {
		return 0, apperr.Wrap(err, apperr.CodeInternal, "failed to count sessions")
	}
	return n, nil
}

// Start creates fresh state for a new login.
func (d *Dashboard) Start(sid, username string) error {
	unlock := d.locks.Lock(sid)
	defer unlock()

	if err := d.store.Save(session.New(sid, username)); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "failed to start session")
	}
	d.log.Info(module, "session started", map[string]interface{}{"session_id": sid, "username": username})
	return nil
}

// End drops all state of the session.
func (d *Dashboard) End(sid string) error {
	unlock := d.locks.Lock(sid)
	defer unlock()

	if err := d.store.Delete(sid); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "failed to end session")
	}
	d.log.Info(module, "session ended", map[string]interface{}{"session_id": sid})
	return nil
}

// Upload parses the file and replaces the session dataset. On failure the dataset is cleared.
// A request cancelled while waiting for the session leaves the dataset untouched.
func (d *Dashboard) Upload(ctx context.Context, sid, filename string, r io.Reader) (*DatasetView, error) {
	if err := validation.UploadName(filename); err != nil {
		return nil, err
	}

	unlock := d.locks.Lock(sid)
	defer unlock()

	if err := ctx.Err(); err != nil {
		d.log.Info(module, "upload cancelled", map[string]interface{}{"session_id": sid, "filename": filename})
		return nil, apperr.Wrap(err, apperr.CodeUploadFailed, "upload cancelled")
	}

	st, err := d.load(sid)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	frame, parseErr := dataset.Load(filename, r)
	if parseErr != nil {
		st.ClearDataset()
		if err := d.save(st); err != nil {
			return nil, err
		}
		d.log.Warn(module, "upload failed", map[string]interface{}{
			"session_id": sid,
			"filename":   filename,
			"error":      parseErr,
		})
		return nil, apperr.UploadFailed(parseErr)
	}

	st.SetDataset(frame)
	if err := d.save(st); err != nil {
		return nil, err
	}
	d.log.Info(module, "dataset uploaded", map[string]interface{}{
		"session_id": sid,
		"filename":   filename,
		"rows":       len(frame.Rows),
		"columns":    len(frame.Columns),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return d.view(frame), nil
}

func (d *Dashboard) Dataset(sid string) (*DatasetView, error) {
	unlock := d.locks.Lock(sid)
	defer unlock()

	frame, err := d.frame(sid)
	if err != nil {
		return nil, err
	}
	return d.view(frame), nil
}

func (d *Dashboard) ClearDataset(sid string) error {
	unlock := d.locks.Lock(sid)
	defer unlock()

	st, err := d.load(sid)
	if err != nil {
		return err
	}
	st.ClearDataset()
	return d.save(st)
}

// Describe returns summary statistics of the numeric columns.
func (d *Dashboard) Describe(sid string) ([]dataset.ColumnStats, error) {
	unlock := d.locks.Lock(sid)
	defer unlock()

	frame, err := d.frame(sid)
	if err != nil {
		return nil, err
	}
	return frame.Describe(), nil
}

// Chart renders the bar chart for the selection and remembers it. Empty x or y
// keep the previous selection, falling back to the first eligible column.
func (d *Dashboard) Chart(sid, x, y string) (*ChartView, error) {
	unlock := d.locks.Lock(sid)
	defer unlock()

	st, err := d.load(sid)
	if err != nil {
		return nil, err
	}
	if st.Dataset == nil {
		return nil, apperr.NotFound("dataset")
	}

	view, err := d.chart(st, x, y)
	if err != nil {
		return nil, err
	}
	if err := d.save(st); err != nil {
		return nil, err
	}
	return view, nil
}

func (d *Dashboard) chart(st *session.State, x, y string) (*ChartView, error) {
	if x == "" {
		x = st.ChartX
	}
	if y == "" {
		y = st.ChartY
	}
	x, y, err := chart.AxesFor(st.Dataset).Resolve(x, y)
	if err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}
	html, err := chart.Bar(st.Dataset, x, y)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to render chart")
	}
	st.ChartX, st.ChartY = x, y
	return &ChartView{X: x, Y: y, Title: chart.Title(x, y), HTML: html}, nil
}

// Chat sends the prompt, with the dataset summary when there is one, to the model.
// The user turn is recorded even when the model fails; the assistant turn only on success.
func (d *Dashboard) Chat(ctx context.Context, sid, prompt string) (session.Turn, error) {
	if d.model == nil {
		return session.Turn{}, apperr.MissingAPIKey()
	}
	prompt, err := validation.Prompt(prompt)
	if err != nil {
		return session.Turn{}, err
	}

	unlock := d.locks.Lock(sid)
	defer unlock()

	st, err := d.load(sid)
	if err != nil {
		return session.Turn{}, err
	}

	summary := ""
	if st.Dataset != nil {
		summary = st.Dataset.Summary()
	}
	st.Transcript.Append(ai.RoleUser, prompt)

	start := time.Now()
	answer, genErr := d.model.Generate(ctx, d.systemPrompt, ai.BuildContext(summary, prompt))
	if genErr != nil {
		if err := d.save(st); err != nil {
			return session.Turn{}, err
		}
		d.log.Error(module, "model call failed", map[string]interface{}{
			"session_id": sid,
			"elapsed_ms": time.Since(start).Milliseconds(),
			"error":      genErr,
		})
		return session.Turn{}, apperr.AppFailure(genErr)
	}

	turn := st.Transcript.Append(ai.RoleAssistant, answer)
	if err := d.save(st); err != nil {
		return session.Turn{}, err
	}
	d.log.Info(module, "model answered", map[string]interface{}{
		"session_id":  sid,
		"turns":       st.Transcript.Len(),
		"elapsed_ms":  time.Since(start).Milliseconds(),
		"has_dataset": st.Dataset != nil,
	})
	return turn, nil
}

func (d *Dashboard) History(sid string) ([]session.Turn, error) {
	unlock := d.locks.Lock(sid)
	defer unlock()

	st, err := d.load(sid)
	if err != nil {
		return nil, err
	}
	return st.Transcript.All(), nil
}

func (d *Dashboard) ClearHistory(sid string) error {
	unlock := d.locks.Lock(sid)
	defer unlock()

	st, err := d.load(sid)
	if err != nil {
		return err
	}
	st.Transcript.Clear()
	return d.save(st)
}

// Report renders the latest answer as a PDF.
func (d *Dashboard) Report(sid string) ([]byte, error) {
	unlock := d.locks.Lock(sid)
	defer unlock()

	st, err := d.load(sid)
	if err != nil {
		return nil, err
	}
	last, ok := st.Transcript.LastAnswer()
	if !ok {
		return nil, apperr.NotFound("answer")
	}
	pdf, err := report.Render(last.Content)
	if err != nil {
		d.log.Error(module, "report rendering failed", map[string]interface{}{"session_id": sid, "error": err})
		return nil, apperr.AppFailure(err)
	}
	return pdf, nil
}

// Flash queues a banner for the next page render.
func (d *Dashboard) Flash(sid, level, message string) error {
	unlock := d.locks.Lock(sid)
	defer unlock()

	st, err := d.load(sid)
	if err != nil {
		return err
	}
	st.AddBanner(level, message)
	return d.save(st)
}

// FlashError queues the banner matching err.
func (d *Dashboard) FlashError(sid string, err error) error {
	level := session.BannerError
	if apperr.Is(err, apperr.CodeInvalidInput) {
		level = session.BannerWarning
	}
	return d.Flash(sid, level, err.Error())
}

// Page assembles one render of the dashboard and consumes the pending banners.
func (d *Dashboard) Page(sid, username, x, y string) (*PageView, error) {
	unlock := d.locks.Lock(sid)
	defer unlock()

	st, err := d.load(sid)
	if err != nil {
		return nil, err
	}

	page := &PageView{
		Username: username,
		Banners:  st.TakeBanners(),
		HasModel: d.HasModel(),
	}
	if st.Dataset != nil {
		page.Dataset = d.view(st.Dataset)
		if page.Dataset.Axes.CanChart() {
			view, err := d.chart(st, x, y)
			if err != nil {
				page.Banners = append(page.Banners, session.Banner{Level: session.BannerWarning, Message: err.Error()})
				view, err = d.chart(st, "", "")
			}
			if err == nil {
				page.Chart = view
			}
		} else {
			page.ChartWarning = page.Dataset.Axes.Warning
		}
	}
	page.Transcript = st.Transcript.All()
	_, page.HasAnswer = st.Transcript.LastAnswer()

	if err := d.save(st); err != nil {
		return nil, err
	}
	return page, nil
}

func (d *Dashboard) view(f *dataset.Frame) *DatasetView {
	return &DatasetView{
		Name:     f.Name,
		Columns:  f.Columns,
		Preview:  f.Head(d.previewRows),
		RowCount: len(f.Rows),
		Axes:     chart.AxesFor(f),
	}
}

func (d *Dashboard) frame(sid string) (*dataset.Frame, error) {
	st, err := d.load(sid)
	if err != nil {
		return nil, err
	}
	if st.Dataset == nil {
		return nil, apperr.NotFound("dataset")
	}
	return st.Dataset, nil
}

// load returns the session state, starting over when the store has lost it.
func (d *Dashboard) load(sid string) (*session.State, error) {
	if sid == "" {
		return nil, apperr.Unauthorized("Missing session")
	}
	st, err := d.store.Get(sid)
	if errors.Is(err, session.ErrNotFound) {
		return session.New(sid, ""), nil
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to load session")
	}
	return st, nil
}

func (d *Dashboard) save(st *session.State) error {
	if err := d.store.Save(st); err != nil {
		d.log.Error(module, "failed to save session", map[string]interface{}{"session_id": st.ID, "error": err})
		return apperr.Wrap(err, apperr.CodeInternal, fmt.Sprintf("failed to save session %s", st.ID))
	}
	return nil
}
