package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const dateFmt = "2006-01-02"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		addr    string
		demo    bool
	)
	cmd := &cobra.Command{
		Use:   "evoconmainpage",
		Short: "Print-friendly shift checklist reports from Evocon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath, addr, demo)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&demo, "demo", false, "serve canned records instead of calling Evocon")
	return cmd
}

func run(cfgPath, addr string, demo bool) error {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Listen = addr
	}

	logger, err := newLogger(cfg.Logging.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tpl, err := template.New("").Funcs(funcMap).ParseFiles(
		"templates/picker.gohtml",
		"templates/print.gohtml",
	)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	var src ChecklistSource = NewEvoconClient(cfg.Evocon, logger)
	if demo {
		logger.Info("demo mode: serving canned records")
		src = DemoSource{}
	}

	s := &server{cfg: cfg, log: logger, tpl: tpl, src: src}
	logger.Info("checklist print service listening", zap.String("addr", cfg.Listen))
	return http.ListenAndServe(cfg.Listen, logRequests(logger, s.routes()))
}

func newLogger(debug bool) (*zap.Logger, error) {
	c := zap.NewProductionConfig()
	if debug {
		c.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return c.Build()
}

// --- server ---

type server struct {
	cfg *Config
	log *zap.Logger
	tpl *template.Template
	src ChecklistSource
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/print", s.handlePicker)
	mux.HandleFunc("/print/render", s.handleRender)
	mux.HandleFunc("/print/export", s.handleExport)
	return mux
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<a href='/print'>Go to Print</a> | <a href='/health'>Health</a>`)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handlePicker lists the (date, shift, station) groups seen in the lookback
// window, most recent first, as links into the print view.
func (s *server) handlePicker(w http.ResponseWriter, r *http.Request) {
	today := time.Now()
	start := today.AddDate(0, 0, -s.cfg.Report.LookbackDays).Format(dateFmt)
	end := today.Format(dateFmt)

	rows, err := s.src.Fetch(r.Context(), start, end)
	if err != nil {
		s.fail(w, err)
		return
	}

	shifts := buildShiftIndex(rows)
	if len(shifts) == 0 {
		fmt.Fprintf(w, "No shifts found in last %d days.", s.cfg.Report.LookbackDays)
		return
	}
	s.render(w, "picker.gohtml", struct{ Shifts []ShiftGroup }{shifts})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.reportForKey(w, r)
	if !ok {
		return
	}
	if len(rep.Columns) == 0 {
		day, _ := time.Parse(dateFmt, rep.ShiftDate)
		start, end := fetchWindow(day)
		fmt.Fprintf(w, "No data found\n\nshiftDate=%s\nshift=%s\nstation=%s\nrange=%s → %s",
			rep.ShiftDate, rep.Shift, rep.Station, start, end)
		return
	}
	s.render(w, "print.gohtml", rep)
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.reportForKey(w, r)
	if !ok {
		return
	}
	name := fmt.Sprintf("checklist_%s_%s.xlsx", rep.ShiftDate, rep.Shift)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := writeReportXLSX(w, rep); err != nil {
		s.log.Error("xlsx export failed", zap.Error(err))
	}
}

// reportForKey decodes ?key=date|shift|station, fetches the surrounding
// days and builds the report. On failure it writes the response itself and
// returns ok=false.
func (s *server) reportForKey(w http.ResponseWriter, r *http.Request) (Report, bool) {
	parts := strings.Split(r.URL.Query().Get("key"), "|")
	if len(parts) != 3 {
		http.Error(w, "Invalid selection", http.StatusBadRequest)
		return Report{}, false
	}
	shiftDate := strings.TrimSpace(parts[0])
	shiftName := strings.TrimSpace(parts[1])
	station := strings.TrimSpace(parts[2])

	day, err := time.Parse(dateFmt, shiftDate)
	if err != nil {
		http.Error(w, fmt.Sprintf("Bad shiftDate: %v", err), http.StatusBadRequest)
		return Report{}, false
	}

	start, end := fetchWindow(day)
	rows, err := s.src.Fetch(r.Context(), start, end)
	if err != nil {
		s.fail(w, err)
		return Report{}, false
	}

	rep := buildReport(rows, shiftDate, shiftName, station, s.cfg.Report.Items, s.cfg.Report.ShiftStarts)
	return rep, true
}

// fetchWindow is the date range fetched around a selected shift date: day±1,
// so a night shift's post-midnight records (filed under the next calendar
// date upstream) are in the batch.
func fetchWindow(day time.Time) (start, end string) {
	return day.AddDate(0, 0, -1).Format(dateFmt), day.AddDate(0, 0, 1).Format(dateFmt)
}

func (s *server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("template error", zap.String("template", name), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (s *server) fail(w http.ResponseWriter, err error) {
	s.log.Error("checklist fetch failed", zap.Error(err))
	http.Error(w, "ERROR:\n"+err.Error(), http.StatusInternalServerError)
}

// --- template helpers ---

var funcMap = template.FuncMap{
	"orDash": func(s string) string {
		if s == "" {
			return "—"
		}
		return s
	},
}

// --- request logging ---

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func logRequests(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		log.Info("request",
			zap.String("req", uuid.NewString()),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("took", time.Since(start)))
	})
}
