package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gdqwidget/broadcaster"
	"gdqwidget/config"
	"gdqwidget/logger"
	"gdqwidget/model"
	"gdqwidget/render"
	"gdqwidget/schedule"
	"gdqwidget/widget"

	"github.com/urfave/cli"
)

var (
	configPath string
	eventID    string
	baseURL    string
	listenAddr string
	timezone   string
	asJSON     bool
	outputPath string

	eventFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "event, e",
			Usage:       "marathon event id, e.g. sgdq2024",
			EnvVar:      "GDQ_EVENT",
			Destination: &eventID,
		},
		cli.StringFlag{
			Name:        "base-url",
			Usage:       "schedule API base url (default: " + config.DefaultBaseURL + ")",
			EnvVar:      "GDQ_BASE_URL",
			Destination: &baseURL,
		},
		cli.StringFlag{
			Name:        "timezone, z",
			Usage:       "IANA time zone for displayed start times (default: local)",
			EnvVar:      "GDQ_TIMEZONE",
			Destination: &timezone,
		},
	}
)

func main() {
	os.Exit(run(os.Args, os.Stderr))
}

// run executes the app and returns the process exit code. Exit errors are
// reported by the cli package itself; anything else is written to stderr.
func run(args []string, stderr io.Writer) int {
	err := newApp().Run(args)
	if err == nil {
		return 0
	}
	if _, ok := err.(cli.ExitCoder); !ok {
		fmt.Fprintf(stderr, "gdqwidget: %v\n", err)
	}
	return 1
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "gdqwidget"
	app.Usage = "countdown to the next runs of a speedrun marathon"
	app.UsageText = "gdqwidget [--config FILE] <command> [arguments...]"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "path to a YAML config file",
			EnvVar:      "GDQ_CONFIG",
			Destination: &configPath,
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "serve",
			Usage:  "fetch the schedule once and serve the live widget",
			Action: serve,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:        "listen, l",
					Usage:       "address to listen on (default: " + config.DefaultListenAddr + ")",
					EnvVar:      "GDQ_LISTEN",
					Destination: &listenAddr,
				},
			}, eventFlags...),
		},
		{
			Name:   "show",
			Usage:  "fetch the schedule and print the current window once",
			Action: show,
			Flags: append([]cli.Flag{
				cli.BoolFlag{
					Name:        "json, j",
					Usage:       "print the view as JSON",
					Destination: &asJSON,
				},
			}, eventFlags...),
		},
		{
			Name:   "calendar",
			Usage:  "fetch the schedule and write it as an iCalendar file",
			Action: calendar,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:        "output, o",
					Usage:       "file to write (default: stdout)",
					Destination: &outputPath,
				},
			}, eventFlags...),
		},
	}
	return app
}

// loadConfig reads the config file and applies flag overrides on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if eventID != "" {
		cfg.EventID = eventID
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if timezone != "" {
		if err := cfg.SetTimezone(timezone); err != nil {
			return nil, err
		}
	}
	if cfg.EventID == "" {
		return nil, errors.New("no event id provided")
	}
	return cfg, nil
}

func newLogger() logger.Logger {
	return logger.NewStandardLogger(log.New(os.Stderr, "", log.LstdFlags))
}

// fetchMarathon does the one schedule fetch of a run. Any failure ends the command.
func fetchMarathon(ctx context.Context, cfg *config.Config, lg logger.Logger) (model.Marathon, error) {
	client := schedule.NewClient(cfg.BaseURL, &http.Client{}, lg)
	marathon, err := client.LoadMarathon(ctx, cfg.EventID)
	if err != nil {
		return model.Marathon{}, fmt.Errorf("failed to load schedule: %w", err)
	}
	lg.Info("Successfully loaded %d runs for %s.", len(marathon.Schedule), marathon.EventName)
	return marathon, nil
}

// newWidget fetches the schedule and wires the server and refresher around it.
// Nothing is built when the fetch fails, so no view is ever rendered or published.
func newWidget(ctx context.Context, cfg *config.Config, lg logger.Logger) (*server, *widget.Refresher, error) {
	marathon, err := fetchMarathon(ctx, cfg, lg)
	if err != nil {
		return nil, nil, err
	}

	s := &server{
		eventID:     cfg.EventID,
		marathon:    marathon,
		fetchedAt:   time.Now(),
		state:       model.NewEmptyWidgetState(),
		broadcaster: broadcaster.NewBroadcaster(lg),
		log:         lg,
	}
	refresher := widget.NewRefresher(marathon, s.fetchedAt, render.NewRenderer(cfg.Location()), cfg.RefreshInterval(), s.publish, lg)
	return s, refresher, nil
}

func serve(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	lg := newLogger()
	defer lg.Close()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, refresher, err := newWidget(sigCtx, cfg, lg)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	refresher.Start()
	defer refresher.Stop()

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: s.routes(),
	}
	serveErr := make(chan error, 1)
	go func() {
		lg.Info("Serving widget for %s on %s", cfg.EventID, cfg.ListenAddr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		lg.Error("HTTP server failed: %v", err)
		return cli.NewExitError(err.Error(), 1)
	case <-sigCtx.Done():
	}

	lg.Info("Shutting down...")
	s.broadcaster.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		lg.Warning("HTTP shutdown: %v", err)
	}
	return nil
}

func show(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	lg := newLogger()
	defer lg.Close()

	marathon, err := fetchMarathon(context.Background(), cfg, lg)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	now := time.Now()
	view := render.NewRenderer(cfg.Location()).Render(marathon, now, now)
	if err := writeView(os.Stdout, view, asJSON); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func calendar(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	lg := newLogger()
	defer lg.Close()

	marathon, err := fetchMarathon(context.Background(), cfg, lg)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer f.Close()
		out = f
	}
	if err := schedule.WriteCalendar(out, cfg.EventID, marathon, time.Now()); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}
