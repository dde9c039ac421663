// Package main provides the jetsweep command, which prints a leave-by
// itinerary for a flight.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/TaylorONeal/jetsweep/internal/airport"
	"github.com/TaylorONeal/jetsweep/internal/conditions"
	"github.com/TaylorONeal/jetsweep/internal/database"
	"github.com/TaylorONeal/jetsweep/internal/recent"
	"github.com/TaylorONeal/jetsweep/internal/resilience"
	"github.com/TaylorONeal/jetsweep/internal/timeline"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(zerolog.WarnLevel).
		With().
		Timestamp().
		Logger()

	err := run(context.Background(), os.Args[1:], os.Stdout, log, time.Now)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "jetsweep:", err)
		os.Exit(1)
	}
}

type options struct {
	departure    string
	airport      string
	tripType     string
	groupType    string
	transport    string
	risk         string
	driveTime    int
	driveSet     bool
	preCheck     bool
	clear        bool
	checkedBag   bool
	holiday      bool
	badWeather   bool
	noSave       bool
	dbPath       string
	timeZone     string
	verbose      bool
	listRecent   bool
	clearRecent  bool
	listAirports bool
}

func parseFlags(args []string, out io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("jetsweep", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintln(out, "Usage: jetsweep -departure 2026-10-21T12:00 [flags]")
		fmt.Fprintln(out, "       jetsweep -recent | -clear-recent | -airports")
		fmt.Fprintln(out)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.departure, "departure", "", "scheduled departure, 2006-01-02T15:04 in the local zone or RFC3339")
	fs.StringVar(&opts.airport, "airport", "", "airport code or name (blank uses a generic profile)")
	fs.StringVar(&opts.tripType, "trip", string(timeline.TripDomestic), "trip type: domestic or international")
	fs.StringVar(&opts.groupType, "group", string(timeline.GroupSolo), "group: solo or family")
	fs.StringVar(&opts.transport, "transport", string(timeline.TransportRideshare), "transport: rideshare or car")
	fs.StringVar(&opts.risk, "risk", string(timeline.RiskBalanced), "risk preference: early, balanced or risky")
	fs.IntVar(&opts.driveTime, "drive", 0, "drive time in minutes (default: the airport's typical drive)")
	fs.BoolVar(&opts.preCheck, "precheck", false, "traveller has TSA PreCheck")
	fs.BoolVar(&opts.clear, "clear", false, "traveller has CLEAR")
	fs.BoolVar(&opts.checkedBag, "bag", false, "checking a bag")
	fs.BoolVar(&opts.holiday, "holiday", false, "treat the trip as holiday travel")
	fs.BoolVar(&opts.badWeather, "weather", false, "expect bad weather")
	fs.BoolVar(&opts.noSave, "no-save", false, "do not add the search to the recent list")
	fs.StringVar(&opts.dbPath, "db", defaultDBPath(), "recent search database path")
	fs.StringVar(&opts.timeZone, "tz", "", "IANA zone for -departure (default: local)")
	fs.BoolVar(&opts.verbose, "v", false, "log storage problems")
	fs.BoolVar(&opts.listRecent, "recent", false, "list recent searches")
	fs.BoolVar(&opts.clearRecent, "clear-recent", false, "clear recent searches")
	fs.BoolVar(&opts.listAirports, "airports", false, "list known airports")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "drive" {
			opts.driveSet = true
		}
	})
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	return opts, nil
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "jetsweep.db"
	}
	return filepath.Join(dir, "jetsweep", "recent.db")
}

func run(ctx context.Context, args []string, out io.Writer, log zerolog.Logger, now func() time.Time) error {
	opts, err := parseFlags(args, out)
	if err != nil {
		return err
	}
	if opts.verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	if opts.listAirports {
		printAirports(out, airport.Default())
		return nil
	}

	if opts.listRecent || opts.clearRecent {
		recents, closeStore, err := openRecents(ctx, opts.dbPath, log, now)
		if err != nil {
			return err
		}
		defer closeStore()

		if opts.clearRecent {
			recents.Clear(ctx)
			fmt.Fprintln(out, "Recent searches cleared.")
			return nil
		}
		printRecent(out, recents.List(ctx), now())
		return nil
	}

	in, err := opts.inputs()
	if err != nil {
		return err
	}

	svc := timeline.NewService(timeline.ServiceConfig{
		Logger: log,
		Clock:  now,
	})
	res := svc.Compute(ctx, in)
	printItinerary(out, in, res)

	if !opts.noSave {
		saveRecent(ctx, opts.dbPath, log, now, recent.FromResult(in, res))
	}

	return nil
}

// saveRecent stores a search. The itinerary is already printed, so a store that
// cannot be opened is only logged.
func saveRecent(ctx context.Context, path string, log zerolog.Logger, now func() time.Time, search recent.SearchInput) {
	recents, closeStore, err := openRecents(ctx, path, log, now)
	if err != nil {
		log.Warn().Err(err).Str("db", path).Msg("recent searches unavailable, search not saved")
		return
	}
	defer closeStore()

	recents.Save(ctx, search)
}

func (o *options) inputs() (timeline.Inputs, error) {
	if o.departure == "" {
		return timeline.Inputs{}, errors.New("-departure is required")
	}

	loc := time.Local
	if o.timeZone != "" {
		var err error
		if loc, err = time.LoadLocation(o.timeZone); err != nil {
			return timeline.Inputs{}, fmt.Errorf("invalid -tz: %w", err)
		}
	}

	departure, err := timeline.ParseDateTime(o.departure, loc)
	if err != nil {
		return timeline.Inputs{}, fmt.Errorf("invalid -departure: %w", err)
	}

	in := timeline.Inputs{
		DepartureTime:  departure,
		TripType:       timeline.TripType(o.tripType),
		HasPreCheck:    o.preCheck,
		HasClear:       o.clear,
		HasCheckedBag:  o.checkedBag,
		GroupType:      timeline.GroupType(o.groupType),
		TransportType:  timeline.TransportType(o.transport),
		RiskPreference: timeline.RiskPreference(o.risk),
		IsHoliday:      o.holiday,
		IsBadWeather:   o.badWeather,
		Airport:        o.airport,
	}
	if o.driveSet {
		if o.driveTime < 0 {
			return in, fmt.Errorf("invalid -drive %d: must not be negative", o.driveTime)
		}
		drive := o.driveTime
		in.DriveTime = &drive
	}

	switch {
	case in.TripType != timeline.TripDomestic && in.TripType != timeline.TripInternational:
		return in, fmt.Errorf("invalid -trip %q", o.tripType)
	case in.GroupType != timeline.GroupSolo && in.GroupType != timeline.GroupFamily:
		return in, fmt.Errorf("invalid -group %q", o.groupType)
	case in.TransportType != timeline.TransportRideshare && in.TransportType != timeline.TransportCar:
		return in, fmt.Errorf("invalid -transport %q", o.transport)
	case in.RiskPreference != timeline.RiskEarly && in.RiskPreference != timeline.RiskBalanced && in.RiskPreference != timeline.RiskRisky:
		return in, fmt.Errorf("invalid -risk %q", o.risk)
	}

	return in, nil
}

func openRecents(ctx context.Context, path string, log zerolog.Logger, now func() time.Time) (*recent.Service, func(), error) {
	if path != database.MemorySQLite {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := database.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	repo := recent.NewSQLiteRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("prepare recent searches: %w", err)
	}

	guardCfg := resilience.DefaultGuardConfig("recent-store")
	guardCfg.MaxRetries = 1
	guardCfg.Breaker.Healthy = recent.IsDataError

	svc := recent.NewService(recent.ServiceConfig{
		Repository: repo,
		Guard:      resilience.NewGuard(guardCfg),
		Logger:     log,
		Clock:      now,
	})
	return svc, func() { _ = db.Close() }, nil
}

const clockLayout = "Mon Jan 2 3:04 PM"

func printItinerary(out io.Writer, in timeline.Inputs, res *timeline.Result) {
	profile := res.AirportProfile
	estimate := ""
	if res.IsAirportEstimate {
		estimate = " (estimated)"
	}
	fmt.Fprintf(out, "%s %s%s, %s tier\n", profile.Code, profile.Name, estimate, profile.Tier)
	fmt.Fprintf(out, "Flight departs %s\n\n", in.DepartureTime.Format(clockLayout))

	if res.IsLeaveNow {
		fmt.Fprintln(out, "Leave NOW. The recommended leave time has passed.")
	} else {
		fmt.Fprintf(out, "Leave by %s\n", res.LeaveTime.Format(clockLayout))
	}
	fmt.Fprintf(out, "Leave window %s to %s (%s before departure)\n",
		res.LeaveTimeWindow.Earliest.Format(time.Kitchen),
		res.LeaveTimeWindow.Latest.Format(time.Kitchen),
		res.LeaveTimeRange)
	fmt.Fprintf(out, "Confidence %s, %s with %d min at the gate\n\n", res.Confidence, res.StressLevel, res.StressMargin)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, s := range res.Stages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.StartTime.Format(time.Kitchen), s.Label, s.DurationRange, s.Note)
	}
	_ = tw.Flush()

	fmt.Fprintf(out, "\nConditions: %s\n", conditions.Describe(res.TravelConditions))
	for _, note := range res.TravelConditions.Notes {
		fmt.Fprintf(out, "  - %s\n", note)
	}
	if profile.HasPainPoint() {
		fmt.Fprintf(out, "Heads up: %s\n", profile.PainPoint)
	}
}

func printRecent(out io.Writer, searches []recent.Search, now time.Time) {
	if len(searches) == 0 {
		fmt.Fprintln(out, "No recent searches.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, s := range searches {
		fmt.Fprintf(tw, "%s\t%s\t%s\tleave %s\tflight %s\t%s\n",
			s.Airport,
			s.AirportName,
			s.TripType,
			s.LeaveTime.Local().Format(clockLayout),
			s.FlightTime.Local().Format(clockLayout),
			recent.FormatAge(s.CreatedAt, now))
	}
	_ = tw.Flush()
}

func printAirports(out io.Writer, reg *airport.Registry) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, opt := range reg.Options() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", opt.Code, opt.Label, strings.ToLower(string(opt.Tier)))
	}
	_ = tw.Flush()
}
