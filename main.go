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

	"github.com/cashflow-zero/client/internal/api"
	"github.com/cashflow-zero/client/internal/config"
	"github.com/cashflow-zero/client/internal/export"
	"github.com/cashflow-zero/client/internal/models"
	"github.com/cashflow-zero/client/internal/session"
	"github.com/cashflow-zero/client/internal/settings"
	"github.com/cashflow-zero/client/internal/types"
	"github.com/cashflow-zero/client/internal/viewmodel"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Log format can be explicitly set. It defaults to human readable
	// since this runs in a terminal, not behind a log collector.
	output := io.Writer(os.Stderr)
	if cfg.LogFormat != "json" {
		output = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if err := run(cfg, os.Args[1:]); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) || errors.Is(err, session.ErrNoSession) {
			log.Fatal().Msg("not signed in: set API_TOKEN to a valid session token and try again")
		}

		log.Fatal().Msg(err.Error())
	}
}

type app struct {
	client   *api.Client
	session  *session.Store
	settings *settings.Store
}

func run(cfg config.Config, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	sessions := session.NewStore(api.StaticToken(cfg.APIToken))
	client := api.New(cfg.APIURL, sessions)

	if err := sessions.Check(ctx); err != nil {
		return err
	}

	prefs := settings.NewStore(client)
	prefs.Load(ctx)

	a := &app{client: client, session: sessions, settings: prefs}

	command := "dashboard"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "dashboard":
		return a.dashboard(ctx, args)
	case "forecast":
		return a.forecast(ctx, args)
	case "transactions":
		return a.transactions(ctx, args)
	case "rules":
		return a.rules(ctx, args)
	case "reminders":
		return a.reminders(ctx, args)
	case "export":
		return a.export(ctx, args)
	case "import":
		return a.importCSV(ctx, args)
	case "process-rules":
		return a.processRules(ctx)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) dashboard(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	prefs := a.settings.Settings()
	days := flags.Int("days", prefs.ForecastPeriod, "forecast period in days")
	safe := flags.Bool("safe", prefs.DefaultSafeMode, "count only guaranteed income")
	if err := flags.Parse(args); err != nil {
		return err
	}

	dash := viewmodel.NewDashboard(a.client)
	dash.Refresh(ctx, *days, *safe)

	if user := a.session.User(); user != nil {
		fmt.Printf("Signed in as %s\n\n", user.Email)
	}

	forecast := dash.Forecast
	if forecast.Phase() == viewmodel.PhaseError {
		fmt.Println(forecast.ErrorMessage())
	} else {
		data := forecast.Data()
		fmt.Printf("Current balance:  %s\n", forecast.DisplayBalance().StringFixed(2))
		fmt.Printf("Safe to spend:    %s\n", data.SafeToSpend.StringFixed(2))
		fmt.Printf("Projected (%dd):  %s\n", data.ForecastDays, data.ProjectedBalance.StringFixed(2))
		if forecast.HasLowBalanceWarning() {
			fmt.Printf("Warning: balance drops below %s within the forecast period\n", prefs.LowBalanceWarning.StringFixed(2))
		}
	}

	fmt.Println("\nUpcoming transactions:")
	if dash.RecentFailed() {
		fmt.Println("  failed to load transactions")
		return nil
	}

	recent := dash.RecentTransactions()
	if len(recent) == 0 {
		fmt.Println("  none - add your first transaction to get started")
		return nil
	}

	for _, t := range recent {
		printTransaction(t, prefs.DateFormat)
	}

	return nil
}

func (a *app) forecast(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("forecast", flag.ContinueOnError)
	prefs := a.settings.Settings()
	days := flags.Int("days", prefs.ForecastPeriod, "forecast period in days")
	safe := flags.Bool("safe", prefs.DefaultSafeMode, "count only guaranteed income")
	if err := flags.Parse(args); err != nil {
		return err
	}

	forecast := viewmodel.NewForecast(a.client)
	forecast.Refresh(ctx, *days, *safe)

	if forecast.Phase() == viewmodel.PhaseError {
		return errors.New(forecast.ErrorMessage())
	}

	data := forecast.Data()
	mode := "normal"
	if data.SafeMode {
		mode = "safe"
	}

	fmt.Printf("Forecast for %d days (%s mode)\n\n", data.ForecastDays, mode)
	fmt.Printf("Current balance:   %s\n", forecast.DisplayBalance().StringFixed(2))
	fmt.Printf("Projected balance: %s\n", data.ProjectedBalance.StringFixed(2))
	fmt.Printf("Safe to spend:     %s\n", data.SafeToSpend.StringFixed(2))

	if low, ok := forecast.LowestDay(); ok {
		fmt.Printf("Lowest day:        %s (%s)\n", formatDate(low.Date, prefs.DateFormat), low.ClosingBalance.StringFixed(2))
	}

	for _, warning := range data.Warnings {
		fmt.Printf("Warning %s: %s\n", formatDate(warning.Date, prefs.DateFormat), warning.Message)
	}

	if hold := forecast.TotalHold(); hold.IsPositive() {
		fmt.Printf("\nHold back %s across your accounts:\n", hold.StringFixed(2))
		for _, account := range data.BankHoldSummary {
			fmt.Printf("  %s: %s (%d expenses)\n", account.BankAccountName, account.MinimumHold.StringFixed(2), account.ExpenseCount)
			for _, group := range forecast.HoldGroups(account.BankAccountID) {
				fmt.Printf("    %s: %s\n", group.TagName, group.Total.StringFixed(2))
			}
		}
	}

	return nil
}

func (a *app) transactions(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("transactions", flag.ContinueOnError)
	typeFilter := flags.String("type", "", "filter by type: income or expense")
	from := flags.String("from", "", "start date (YYYY-MM-DD)")
	to := flags.String("to", "", "end date (YYYY-MM-DD)")
	search := flags.String("search", "", "search in description and amount")
	if err := flags.Parse(args); err != nil {
		return err
	}

	filters := viewmodel.Filters{Search: *search}

	switch strings.ToLower(*typeFilter) {
	case "":
		filters.Type = viewmodel.FilterAll
	case "income":
		filters.Type = viewmodel.FilterIncome
	case "expense":
		filters.Type = viewmodel.FilterExpense
	default:
		return fmt.Errorf("unknown type filter %q", *typeFilter)
	}

	if *from != "" && *to != "" {
		start, err := types.ParseDate(*from)
		if err != nil {
			return err
		}
		end, err := types.ParseDate(*to)
		if err != nil {
			return err
		}
		filters.Range = viewmodel.DateRange{Start: start, End: end}
	} else if *from != "" || *to != "" {
		return errors.New("-from and -to must be used together")
	}

	list := viewmodel.NewTransactionList(a.client)
	list.Apply(ctx, filters)

	prefs := a.settings.Settings()
	switch list.EmptyState() {
	case viewmodel.EmptyFailed:
		return errors.New("failed to load transactions")
	case viewmodel.EmptyNoData:
		fmt.Println("No upcoming transactions - add your first transaction to get started")
	case viewmodel.EmptyFiltered:
		fmt.Println("No transactions match the current filters")
	default:
		for _, t := range list.Rows() {
			printTransaction(t, prefs.DateFormat)
		}
	}

	return nil
}

func (a *app) rules(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("rules", flag.ContinueOnError)
	deleteID := flags.String("delete", "", "delete the rule with this id")
	yes := flags.Bool("yes", false, "confirm destructive operations")
	if err := flags.Parse(args); err != nil {
		return err
	}

	list := viewmodel.NewRuleList(a.client)

	if *deleteID != "" {
		if !*yes {
			return errors.New("deleting a rule requires -yes")
		}

		id, err := uuid.Parse(*deleteID)
		if err != nil {
			return err
		}

		if err := list.Delete(ctx, id); err != nil {
			return err
		}

		fmt.Println("Rule deleted")
		return nil
	}

	list.Refresh(ctx)
	if list.Phase() == viewmodel.PhaseError {
		return errors.New("failed to load recurring rules")
	}

	rules := list.Rules()
	if len(rules) == 0 {
		fmt.Println("No recurring rules")
		return nil
	}

	for _, rule := range rules {
		state := humanize(string(rule.Frequency))
		if list.IsExpired(rule) {
			state = "Expired"
		} else if !rule.Active {
			state = "Paused"
		}

		fmt.Printf("%s  %-10s %10s %s  %s\n", rule.ID, state, rule.Amount.StringFixed(2), rule.CurrencyCode, rule.Description)
	}

	return nil
}

func (a *app) reminders(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("reminders", flag.ContinueOnError)
	days := flags.Int("days", 7, "look ahead this many days")
	if err := flags.Parse(args); err != nil {
		return err
	}

	reminders, err := a.client.Reminders(ctx, *days)
	if err != nil {
		return err
	}

	if len(reminders) == 0 {
		fmt.Printf("Nothing due in the next %d days\n", *days)
		return nil
	}

	for _, r := range reminders {
		fmt.Printf("%s  in %d days  %s %s  %s\n", r.DueDate, r.DaysUntilDue, r.Amount.StringFixed(2), r.CurrencyCode, r.Description)
	}

	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	out := flags.String("o", export.Filename(types.Today()), "output file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	transactions, err := a.client.Transactions(ctx)
	if err != nil {
		return err
	}

	file, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := export.Write(file, transactions); err != nil {
		// Remove the empty file so a failed export leaves nothing behind.
		os.Remove(*out)
		return err
	}

	fmt.Printf("Exported %d transactions to %s\n", len(transactions), *out)
	return nil
}

func (a *app) importCSV(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: import <file.csv>")
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	summary, err := a.client.ImportCSV(ctx, filepath.Base(args[0]), file)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d rows: %d imported, %d skipped, %d failed\n",
		summary.TotalProcessed, summary.ImportedCount, summary.SkippedCount, summary.ErrorCount)
	return nil
}

func (a *app) processRules(ctx context.Context) error {
	list := viewmodel.NewRuleList(a.client)
	if err := list.ProcessDue(ctx); err != nil {
		return err
	}

	fmt.Println("Processed all due recurring rules")
	return nil
}

func printTransaction(t models.Transaction, dateFormat string) {
	fmt.Printf("%s  %-7s %10s %s  %s  [%s]\n",
		formatDate(t.TransactionDate, dateFormat),
		humanize(string(t.Type)),
		t.Amount.StringFixed(2),
		t.CurrencyCode,
		t.Description,
		humanize(t.Status()),
	)
}

var titleCaser = cases.Title(language.English)

// humanize turns backend enum values like HALF_YEARLY into Half Yearly.
func humanize(value string) string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(value, "_", " ")))
}

// formatDate renders a date according to the user's date format preference.
func formatDate(d types.Date, format string) string {
	switch format {
	case "MM/DD/YYYY":
		return d.Format("01/02/2006")
	case "YYYY-MM-DD":
		return d.String()
	default:
		return d.Format("02/01/2006")
	}
}
