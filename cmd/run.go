package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"

	"boliche/airtable"
	"boliche/config"
	"boliche/events"
	"boliche/models"
	"boliche/repository"
	"boliche/service"
)

const usage = `usage: boliche <command> [flags]

commands:
  bettors    list | get | add | update | rm
  wagers     list | get | add | resolve | reassign | rm
  penalties  list | page | add | update | pay | rm | foods
  stats
`

// app bundles the wired services for the subcommand handlers.
type app struct {
	bettors   service.BettorService
	wagers    service.WagerService
	penalties service.PenaltyService
	stats     service.StatsService
}

// Run wires the application and dispatches the requested subcommand.
func Run(ctx context.Context, args []string) error {
	cfg := config.Get()
	setupLogging(cfg)

	client := airtable.New(cfg.AirtableBaseURL, cfg.AirtableAPIKey)
	client.SetMaxRetries(cfg.MaxRetries)

	bus := events.NewBus()
	subscribeNotices(bus)

	wagerRepo := repository.NewWagerRepository(client)
	bettorRepo := repository.NewBettorRepository(client, wagerRepo, cfg.BettorCacheTTL)
	penaltyRepo := repository.NewPenaltyRepository(client)

	reconciler := service.NewReconciler(bettorRepo, wagerRepo, bus)
	a := &app{
		bettors:   service.NewBettorService(bettorRepo),
		wagers:    service.NewWagerService(bettorRepo, wagerRepo, reconciler, bus),
		penalties: service.NewPenaltyService(penaltyRepo, bus),
		stats:     service.NewStatsService(bettorRepo, wagerRepo),
	}

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}
	switch args[0] {
	case "bettors":
		return a.runBettors(ctx, args[1:])
	case "wagers":
		return a.runWagers(ctx, args[1:])
	case "penalties":
		return a.runPenalties(ctx, args[1:])
	case "stats":
		return a.runStats(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func setupLogging(cfg *config.Config) {
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
}

// subscribeNotices prints non-blocking notices for domain events so the
// user sees what a write caused without any operation waiting on it.
func subscribeNotices(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBettorReconciled, func(_ context.Context, e events.Event) {
		ev := e.(events.BettorReconciledEvent)
		log.WithFields(log.Fields{
			"bettorID": ev.BettorID,
			"wagered":  ev.TotalWagered,
			"won":      ev.TotalWon,
			"balance":  ev.Balance,
		}).Info("bettor totals reconciled")
	})
	bus.Subscribe(events.EventTypeWagerResolved, func(_ context.Context, e events.Event) {
		ev := e.(events.WagerResolvedEvent)
		log.WithFields(log.Fields{
			"wagerID": ev.WagerID,
			"state":   ev.State,
			"gain":    ev.RealizedGain,
		}).Info("wager resolved")
	})
	bus.Subscribe(events.EventTypePenaltyPaid, func(_ context.Context, e events.Event) {
		ev := e.(events.PenaltyPaidEvent)
		log.WithFields(log.Fields{
			"penaltyID": ev.PenaltyID,
			"food":      ev.Food,
		}).Info("bocana settled")
	})
}

func (a *app) runBettors(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: boliche bettors list|get|add|update|rm")
	}
	switch args[0] {
	case "list":
		bettors, err := a.bettors.List(ctx)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tACTIVE\tWAGERED\tWON\tBALANCE")
		for _, b := range bettors {
			fmt.Fprintf(w, "%s\t%s\t%t\t%.2f\t%.2f\t%.2f\n",
				b.ID, b.Name, b.Active, b.TotalWagered, b.TotalWon, b.Balance)
		}
		return w.Flush()
	case "get":
		fs := flag.NewFlagSet("bettors get", flag.ContinueOnError)
		id := fs.String("id", "", "bettor record id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		b, err := a.bettors.Get(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s  email=%s phone=%s active=%t wagered=%.2f won=%.2f balance=%.2f\n",
			b.ID, b.Name, b.Email, b.Phone, b.Active, b.TotalWagered, b.TotalWon, b.Balance)
		return nil
	case "add":
		fs := flag.NewFlagSet("bettors add", flag.ContinueOnError)
		name := fs.String("name", "", "display name (required)")
		email := fs.String("email", "", "email address")
		phone := fs.String("phone", "", "phone number")
		active := fs.Bool("active", true, "active flag")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		b, err := a.bettors.Create(ctx, &models.BettorCreate{
			Name: *name, Email: *email, Phone: *phone, Active: *active,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created bettor %s (%s)\n", b.Name, b.ID)
		return nil
	case "update":
		fs := flag.NewFlagSet("bettors update", flag.ContinueOnError)
		id := fs.String("id", "", "bettor record id")
		name := fs.String("name", "", "new display name")
		email := fs.String("email", "", "new email address")
		phone := fs.String("phone", "", "new phone number")
		active := fs.String("active", "", "new active flag (true/false)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		update := &models.BettorUpdate{}
		if *name != "" {
			update.Name = name
		}
		if *email != "" {
			update.Email = email
		}
		if *phone != "" {
			update.Phone = phone
		}
		if *active != "" {
			v := *active == "true"
			update.Active = &v
		}
		b, err := a.bettors.Update(ctx, *id, update)
		if err != nil {
			return err
		}
		fmt.Printf("updated bettor %s (%s)\n", b.Name, b.ID)
		return nil
	case "rm":
		fs := flag.NewFlagSet("bettors rm", flag.ContinueOnError)
		id := fs.String("id", "", "bettor record id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := a.bettors.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted bettor %s\n", *id)
		return nil
	default:
		return fmt.Errorf("unknown bettors subcommand %q", args[0])
	}
}

func (a *app) runWagers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: boliche wagers list|get|add|resolve|reassign|rm")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("wagers list", flag.ContinueOnError)
		state := fs.String("state", "", "filter by state (Pendiente/Ganada/Perdida)")
		bettorID := fs.String("bettor", "", "filter by owning bettor id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		filter := models.WagerFilter{BettorID: *bettorID}
		if *state != "" {
			s := models.WagerState(*state)
			filter.State = &s
		}
		wagers, err := a.wagers.List(ctx, filter)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tBETTOR\tTOURNAMENT\tAMOUNT\tODDS\tSTATE\tPOTENTIAL\tREALIZED")
		for _, wg := range wagers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%s\t%.2f\t%.2f\n",
				wg.ID, wg.BettorName, wg.Tournament, wg.Amount, wg.Odds, wg.State, wg.PotentialGain, wg.RealizedGain)
		}
		return w.Flush()
	case "get":
		fs := flag.NewFlagSet("wagers get", flag.ContinueOnError)
		id := fs.String("id", "", "wager record id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		wg, err := a.wagers.Get(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s on %s  amount=%.2f odds=%.2f state=%s potential=%.2f realized=%.2f\n",
			wg.ID, wg.BettorName, wg.Tournament, wg.Amount, wg.Odds, wg.State, wg.PotentialGain, wg.RealizedGain)
		return nil
	case "add":
		fs := flag.NewFlagSet("wagers add", flag.ContinueOnError)
		bettorID := fs.String("bettor", "", "owning bettor id (required)")
		tournament := fs.String("tournament", "", "tournament name (required)")
		wagerType := fs.String("type", "", "wager type label (required)")
		description := fs.String("desc", "", "free-text description")
		amount := fs.Float64("amount", 0, "amount wagered")
		odds := fs.Float64("odds", 0, "odds (must be positive)")
		expected := fs.String("expected", "", "expected result")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		wg, err := a.wagers.Create(ctx, &models.WagerCreate{
			BettorID:       *bettorID,
			Tournament:     *tournament,
			WagerType:      *wagerType,
			Description:    *description,
			Amount:         *amount,
			Odds:           *odds,
			ExpectedResult: *expected,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created wager %s (potential gain %.2f)\n", wg.ID, wg.PotentialGain)
		return nil
	case "resolve":
		fs := flag.NewFlagSet("wagers resolve", flag.ContinueOnError)
		id := fs.String("id", "", "wager record id")
		outcome := fs.String("outcome", "", "Ganada or Perdida")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		state := models.WagerState(*outcome)
		wg, err := a.wagers.Update(ctx, *id, &models.WagerUpdate{State: &state})
		if err != nil {
			return err
		}
		fmt.Printf("wager %s is now %s (realized gain %.2f)\n", wg.ID, wg.State, wg.RealizedGain)
		return nil
	case "reassign":
		fs := flag.NewFlagSet("wagers reassign", flag.ContinueOnError)
		id := fs.String("id", "", "wager record id")
		bettorID := fs.String("bettor", "", "new owning bettor id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		wg, err := a.wagers.Update(ctx, *id, &models.WagerUpdate{BettorID: bettorID})
		if err != nil {
			return err
		}
		fmt.Printf("wager %s reassigned to %s\n", wg.ID, wg.BettorName)
		return nil
	case "rm":
		fs := flag.NewFlagSet("wagers rm", flag.ContinueOnError)
		id := fs.String("id", "", "wager record id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := a.wagers.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted wager %s\n", *id)
		return nil
	default:
		return fmt.Errorf("unknown wagers subcommand %q", args[0])
	}
}

func (a *app) runPenalties(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: boliche penalties list|page|add|update|pay|rm|foods")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("penalties list", flag.ContinueOnError)
		state := fs.String("state", "", "filter by state (Pendiente/Pagada)")
		tournament := fs.String("tournament", "", "filter by tournament")
		round := fs.Int("round", 0, "filter by round number")
		playerID := fs.String("player", "", "filter by player id (client-side)")
		playerName := fs.String("player-name", "", "filter by player name (client-side)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		filter := models.PenaltyFilter{PlayerID: *playerID, PlayerName: *playerName}
		if *state != "" {
			s := models.PenaltyState(*state)
			filter.State = &s
		}
		if *tournament != "" {
			t := models.Tournament(*tournament)
			filter.Tournament = &t
		}
		if *round > 0 {
			filter.Round = round
		}
		penalties, err := a.penalties.List(ctx, filter)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tPLAYER\tROUND\tTYPE\tSTATE\tTOURNAMENT\tFOOD")
		for _, p := range penalties {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
				p.ID, p.PlayerName, p.Round, p.Type, p.State, p.Tournament, p.Food)
		}
		return w.Flush()
	case "page":
		fs := flag.NewFlagSet("penalties page", flag.ContinueOnError)
		state := fs.String("state", "", "filter by state (Pendiente/Pagada)")
		offset := fs.String("offset", "", "continuation token from the previous page")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		filter := models.PenaltyFilter{}
		if *state != "" {
			s := models.PenaltyState(*state)
			filter.State = &s
		}
		penalties, next, err := a.penalties.Page(ctx, filter, *offset)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tPLAYER\tROUND\tTYPE\tSTATE\tTOURNAMENT\tFOOD")
		for _, p := range penalties {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
				p.ID, p.PlayerName, p.Round, p.Type, p.State, p.Tournament, p.Food)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if next != "" {
			fmt.Printf("more results: pass -offset %s\n", next)
		}
		return nil
	case "add":
		fs := flag.NewFlagSet("penalties add", flag.ContinueOnError)
		playerID := fs.String("player", "", "owning player id (required)")
		round := fs.Int("round", 1, "round number")
		ptype := fs.String("type", "", "violation type (required)")
		tournament := fs.String("tournament", "", "tournament (required)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		p, err := a.penalties.Create(ctx, &models.PenaltyCreate{
			PlayerID:   *playerID,
			Round:      *round,
			Type:       models.PenaltyType(*ptype),
			Tournament: models.Tournament(*tournament),
		})
		if err != nil {
			return err
		}
		fmt.Printf("created bocana %s (round %d, %s)\n", p.ID, p.Round, p.Type)
		return nil
	case "update":
		fs := flag.NewFlagSet("penalties update", flag.ContinueOnError)
		id := fs.String("id", "", "bocana record id")
		playerID := fs.String("player", "", "new owning player id")
		round := fs.Int("round", 0, "new round number")
		ptype := fs.String("type", "", "new violation type")
		tournament := fs.String("tournament", "", "new tournament")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		update := &models.PenaltyUpdate{}
		if *playerID != "" {
			update.PlayerID = playerID
		}
		if *round > 0 {
			update.Round = round
		}
		if *ptype != "" {
			v := models.PenaltyType(*ptype)
			update.Type = &v
		}
		if *tournament != "" {
			v := models.Tournament(*tournament)
			update.Tournament = &v
		}
		p, err := a.penalties.Update(ctx, *id, update)
		if err != nil {
			return err
		}
		fmt.Printf("updated bocana %s\n", p.ID)
		return nil
	case "pay":
		fs := flag.NewFlagSet("penalties pay", flag.ContinueOnError)
		id := fs.String("id", "", "bocana record id")
		food := fs.String("food", "", "food item settled with (required)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		p, err := a.penalties.MarkPaid(ctx, *id, *food)
		if err != nil {
			return err
		}
		fmt.Printf("bocana %s paid with %s\n", p.ID, p.Food)
		return nil
	case "rm":
		fs := flag.NewFlagSet("penalties rm", flag.ContinueOnError)
		id := fs.String("id", "", "bocana record id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := a.penalties.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted bocana %s\n", *id)
		return nil
	case "foods":
		foods, err := a.penalties.FoodOptions(ctx)
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(foods, "\n"))
		return nil
	default:
		return fmt.Errorf("unknown penalties subcommand %q", args[0])
	}
}

func (a *app) runStats(ctx context.Context) error {
	stats, err := a.stats.GetStats(ctx)
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintf(w, "bettors\t%d (%d active)\n", stats.TotalBettors, stats.ActiveBettors)
	fmt.Fprintf(w, "wagers\t%d (%d pending, %d won, %d lost)\n",
		stats.TotalWagers, stats.PendingWagers, stats.WonWagers, stats.LostWagers)
	fmt.Fprintf(w, "amount wagered\t%.2f\n", stats.TotalAmountWagered)
	fmt.Fprintf(w, "pending amount\t%.2f\n", stats.PendingAmount)
	fmt.Fprintf(w, "pending potential gain\t%.2f\n", stats.PendingPotentialGain)
	fmt.Fprintf(w, "total realized gain\t%.2f\n", stats.TotalRealizedGain)
	return w.Flush()
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
