package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/bazaar-agents/haggle/advisor"
	"github.com/bazaar-agents/haggle/archive"
	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/engine"
	"github.com/bazaar-agents/haggle/observability"
	"github.com/bazaar-agents/haggle/report"
)

func main() {
	var (
		mode        = flag.String("mode", "buy", "Negotiation mode: buy (AI buyer, you sell), sell (AI seller, you buy), match (AI versus AI)")
		configFile  = flag.String("config", "", "Path to negotiation config JSON file")
		productName = flag.String("product", "", "Demo or archived product to haggle over (default depends on mode)")
		limit       = flag.Int("limit", 0, "Buyer budget, or the seller minimum in sell mode; 0 uses the product default")
		minimum     = flag.Int("minimum", 0, "Seller minimum price in match mode; 0 uses the product default")
		rounds      = flag.Int("rounds", 0, "Maximum negotiation rounds (overrides config)")
		advisorKind = flag.String("advisor", "", "Advisory provider: ollama, ollama-exec, or scripted (overrides config)")
		model       = flag.String("model", "", "Advisory model name (overrides config)")
		persona     = flag.String("persona", "", "Negotiator persona (overrides config)")
		archiveDir  = flag.String("archive", "", "Directory for product and transcript archives (overrides config)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	if *mode != "buy" && *mode != "sell" && *mode != "match" {
		fmt.Fprintln(os.Stderr, "Usage: haggle -mode buy|sell|match [-product <name>] [-limit <price>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := engine.DefaultConfig()
	if *configFile != "" {
		loaded, err := engine.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	if *rounds > 0 {
		cfg.MaxRounds = *rounds
	}
	if *advisorKind != "" {
		cfg.Advisor.Kind = *advisorKind
	}
	if *model != "" {
		cfg.Advisor.Model = *model
	}
	if *persona != "" {
		cfg.Persona = *persona
	}
	if *archiveDir != "" {
		cfg.Archive.Path = *archiveDir
	}

	// Round events go to stderr so they never interleave with the chat
	// itself; -verbose lowers the threshold to the per-round records.
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	observer := observability.NewSlogObserver(logger)
	observability.RegisterObserver("slog", observer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := archive.NewStore(&cfg.Archive)
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}

	name := *productName
	if name == "" && cfg.Product.Name == "" {
		name = defaultLotName(*mode)
	}
	lot := demoLot{product: cfg.Product}
	if name != "" {
		lot, err = resolveLot(ctx, name, store)
		if err != nil {
			log.Fatalf("Failed to resolve product %q: %v", name, err)
		}
		cfg.Product = lot.product
	}

	switch *mode {
	case "buy":
		cfg.Party = trade.PartyBuyer
		if *limit > 0 {
			cfg.Limit = *limit
		} else if cfg.Limit == 0 {
			cfg.Limit = lot.buyerBudget()
		}
		runChat(ctx, &cfg, observer, store)
	case "sell":
		cfg.Party = trade.PartySeller
		if *limit > 0 {
			cfg.Limit = *limit
		} else if cfg.Limit == 0 {
			cfg.Limit = lot.sellerMinimum()
		}
		runChat(ctx, &cfg, observer, store)
	case "match":
		buyerCfg := cfg
		buyerCfg.Party = trade.PartyBuyer
		buyerCfg.Limit = lot.buyerBudget()
		if *limit > 0 {
			buyerCfg.Limit = *limit
		}

		sellerCfg := cfg
		sellerCfg.Party = trade.PartySeller
		sellerCfg.Limit = lot.sellerMinimum()
		if *minimum > 0 {
			sellerCfg.Limit = *minimum
		}

		runMatch(ctx, &buyerCfg, &sellerCfg, observer, store)
	}
}

// runChat plays one side interactively: the engine negotiates, the human
// types the counterpart's lines.
func runChat(ctx context.Context, cfg *engine.Config, observer observability.Observer, store archive.Store) {
	eng, err := engine.New(cfg, engine.WithObserver(observer))
	if err != nil {
		log.Fatalf("Failed to start negotiation: %v", err)
	}

	aiLabel, humanLabel := "AI Buyer", "You (Seller)"
	if cfg.Party == trade.PartySeller {
		aiLabel, humanLabel = "AI Seller", "You (Buyer)"
	}

	fmt.Printf("=== Chat with the %s (%s) ===\n", aiLabel, advisorLabel(&cfg.Advisor))
	fmt.Printf("Maximum Rounds: %d\n", cfg.MaxRounds)
	if cfg.Party == trade.PartyBuyer {
		fmt.Println("Type your message as seller (include price if you want). Type 'exit' to quit.")
	} else {
		fmt.Println("You are the buyer. Type your offer or message. Type 'exit' to quit.")
	}
	fmt.Println()

	term := &console{
		in:         bufio.NewScanner(os.Stdin),
		out:        os.Stdout,
		aiLabel:    aiLabel,
		humanLabel: humanLabel,
	}

	result, err := eng.Run(ctx, term)
	if err != nil && !errors.Is(err, engine.ErrNoDeal) {
		log.Fatalf("Negotiation failed: %v", err)
	}

	switch {
	case result.Status == trade.StatusAccepted:
		printLastTurn(aiLabel, result)
		fmt.Printf("\n--- DEAL MADE at ₹%d! ---\n", result.FinalPrice)
	case errors.Is(err, engine.ErrNoDeal):
		printLastTurn(aiLabel, result)
		fmt.Println("\n--- MAX ROUNDS REACHED — Negotiation ended without a deal. ---")
	default:
		// Abandoned from the prompt; no summary, matching the exit flow.
		archiveOutcome(ctx, store, eng, result)
		return
	}

	summary := report.Build(eng.Session().Snapshot(), result.Status, result.FinalPrice)
	fmt.Println()
	fmt.Print(summary.Render())

	archiveOutcome(ctx, store, eng, result)
}

// runMatch plays the AI buyer against the AI seller and reports the outcome
// from the accepting side's viewpoint.
func runMatch(ctx context.Context, buyerCfg, sellerCfg *engine.Config, observer observability.Observer, store archive.Store) {
	buyer, err := engine.New(buyerCfg, engine.WithObserver(observer))
	if err != nil {
		log.Fatalf("Failed to start buyer: %v", err)
	}
	seller, err := engine.New(sellerCfg, engine.WithObserver(observer))
	if err != nil {
		log.Fatalf("Failed to start seller: %v", err)
	}

	fmt.Printf("=== AI Buyer vs AI Seller (%s) ===\n", advisorLabel(&buyerCfg.Advisor))
	fmt.Printf("Product: %d x %s at market ₹%d\n",
		buyerCfg.Product.Quantity, buyerCfg.Product.Name, buyerCfg.Product.BaseMarketPrice)
	fmt.Printf("Buyer Budget: ₹%d | Seller Minimum: ₹%d\n", buyerCfg.Limit, sellerCfg.Limit)
	fmt.Printf("Maximum Rounds: %d\n", buyerCfg.MaxRounds)

	match, err := engine.RunMatch(ctx, buyer, seller)
	switch {
	case errors.Is(err, engine.ErrNoDeal):
		fmt.Println("\n--- MAX ROUNDS REACHED — Negotiation ended without a deal. ---")
	case err != nil:
		log.Fatalf("Match failed: %v", err)
	default:
		fmt.Printf("\n--- DEAL MADE at ₹%d! ---\n", match.FinalPrice)
		fmt.Printf("Accepted by the %s in round %d.\n", match.AcceptedBy, match.Rounds)
	}

	// The accepting engine's session holds the complete conversation; the
	// other side never saw the final line.
	view := buyer
	if match.AcceptedBy == trade.PartySeller {
		view = seller
	}
	result := view.Result()
	summary := report.Build(view.Session().Snapshot(), result.Status, match.FinalPrice)
	fmt.Println()
	fmt.Print(summary.Render())

	archiveOutcome(ctx, store, buyer, buyer.Result())
	archiveOutcome(ctx, store, seller, seller.Result())
}

// console adapts the terminal to the engine's counterpart interface: it
// prints the negotiator's latest line, prompts, and returns what the human
// typed. EOF on stdin ends the chat like an exit line.
type console struct {
	in         *bufio.Scanner
	out        io.Writer
	aiLabel    string
	humanLabel string
}

func (c *console) Reply(_ context.Context, price int, message string) (string, error) {
	if message != "" {
		fmt.Fprintf(c.out, "%s: ₹%d — %s\n", c.aiLabel, price, message)
	}
	fmt.Fprintf(c.out, "%s: ", c.humanLabel)

	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Exiting chat...")
		return "", io.EOF
	}

	line := strings.TrimSpace(c.in.Text())
	if engine.IsExit(line) {
		fmt.Fprintln(c.out, "Exiting chat...")
	}
	return line, nil
}

// printLastTurn echoes the turn that ended the negotiation. The console only
// prints a line when asking for the next reply, so the closing line would
// otherwise be lost.
func printLastTurn(aiLabel string, result *engine.Result) {
	if len(result.Turns) == 0 {
		return
	}
	last := result.Turns[len(result.Turns)-1]
	fmt.Printf("%s: ₹%d — %s\n", aiLabel, last.OwnPrice, last.OwnText)
}

// archiveOutcome persists the finished transcript when archiving is
// configured and at least one round was played.
func archiveOutcome(ctx context.Context, store archive.Store, eng *engine.Engine, result *engine.Result) {
	if store == nil || result.Rounds == 0 {
		return
	}
	transcript := archive.NewTranscript(eng.Session().Snapshot(), result.Status, result.FinalPrice)
	if err := archive.SaveTranscript(ctx, store, transcript); err != nil {
		log.Printf("Failed to archive transcript: %v", err)
	}
}

// advisorLabel names the advisory backend for the chat banner.
func advisorLabel(cfg *advisor.Config) string {
	if cfg.Kind == advisor.KindScripted || cfg.Model == "" {
		return cfg.Kind
	}
	return cfg.Model
}
