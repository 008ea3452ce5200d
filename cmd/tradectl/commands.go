package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"papertrade/internal/config"
	"papertrade/internal/history"
	"papertrade/internal/ledger"
	"papertrade/internal/market"
	"papertrade/internal/notify"
	"papertrade/internal/storage"
)

var commands = []subcommands.Command{
	&usersCmd{},
	&portfolioCmd{},
	&transactionsCmd{},
	&stocksCmd{},
	&historyCmd{},
}

// marketFlag is shared by commands that price holdings.
type marketFlag struct {
	file string
}

func (m *marketFlag) register(f *flag.FlagSet) {
	f.StringVar(&m.file, "market", "", "TOML market snapshot. Defaults to MARKET_DATA_FILE, then the built-in quotes.")
}

func (m *marketFlag) load() (*market.Snapshot, error) {
	file := m.file
	if file == "" {
		file = config.Get().MarketDataFile
	}
	if file == "" {
		return market.Default(), nil
	}
	return market.LoadFile(file)
}

func openStore(ctx context.Context) (storage.LedgerStore, error) {
	return storage.Open(ctx, config.Get().Storage)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

// --- users ---

type usersCmd struct{}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "list every account with its cash balance" }
func (*usersCmd) Usage() string {
	return `tradectl users

  Lists accounts in the configured store, sorted by username.
`
}
func (*usersCmd) SetFlags(*flag.FlagSet) {}

func (*usersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	if err := listUsers(ctx, store, os.Stdout); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func listUsers(ctx context.Context, store storage.LedgerStore, w io.Writer) error {
	names, err := store.List(ctx)
	if err != nil {
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "USERNAME\tBALANCE\tHOLDINGS\tTRADES\tCREATED")
	for _, name := range names {
		acct, err := store.Get(ctx, name)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			acct.Username, notify.FormatUSD(acct.Balance), len(acct.Holdings), len(acct.Transactions),
			acct.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

// --- portfolio ---

type portfolioCmd struct {
	user   string
	market marketFlag
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "value a user's positions at current quotes" }
func (*portfolioCmd) Usage() string {
	return `tradectl portfolio -u <username> [-market <file>]

  Prints cash, each position with gain/loss, and the total account value.
`
}

func (p *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "Username to report on.")
	p.market.register(f)
}

func (p *portfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.user == "" {
		fmt.Fprintln(os.Stderr, "Error: -u is required.")
		return subcommands.ExitUsageError
	}
	snapshot, err := p.market.load()
	if err != nil {
		return fail(err)
	}
	store, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	if err := printPortfolio(ctx, store, ledger.New(snapshot), p.user, os.Stdout); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func printPortfolio(ctx context.Context, store storage.LedgerStore, l *ledger.Ledger, username string, w io.Writer) error {
	acct, err := store.Get(ctx, username)
	if err != nil {
		return err
	}
	v := l.Value(acct.Portfolio)

	tw := newTable(w)
	fmt.Fprintln(tw, "SYMBOL\tSHARES\tAVG PRICE\tPRICE\tVALUE\tGAIN/LOSS\t%")
	for _, pos := range v.Positions {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s%%\n",
			pos.Symbol, pos.Shares, notify.FormatUSD(pos.AvgPrice), notify.FormatUSD(pos.CurrentPrice),
			notify.FormatUSD(pos.PositionValue), notify.FormatUSD(pos.GainLoss), pos.GainLossPercent.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nCash:      %s\n", notify.FormatUSD(v.Balance))
	fmt.Fprintf(w, "Holdings:  %s\n", notify.FormatUSD(v.HoldingsValue))
	fmt.Fprintf(w, "Total:     %s\n", notify.FormatUSD(v.TotalValue))
	return nil
}

// --- transactions ---

type transactionsCmd struct {
	user string
	head int
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list a user's trades, newest first" }
func (*transactionsCmd) Usage() string {
	return `tradectl transactions -u <username> [-head <n>]

  Lists the trade log of one account, newest first.
`
}

func (p *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "Username to report on.")
	f.IntVar(&p.head, "head", 0, "Show only the newest N transactions.")
}

func (p *transactionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.user == "" {
		fmt.Fprintln(os.Stderr, "Error: -u is required.")
		return subcommands.ExitUsageError
	}
	store, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	if err := printTransactions(ctx, store, p.user, p.head, os.Stdout); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func printTransactions(ctx context.Context, store storage.LedgerStore, username string, head int, w io.Writer) error {
	acct, err := store.Get(ctx, username)
	if err != nil {
		return err
	}
	txs := acct.NewestFirst()
	if head > 0 && head < len(txs) {
		txs = txs[:head]
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "TIME\tTYPE\tSYMBOL\tQTY\tPRICE\tTOTAL\tID")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			tx.Timestamp.UTC().Format("2006-01-02 15:04:05"), tx.Type, tx.Symbol, tx.Quantity,
			notify.FormatUSD(tx.Price), notify.FormatUSD(tx.Total), tx.ID)
	}
	return tw.Flush()
}

// --- stocks ---

type stocksCmd struct {
	market marketFlag
}

func (*stocksCmd) Name() string     { return "stocks" }
func (*stocksCmd) Synopsis() string { return "list quoted stocks" }
func (*stocksCmd) Usage() string {
	return `tradectl stocks [-market <file>]

  Lists the market snapshot the API would serve.
`
}

func (p *stocksCmd) SetFlags(f *flag.FlagSet) { p.market.register(f) }

func (p *stocksCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshot, err := p.market.load()
	if err != nil {
		return fail(err)
	}
	if err := printStocks(snapshot, os.Stdout); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func printStocks(provider market.Provider, w io.Writer) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "SYMBOL\tNAME\tPRICE\tCHANGE")
	for _, s := range provider.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Symbol, s.Name, notify.FormatUSD(s.Price), s.Change.StringFixed(2))
	}
	return tw.Flush()
}

// --- history ---

type historyCmd struct {
	symbol    string
	timeframe string
	png       string
	market    marketFlag
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "print or chart a synthetic price series" }
func (*historyCmd) Usage() string {
	return `tradectl history -s <symbol> [-t 5m|1w|1m] [-png <file>] [-market <file>]

  Synthesizes the decorative series shown on the stock page. With -png the
  series is rendered as a chart instead of printed.
`
}

func (p *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "s", "", "Ticker symbol.")
	f.StringVar(&p.timeframe, "t", string(history.DefaultTimeframe), "Timeframe: 5m, 1w or 1m.")
	f.StringVar(&p.png, "png", "", "Write a PNG chart to this file.")
	p.market.register(f)
}

func (p *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s is required.")
		return subcommands.ExitUsageError
	}
	snapshot, err := p.market.load()
	if err != nil {
		return fail(err)
	}
	stock, err := snapshot.Lookup(p.symbol)
	if err != nil {
		return fail(err)
	}
	series := history.NewSynthesizer().Series(stock, history.ParseTimeframe(p.timeframe))

	if p.png != "" {
		f, err := os.Create(p.png)
		if err != nil {
			return fail(err)
		}
		defer f.Close()
		if err := history.RenderPNG(series, f); err != nil {
			return fail(err)
		}
		fmt.Printf("Wrote %s chart for %s to %s\n", series.Timeframe, series.Symbol, p.png)
		return subcommands.ExitSuccess
	}

	if err := printSeries(series, os.Stdout); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func printSeries(s history.Series, w io.Writer) error {
	fmt.Fprintf(w, "%s %s (current %s)\n", s.Symbol, s.Timeframe, notify.FormatUSD(s.CurrentPrice))
	tw := newTable(w)
	for i := range s.Labels {
		fmt.Fprintf(tw, "%s\t%.2f\n", s.Labels[i], s.Prices[i])
	}
	return tw.Flush()
}
