package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/urfave/cli/v2"

	"bnrest/internal/infrastructure/exchange/binance"
	"bnrest/internal/infrastructure/svc"
	"bnrest/internal/interfaces/console"
)

var (
	depthSymbol  string
	depthLimit   int
	journalLimit int
)

var pingCommand = &cli.Command{
	Name:   "ping",
	Usage:  "test connectivity to the REST API",
	Action: runPing,
}

var timeCommand = &cli.Command{
	Name:   "time",
	Usage:  "get the server time",
	Action: runTime,
}

var depthCommand = &cli.Command{
	Name:  "depth",
	Usage: "get the order book of a symbol",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "symbol",
			Aliases:     []string{"s"},
			Usage:       "the symbol, e.g. BTCUSDT",
			Required:    true,
			Destination: &depthSymbol,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"l"},
			Value:       100,
			Usage:       "one of 5, 10, 20, 50, 100, 500, 1000, 5000",
			Destination: &depthLimit,
		},
	},
	Action: runDepth,
}

var callCommand = &cli.Command{
	Name:      "call",
	Usage:     "call any catalog endpoint by name",
	ArgsUsage: "<endpoint-name> [key=value ...]",
	Action:    runCall,
}

var endpointsCommand = &cli.Command{
	Name:   "endpoints",
	Usage:  "list the endpoint catalog",
	Action: runEndpoints,
}

var journalCommand = &cli.Command{
	Name:  "journal",
	Usage: "list recorded calls, newest first",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"l"},
			Value:       20,
			Usage:       "maximum number of calls to show",
			Destination: &journalLimit,
		},
	},
	Action: runJournal,
}

// withService runs fn with a request context bounded by the configured timeout.
func withService(c *cli.Context, fn func(ctx context.Context, market *binance.MarketClient, client *binance.Client) (*binance.Response, error)) error {
	sc, err := setupService(c)
	if err != nil {
		return err
	}
	defer sc.Close()

	ctx, cancel := sc.RequestContext()
	defer cancel()

	resp, err := fn(ctx, sc.Market(), sc.Client())
	if err != nil {
		return err
	}
	return console.NewSink(c.App.Writer).WriteResponse(resp.StatusCode, resp.Body)
}

func runPing(c *cli.Context) error {
	return withService(c, func(ctx context.Context, m *binance.MarketClient, _ *binance.Client) (*binance.Response, error) {
		return m.Ping(ctx)
	})
}

func runTime(c *cli.Context) error {
	return withService(c, func(ctx context.Context, m *binance.MarketClient, _ *binance.Client) (*binance.Response, error) {
		return m.ServerTime(ctx)
	})
}

func runDepth(c *cli.Context) error {
	return withService(c, func(ctx context.Context, m *binance.MarketClient, _ *binance.Client) (*binance.Response, error) {
		return m.Depth(ctx, strings.ToUpper(depthSymbol), depthLimit)
	})
}

func runCall(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	ep, ok := binance.LookupEndpoint(c.Args().First())
	if !ok {
		return fmt.Errorf("unknown endpoint %q; see the endpoints command", c.Args().First())
	}
	params, err := parseKeyValues(c.Args().Tail())
	if err != nil {
		return err
	}
	return withService(c, func(ctx context.Context, _ *binance.MarketClient, client *binance.Client) (*binance.Response, error) {
		return client.Call(ctx, ep, params)
	})
}

func runEndpoints(c *cli.Context) error {
	eps := binance.Endpoints()
	rows := make([][]string, 0, len(eps))
	for _, ep := range eps {
		rows = append(rows, []string{ep.Name, ep.Method, ep.Path, ep.Security.String()})
	}
	return console.NewSink(c.App.Writer).WriteTable([]string{"NAME", "METHOD", "PATH", "SECURITY"}, rows)
}

func runJournal(c *cli.Context) error {
	sc, err := svc.NewJournalReader(c.Context, cfg)
	if err != nil {
		return err
	}
	defer sc.Close()

	reader, err := sc.CallReader()
	if err != nil {
		return fmt.Errorf("%w; enable journal.sqlite or journal.postgres", err)
	}

	calls, err := reader.ListCalls(c.Context, journalLimit)
	if err != nil {
		return fmt.Errorf("list calls: %w", err)
	}

	return console.NewSink(c.App.Writer).WriteCalls(calls)
}

// parseKeyValues turns key=value arguments into ordered params. Values are
// query-escaped; keys are kept verbatim.
func parseKeyValues(args []string) (binance.Params, error) {
	var params binance.Params
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q: want key=value", arg)
		}
		params = params.Add(key, url.QueryEscape(value))
	}
	return params, nil
}
