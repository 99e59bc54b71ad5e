package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"railterm/internal/chain"
	"railterm/internal/config"
	"railterm/internal/decoder"
	"railterm/internal/history"
	"railterm/internal/tokens"
	"railterm/internal/view"
	"railterm/internal/wallet"
)

// App wires the viewer together for one network session. Each detail
// render runs its own fetch-decode-classify pipeline; nothing is cached
// across sessions except resolved token metadata.
type App struct {
	cfg      *config.Config
	network  *config.Network
	logger   *slog.Logger
	engine   wallet.Engine
	resolver *tokens.RPCResolver
	fetcher  *chain.Fetcher
	dec      *decoder.Decoder
	renderer *view.Renderer

	rpcClient *rpc.Client

	in  *bufio.Scanner
	out io.Writer
}

func New(cfg *config.Config, networkName string, logger *slog.Logger) (*App, error) {
	network, err := cfg.NetworkByName(networkName)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.Performance.RequestTimeout.Duration}
	rpcClient, err := rpc.DialHTTPWithClient(network.RPCHTTP, httpClient)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	rpcClient.SetHeader("User-Agent", "railterm")
	ethClient := ethclient.NewClient(rpcClient)

	engine, err := wallet.DialEngine(cfg.Engine.Endpoint, httpClient)
	if err != nil {
		rpcClient.Close()
		return nil, fmt.Errorf("dial wallet engine: %w", err)
	}

	dec, err := decoder.New()
	if err != nil {
		rpcClient.Close()
		engine.Close()
		return nil, err
	}

	resolver := tokens.NewRPCResolver(network.Name, rpcClient, cfg.Performance.RequestTimeout.Duration, tokens.NewNameCache())
	inferencer := history.NewInferencer(resolver, network.Name, cfg.Performance.MetadataConcurrency, cfg.Display.Precision)

	return &App{
		cfg:      cfg,
		network:  network,
		logger:   logger,
		engine:   engine,
		resolver: resolver,
		fetcher: chain.NewFetcher(ethClient, logger,
			cfg.Performance.RequestTimeout.Duration, cfg.Performance.RetryMax, cfg.Performance.RetryBackoff.Duration),
		dec: dec,
		renderer: &view.Renderer{
			Inferencer:    inferencer,
			Resolver:      resolver,
			Names:         resolver,
			Categories:    engine,
			Network:       network.Name,
			WalletAddress: cfg.Wallet.PublicAddress,
		},
		rpcClient: rpcClient,
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
	}, nil
}

func (a *App) Close() {
	if e, ok := a.engine.(*wallet.RPCEngine); ok {
		e.Close()
	}
	a.rpcClient.Close()
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) readLine(prompt string) (string, bool) {
	a.printf("%s", prompt)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// RunHistory drives the paginated history viewer. A history-fetch
// failure prompts for retry instead of exiting.
func (a *App) RunHistory(ctx context.Context) error {
	var items []wallet.HistoryItem
	for {
		a.printf("\n  Loading transaction history...\n\n")
		fetched, err := a.engine.TransactionHistory(ctx, a.network.Name, a.cfg.Engine.WalletID, 0)
		if err == nil {
			items = fetched
			break
		}
		a.logger.Error("history fetch failed", "error", err)
		a.printf("  Error fetching transaction history: %v\n", err)
		answer, ok := a.readLine("  Retry? [y/N]: ")
		if !ok || !strings.EqualFold(answer, "y") {
			return nil
		}
	}

	if len(items) == 0 {
		a.printf("  No transaction history found.\n")
		return nil
	}
	wallet.SortNewestFirst(items)

	pageSize := a.cfg.Display.PageSize
	totalPages := (len(items) + pageSize - 1) / pageSize
	page := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := page * pageSize
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}

		a.printf("\n  Transaction History  —  %s\n", a.network.Name)
		a.printf("  Page %d/%d  |  %d total transactions\n", page+1, totalPages, len(items))
		a.printf("  %s\n\n", strings.Repeat("─", 56))
		for i := start; i < end; i++ {
			a.printf("  %s\n", a.renderer.SummaryLine(ctx, items[i], i+1))
		}
		a.printf("\n")

		selection, ok := a.readLine("  Select a transaction number, [n]ext, [p]rev, [q]uit: ")
		if !ok {
			return nil
		}
		switch strings.ToLower(selection) {
		case "q", "quit", "":
			return nil
		case "n", "next":
			if page < totalPages-1 {
				page++
			}
			continue
		case "p", "prev":
			if page > 0 {
				page--
			}
			continue
		}

		index, err := strconv.Atoi(selection)
		if err != nil || index < 1 || index > len(items) {
			a.printf("  Unrecognized selection %q.\n", selection)
			continue
		}
		a.showDetail(ctx, items[index-1], index)
	}
}

func (a *App) showDetail(ctx context.Context, item wallet.HistoryItem, index int) {
	a.printf("%s\n", a.renderer.DetailView(ctx, item, index))

	var lookup *chain.Result
	if hash, ok := view.TxHash(item); ok {
		lookup = a.fetcher.Lookup(ctx, hash)
	}
	section := a.renderer.OnChainSection(ctx, item, lookup, a.dec, !a.cfg.Display.HideDecodedEvents)
	for _, line := range section {
		a.printf("%s\n", line)
	}

	a.readLine("\n  Press Enter to go back: ")
}
