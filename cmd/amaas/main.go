package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/amaas/amaas-core-sdk-go/internal/config"
	"github.com/amaas/amaas-core-sdk-go/internal/logger"
	"github.com/amaas/amaas-core-sdk-go/pkg/models"
	"github.com/amaas/amaas-core-sdk-go/pkg/network"
	"github.com/amaas/amaas-core-sdk-go/pkg/parties"
	"github.com/amaas/amaas-core-sdk-go/pkg/positions"
	"github.com/amaas/amaas-core-sdk-go/pkg/transactions"
)

const usage = `usage:
  amaas parties <amid> [party-id]
  amaas positions <amid> [asset-book-id]
  amaas transactions <amid> [transaction-id]
  amaas search <key> <value>`

var errUsage = errors.New(usage)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		logger.Get().Errorw("amaas command failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 2 || len(args) > 3 {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Get()
	transport := network.NewHTTPTransport(
		cfg.BaseURL(),
		&http.Client{Timeout: cfg.RequestTimeout},
		network.WithRateLimit(cfg.RateLimit),
		network.WithLogger(log),
	)

	if args[0] == "search" {
		if len(args) != 3 {
			return errUsage
		}
		found, err := positions.NewService(transport, log).Search(ctx, args[1], args[2], cfg.Token)
		if err != nil {
			return err
		}
		renderPositions(out, found)
		return nil
	}

	amID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid asset manager id %q: %w", args[1], errUsage)
	}
	var id string
	if len(args) == 3 {
		id = args[2]
	}

	switch args[0] {
	case "parties":
		res, err := parties.NewService(transport, log).Retrieve(ctx, amID, id, cfg.Token)
		if err != nil {
			return err
		}
		list := res.Many
		if res.One != nil {
			list = []models.PartyVariant{res.One}
		}
		renderParties(out, list)
	case "positions":
		res, err := positions.NewService(transport, log).Retrieve(ctx, amID, id, cfg.Token)
		if err != nil {
			return err
		}
		list := res.Many
		if res.One != nil {
			list = []*models.Position{res.One}
		}
		renderPositions(out, list)
	case "transactions":
		res, err := transactions.NewService(transport, log).Retrieve(ctx, amID, id, cfg.Token)
		if err != nil {
			return err
		}
		list := res.Many
		if res.One != nil {
			list = []*models.Transaction{res.One}
		}
		renderTransactions(out, list)
	default:
		return errUsage
	}
	return nil
}

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func renderParties(out io.Writer, list []models.PartyVariant) {
	table := newTable(out, "Party ID", "Type", "Class", "Status", "Description", "Addresses", "Emails", "References")
	for _, v := range list {
		p := v.Base()
		table.Append([]string{
			p.PartyID,
			p.PartyType,
			p.PartyClass,
			p.PartyStatus,
			p.Description,
			strconv.Itoa(len(p.Addresses)),
			strconv.Itoa(len(p.Emails)),
			strconv.Itoa(len(p.References)),
		})
	}
	table.Render()
}

func renderPositions(out io.Writer, list []*models.Position) {
	table := newTable(out, "Book", "Asset", "Quantity", "Valid From", "Valid To", "Account")
	for _, p := range list {
		table.Append([]string{
			p.AssetBookID,
			p.AssetID,
			p.Quantity.String(),
			p.ValidFrom.String(),
			p.ValidTo.String(),
			p.AccountID,
		})
	}
	table.Render()
}

func renderTransactions(out io.Writer, list []*models.Transaction) {
	table := newTable(out, "Transaction ID", "Action", "Asset", "Quantity", "Price", "Gross", "Net", "Currency", "Status")
	for _, t := range list {
		table.Append([]string{
			t.TransactionID,
			t.TransactionAction,
			t.AssetID,
			t.Quantity.String(),
			t.Price.String(),
			t.GrossSettlement().String(),
			t.NetSettlement().String(),
			t.TransactionCurrency,
			t.TransactionStatus,
		})
	}
	table.Render()
}
