package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bistro-kart/internal/cart"
	"bistro-kart/internal/catalog"
	"bistro-kart/internal/checkout"
	"bistro-kart/internal/client"
	"bistro-kart/internal/config"
	"bistro-kart/internal/model"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var selections selectionList
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	menuPath := fs.String("menu", cfg.Catalog.Path, "path to the menu document")
	fs.Var(&selections, "add", "product to add as id[:qty]; repeatable")
	fullName := fs.String("name", "", "customer full name")
	email := fs.String("email", "", "customer email")
	phone := fs.String("phone", "", "customer phone")
	dryRun := fs.Bool("dry-run", false, "print the cart without placing the order")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := config.NewLogger(cfg.Logger, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shop, err := catalog.NewFileLoader(logger).Load(ctx, *menuPath)
	if err != nil {
		return err
	}
	menu, err := catalog.New(*shop)
	if err != nil {
		return err
	}

	store := cart.NewStore(logger)
	if err := fillCart(store, menu, selections, out); err != nil {
		return err
	}

	printCart(out, shop.ShopName, store)

	if *dryRun {
		return nil
	}
	if store.IsEmpty() {
		return fmt.Errorf("cart is empty, nothing to order")
	}

	session := checkout.NewSession(
		store,
		checkout.NewBuilder(cfg.Shop.ID, cfg.Shop.Name),
		client.NewOrderClient(cfg.Client.BaseURL, cfg.Client.RequestTimeout(), logger),
		logger,
	)

	created, err := session.Submit(ctx, model.Contact{FullName: *fullName, Email: *email, Phone: *phone})
	if err != nil {
		return describeSubmitError(err)
	}

	fmt.Fprintf(out, "\nOrder %s placed at %s\n", created.ID, created.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

// fillCart applies the detail-view quantity rule to each selection before
// adding it. Unknown and sold-out products are reported and skipped.
func fillCart(store *cart.Store, menu *catalog.Catalog, selections selectionList, out io.Writer) error {
	for _, sel := range selections {
		product, ok := menu.Product(sel.productID)
		if !ok {
			return fmt.Errorf("product %d is not on the menu", sel.productID)
		}

		qty, err := catalog.ClampQuantity(product, sel.quantity)
		if errors.Is(err, model.ErrOutOfStock) {
			fmt.Fprintf(out, "%s is out of stock, skipped\n", product.Name)
			continue
		}
		if qty != sel.quantity {
			fmt.Fprintf(out, "%s: quantity adjusted to %d\n", product.Name, qty)
		}

		store.AddItem(product, qty)
	}
	return nil
}

func printCart(out io.Writer, shopName string, store *cart.Store) {
	fmt.Fprintf(out, "%s: %d item(s)\n", shopName, store.GetTotalItems())
	for _, l := range store.Lines() {
		fmt.Fprintf(out, "  %3d x %-30s %8s\n", l.Qty, l.Name, model.RoundMoney(l.Subtotal()).StringFixed(2))
	}

	totals := store.GetTotals()
	fmt.Fprintf(out, "  %-36s %8s\n", "HT", totals.HT.StringFixed(2))
	fmt.Fprintf(out, "  %-36s %8s\n", "VAT 20%", totals.VAT.StringFixed(2))
	fmt.Fprintf(out, "  %-36s %8s\n", "TTC", totals.TTC.StringFixed(2))
}

func describeSubmitError(err error) error {
	var verr *model.ValidationError
	var rejected *client.RejectedError

	switch {
	case errors.As(err, &verr):
		return fmt.Errorf("please fix the checkout form: %w", err)
	case errors.As(err, &rejected):
		return fmt.Errorf("the order was refused, your cart is kept: %w", err)
	case errors.Is(err, client.ErrNetwork):
		return fmt.Errorf("could not reach the shop, your cart is kept, try again: %w", err)
	default:
		return fmt.Errorf("order failed, your cart is kept: %w", err)
	}
}

