// Command shop is a terminal storefront client. It browses the catalog over
// the HTTP API and keeps the cart in a local file until checkout, the same
// split the original browser client had with its local storage cart.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/trendhive/storefront/internal/cart"
	"github.com/trendhive/storefront/internal/client"
	"github.com/trendhive/storefront/internal/shop"
)

const usage = `usage: shop [flags] <command> [args]

commands:
  products                    list the catalog
  product <id>                show one product
  cart                        show the cart with current prices
  add <id> [qty]              add a product to the cart (default qty 1)
  set <id> <qty>              change the quantity of a cart entry
  rm <id>                     remove a product from the cart
  clear                       empty the cart
  checkout -name N -email E -address A
                              place the order and clear the cart
  orders                      list placed orders

flags:
`

func main() {
	log.SetFlags(0)
	_ = godotenv.Load()

	api := flag.String("api", envOr("SHOP_API", "http://localhost:8080"), "storefront API base URL")
	cartDir := flag.String("cart-dir", "", "directory holding the local cart (default: user config dir)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	crt, err := openCart(*cartDir)
	if err != nil {
		log.Fatalf("open cart: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := run(ctx, client.New(*api), crt, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func openCart(dir string) (*cart.Cart, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "trendhive")
	}
	storage, err := cart.NewFileStorage(dir)
	if err != nil {
		return nil, err
	}
	return cart.New(storage, cart.DefaultKey), nil
}

func run(ctx context.Context, c *client.Client, crt *cart.Cart, args []string) error {
	switch cmd, rest := args[0], args[1:]; cmd {
	case "products":
		return listProducts(ctx, c)
	case "product":
		if len(rest) != 1 {
			return fmt.Errorf("usage: shop product <id>")
		}
		return showProduct(ctx, c, rest)
	case "cart":
		return showCart(ctx, c, crt)
	case "add":
		return addToCart(ctx, c, crt, rest)
	case "set":
		if len(rest) != 2 {
			return fmt.Errorf("usage: shop set <id> <qty>")
		}
		id, qty, err := parseIDQty(rest[0], rest[1])
		if err != nil {
			return err
		}
		return crt.SetQuantity(id, qty)
	case "rm":
		if len(rest) != 1 {
			return fmt.Errorf("usage: shop rm <id>")
		}
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad product id %q", rest[0])
		}
		return crt.Remove(id)
	case "clear":
		return crt.Clear()
	case "checkout":
		return checkout(ctx, c, crt, rest)
	case "orders":
		return listOrders(ctx, c)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseIDQty(idArg, qtyArg string) (int64, int, error) {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad product id %q", idArg)
	}
	qty, err := strconv.Atoi(qtyArg)
	if err != nil {
		return 0, 0, fmt.Errorf("bad quantity %q", qtyArg)
	}
	return id, qty, nil
}

func listProducts(ctx context.Context, c *client.Client) error {
	products, err := c.Products(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", p.ID, p.Title, shop.FormatPaise(p.Price), p.Stock)
	}
	return tw.Flush()
}

func showProduct(ctx context.Context, c *client.Client, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad product id %q", args[0])
	}
	p, err := c.Product(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s\n%s • %d in stock\n", p.Title, p.Description, shop.FormatPaise(p.Price), p.Stock)
	return nil
}

func addToCart(ctx context.Context, c *client.Client, crt *cart.Cart, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: shop add <id> [qty]")
	}
	qty := 1
	if len(args) == 2 {
		var err error
		if qty, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("bad quantity %q", args[1])
		}
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad product id %q", args[0])
	}
	p, err := c.Product(ctx, id)
	if err != nil {
		return err
	}
	if err := crt.Add(p, qty); err != nil {
		return err
	}
	fmt.Printf("Added %d × %s to cart.\n", qty, p.Title)
	return nil
}

// showCart prints the cart priced at current catalog prices, falling back to
// the cached add-time price for products that have since disappeared.
func showCart(ctx context.Context, c *client.Client, crt *cart.Cart) error {
	items, err := crt.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}

	products, err := c.Products(ctx)
	if err != nil {
		return err
	}
	current := make(map[int64]int64, len(products))
	for _, p := range products {
		current[p.ID] = p.Price
	}

	var total int64
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tITEM\tPRICE\tQTY\tSUBTOTAL")
	for _, it := range items {
		price, ok := current[it.ProductID]
		if !ok {
			price = it.Price
		}
		sub := price * int64(it.Quantity)
		total += sub
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			it.ProductID, it.Title, shop.FormatPaise(price), it.Quantity, shop.FormatPaise(sub))
	}
	fmt.Fprintf(tw, "\tTotal\t\t\t%s\n", shop.FormatPaise(total))
	return tw.Flush()
}

func checkout(ctx context.Context, c *client.Client, crt *cart.Cart, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "customer email")
	address := fs.String("address", "", "delivery address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := crt.CheckoutItems()
	if err != nil {
		return err
	}
	placed, err := c.PlaceOrder(ctx, items, shop.Customer{Name: *name, Email: *email, Address: *address})
	if err != nil {
		return err
	}
	if err := crt.Clear(); err != nil {
		return err
	}
	fmt.Printf("Order placed! Order #%d • Total %s\n", placed.OrderID, placed.TotalReadable)
	return nil
}

func listOrders(ctx context.Context, c *client.Client) error {
	orders, err := c.Orders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("Order #%d • %s • %s\n", o.ID, shop.FormatPaise(o.TotalAmount), o.CreatedAt.Local().Format(time.RFC822))
		fmt.Printf("%s — %s\n%s\n", o.CustomerName, o.CustomerEmail, o.CustomerAddress)
		for _, it := range o.Items {
			fmt.Printf("  product %d × %d @ %s\n", it.ProductID, it.Quantity, shop.FormatPaise(it.PriceEach))
		}
		fmt.Println()
	}
	return nil
}
