// Command pricectl edits customer and vendor price lists against a running
// freightadmin server.
//
//	pricectl lists --owner-type customer --owner-id C1
//	pricectl add-entry --owner-id C1 --list PL1 --method perLocation --sub-activity S1 --row L1=50
//	pricectl add-entry --owner-id C1 --list PL1 --method perTrip --sub-activity S2 --row L1>L2=80
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"freightadmin/client/gateway"
	"freightadmin/client/pricebook"
	"freightadmin/client/priceform"
	"freightadmin/models"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const usage = `usage: pricectl <command> [flags]

commands:
  lists          print the owner's price lists
  locations      page through locations
  add-entry      add a sub-activity price to a list
  edit-entry     replace a sub-activity price in a list
  remove-entry   remove a sub-activity price from a list
`

type app struct {
	v      *viper.Viper
	out    io.Writer
	logger *zap.Logger
	client *gateway.Client
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "pricectl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(out, usage)
		return nil
	}
	cmd, args := args[0], args[1:]

	commands := map[string]func(context.Context, *app) error{
		"lists":        cmdLists,
		"locations":    cmdLocations,
		"add-entry":    cmdAddEntry,
		"edit-entry":   cmdEditEntry,
		"remove-entry": cmdRemoveEntry,
	}
	fn, ok := commands[cmd]
	if !ok {
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}

	fs := newFlagSet(cmd)
	if err := fs.Parse(args); err != nil {
		return err
	}
	v, err := loadConfig(fs)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if v.GetBool("verbose") {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(ctx, v.GetDuration("timeout"))
	defer cancel()

	a := &app{
		v:      v,
		out:    out,
		logger: logger,
		client: gateway.New(v.GetString("server"), gateway.WithLogger(logger)),
	}
	return fn(ctx, a)
}

// newFlagSet declares every flag; commands read the ones they need.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("server", "http://localhost:8080", "server base URL")
	fs.Duration("timeout", 30*time.Second, "overall command timeout")
	fs.BoolP("verbose", "v", false, "log requests to stderr")

	fs.String("owner-type", "customer", "price list owner type: customer or vendor")
	fs.String("owner-id", "", "customer or vendor id")
	fs.String("drop-empty", "", "drop a list once its last entry is removed (true/false, default per owner type)")
	fs.String("list", "", "price list id")
	fs.String("entry", "", "entry id")
	fs.String("method", "", "pricing method: perItem, perLocation or perTrip")
	fs.String("sub-activity", "", "sub-activity id")
	fs.Float64("base-price", -1, "perItem price")
	fs.StringArray("row", nil, "price row, LOC=PRICE for perLocation or FROM>TO=PRICE for perTrip (repeatable)")
	fs.Bool("allow-same-location-trips", true, "accept trips whose origin and destination match")

	fs.Int("page", 1, "locations page")
	fs.Int("limit", 10, "locations page size")
	fs.String("search", "", "server-side location search")
	fs.String("query", "", "client-side filter over the formatted address")
	return fs
}

// loadConfig layers flags over PRICECTL_* environment variables and an
// optional pricectl.yaml.
func loadConfig(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("pricectl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home + "/.config/freightadmin")
	}
	v.SetEnvPrefix("PRICECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, t := range []models.OwnerType{models.OwnerCustomer, models.OwnerVendor} {
		v.SetDefault(dropEmptyKey(t), pricebook.DropEmptyDefault(t))
	}

	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return v, nil
}

// dropEmptyKey names the setting, e.g. PRICECTL_VENDOR_DROP_EMPTY_PRICE_LISTS,
// that --drop-empty overrides for one owner type.
func dropEmptyKey(t models.OwnerType) string {
	return string(t) + "-drop-empty-price-lists"
}

func (a *app) owner() (models.Owner, error) {
	t, err := models.ParseOwnerType(a.v.GetString("owner-type"))
	if err != nil {
		return models.Owner{}, err
	}
	id := a.v.GetString("owner-id")
	if id == "" {
		return models.Owner{}, errors.New("--owner-id is required")
	}
	return models.Owner{OwnerType: t, OwnerID: id}, nil
}

// store builds and loads the owner's price-list store.
func (a *app) store(ctx context.Context) (*pricebook.Store, error) {
	owner, err := a.owner()
	if err != nil {
		return nil, err
	}
	dropEmpty := a.v.GetBool(dropEmptyKey(owner.OwnerType))
	if a.v.GetString("drop-empty") != "" {
		dropEmpty = a.v.GetBool("drop-empty")
	}
	store := pricebook.New(a.client, owner,
		pricebook.WithLogger(a.logger),
		pricebook.WithDropEmptyLists(dropEmpty),
	)
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("load price lists: %w", err)
	}
	return store, nil
}

func (a *app) form(store *pricebook.Store) *priceform.Form {
	policy := models.PricingPolicy{AllowSameLocationTrips: a.v.GetBool("allow-same-location-trips")}
	return priceform.New(a.client, store, priceform.WithPolicy(policy), priceform.WithLogger(a.logger))
}

func (a *app) required(keys ...string) error {
	for _, k := range keys {
		if a.v.GetString(k) == "" {
			return fmt.Errorf("--%s is required", k)
		}
	}
	return nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
