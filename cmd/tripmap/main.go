// Command tripmap is a CLI client for the tourism discovery backend.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zzhang736/tripmap/internal/config"
	"github.com/zzhang736/tripmap/internal/errs"
	"github.com/zzhang736/tripmap/internal/gateway"
	"github.com/zzhang736/tripmap/internal/guard"
	"github.com/zzhang736/tripmap/internal/model"
	"github.com/zzhang736/tripmap/internal/service"
	"github.com/zzhang736/tripmap/internal/session"
	"github.com/zzhang736/tripmap/internal/storage"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `tripmap CLI
Usage:
  tripmap [-base URL] [-v] <cmd> [args]

Commands:
  version
  register   -u <username> -e <email> -p <password>
  login      -u <username> -p <password>           (saves token)
  logout
  whoami
  route      -to <path>                            (navigation decision)
  spots
  spot       -id <id>
  search     -q <query>
  nearby     -lat <f> -lng <f> [-radius <m>]
  geojson
  categories
  refresh    [-pages <n>]
  plan       -days <n> [-budget low|medium|high] [-transport public|car|walk] [-prefs a,b,c]
`)
	os.Exit(2)
}

// app bundles everything a subcommand needs.
type app struct {
	sess  *session.Store
	spots *service.SpotService
	auth  *service.AuthService
}

func main() {
	base := flag.String("base", "", "backend base URL (overrides TRIPMAP_API_BASE_URL)")
	verbose := flag.Bool("v", false, "log every request")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if *base != "" {
		cfg.BaseURL = *base
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	durable := storage.NewDurable(cfg.DataDir)
	transient := storage.NewTransient()
	sess := session.New(durable, transient, logger)

	gw, err := gateway.New(cfg.BaseURL, cfg.Timeout, gateway.DurableToken(durable), logger)
	if err != nil {
		fail(err)
	}

	a := &app{
		sess:  sess,
		spots: service.NewSpotService(gw),
		auth:  service.NewAuthService(gw, sess),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd {
	case "version":
		fmt.Printf("tripmap %s (%s)\n", version, buildDate)
	case "register":
		a.cmdRegister(ctx, args)
	case "login":
		a.cmdLogin(ctx, args)
	case "logout":
		a.auth.Logout()
		fmt.Println("ok")
	case "whoami":
		a.cmdWhoami()
	case "route":
		a.cmdRoute(args)
	case "spots":
		out, err := a.spots.GetAll(ctx)
		report(out, err)
	case "spot":
		a.cmdSpot(ctx, args)
	case "search":
		a.cmdSearch(ctx, args)
	case "nearby":
		a.cmdNearby(ctx, args)
	case "geojson":
		out, err := a.spots.GetGeoJSON(ctx)
		report(out, err)
	case "categories":
		out, err := a.spots.GetCategories(ctx)
		report(out, err)
	case "refresh":
		a.cmdRefresh(ctx, args)
	case "plan":
		a.cmdPlan(ctx, args)
	default:
		usage()
	}
}

func (a *app) cmdRegister(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	u := fs.String("u", "", "username")
	e := fs.String("e", "", "email")
	p := fs.String("p", "", "password")
	_ = fs.Parse(args)
	if *u == "" || *e == "" || *p == "" {
		fmt.Fprintln(os.Stderr, "need -u, -e and -p")
		os.Exit(1)
	}
	user, err := a.auth.Register(ctx, *u, *e, *p)
	if err != nil {
		fail(err)
	}
	fmt.Println(user.Username)
}

func (a *app) cmdLogin(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	u := fs.String("u", "", "username")
	p := fs.String("p", "", "password")
	_ = fs.Parse(args)
	if *u == "" || *p == "" {
		fmt.Fprintln(os.Stderr, "need -u and -p")
		os.Exit(1)
	}
	if err := a.auth.Login(ctx, *u, *p); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}

func (a *app) cmdWhoami() {
	if !a.sess.IsAuthenticated() {
		fmt.Println("not logged in")
		return
	}
	user, ok := a.sess.CurrentUser()
	if !ok {
		fmt.Println("logged in (no stored user)")
		return
	}
	fmt.Println(user.Username)
	if exp, ok := a.sess.TokenExpiry(); ok {
		fmt.Printf("token expires %s\n", exp.UTC().Format(time.RFC3339))
	}
}

func (a *app) cmdRoute(args []string) {
	fs := flag.NewFlagSet("route", flag.ExitOnError)
	to := fs.String("to", "", "target path")
	_ = fs.Parse(args)
	if *to == "" {
		fmt.Fprintln(os.Stderr, "need -to")
		os.Exit(1)
	}
	target := guard.Lookup(pathOnly(*to))
	d := guard.Evaluate(target, *to, a.sess.IsAuthenticated())
	if d.Allow {
		fmt.Printf("allow %s\n", *to)
		return
	}
	fmt.Printf("redirect %s\n", d.RedirectTo)
}

func (a *app) cmdSpot(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("spot", flag.ExitOnError)
	id := fs.String("id", "", "spot id")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}
	out, err := a.spots.GetByID(ctx, *id)
	report(out, err)
}

func (a *app) cmdSearch(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	q := fs.String("q", "", "query")
	_ = fs.Parse(args)
	out, err := a.spots.Search(ctx, *q)
	report(out, err)
}

func (a *app) cmdNearby(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("nearby", flag.ExitOnError)
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	radius := fs.Int("radius", 0, "radius in meters (default 5000)")
	_ = fs.Parse(args)
	out, err := a.spots.GetNearby(ctx, *lat, *lng, *radius)
	report(out, err)
}

func (a *app) cmdRefresh(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("refresh", flag.ExitOnError)
	pages := fs.Int("pages", 0, "source pages to crawl (default 3)")
	_ = fs.Parse(args)
	out, err := a.spots.UpdateData(ctx, *pages)
	report(out, err)
}

func (a *app) cmdPlan(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	days := fs.Int("days", 1, "trip length in days")
	budget := fs.String("budget", "medium", "low|medium|high")
	transport := fs.String("transport", "public", "public|car|walk")
	prefs := fs.String("prefs", "", "comma-separated category tags, ranked")
	_ = fs.Parse(args)

	p := model.RoutePreferences{
		Days:           *days,
		Budget:         model.Budget(*budget),
		Transportation: model.Transportation(*transport),
	}
	if *prefs != "" {
		p.Preferences = strings.Split(*prefs, ",")
	}
	if !p.Valid() {
		fmt.Fprintln(os.Stderr, "invalid preferences (check -days, -budget, -transport)")
		os.Exit(1)
	}
	out, err := a.spots.Filter(ctx, p)
	report(out, err)
}

// ---- helpers ----

func pathOnly(fullPath string) string {
	if i := strings.IndexByte(fullPath, '?'); i >= 0 {
		return fullPath[:i]
	}
	return fullPath
}

func report(v any, err error) {
	if err != nil {
		fail(err)
	}
	printJSON(v)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// fail prints the user-facing rendition of an error and exits. Auth failures
// prompt re-login, connectivity failures report the service as unavailable,
// everything else surfaces verbatim.
func fail(err error) {
	var authErr *errs.AuthError
	var connErr *errs.ConnectivityError
	switch {
	case errors.As(err, &authErr):
		fmt.Fprintln(os.Stderr, "authentication required: please log in again")
	case errors.As(err, &connErr):
		fmt.Fprintf(os.Stderr, "service unavailable: no response from %s\n", connErr.BaseURL)
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
