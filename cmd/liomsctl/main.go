// Command liomsctl is a CLI for administering a LIOMS project-tracking
// server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/liomshq/lioms-client/internal/api"
	"github.com/liomshq/lioms-client/internal/client"
	"github.com/liomshq/lioms-client/internal/config"
	"github.com/liomshq/lioms-client/internal/model"
	"github.com/liomshq/lioms-client/internal/session"
	"github.com/liomshq/lioms-client/internal/tokenstore"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "liomsctl")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "liomsctl")
}

func readAll(p string) ([]byte, error) {
	if p == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(p)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `liomsctl
Usage:
  liomsctl [-config file] [-mode development|production] [-base URL] <cmd> [args]

Commands:
  version
  login      -u <username> -p <password>           (saves token pair)
  logout
  me
  list       -e <companies|plans|states|details|functionalfields|users|projects>
  get        -e <path> -id <n>                     (raw GET, unwrapped)
  create     -e <path> -file <json>                (body auto-enveloped)
  update     -e <path> -id <n> -file <json>
  rm         -e <path> -id <n>
  filter     -file <json>                          (project bulk filter)
  states     -project <n>
  advance    -file <json>                          (project state transition)
  degrade    -file <json>
  upload     -project <n> -file <path> -privacy <n>
  roles
  enums
`)
	os.Exit(2)
}

// app wires the client stack for one invocation.
type app struct {
	client  *client.Client
	api     *api.API
	session *session.Session
	store   *tokenstore.Store
}

func newApp(baseURL string, logger *zap.Logger) (*app, error) {
	store := tokenstore.New(&tokenstore.FilePersister{
		Path: filepath.Join(cfgDir(), "token.json"),
	})
	c, err := client.New(client.Options{
		BaseURL: baseURL,
		Store:   store,
		Logger:  logger,
		OnSessionExpired: func() {
			fmt.Fprintln(os.Stderr, "session expired; run 'liomsctl login'")
		},
	})
	if err != nil {
		return nil, err
	}
	return &app{
		client:  c,
		api:     api.New(c),
		session: session.New(c, store, logger),
		store:   store,
	}, nil
}

func main() {
	cfgPath := flag.String("config", filepath.Join(cfgDir(), "config.yaml"), "config file")
	mode := flag.String("mode", "", "endpoint mode (default from config)")
	base := flag.String("base", "", "base URL override")
	verbose := flag.Bool("v", false, "verbose request logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	baseURL := *base
	if baseURL == "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			fail(err)
		}
		baseURL, err = cfg.BaseURL(*mode)
		if err != nil {
			fail(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	a, err := newApp(baseURL, logger)
	if err != nil {
		fail(err)
	}

	switch cmd {

	case "version":
		fmt.Printf("liomsctl %s (%s)\n", version, buildDate)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		u := fs.String("u", "", "username")
		p := fs.String("p", "", "password")
		_ = fs.Parse(args)
		if *u == "" || *p == "" {
			fail(fmt.Errorf("need -u and -p"))
		}
		user, err := a.session.Login(ctx, model.Credentials{UserName: *u, Password: *p})
		if err != nil {
			fail(err)
		}
		fmt.Printf("ok (%s, roles %v)\n", user.Username, user.Roles)

	case "logout":
		a.session.Logout(ctx)
		fmt.Println("ok")

	case "me":
		user, err := a.session.Profile(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(user)

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		e := fs.String("e", "", "entity")
		_ = fs.Parse(args)
		if err := listEntity(ctx, a.api, *e); err != nil {
			fail(err)
		}

	case "get":
		fs := flag.NewFlagSet("get", flag.ExitOnError)
		e := fs.String("e", "", "entity path")
		id := fs.Int64("id", 0, "entity id")
		_ = fs.Parse(args)
		if *e == "" || *id == 0 {
			fail(fmt.Errorf("need -e and -id"))
		}
		var out json.RawMessage
		if err := a.client.Get(ctx, fmt.Sprintf("%s/%d", *e, *id), &out); err != nil {
			fail(err)
		}
		printJSON(out)

	case "create":
		body := readBody(args, "create")
		e := body.path
		if err := a.client.DoJSON(ctx, http.MethodPost, e, body.obj, nil); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "update":
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		e := fs.String("e", "", "entity path")
		id := fs.Int64("id", 0, "entity id")
		file := fs.String("file", "", "JSON body ('-'=stdin)")
		_ = fs.Parse(args)
		if *e == "" || *id == 0 || *file == "" {
			fail(fmt.Errorf("need -e, -id and -file"))
		}
		obj, err := readJSON(*file)
		if err != nil {
			fail(err)
		}
		if err := a.client.DoJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", *e, *id), obj, nil); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "rm":
		fs := flag.NewFlagSet("rm", flag.ExitOnError)
		e := fs.String("e", "", "entity path")
		id := fs.Int64("id", 0, "entity id")
		_ = fs.Parse(args)
		if *e == "" || *id == 0 {
			fail(fmt.Errorf("need -e and -id"))
		}
		if err := a.client.Delete(ctx, fmt.Sprintf("%s/%d", *e, *id)); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "filter":
		fs := flag.NewFlagSet("filter", flag.ExitOnError)
		file := fs.String("file", "", "filter JSON ('-'=stdin)")
		_ = fs.Parse(args)
		var f model.ProjectFilter
		if *file != "" {
			b, err := readAll(*file)
			if err != nil {
				fail(err)
			}
			if err := json.Unmarshal(b, &f); err != nil {
				fail(err)
			}
		}
		rows, err := a.api.Projects.Filter(ctx, f)
		if err != nil {
			fail(err)
		}
		printJSON(rows)

	case "states":
		fs := flag.NewFlagSet("states", flag.ExitOnError)
		project := fs.Int64("project", 0, "project id")
		_ = fs.Parse(args)
		if *project == 0 {
			fail(fmt.Errorf("need -project"))
		}
		rows, err := a.api.ProjectStates.ByProject(ctx, *project)
		if err != nil {
			fail(err)
		}
		printJSON(rows)

	case "advance":
		var dto model.ProjectStatePost
		if err := readInto(args, &dto); err != nil {
			fail(err)
		}
		if err := a.api.ProjectStates.Advance(ctx, dto); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "degrade":
		var dto model.ProjectStateDegrade
		if err := readInto(args, &dto); err != nil {
			fail(err)
		}
		if err := a.api.ProjectStates.Degrade(ctx, dto); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "upload":
		fs := flag.NewFlagSet("upload", flag.ExitOnError)
		project := fs.Int64("project", 0, "project id")
		file := fs.String("file", "", "file to upload")
		privacy := fs.Int("privacy", 0, "privacy level")
		_ = fs.Parse(args)
		if *project == 0 || *file == "" {
			fail(fmt.Errorf("need -project and -file"))
		}
		f, err := os.Open(*file)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		if err := a.api.ProjectFiles.Upload(ctx, *project, filepath.Base(*file), f, *privacy); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "roles":
		rows, err := a.api.Users.Roles(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(rows)

	case "enums":
		out, err := a.api.Enums(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	default:
		usage()
	}
}

func listEntity(ctx context.Context, a *api.API, entity string) error {
	switch entity {
	case "companies":
		return printList(a.Companies.List(ctx))
	case "plans":
		return printList(a.Plans.List(ctx))
	case "states":
		return printList(a.States.List(ctx))
	case "details":
		return printList(a.Details.List(ctx))
	case "functionalfields":
		return printList(a.FunctionalFields.List(ctx))
	case "users":
		return printList(a.Users.List(ctx))
	case "projects":
		return printList(a.Projects.Summaries(ctx))
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

func printList[T any](rows []T, err error) error {
	if err != nil {
		return err
	}
	printJSON(rows)
	return nil
}

type rawBody struct {
	path string
	obj  map[string]any
}

// readBody parses the common -e/-file pair used by create.
func readBody(args []string, name string) rawBody {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	e := fs.String("e", "", "entity path")
	file := fs.String("file", "", "JSON body ('-'=stdin)")
	_ = fs.Parse(args)
	if *e == "" || *file == "" {
		fail(fmt.Errorf("need -e and -file"))
	}
	obj, err := readJSON(*file)
	if err != nil {
		fail(err)
	}
	return rawBody{path: *e, obj: obj}
}

func readJSON(file string) (map[string]any, error) {
	b, err := readAll(file)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return obj, nil
}

func readInto(args []string, out any) error {
	fs := flag.NewFlagSet("body", flag.ExitOnError)
	file := fs.String("file", "", "JSON body ('-'=stdin)")
	_ = fs.Parse(args)
	if *file == "" {
		return fmt.Errorf("need -file")
	}
	b, err := readAll(*file)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
