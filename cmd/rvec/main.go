// rvec CLI - inspect, check and poke stored vectors
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/rvec/coerce"
	"github.com/chazu/rvec/config"
	"github.com/chazu/rvec/server"
	"github.com/chazu/rvec/store"
	"github.com/chazu/rvec/vec"
	"github.com/chazu/rvec/vec/dist"
)

// backend is implemented by the in-process service and the remote client.
type backend interface {
	Put(ctx context.Context, req *dist.PutRequest) (*dist.PutResponse, error)
	Get(ctx context.Context, req *dist.GetRequest) (*dist.GetResponse, error)
	Check(ctx context.Context, req *dist.CheckRequest) (*dist.CheckResponse, error)
	Poke(ctx context.Context, req *dist.PokeRequest) (*dist.PokeResponse, error)
}

func main() {
	configDir := flag.String("C", ".", "Directory to search upward for rvec.toml")
	remote := flag.String("remote", "", "Base URL of a running vector service (e.g. http://localhost:4568)")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rvec [options] <command> [command options]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  serve                       Start the vector service\n")
		fmt.Fprintf(os.Stderr, "  put -name x -file v.toml    Store a vector literal\n")
		fmt.Fprintf(os.Stderr, "  get -name x                 Print a stored vector\n")
		fmt.Fprintf(os.Stderr, "  ls                          List stored vectors\n")
		fmt.Fprintf(os.Stderr, "  check -name x -pred p       Run a predicate (%s)\n", strings.Join(server.Predicates(), ", "))
		fmt.Fprintf(os.Stderr, "  poke -dest d -src s ...     Copy an element range, coercing as needed\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rvec put -name x -file x.toml\n")
		fmt.Fprintf(os.Stderr, "  rvec check -name x -pred integerish -finite true\n")
		fmt.Fprintf(os.Stderr, "  rvec poke -dest y -offset 1 -src x -from 0 -n 2\n")
		fmt.Fprintf(os.Stderr, "  rvec -remote http://localhost:4568 get -name y\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	os.Exit(run(*configDir, *remote, *verbose))
}

// run executes one command and returns the exit status. Deferred cleanup
// runs before main exits.
func run(configDir, remote string, verbose bool) int {
	cfg, err := config.FindAndLoad(configDir)
	if err != nil {
		return fail(err)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if verbose && cfg.Log.Verbosity < 1 {
		cfg.Log.Verbosity = 1
	}
	cfg.ConfigureLogging()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	ctx := context.Background()

	if cmd == "serve" {
		if err := serve(ctx, cfg, args); err != nil {
			return fail(err)
		}
		return 0
	}

	var b backend
	if remote != "" {
		b = server.NewClient(&http.Client{Timeout: 30 * time.Second}, strings.TrimRight(remote, "/"))
	} else {
		rt, closeFn, err := openRuntime(ctx, cfg)
		if err != nil {
			return fail(err)
		}
		defer closeFn()
		if cmd == "ls" {
			if err := list(ctx, rt.Store); err != nil {
				return fail(err)
			}
			return 0
		}
		w := server.NewWorker(rt)
		defer w.Stop()
		b = localBackend{svc: server.NewVectorService(w)}
	}

	switch cmd {
	case "put":
		err = put(ctx, b, args)
	case "get":
		err = get(ctx, b, args)
	case "check":
		err = check(ctx, b, args)
	case "poke":
		err = poke(ctx, b, args)
	case "ls":
		err = fmt.Errorf("ls is only available on a local store")
	default:
		flag.Usage()
		return 2
	}
	switch {
	case errors.Is(err, errCheckFailed):
		return 1
	case err != nil:
		return fail(err)
	}
	return 0
}

// openRuntime opens the configured store and resolves the host coercers.
func openRuntime(ctx context.Context, cfg *config.Config) (*server.Runtime, func(), error) {
	path := cfg.StorePath()
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, err
		}
	}
	st, err := store.Open(ctx, cfg.Store.Driver, path)
	if err != nil {
		return nil, nil, err
	}

	names, err := cfg.CoercerNames()
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	ns := vec.NewNamespace()
	coerce.Register(ns)
	rt, err := server.NewRuntime(st, ns, names)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return rt, func() { st.Close() }, nil
}

func serve(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Server.Addr, "Listen address")
	fs.Parse(args)

	rt, closeFn, err := openRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	s := server.New(rt)
	defer s.Stop()
	return s.ListenAndServe(*addr)
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "rvec: %v\n", err)
	return 1
}

// localBackend adapts the in-process service to backend.
type localBackend struct {
	svc *server.VectorService
}

func (l localBackend) Put(ctx context.Context, req *dist.PutRequest) (*dist.PutResponse, error) {
	resp, err := l.svc.Put(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (l localBackend) Get(ctx context.Context, req *dist.GetRequest) (*dist.GetResponse, error) {
	resp, err := l.svc.Get(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (l localBackend) Check(ctx context.Context, req *dist.CheckRequest) (*dist.CheckResponse, error) {
	resp, err := l.svc.Check(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (l localBackend) Poke(ctx context.Context, req *dist.PokeRequest) (*dist.PokeResponse, error) {
	resp, err := l.svc.Poke(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}
